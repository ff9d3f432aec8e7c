package main

import (
	"os"

	"github.com/pkariuki/sunsched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
