package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkariuki/sunsched/app"
	"github.com/pkariuki/sunsched/config"
	"github.com/pkariuki/sunsched/pkg/export"
)

var (
	planDate   string
	planFormat string
	planOutput string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run a single planning cycle and export the schedule",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planDate, "date", "", "operating day (YYYY-MM-DD), default tomorrow")
	planCmd.Flags().StringVar(&planFormat, "format", "json", "output format: json or csv")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "-", "output file, - for stdout")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	date := time.Now().AddDate(0, 0, 1)
	if planDate != "" {
		date, err = time.Parse("2006-01-02", planDate)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	plan, err := svc.RunOnce(ctx, date)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if planOutput != "-" {
		f, err := os.Create(planOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	switch planFormat {
	case "json":
		return export.WriteJSON(out, plan)
	case "csv":
		return export.WriteCSV(out, plan)
	default:
		return fmt.Errorf("unsupported format: %s", planFormat)
	}
}
