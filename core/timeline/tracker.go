// Package timeline tracks slot occupancy for one scheduling run. By default
// all devices share a single timeline; configuring feeders partitions the
// occupancy per feeder so independent circuits can run simultaneously.
package timeline

import (
	"fmt"

	"github.com/pkariuki/sunsched/core/timegrid"
)

// ConflictError signals an attempt to reserve an occupied or out-of-range
// slot range. The engine checks IsFree before reserving, so this surfacing
// indicates a bug in the caller, not bad input.
type ConflictError struct {
	Feeder string
	Start  int
	Length int
}

func (e *ConflictError) Error() string {
	feeder := e.Feeder
	if feeder == "" {
		feeder = "shared"
	}
	return fmt.Sprintf("slot range [%d,%d) not free on feeder %s", e.Start, e.Start+e.Length, feeder)
}

// Tracker records which slots are committed. It is built fresh for every
// scheduling run and never shared across runs.
type Tracker struct {
	occupied map[string][]bool
}

// New creates a tracker with an all-free timeline per named feeder. The
// default shared timeline (empty feeder name) always exists.
func New(feeders ...string) *Tracker {
	t := &Tracker{occupied: make(map[string][]bool, len(feeders)+1)}
	t.occupied[""] = make([]bool, timegrid.SlotsPerDay)
	for _, f := range feeders {
		t.occupied[f] = make([]bool, timegrid.SlotsPerDay)
	}
	return t
}

func (t *Tracker) row(feeder string) []bool {
	r, ok := t.occupied[feeder]
	if !ok {
		r = make([]bool, timegrid.SlotsPerDay)
		t.occupied[feeder] = r
	}
	return r
}

// IsFree reports whether [start, start+length) lies inside the day grid and
// no slot in the range is committed on the given feeder.
func (t *Tracker) IsFree(feeder string, start, length int) bool {
	if start < 0 || length <= 0 || start+length > timegrid.SlotsPerDay {
		return false
	}
	row := t.row(feeder)
	for _, busy := range row[start : start+length] {
		if busy {
			return false
		}
	}
	return true
}

// Reserve commits the range on the feeder. It re-checks freeness
// defensively and returns a ConflictError when the check fails.
func (t *Tracker) Reserve(feeder string, start, length int) error {
	if !t.IsFree(feeder, start, length) {
		return &ConflictError{Feeder: feeder, Start: start, Length: length}
	}
	row := t.row(feeder)
	for i := start; i < start+length; i++ {
		row[i] = true
	}
	return nil
}

// Occupied returns the total committed slot count across all feeders.
func (t *Tracker) Occupied() int {
	n := 0
	for _, row := range t.occupied {
		for _, busy := range row {
			if busy {
				n++
			}
		}
	}
	return n
}
