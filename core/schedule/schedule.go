// Package schedule defines the read-only output of one scheduling run.
package schedule

import "time"

// Reason explains why a device was left unscheduled.
type Reason string

const (
	// ReasonNoFeasibleWindow means no free contiguous range existed inside
	// the device's allowed window.
	ReasonNoFeasibleWindow Reason = "no_feasible_window"
)

// Entry is one placed device run. Slots are half-open: the device runs over
// [StartSlot, EndSlot).
type Entry struct {
	DeviceName   string  `json:"device_name"`
	StartSlot    int     `json:"start_slot"`
	EndSlot      int     `json:"end_slot"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	OverlapScore float64 `json:"overlap_score"`
	PowerKW      float64 `json:"power_kw"`
	Feeder       string  `json:"feeder,omitempty"`
}

// Unscheduled is a device for which no placement was found.
type Unscheduled struct {
	DeviceName string `json:"device_name"`
	Reason     Reason `json:"reason"`
}

// Schedule is the complete plan for one operating day. Every input device
// appears exactly once, either in Entries or in Unscheduled. It is not
// mutated after construction.
type Schedule struct {
	PlanID      string        `json:"plan_id"`
	Date        time.Time     `json:"date"`
	GeneratedAt time.Time     `json:"generated_at"`
	Entries     []Entry       `json:"entries"`
	Unscheduled []Unscheduled `json:"unscheduled"`
}

// TotalAlignedEnergy is the sum of overlap scores across placed entries,
// the plan's optimization target.
func (s *Schedule) TotalAlignedEnergy() float64 {
	total := 0.0
	for _, e := range s.Entries {
		total += e.OverlapScore
	}
	return total
}

// ScheduledFraction is the share of input devices that got a placement.
func (s *Schedule) ScheduledFraction() float64 {
	n := len(s.Entries) + len(s.Unscheduled)
	if n == 0 {
		return 0
	}
	return float64(len(s.Entries)) / float64(n)
}

// OccupiedSlots is the total slot count claimed by placed entries.
func (s *Schedule) OccupiedSlots() int {
	n := 0
	for _, e := range s.Entries {
		n += e.EndSlot - e.StartSlot
	}
	return n
}
