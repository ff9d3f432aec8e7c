package metrics

import (
	"time"

	"github.com/pkariuki/sunsched/core/schedule"
)

// PlanEvent represents one device outcome within a plan to be recorded.
type PlanEvent struct {
	PlanID       string
	Date         time.Time
	DeviceName   string
	StartSlot    int
	EndSlot      int
	OverlapScore float64
	PowerKW      float64
	Scheduled    bool
	Reason       string
}

// PlanSummary aggregates one scheduling run.
type PlanSummary struct {
	PlanID        string
	Date          time.Time
	GeneratedAt   time.Time
	Devices       int
	Scheduled     int
	AlignedEnergy float64
}

// PlanSink records scheduling outcomes for observability purposes.
type PlanSink interface {
	RecordPlan(summary PlanSummary, events []PlanEvent) error
}

// FromSchedule flattens a schedule into a summary and per-device events.
func FromSchedule(s *schedule.Schedule) (PlanSummary, []PlanEvent) {
	events := make([]PlanEvent, 0, len(s.Entries)+len(s.Unscheduled))
	for _, e := range s.Entries {
		events = append(events, PlanEvent{
			PlanID:       s.PlanID,
			Date:         s.Date,
			DeviceName:   e.DeviceName,
			StartSlot:    e.StartSlot,
			EndSlot:      e.EndSlot,
			OverlapScore: e.OverlapScore,
			PowerKW:      e.PowerKW,
			Scheduled:    true,
		})
	}
	for _, u := range s.Unscheduled {
		events = append(events, PlanEvent{
			PlanID:     s.PlanID,
			Date:       s.Date,
			DeviceName: u.DeviceName,
			Reason:     string(u.Reason),
		})
	}
	summary := PlanSummary{
		PlanID:        s.PlanID,
		Date:          s.Date,
		GeneratedAt:   s.GeneratedAt,
		Devices:       len(s.Entries) + len(s.Unscheduled),
		Scheduled:     len(s.Entries),
		AlignedEnergy: s.TotalAlignedEnergy(),
	}
	return summary, events
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordPlan(PlanSummary, []PlanEvent) error { return nil }

// MultiSink fans records out to several sinks, returning the first error.
type MultiSink struct {
	sinks []PlanSink
}

// NewMultiSink creates a MultiSink.
func NewMultiSink(sinks ...PlanSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordPlan(summary PlanSummary, events []PlanEvent) error {
	for _, s := range m.sinks {
		if err := s.RecordPlan(summary, events); err != nil {
			return err
		}
	}
	return nil
}
