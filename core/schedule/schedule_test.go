package schedule

import (
	"math"
	"testing"
)

func TestSummaryMetrics(t *testing.T) {
	s := &Schedule{
		Entries: []Entry{
			{DeviceName: "a", StartSlot: 20, EndSlot: 22, OverlapScore: 10},
			{DeviceName: "b", StartSlot: 24, EndSlot: 28, OverlapScore: 4.5},
		},
		Unscheduled: []Unscheduled{{DeviceName: "c", Reason: ReasonNoFeasibleWindow}},
	}
	if got := s.TotalAlignedEnergy(); math.Abs(got-14.5) > 1e-9 {
		t.Fatalf("aligned energy: expected 14.5 got %v", got)
	}
	if got := s.ScheduledFraction(); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Fatalf("fraction: expected 2/3 got %v", got)
	}
	if got := s.OccupiedSlots(); got != 6 {
		t.Fatalf("occupied: expected 6 got %d", got)
	}
}

func TestEmptySchedule(t *testing.T) {
	s := &Schedule{}
	if s.TotalAlignedEnergy() != 0 || s.ScheduledFraction() != 0 || s.OccupiedSlots() != 0 {
		t.Fatalf("empty schedule should report zeros")
	}
}
