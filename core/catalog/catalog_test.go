package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/pkariuki/sunsched/core/model"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func TestLoadPreservesInputOrder(t *testing.T) {
	cat, err := Load([]Record{
		{Name: "laundry", PowerKW: 3, DurationMinutes: 240},
		{Name: "dryer", PowerKW: 3, DurationMinutes: 120},
		{Name: "vent", PowerKW: 1.5, DurationMinutes: 120},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Devices) != 3 || len(cat.Rejected) != 0 {
		t.Fatalf("expected 3 devices, got %d (+%d rejected)", len(cat.Devices), len(cat.Rejected))
	}
	for i, want := range []string{"laundry", "dryer", "vent"} {
		if cat.Devices[i].Name != want {
			t.Fatalf("order broken at %d: %s", i, cat.Devices[i].Name)
		}
	}
	if cat.Devices[0].DurationSlots != 8 {
		t.Fatalf("240 minutes should be 8 slots, got %d", cat.Devices[0].DurationSlots)
	}
}

func TestLoadRejectsInfeasibleWindow(t *testing.T) {
	// Ten slots cannot fit a five-slot window; rejected at load time,
	// never reaching the engine.
	cat, err := Load([]Record{
		{Name: "big", PowerKW: 4, DurationSlots: 10, WindowStart: intp(30), WindowEnd: intp(35)},
		{Name: "ok", PowerKW: 2, DurationSlots: 2},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Devices) != 1 || cat.Devices[0].Name != "ok" {
		t.Fatalf("expected only the feasible device, got %+v", cat.Devices)
	}
	if len(cat.Rejected) != 1 || cat.Rejected[0].Name != "big" {
		t.Fatalf("expected big rejected, got %+v", cat.Rejected)
	}
	if !strings.Contains(cat.Rejected[0].Reason, "exceeds window") {
		t.Fatalf("reason should explain the infeasibility: %s", cat.Rejected[0].Reason)
	}
}

func TestLoadDeadlineTightensWindow(t *testing.T) {
	// Water-heater style: finish by 09:00 (slot 18).
	cat, err := Load([]Record{
		{Name: "heater", PowerKW: 5, DurationMinutes: 120, DeadlineSlot: 18},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w := cat.Devices[0].EffectiveWindow()
	if w.Start != 12 || w.End != 18 {
		t.Fatalf("expected effective window [12,18), got [%d,%d)", w.Start, w.End)
	}
}

func TestLoadFatalOnMissingDuration(t *testing.T) {
	_, err := Load([]Record{{Name: "ghost", PowerKW: 1}})
	if err == nil {
		t.Fatalf("missing duration must be fatal")
	}
	var se *model.ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("expected ShapeError, got %T", err)
	}
}

func TestLoadFatalOnMissingName(t *testing.T) {
	if _, err := Load([]Record{{DurationSlots: 2}}); err == nil {
		t.Fatalf("missing name must be fatal")
	}
}

func TestLoadRejectsDuplicates(t *testing.T) {
	cat, err := Load([]Record{
		{Name: "vent", DurationSlots: 2},
		{Name: "vent", DurationSlots: 4},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Devices) != 1 || len(cat.Rejected) != 1 {
		t.Fatalf("duplicate should be rejected, got %d/%d", len(cat.Devices), len(cat.Rejected))
	}
	if cat.Rejected[0].Reason != "duplicate name" {
		t.Fatalf("unexpected reason %s", cat.Rejected[0].Reason)
	}
}

func TestLoadNightWindowOptOut(t *testing.T) {
	cat, err := Load([]Record{
		{Name: "night", DurationSlots: 4, WindowStart: intp(0), WindowEnd: intp(12), DaylightOnly: boolp(false)},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Devices) != 1 {
		t.Fatalf("night device should be accepted: %+v", cat.Rejected)
	}
	w := cat.Devices[0].EffectiveWindow()
	if w.Start != 0 || w.End != 12 {
		t.Fatalf("opt-out window mangled: [%d,%d)", w.Start, w.End)
	}
}
