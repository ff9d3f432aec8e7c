package model

import (
	"fmt"

	"github.com/pkariuki/sunsched/core/timegrid"
)

// Window is a half-open slot range [Start, End) within which a device's
// entire contiguous run must fit.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DaylightWindow returns the default operating window, 06:00 to 18:00.
func DaylightWindow() Window {
	return Window{Start: timegrid.DaylightStart, End: timegrid.DaylightEnd}
}

// Len returns the number of slots in the window.
func (w Window) Len() int { return w.End - w.Start }

// Validate checks the window lies within the day grid.
func (w Window) Validate() error {
	if w.Start < 0 || w.End > timegrid.SlotsPerDay {
		return fmt.Errorf("window [%d,%d) outside day grid [0,%d)", w.Start, w.End, timegrid.SlotsPerDay)
	}
	if w.Start >= w.End {
		return fmt.Errorf("window [%d,%d) is empty", w.Start, w.End)
	}
	return nil
}

// Contains reports whether the contiguous range [start, start+length) fits
// entirely inside the window.
func (w Window) Contains(start, length int) bool {
	return start >= w.Start && start+length <= w.End
}

// Intersect returns the overlap of two windows. The result may be empty.
func (w Window) Intersect(o Window) Window {
	out := w
	if o.Start > out.Start {
		out.Start = o.Start
	}
	if o.End < out.End {
		out.End = o.End
	}
	return out
}

// Device is one controllable load with its placement constraints.
type Device struct {
	Name          string  // unique identifier
	PowerKW       float64 // rated power, reporting and headroom only
	DurationSlots int     // contiguous slots the device must run once started
	Window        Window  // allowed placement window
	DeadlineSlot  int     // finish-by slot, 0 means none
	DaylightOnly  bool    // restrict the run to the daylight window
	Feeder        string  // feeder name, empty means the shared timeline
}

// Validate checks structural soundness. Window feasibility against the
// effective window is the catalog's concern.
func (d Device) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("device name is required")
	}
	if d.DurationSlots <= 0 {
		return fmt.Errorf("device %s: duration must be positive, got %d slots", d.Name, d.DurationSlots)
	}
	if err := d.Window.Validate(); err != nil {
		return fmt.Errorf("device %s: %w", d.Name, err)
	}
	if d.DeadlineSlot < 0 || d.DeadlineSlot > timegrid.SlotsPerDay {
		return fmt.Errorf("device %s: deadline slot %d outside day grid", d.Name, d.DeadlineSlot)
	}
	if d.PowerKW < 0 {
		return fmt.Errorf("device %s: power must not be negative", d.Name)
	}
	return nil
}

// EffectiveWindow applies the daylight restriction and the finish-by
// deadline to the allowed window. The result may be empty for infeasible
// devices; the catalog rejects those.
func (d Device) EffectiveWindow() Window {
	w := d.Window
	if d.DaylightOnly {
		w = w.Intersect(DaylightWindow())
	}
	if d.DeadlineSlot > 0 && d.DeadlineSlot < w.End {
		w.End = d.DeadlineSlot
	}
	return w
}

// Feasible reports whether the device's run can fit its effective window.
func (d Device) Feasible() bool {
	return d.DurationSlots <= d.EffectiveWindow().Len()
}

// EnergyPerSlotKWh returns the energy the device draws in one slot.
func (d Device) EnergyPerSlotKWh() float64 {
	return d.PowerKW * timegrid.SlotHours
}
