// Package catalog validates controllable-load definitions before they reach
// the scheduling engine. Infeasible devices are excluded and reported, never
// silently dropped; malformed records abort loading.
package catalog

import (
	"fmt"

	"github.com/pkariuki/sunsched/core/model"
	"github.com/pkariuki/sunsched/core/timegrid"
)

// Record is one raw device row as it appears in configuration. Duration may
// be given in minutes or directly in slots; minutes win when both are set.
type Record struct {
	Name            string  `json:"name"`
	PowerKW         float64 `json:"power_kw"`
	DurationMinutes int     `json:"duration_minutes"`
	DurationSlots   int     `json:"duration_slots"`
	WindowStart     *int    `json:"window_start"`
	WindowEnd       *int    `json:"window_end"`
	DeadlineSlot    int     `json:"deadline_slot"`
	DaylightOnly    *bool   `json:"daylight_only"`
	Feeder          string  `json:"feeder"`
}

// Rejected describes a device excluded at load time.
type Rejected struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Catalog holds the validated devices in input order plus the rejects.
type Catalog struct {
	Devices  []model.Device
	Rejected []Rejected
}

// Load converts raw records into validated devices. Structural problems
// (missing name or duration) are fatal; window infeasibility only excludes
// the offending device. Input order is preserved for deterministic
// downstream tie-breaking.
func Load(records []Record) (*Catalog, error) {
	cat := &Catalog{}
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.Name == "" {
			return nil, &model.ShapeError{Field: "devices", Detail: fmt.Sprintf("record %d has no name", i)}
		}
		if r.DurationMinutes <= 0 && r.DurationSlots <= 0 {
			return nil, &model.ShapeError{Field: "devices", Detail: fmt.Sprintf("device %s has no duration", r.Name)}
		}
		if seen[r.Name] {
			cat.Rejected = append(cat.Rejected, Rejected{Name: r.Name, Reason: "duplicate name"})
			continue
		}
		seen[r.Name] = true

		d, err := toDevice(r)
		if err != nil {
			cat.Rejected = append(cat.Rejected, Rejected{Name: r.Name, Reason: err.Error()})
			continue
		}
		if !d.Feasible() {
			w := d.EffectiveWindow()
			cat.Rejected = append(cat.Rejected, Rejected{
				Name:   d.Name,
				Reason: fmt.Sprintf("duration %d slots exceeds window [%d,%d)", d.DurationSlots, w.Start, w.End),
			})
			continue
		}
		cat.Devices = append(cat.Devices, d)
	}
	return cat, nil
}

func toDevice(r Record) (model.Device, error) {
	dur := r.DurationSlots
	if r.DurationMinutes > 0 {
		var err error
		dur, err = timegrid.SlotsForDuration(r.DurationMinutes)
		if err != nil {
			return model.Device{}, err
		}
	}

	// Daylight-only is the default; records must opt out explicitly.
	daylight := true
	if r.DaylightOnly != nil {
		daylight = *r.DaylightOnly
	}

	win := model.DaylightWindow()
	if r.WindowStart != nil {
		win.Start = *r.WindowStart
	}
	if r.WindowEnd != nil {
		win.End = *r.WindowEnd
	}

	d := model.Device{
		Name:          r.Name,
		PowerKW:       r.PowerKW,
		DurationSlots: dur,
		Window:        win,
		DeadlineSlot:  r.DeadlineSlot,
		DaylightOnly:  daylight,
		Feeder:        r.Feeder,
	}
	if err := d.Validate(); err != nil {
		return model.Device{}, err
	}
	return d, nil
}
