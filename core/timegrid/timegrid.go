package timegrid

import "fmt"

// The scheduling day is partitioned into fixed half-hour slots.
const (
	SlotMinutes = 30
	SlotsPerDay = 24 * 60 / SlotMinutes

	// DaylightStart and DaylightEnd bound the default operating window
	// (06:00 to 18:00). DaylightEnd is exclusive.
	DaylightStart = 6 * 60 / SlotMinutes
	DaylightEnd   = 18 * 60 / SlotMinutes
)

// RangeError reports a slot index outside the day grid.
type RangeError struct {
	Slot int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("slot %d outside day grid [0,%d]", e.Slot, SlotsPerDay)
}

// ToTime renders a slot index as wall-clock HH:MM. Slot SlotsPerDay is
// accepted so that interval ends can be rendered as 24:00.
func ToTime(slot int) (string, error) {
	if slot < 0 || slot > SlotsPerDay {
		return "", &RangeError{Slot: slot}
	}
	minutes := slot * SlotMinutes
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// SlotsForDuration converts a runtime in minutes to a slot count, rounding
// up to slot granularity.
func SlotsForDuration(minutes int) (int, error) {
	if minutes <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %d minutes", minutes)
	}
	return (minutes + SlotMinutes - 1) / SlotMinutes, nil
}

// SlotHours is the duration of one slot in hours, used to convert between
// power (kW) and per-slot energy (kWh).
const SlotHours = float64(SlotMinutes) / 60.0
