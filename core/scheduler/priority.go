package scheduler

import (
	"sort"

	"github.com/pkariuki/sunsched/core/model"
)

// Priority orders devices before placement. Implementations must be
// deterministic: the same input slice always yields the same order.
type Priority interface {
	Name() string
	Order(devices []model.Device) []model.Device
}

// TightestWindowFirst schedules scarce devices before flexible ones: lowest
// effective-window-length to duration ratio first, deadline-bearing devices
// first on equal ratios, remaining ties by catalog input order.
type TightestWindowFirst struct{}

func (TightestWindowFirst) Name() string { return "tightest_window" }

func (TightestWindowFirst) Order(devices []model.Device) []model.Device {
	out := make([]model.Device, len(devices))
	copy(out, devices)
	sort.SliceStable(out, func(i, j int) bool {
		ri := slackRatio(out[i])
		rj := slackRatio(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].DeadlineSlot > 0 && out[j].DeadlineSlot == 0
	})
	return out
}

func slackRatio(d model.Device) float64 {
	return float64(d.EffectiveWindow().Len()) / float64(d.DurationSlots)
}

// InputOrder keeps the catalog order untouched.
type InputOrder struct{}

func (InputOrder) Name() string { return "input_order" }

func (InputOrder) Order(devices []model.Device) []model.Device {
	out := make([]model.Device, len(devices))
	copy(out, devices)
	return out
}

// LargestPowerFirst places the biggest loads first so they get first pick of
// the production peak, the ordering the campus pilot originally used.
type LargestPowerFirst struct{}

func (LargestPowerFirst) Name() string { return "largest_power" }

func (LargestPowerFirst) Order(devices []model.Device) []model.Device {
	out := make([]model.Device, len(devices))
	copy(out, devices)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PowerKW > out[j].PowerKW
	})
	return out
}
