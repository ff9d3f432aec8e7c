package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/pkariuki/sunsched/core/model"
	"github.com/pkariuki/sunsched/core/timegrid"
)

// Smooth applies a centered rolling mean of the given window size. Edges use
// the available neighbors, so the output keeps the input length and peaks
// are not shifted.
func Smooth(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	half := window / 2
	out := make([]float64, len(values))
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(values) {
			hi = len(values)
		}
		out[i] = stat.Mean(values[lo:hi], nil)
	}
	return out
}

// ClampDaylight zeroes production outside the daylight window. Night-time
// sensor noise otherwise leaks into placement scores.
func ClampDaylight(f model.ForecastVector) model.ForecastVector {
	out := f.Clone()
	for i := range out {
		if i < timegrid.DaylightStart || i >= timegrid.DaylightEnd {
			out[i] = 0
		}
	}
	return out
}

// ResampleHourly linearly interpolates 24 hourly energy values onto the
// half-hour grid, splitting each hour's energy across its two slots.
func ResampleHourly(hourly []float64) (model.ForecastVector, error) {
	if len(hourly) != 24 {
		return nil, fmt.Errorf("expected 24 hourly values, got %d", len(hourly))
	}
	out := make(model.ForecastVector, timegrid.SlotsPerDay)
	for h, v := range hourly {
		// Split the hourly energy between the two half-hour slots, leaning
		// toward the neighboring hour so ramps stay monotonic.
		next := v
		if h+1 < len(hourly) {
			next = hourly[h+1]
		}
		out[2*h] = v / 2
		out[2*h+1] = (v + next) / 4
	}
	return out, nil
}
