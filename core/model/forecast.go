package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/pkariuki/sunsched/core/timegrid"
)

// ShapeError reports malformed scheduler input. It is fatal: the engine
// refuses to place anything when the input shape is wrong.
type ShapeError struct {
	Field  string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("input shape: %s: %s", e.Field, e.Detail)
}

// ForecastVector is the predicted solar energy (kWh) per slot for one day.
// It must hold exactly one value per grid slot and no negatives.
type ForecastVector []float64

// Validate checks length and non-negativity.
func (f ForecastVector) Validate() error {
	if len(f) != timegrid.SlotsPerDay {
		return &ShapeError{Field: "forecast", Detail: fmt.Sprintf("expected %d slots, got %d", timegrid.SlotsPerDay, len(f))}
	}
	for i, v := range f {
		if v < 0 {
			return &ShapeError{Field: "forecast", Detail: fmt.Sprintf("negative value %.3f at slot %d", v, i)}
		}
	}
	return nil
}

// WindowSum returns the total forecast energy over [start, start+length).
// The caller guarantees the range lies inside the grid.
func (f ForecastVector) WindowSum(start, length int) float64 {
	return floats.Sum(f[start : start+length])
}

// Total returns the forecast energy over the whole day.
func (f ForecastVector) Total() float64 {
	return floats.Sum(f)
}

// Headroom returns the forecast with the base load subtracted, clipped at
// zero. Both vectors must have grid length.
func (f ForecastVector) Headroom(base ForecastVector) ForecastVector {
	out := make(ForecastVector, len(f))
	for i, v := range f {
		h := v - base[i]
		if h < 0 {
			h = 0
		}
		out[i] = h
	}
	return out
}

// Clone returns an independent copy.
func (f ForecastVector) Clone() ForecastVector {
	out := make(ForecastVector, len(f))
	copy(out, f)
	return out
}
