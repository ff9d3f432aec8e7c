package forecast

import (
	"context"
	"time"

	"github.com/pkariuki/sunsched/core/model"
)

// Static serves a fixed forecast vector regardless of date. Used for tests
// and for running the planner against externally supplied predictions.
type Static struct {
	Vector model.ForecastVector
}

// NewStatic validates the vector once and returns the forecaster.
func NewStatic(vector model.ForecastVector) (*Static, error) {
	if err := vector.Validate(); err != nil {
		return nil, err
	}
	return &Static{Vector: vector}, nil
}

// NextDay returns a copy of the configured vector.
func (s *Static) NextDay(_ context.Context, _ time.Time) (model.ForecastVector, error) {
	return s.Vector.Clone(), nil
}
