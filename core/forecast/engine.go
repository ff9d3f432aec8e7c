package forecast

import (
	"context"
	"time"

	"github.com/pkariuki/sunsched/core/model"
)

// Forecaster produces the per-slot solar production forecast for a day. How
// the numbers are produced (weather API, regression model) is the
// implementation's business; the scheduler only sees the vector.
type Forecaster interface {
	NextDay(ctx context.Context, date time.Time) (model.ForecastVector, error)
}
