package config

import (
	"fmt"

	"github.com/pkariuki/sunsched/core/timegrid"
	"github.com/pkariuki/sunsched/infra/openmeteo"
)

// ForecastConfig selects and configures the production forecaster.
type ForecastConfig struct {
	// Provider is "openmeteo" or "static".
	Provider string `json:"provider"`
	// Static is the fixed per-slot forecast used by the static provider,
	// typically produced offline by the regression pipeline.
	Static []float64 `json:"static"`
	// OpenMeteo configures the live irradiance provider.
	OpenMeteo openmeteo.Config `json:"openmeteo"`
}

// SetDefaults applies sane defaults.
func (c *ForecastConfig) SetDefaults() {
	if c.Provider == "" {
		c.Provider = "openmeteo"
	}
	c.OpenMeteo.SetDefaults()
}

// Validate checks provider selection and provider-specific parameters.
func (c ForecastConfig) Validate() error {
	switch c.Provider {
	case "openmeteo":
		return c.OpenMeteo.Validate()
	case "static":
		if len(c.Static) != timegrid.SlotsPerDay {
			return fmt.Errorf("static forecast must have %d slots, got %d", timegrid.SlotsPerDay, len(c.Static))
		}
		return nil
	default:
		return fmt.Errorf("unknown forecast provider %s", c.Provider)
	}
}
