package scheduler

import (
	"fmt"

	"github.com/pkariuki/sunsched/core/timegrid"
)

// Config defines planning parameters loaded from configuration.
type Config struct {
	// Strategy selects the device priority ordering: "tightest_window",
	// "input_order" or "largest_power".
	Strategy string `json:"strategy"`
	// Feeders partitions the timeline per feeder when set. Devices naming
	// no feeder share the default timeline.
	Feeders []string `json:"feeders"`
	// RelaxWindows retries an unplaceable device against the plain daylight
	// window before giving up, as the campus pilot did.
	RelaxWindows bool `json:"relax_windows"`
	// BaseLoadKWh is an optional per-slot base load subtracted from the
	// forecast when scoring candidates. Empty disables headroom scoring.
	BaseLoadKWh []float64 `json:"base_load_kwh"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = TightestWindowFirst{}.Name()
	}
}

// Validate checks strategy and base-load shape.
func (c Config) Validate() error {
	if _, err := c.Priority(); err != nil {
		return err
	}
	if n := len(c.BaseLoadKWh); n != 0 && n != timegrid.SlotsPerDay {
		return fmt.Errorf("base load must have %d slots, got %d", timegrid.SlotsPerDay, n)
	}
	for i, v := range c.BaseLoadKWh {
		if v < 0 {
			return fmt.Errorf("base load slot %d is negative", i)
		}
	}
	return nil
}

// Priority resolves the configured strategy.
func (c Config) Priority() (Priority, error) {
	switch c.Strategy {
	case "", TightestWindowFirst{}.Name():
		return TightestWindowFirst{}, nil
	case InputOrder{}.Name():
		return InputOrder{}, nil
	case LargestPowerFirst{}.Name():
		return LargestPowerFirst{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %s", c.Strategy)
	}
}
