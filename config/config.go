package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pkariuki/sunsched/core/catalog"
	"github.com/pkariuki/sunsched/core/metrics"
	"github.com/pkariuki/sunsched/core/scheduler"
	"github.com/pkariuki/sunsched/infra/mqtt"
)

type Config struct {
	Forecast  ForecastConfig   `json:"forecast"`
	Scheduler scheduler.Config `json:"scheduler"`
	Devices   []catalog.Record `json:"devices"`
	Metrics   metrics.Config   `json:"metrics"`
	MQTT      mqtt.Config      `json:"mqtt"`
	// Cron is the local-time expression triggering the daily planning
	// cycle, default every evening at 18:30.
	Cron string `json:"cron"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("SUN_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sun_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults across all sections.
func (c *Config) SetDefaults() {
	if c.Cron == "" {
		c.Cron = "30 18 * * *"
	}
	c.Forecast.SetDefaults()
	c.Scheduler.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if err := c.Forecast.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	if len(c.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}
	return nil
}
