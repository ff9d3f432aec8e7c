// Package openmeteo implements the day-ahead forecaster against the
// Open-Meteo forecast API. Hourly tilted irradiance is smoothed, converted
// to per-slot energy through a linear panel model and resampled onto the
// half-hour grid.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkariuki/sunsched/core/forecast"
	"github.com/pkariuki/sunsched/core/logger"
	"github.com/pkariuki/sunsched/core/model"
	infralogger "github.com/pkariuki/sunsched/infra/logger"
)

// Config defines the API endpoint and the site the panels sit on.
type Config struct {
	BaseURL         string  `json:"base_url"`
	TimeoutSeconds  int     `json:"timeout_seconds"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Timezone        string  `json:"timezone"`
	PanelAreaM2     float64 `json:"panel_area_m2"`
	PanelEfficiency float64 `json:"panel_efficiency"`
	SmoothingWindow int     `json:"smoothing_window"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.open-meteo.com/v1/forecast"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.Timezone == "" {
		c.Timezone = "Africa/Nairobi"
	}
	if c.SmoothingWindow == 0 {
		c.SmoothingWindow = 3
	}
}

// Validate checks the panel model parameters.
func (c Config) Validate() error {
	if c.PanelAreaM2 <= 0 {
		return fmt.Errorf("panel area must be positive")
	}
	if c.PanelEfficiency <= 0 || c.PanelEfficiency > 1 {
		return fmt.Errorf("panel efficiency must be in (0,1]")
	}
	return nil
}

// Client fetches irradiance forecasts over HTTP.
type Client struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
}

var _ forecast.Forecaster = (*Client)(nil)

// New creates a configured client.
func New(cfg Config) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:    infralogger.New("openmeteo"),
	}, nil
}

type apiResponse struct {
	Hourly struct {
		Time                   []string  `json:"time"`
		GlobalTiltedIrradiance []float64 `json:"global_tilted_irradiance"`
	} `json:"hourly"`
}

// NextDay fetches the hourly tilted irradiance for the given date and turns
// it into the 48-slot production forecast.
func (c *Client) NextDay(ctx context.Context, date time.Time) (model.ForecastVector, error) {
	day := date.Format("2006-01-02")
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", c.cfg.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", c.cfg.Longitude))
	q.Set("hourly", "global_tilted_irradiance")
	q.Set("start_date", day)
	q.Set("end_date", day)
	q.Set("timezone", c.cfg.Timezone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo status %d", resp.StatusCode)
	}
	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("open-meteo decode: %w", err)
	}
	if len(body.Hourly.GlobalTiltedIrradiance) != 24 {
		return nil, fmt.Errorf("open-meteo returned %d hourly values, expected 24", len(body.Hourly.GlobalTiltedIrradiance))
	}
	c.log.Debugw("forecast fetched", map[string]any{"date": day, "hours": len(body.Hourly.Time)})
	return c.toVector(body.Hourly.GlobalTiltedIrradiance)
}

// toVector runs the conditioning pipeline: linear panel model, centered
// smoothing, half-hour resampling, daylight clamp.
func (c *Client) toVector(irradiance []float64) (model.ForecastVector, error) {
	hourly := make([]float64, len(irradiance))
	for i, wm2 := range irradiance {
		if wm2 < 0 {
			wm2 = 0
		}
		// W/m2 sustained for an hour -> kWh for the array.
		hourly[i] = wm2 * c.cfg.PanelAreaM2 * c.cfg.PanelEfficiency / 1000.0
	}
	hourly = forecast.Smooth(hourly, c.cfg.SmoothingWindow)
	vec, err := forecast.ResampleHourly(hourly)
	if err != nil {
		return nil, err
	}
	vec = forecast.ClampDaylight(vec)
	if err := vec.Validate(); err != nil {
		return nil, err
	}
	return vec, nil
}
