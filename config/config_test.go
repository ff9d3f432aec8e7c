package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
forecast:
  provider: openmeteo
  openmeteo:
    latitude: -1.2921
    longitude: 36.8219
    panel_area_m2: 120
    panel_efficiency: 0.18
scheduler:
  strategy: tightest_window
devices:
  - name: laundry
    power_kw: 3
    duration_minutes: 240
  - name: water_heater
    power_kw: 5
    duration_minutes: 120
    deadline_slot: 18
metrics:
  prometheus_enabled: true
mqtt:
  enabled: false
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "cfg.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Forecast.Provider != "openmeteo" {
		t.Fatalf("provider lost: %s", cfg.Forecast.Provider)
	}
	if len(cfg.Devices) != 2 || cfg.Devices[1].DeadlineSlot != 18 {
		t.Fatalf("devices lost: %+v", cfg.Devices)
	}
	if cfg.Cron != "30 18 * * *" {
		t.Fatalf("cron default missing: %s", cfg.Cron)
	}
	if cfg.Metrics.PrometheusPort != 9090 {
		t.Fatalf("metrics defaults missing: %d", cfg.Metrics.PrometheusPort)
	}
	if cfg.Scheduler.Strategy != "tightest_window" {
		t.Fatalf("strategy lost: %s", cfg.Scheduler.Strategy)
	}
}

func TestLoadJSON(t *testing.T) {
	data := `{"forecast":{"provider":"static","static":[` + zeros48 + `]},"devices":[{"name":"vent","duration_slots":4}]}`
	cfg, err := Load(writeFile(t, "cfg.json", data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Forecast.Provider != "static" || len(cfg.Forecast.Static) != 48 {
		t.Fatalf("static forecast lost")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SUN_CRON", "0 17 * * *")
	cfg, err := Load(writeFile(t, "cfg.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cron != "0 17 * * *" {
		t.Fatalf("env override ignored: %s", cfg.Cron)
	}
}

func TestLoadRejectsBadInputs(t *testing.T) {
	if _, err := Load(writeFile(t, "cfg.toml", "x=1")); err == nil {
		t.Fatalf("unsupported extension accepted")
	}
	if _, err := Load(writeFile(t, "cfg.yaml", "forecast:\n  provider: psychic\ndevices:\n  - name: a\n    duration_slots: 2\n")); err == nil {
		t.Fatalf("unknown provider accepted")
	}
	if _, err := Load(writeFile(t, "cfg.yaml", "forecast:\n  provider: static\n  static: [1,2,3]\ndevices:\n  - name: a\n    duration_slots: 2\n")); err == nil {
		t.Fatalf("short static forecast accepted")
	}
	noDevices := `
forecast:
  provider: static
  static: [` + zeros48 + `]
`
	if _, err := Load(writeFile(t, "cfg.yaml", noDevices)); err == nil {
		t.Fatalf("empty device list accepted")
	}
}

var zeros48 = func() string {
	s := "0"
	for i := 1; i < 48; i++ {
		s += ",0"
	}
	return s
}()
