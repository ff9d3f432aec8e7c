package app

import (
	"context"
	"testing"
	"time"

	"github.com/pkariuki/sunsched/config"
	"github.com/pkariuki/sunsched/core/catalog"
	"github.com/pkariuki/sunsched/internal/eventbus"
)

func staticConfig() *config.Config {
	static := make([]float64, 48)
	for i := 20; i <= 24; i++ {
		static[i] = 5
	}
	cfg := &config.Config{
		Forecast: config.ForecastConfig{Provider: "static", Static: static},
		Devices: []catalog.Record{
			{Name: "dryer", PowerKW: 3, DurationMinutes: 60},
			{Name: "impossible", PowerKW: 1, DurationSlots: 10, WindowStart: intp(30), WindowEnd: intp(35)},
		},
	}
	cfg.SetDefaults()
	return cfg
}

func intp(v int) *int { return &v }

func TestServiceRunOnce(t *testing.T) {
	svc, err := New(staticConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}()

	sub := svc.Bus().Subscribe()
	date := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	plan, err := svc.RunOnce(context.Background(), date)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if plan.PlanID == "" {
		t.Fatalf("plan should be stamped with an ID")
	}
	if len(plan.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(plan.Entries))
	}
	if plan.Entries[0].StartSlot != 20 {
		t.Fatalf("dryer should sit on the peak, got %d", plan.Entries[0].StartSlot)
	}

	select {
	case ev := <-sub:
		pc, ok := ev.(eventbus.PlanComputed)
		if !ok || pc.Plan.PlanID != plan.PlanID {
			t.Fatalf("wrong event on bus: %#v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("no PlanComputed event published")
	}
}

func TestServiceRejectsInfeasibleCatalogOnly(t *testing.T) {
	cfg := staticConfig()
	cfg.Devices = cfg.Devices[1:2] // only the impossible device
	if _, err := New(cfg); err == nil {
		t.Fatalf("catalog with no feasible devices must fail")
	}
}
