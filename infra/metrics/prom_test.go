package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/pkariuki/sunsched/core/metrics"
)

func TestPromSinkRecordPlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	summary := coremetrics.PlanSummary{
		PlanID:        "p1",
		Date:          time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		GeneratedAt:   time.Now(),
		Devices:       3,
		Scheduled:     2,
		AlignedEnergy: 14.5,
	}
	events := []coremetrics.PlanEvent{
		{PlanID: "p1", DeviceName: "dryer", Scheduled: true, OverlapScore: 10},
		{PlanID: "p1", DeviceName: "vent", Scheduled: true, OverlapScore: 4.5},
		{PlanID: "p1", DeviceName: "oven", Reason: "no_feasible_window"},
	}
	require.NoError(t, sink.RecordPlan(summary, events))

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				byName[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				byName[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	require.Equal(t, 1.0, byName["plans_total"])
	require.Equal(t, 3.0, byName["plan_device_events_total"])
	require.Equal(t, 2.0, byName["plan_devices_scheduled"])
	require.Equal(t, 1.0, byName["plan_devices_unscheduled"])
	require.Equal(t, 14.5, byName["plan_aligned_energy_kwh"])
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	_, err = NewPromSinkWithRegistry(reg)
	require.NoError(t, err, "re-registration should be tolerated")
}

func TestInfluxFallbackToNop(t *testing.T) {
	sink := NewInfluxSinkWithFallback("http://127.0.0.1:1", "t", "org", "bucket")
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("unreachable influx should fall back to NopSink, got %T", sink)
	}
}
