package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/pkariuki/sunsched/core/metrics"
)

// PromSink records scheduling outcomes in Prometheus metrics.
type PromSink struct {
	plans         prometheus.Counter
	deviceEvents  *prometheus.CounterVec
	scheduled     prometheus.Gauge
	unscheduled   prometheus.Gauge
	alignedEnergy prometheus.Gauge
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The Prometheus server should be started separately via StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plans_total",
		Help: "Total number of scheduling runs",
	})
	deviceEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_device_events_total",
		Help: "Per-device plan outcomes",
	}, []string{"device", "scheduled"})
	scheduled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_devices_scheduled",
		Help: "Devices placed in the latest plan",
	})
	unscheduled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_devices_unscheduled",
		Help: "Devices left unscheduled in the latest plan",
	})
	alignedEnergy := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_aligned_energy_kwh",
		Help: "Total solar-aligned energy of the latest plan",
	})

	s := &PromSink{
		plans:         plans,
		deviceEvents:  deviceEvents,
		scheduled:     scheduled,
		unscheduled:   unscheduled,
		alignedEnergy: alignedEnergy,
	}
	for _, c := range []prometheus.Collector{plans, deviceEvents, scheduled, unscheduled, alignedEnergy} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordPlan updates counters and latest-plan gauges.
func (s *PromSink) RecordPlan(summary coremetrics.PlanSummary, events []coremetrics.PlanEvent) error {
	s.plans.Inc()
	s.scheduled.Set(float64(summary.Scheduled))
	s.unscheduled.Set(float64(summary.Devices - summary.Scheduled))
	s.alignedEnergy.Set(summary.AlignedEnergy)
	for _, ev := range events {
		s.deviceEvents.WithLabelValues(ev.DeviceName, strconv.FormatBool(ev.Scheduled)).Inc()
	}
	return nil
}
