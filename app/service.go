package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/pkariuki/sunsched/config"
	"github.com/pkariuki/sunsched/core/catalog"
	"github.com/pkariuki/sunsched/core/forecast"
	"github.com/pkariuki/sunsched/core/logger"
	coremetrics "github.com/pkariuki/sunsched/core/metrics"
	"github.com/pkariuki/sunsched/core/model"
	"github.com/pkariuki/sunsched/core/schedule"
	"github.com/pkariuki/sunsched/core/scheduler"
	infralogger "github.com/pkariuki/sunsched/infra/logger"
	"github.com/pkariuki/sunsched/infra/metrics"
	"github.com/pkariuki/sunsched/infra/mqtt"
	"github.com/pkariuki/sunsched/infra/openmeteo"
	"github.com/pkariuki/sunsched/internal/eventbus"
)

// Service orchestrates one planning pipeline: forecast, placement,
// recording and announcement.
type Service struct {
	cfg        *config.Config
	log        logger.Logger
	devices    []model.Device
	forecaster forecast.Forecaster
	engine     *scheduler.Engine
	sink       coremetrics.PlanSink
	bus        *eventbus.Bus
	announcer  mqtt.Announcer
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := infralogger.New("service")

	cat, err := catalog.Load(cfg.Devices)
	if err != nil {
		return nil, fmt.Errorf("device catalog: %w", err)
	}
	for _, r := range cat.Rejected {
		logg.Warnf("device %s rejected: %s", r.Name, r.Reason)
	}
	if len(cat.Devices) == 0 {
		return nil, fmt.Errorf("no feasible devices in catalog")
	}

	fc, err := newForecaster(cfg.Forecast)
	if err != nil {
		return nil, fmt.Errorf("forecaster: %w", err)
	}

	engine, err := scheduler.New(cfg.Scheduler, logg)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	var sinks []coremetrics.PlanSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.PlanSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	var announcer mqtt.Announcer = mqtt.NopAnnouncer{}
	if cfg.MQTT.Enabled {
		announcer, err = mqtt.NewPahoAnnouncer(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt announcer: %w", err)
		}
	}

	return &Service{
		cfg:        cfg,
		log:        logg,
		devices:    cat.Devices,
		forecaster: fc,
		engine:     engine,
		sink:       sink,
		bus:        eventbus.New(),
		announcer:  announcer,
	}, nil
}

func newForecaster(cfg config.ForecastConfig) (forecast.Forecaster, error) {
	switch cfg.Provider {
	case "static":
		return forecast.NewStatic(model.ForecastVector(cfg.Static))
	default:
		return openmeteo.New(cfg.OpenMeteo)
	}
}

// Bus exposes the plan event bus for additional subscribers.
func (s *Service) Bus() *eventbus.Bus { return s.bus }

// RunOnce executes one full planning cycle for the given operating day.
func (s *Service) RunOnce(ctx context.Context, date time.Time) (*schedule.Schedule, error) {
	vec, err := s.forecaster.NextDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	plan, err := s.engine.Plan(date, vec, s.devices)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	plan.PlanID = uuid.NewString()
	plan.GeneratedAt = time.Now().UTC()

	summary, events := coremetrics.FromSchedule(plan)
	if err := s.sink.RecordPlan(summary, events); err != nil {
		s.log.Errorf("record plan: %v", err)
	}
	s.bus.Publish(eventbus.PlanComputed{Plan: plan})
	if err := s.announcer.AnnouncePlan(ctx, plan); err != nil {
		s.log.Errorf("announce plan: %v", err)
	}

	s.log.Infof("plan %s for %s: %d/%d devices, %.2f kWh aligned",
		plan.PlanID, date.Format("2006-01-02"), summary.Scheduled, summary.Devices, summary.AlignedEnergy)
	return plan, nil
}

// Run starts the cron-driven daily cycle and blocks until the context is
// cancelled. Each trigger plans the following day.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", s.cfg.Metrics.PrometheusPort)
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	c := cron.New()
	_, err := c.AddFunc(s.cfg.Cron, func() {
		cycleCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		tomorrow := time.Now().AddDate(0, 0, 1)
		if _, err := s.RunOnce(cycleCtx, tomorrow); err != nil {
			s.log.Errorf("planning cycle: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cron schedule %q: %w", s.cfg.Cron, err)
	}
	c.Start()
	s.log.Infof("planner started, cycle at %q", s.cfg.Cron)

	<-ctx.Done()
	stop := c.Stop()
	<-stop.Done()
	return nil
}

// Close releases transports and the event bus.
func (s *Service) Close() error {
	s.announcer.Close()
	s.bus.Close()
	return nil
}
