package scheduler

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pkariuki/sunsched/core/logger"
	"github.com/pkariuki/sunsched/core/model"
	"github.com/pkariuki/sunsched/core/schedule"
	"github.com/pkariuki/sunsched/core/timegrid"
	"github.com/pkariuki/sunsched/core/timeline"
)

// Engine places device runs on the day grid. One Engine may be reused across
// runs; each Plan call builds its own availability tracker, so nothing is
// shared between runs.
type Engine struct {
	cfg      Config
	priority Priority
	log      logger.Logger
}

// New builds an engine from configuration.
func New(cfg Config, log logger.Logger) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prio, err := cfg.Priority()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Engine{cfg: cfg, priority: prio, log: log}, nil
}

// Plan produces the schedule for the given day. Malformed input fails fast
// before any placement; a device without a feasible free window is recorded
// as unscheduled and never aborts the run. The result is deterministic for
// identical inputs.
func (e *Engine) Plan(date time.Time, forecast model.ForecastVector, devices []model.Device) (*schedule.Schedule, error) {
	if err := forecast.Validate(); err != nil {
		return nil, err
	}
	for _, d := range devices {
		if err := d.Validate(); err != nil {
			return nil, &model.ShapeError{Field: "devices", Detail: err.Error()}
		}
	}

	score := forecast
	headroom := len(e.cfg.BaseLoadKWh) > 0
	if headroom {
		score = forecast.Headroom(model.ForecastVector(e.cfg.BaseLoadKWh))
	}

	tracker := timeline.New(e.cfg.Feeders...)
	plan := &schedule.Schedule{Date: date}

	for _, d := range e.priority.Order(devices) {
		start, ok := e.bestStart(score, tracker, d, d.EffectiveWindow())
		if !ok && e.cfg.RelaxWindows {
			start, ok = e.bestStart(score, tracker, d, model.DaylightWindow())
		}
		if !ok {
			e.log.Infof("device %s: no feasible window", d.Name)
			plan.Unscheduled = append(plan.Unscheduled, schedule.Unscheduled{
				DeviceName: d.Name,
				Reason:     schedule.ReasonNoFeasibleWindow,
			})
			continue
		}

		end := start + d.DurationSlots
		if err := tracker.Reserve(d.Feeder, start, d.DurationSlots); err != nil {
			// bestStart only returns free ranges; reaching this is a bug.
			return nil, fmt.Errorf("engine invariant violated: %w", err)
		}
		if headroom {
			score = consume(score, start, end, d.EnergyPerSlotKWh())
		}

		entry, err := newEntry(d, start, end, forecast.WindowSum(start, d.DurationSlots))
		if err != nil {
			return nil, err
		}
		e.log.Debugw("device placed", map[string]any{
			"device": d.Name,
			"start":  entry.StartTime,
			"end":    entry.EndTime,
			"score":  entry.OverlapScore,
		})
		plan.Entries = append(plan.Entries, entry)
	}
	return plan, nil
}

// bestStart enumerates every free start inside the window and returns the
// one maximizing the score sum over the run, earliest slot on ties.
func (e *Engine) bestStart(score model.ForecastVector, tracker *timeline.Tracker, d model.Device, win model.Window) (int, bool) {
	best := -1
	bestScore := math.Inf(-1)
	for s := win.Start; s+d.DurationSlots <= win.End; s++ {
		if !tracker.IsFree(d.Feeder, s, d.DurationSlots) {
			continue
		}
		sc := floats.Sum(score[s : s+d.DurationSlots])
		if sc > bestScore {
			bestScore = sc
			best = s
		}
	}
	return best, best >= 0
}

// consume subtracts the device's per-slot energy from the scoring vector
// over its run, clipped at zero, so later devices see reduced headroom.
func consume(score model.ForecastVector, start, end int, energyKWh float64) model.ForecastVector {
	out := score.Clone()
	for i := start; i < end; i++ {
		out[i] -= energyKWh
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}

func newEntry(d model.Device, start, end int, overlap float64) (schedule.Entry, error) {
	startTime, err := timegrid.ToTime(start)
	if err != nil {
		return schedule.Entry{}, err
	}
	endTime, err := timegrid.ToTime(end)
	if err != nil {
		return schedule.Entry{}, err
	}
	return schedule.Entry{
		DeviceName:   d.Name,
		StartSlot:    start,
		EndSlot:      end,
		StartTime:    startTime,
		EndTime:      endTime,
		OverlapScore: overlap,
		PowerKW:      d.PowerKW,
		Feeder:       d.Feeder,
	}, nil
}
