package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/pkariuki/sunsched/core/logger"
	coremetrics "github.com/pkariuki/sunsched/core/metrics"
	infralogger "github.com/pkariuki/sunsched/infra/logger"
)

// InfluxSink writes plan outcomes to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.PlanSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlan writes one summary point plus a point per device outcome.
func (s *InfluxSink) RecordPlan(summary coremetrics.PlanSummary, events []coremetrics.PlanEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sp := write.NewPointWithMeasurement("plan_summary").
		AddTag("plan_id", summary.PlanID).
		AddTag("date", summary.Date.Format("2006-01-02")).
		AddField("devices", summary.Devices).
		AddField("scheduled", summary.Scheduled).
		AddField("aligned_energy_kwh", round3(summary.AlignedEnergy)).
		SetTime(summary.GeneratedAt)
	if err := s.writeAPI.WritePoint(ctx, sp); err != nil {
		return err
	}

	for _, ev := range events {
		p := write.NewPointWithMeasurement("plan_device").
			AddTag("plan_id", ev.PlanID).
			AddTag("device", ev.DeviceName).
			AddTag("scheduled", strconv.FormatBool(ev.Scheduled)).
			AddTag("component", "planner").
			AddField("start_slot", ev.StartSlot).
			AddField("end_slot", ev.EndSlot).
			AddField("overlap_score", round3(ev.OverlapScore)).
			AddField("power_kw", round3(ev.PowerKW)).
			SetTime(summary.GeneratedAt)
		if ev.Reason != "" {
			p.AddTag("reason", ev.Reason)
		}
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
