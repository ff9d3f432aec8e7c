// Package mqtt publishes day-ahead plans for dashboards and downstream
// controllers. The planner only announces schedules; it never commands
// devices over the wire.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/pkariuki/sunsched/core/logger"
	"github.com/pkariuki/sunsched/core/schedule"
	infralogger "github.com/pkariuki/sunsched/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled        bool   `json:"enabled"`
	Broker         string `json:"broker"`
	ClientID       string `json:"client_id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	TopicPrefix    string `json:"topic_prefix"`
	QoS            byte   `json:"qos"`
	Retain         bool   `json:"retain"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "sunsched/plan"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.ClientID == "" {
		c.ClientID = "sunsched-" + uuid.NewString()[:8]
	}
}

// Validate checks mandatory fields when the announcer is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	return nil
}

// Announcer publishes computed plans.
type Announcer interface {
	AnnouncePlan(ctx context.Context, plan *schedule.Schedule) error
	Close()
}

// pahoClient is the slice of paho.Client the announcer needs; tests swap in
// a fake.
type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// PahoAnnouncer implements Announcer using Eclipse Paho.
type PahoAnnouncer struct {
	cli     pahoClient
	cfg     Config
	log     logger.Logger
	timeout time.Duration
}

// NewPahoAnnouncer connects to the broker and returns the announcer.
func NewPahoAnnouncer(cfg Config) (*PahoAnnouncer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoAnnouncer{
		cli:     cli,
		cfg:     cfg,
		log:     infralogger.New("mqtt-announcer"),
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// AnnouncePlan publishes the plan JSON on <prefix>/<date>.
func (a *PahoAnnouncer) AnnouncePlan(ctx context.Context, plan *schedule.Schedule) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/%s", a.cfg.TopicPrefix, plan.Date.Format("2006-01-02"))
	tok := a.cli.Publish(topic, a.cfg.QoS, a.cfg.Retain, payload)

	done := make(chan struct{})
	go func() {
		tok.WaitTimeout(a.timeout)
		close(done)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	a.log.Infof("plan %s announced on %s (%d entries)", plan.PlanID, topic, len(plan.Entries))
	return nil
}

// Close disconnects from the broker.
func (a *PahoAnnouncer) Close() {
	a.cli.Disconnect(250)
}

// NopAnnouncer discards plans; used when MQTT is disabled.
type NopAnnouncer struct{}

func (NopAnnouncer) AnnouncePlan(context.Context, *schedule.Schedule) error { return nil }
func (NopAnnouncer) Close()                                                 {}
