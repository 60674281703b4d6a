// Package mqtt publishes assessment results to an MQTT topic so
// external dashboards can follow recomputations live.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coremetrics "github.com/greenloop/biolca/core/metrics"
	"github.com/greenloop/biolca/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "biolca/assessments"
	}
	if c.ClientID == "" {
		c.ClientID = "biolca-" + uuid.NewString()[:8]
	}
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Announcer publishes one JSON message per assessment.
type Announcer struct {
	cli    pahoClient
	topic  string
	qos    byte
	retain bool
	log    logger.Logger
}

// NewAnnouncer connects to the broker and returns a ready publisher.
func NewAnnouncer(cfg Config) (*Announcer, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	cli := newMQTTClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(5 * time.Second) {
		return nil, fmt.Errorf("mqtt connect %s: timeout", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}
	return &Announcer{
		cli:    cli,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    logger.New("mqtt-announcer"),
	}, nil
}

// RecordAssessment implements the metrics sink so the announcer can be
// fanned out alongside the other sinks.
func (a *Announcer) RecordAssessment(ev coremetrics.AssessmentEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	tok := a.cli.Publish(a.topic, a.qos, a.retain, payload)
	if !tok.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish assessment: timeout")
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publish assessment: %w", err)
	}
	a.log.Debugf("published run %s to %s", ev.RunID, a.topic)
	return nil
}

// Close disconnects from the broker.
func (a *Announcer) Close() {
	if a.cli.IsConnected() {
		a.cli.Disconnect(250)
	}
}
