// Package mqtt publishes region summaries to an MQTT broker so external
// observers can follow the simulation without scraping.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/edgecharge/mcsd/core/model"
	"github.com/edgecharge/mcsd/infra/logger"
)

// Config defines the connection parameters for the summary publisher.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies topic and client id defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "mcsd/regions/summary"
	}
	if c.ClientID == "" {
		c.ClientID = "mcsd-" + uuid.NewString()[:8]
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	return nil
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

// SummaryPublisher implements the metrics sink contract by publishing the
// region summaries as a JSON payload per cloud rollout.
type SummaryPublisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewSummaryPublisher connects to the broker and returns the publisher.
func NewSummaryPublisher(cfg Config) (*SummaryPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mqtt: %w", err)
	}
	log := logger.New("mqtt-summaries")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &SummaryPublisher{cli: c, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

type summaryPayload struct {
	Time      time.Time             `json:"time"`
	Summaries []model.RegionSummary `json:"summaries"`
}

// RecordRegionSummaries publishes the summaries on the configured topic.
func (p *SummaryPublisher) RecordRegionSummaries(summaries []model.RegionSummary) error {
	payload, err := json.Marshal(summaryPayload{Time: time.Now(), Summaries: summaries})
	if err != nil {
		return fmt.Errorf("mqtt: marshal summaries: %w", err)
	}
	token := p.cli.Publish(p.topic, p.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt: publish summaries: %w", token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *SummaryPublisher) Close() {
	p.cli.Disconnect(250)
}
