package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"freight-tms/internal/logger"
	pkgmqtt "freight-tms/pkg/mqtt"
)

// MQTTIngestionConfig describes the tracking topic and MQTT connection
// parameters.
type MQTTIngestionConfig struct {
	ClientConfig  *pkgmqtt.Config
	TrackingTopic string
	QoS           byte
}

// MQTTIngestionClient wires tracking messages from the broker into the
// processor.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	client    *pkgmqtt.Client
	processor *Processor

	mu      sync.Mutex
	started bool
}

func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if cfg.TrackingTopic == "" {
		return nil, errors.New("tracking topic is required")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	return &MQTTIngestionClient{
		cfg:       cfg,
		client:    pkgmqtt.NewClient(cfg.ClientConfig),
		processor: processor,
	}, nil
}

// Start connects to the broker and subscribes to the tracking topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to mqtt broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.TrackingTopic, c.cfg.QoS, c.handleTrackingMessage); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.TrackingTopic, err)
	}

	c.started = true
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.client.Unsubscribe(c.cfg.TrackingTopic); err != nil {
		logger.Warn("failed to unsubscribe from tracking topic", zap.Error(err))
	}
	c.client.Disconnect()
	c.started = false
}

func (c *MQTTIngestionClient) handleTrackingMessage(_ string, payload []byte) {
	msg, err := ParseTrackingPing(payload)
	if err != nil {
		logger.Warn("invalid tracking payload", zap.Error(err))
		return
	}
	c.processor.ProcessPing(msg)
}
