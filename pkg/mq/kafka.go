package mq

import (
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
)

// Package-level singleton instance.
var producerInstance *KafkaProducer

// Init initializes the Kafka producer singleton with config.
func Init(cfg KafkaConfig) error {
	producer, err := NewKafkaProducer(cfg)
	if err != nil {
		return err
	}
	producerInstance = producer
	return nil
}

// NewQueue returns the singleton Kafka producer instance.
// Returns nil if Kafka is not enabled or not initialized.
func NewQueue() *KafkaProducer {
	return producerInstance
}

// KafkaConfig holds Kafka configuration. Kafka is optional; when disabled no
// events are published.
type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Enabled bool     `toml:"enabled"`
}

// Validate checks Kafka configuration.
func (c *KafkaConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("brokers is required when kafka is enabled")
	}
	return nil
}

// KafkaProducer publishes messages through a sarama sync producer.
type KafkaProducer struct {
	logger *slog.Logger
	config KafkaConfig
	client sarama.SyncProducer
}

var _ MessageQueue = (*KafkaProducer)(nil)

// NewKafkaProducer creates a Kafka producer. Returns nil when disabled; a nil
// producer is safe to publish to and does nothing.
func NewKafkaProducer(config KafkaConfig) (*KafkaProducer, error) {
	if !config.Enabled {
		return nil, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3

	client, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return &KafkaProducer{
		logger: slog.Default().With("module", "kafka-producer"),
		config: config,
		client: client,
	}, nil
}

// Publish sends a message to the given topic.
func (p *KafkaProducer) Publish(topic string, message []byte) error {
	if p == nil {
		return nil
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(message),
	}

	partition, offset, err := p.client.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.Debug("message sent",
		"topic", topic,
		"partition", partition,
		"offset", offset,
	)

	return nil
}

// Close closes the producer.
func (p *KafkaProducer) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Close()
}
