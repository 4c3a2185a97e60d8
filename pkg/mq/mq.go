// Package mq publishes service events to a message queue. The document
// ingestion pipeline announces each stored document; downstream consumers
// (indexers, auditing) are external to this service.
package mq

// MessageQueue is the publishing interface backed by Kafka in production and
// an in-memory queue in tests.
type MessageQueue interface {
	Publish(topic string, message []byte) error
	Close() error
}
