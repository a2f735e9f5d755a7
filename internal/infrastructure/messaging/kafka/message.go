// Package kafka publishes and consumes the service's domain events with
// segmentio/kafka-go.  The API server publishes snapshot reloads; the worker
// consumes them and publishes the ranked zone summary.
package kafka

import (
	"context"
	"time"
)

// Message is a consumed record.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// ProducerMessage is a record to publish.
type ProducerMessage struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// MessageHandler processes one consumed message.  A non-nil error triggers
// the retry policy.
type MessageHandler func(ctx context.Context, msg *Message) error

//Personal.AI order the ending
