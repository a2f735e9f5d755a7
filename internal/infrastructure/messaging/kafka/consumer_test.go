package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
)

// mockKafkaReader serves queued messages, then blocks until cancelled.
type mockKafkaReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
}

func (m *mockKafkaReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	m.mu.Lock()
	if len(m.queue) > 0 {
		msg := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
		return msg, nil
	}
	m.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (m *mockKafkaReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = append(m.committed, msgs...)
	return nil
}

func (m *mockKafkaReader) Close() error { return nil }

func (m *mockKafkaReader) commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.committed)
}

func testConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "recreation-worker",
		Topics:  []string{TopicSnapshotReloaded},
		Retry:   RetryConfig{MaxRetries: 2, RetryBackoff: time.Millisecond},
	}
}

func TestValidateConsumerConfig(t *testing.T) {
	assert.NoError(t, ValidateConsumerConfig(testConsumerConfig()))

	cfg := testConsumerConfig()
	cfg.Brokers = nil
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = testConsumerConfig()
	cfg.GroupID = ""
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = testConsumerConfig()
	cfg.AutoOffsetReset = "middle"
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = testConsumerConfig()
	cfg.Security = SecurityConfig{TLSEnabled: true}
	assert.Error(t, ValidateConsumerConfig(cfg))
}

func TestConsumer_DispatchesAndCommits(t *testing.T) {
	reader := &mockKafkaReader{queue: []kafka.Message{
		{Topic: TopicSnapshotReloaded, Value: []byte("v1"), Headers: []kafka.Header{{Key: "event_type", Value: []byte("x")}}},
		{Topic: "unrelated", Value: []byte("v2")},
	}}
	c := NewConsumerWithReader(reader, testConsumerConfig(), nil, logging.NewNopLogger())

	got := make(chan *Message, 1)
	c.Subscribe(TopicSnapshotReloaded, func(_ context.Context, msg *Message) error {
		got <- msg
		return nil
	})
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, ErrAlreadyRunning, c.Start(context.Background()))

	select {
	case msg := <-got:
		assert.Equal(t, "v1", string(msg.Value))
		assert.Equal(t, "x", msg.Headers["event_type"])
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for handler")
	}

	assert.Eventually(t, func() bool { return reader.commits() == 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	assert.Equal(t, int64(1), c.Processed())
}

func TestProcessMessage_RetrySuccess(t *testing.T) {
	c := NewConsumerWithReader(&mockKafkaReader{}, testConsumerConfig(), nil, logging.NewNopLogger())

	attempts := 0
	err := c.processMessage(context.Background(), &Message{}, func(context.Context, *Message) error {
		attempts++
		if attempts < 2 {
			return errors.New("fail")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, int64(1), c.metrics.MessagesRetried.Load())
}

func TestProcessMessage_RetryExhaustedDeadLetters(t *testing.T) {
	w := &mockKafkaWriter{}
	dl := NewProducerWithWriter(w, ProducerConfig{Brokers: []string{"b"}}, logging.NewNopLogger())
	cfg := testConsumerConfig()
	cfg.Retry.DeadLetterTopic = TopicDeadLetter
	c := NewConsumerWithReader(&mockKafkaReader{}, cfg, dl, logging.NewNopLogger())

	attempts := 0
	msg := &Message{Topic: TopicSnapshotReloaded, Value: []byte("payload"), Headers: map[string]string{}}
	err := c.processMessage(context.Background(), msg, func(context.Context, *Message) error {
		attempts++
		return errors.New("snapshot unavailable")
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, int64(1), c.DeadLettered())

	require.Len(t, w.written, 1)
	assert.Equal(t, TopicDeadLetter, w.written[0].Topic)
	headers := map[string]string{}
	for _, h := range w.written[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, TopicSnapshotReloaded, headers["original_topic"])
	assert.Equal(t, "snapshot unavailable", headers["error_message"])
	assert.Empty(t, msg.Headers)
}

func TestProcessMessage_Cancelled(t *testing.T) {
	cfg := testConsumerConfig()
	cfg.Retry.RetryBackoff = time.Hour
	c := NewConsumerWithReader(&mockKafkaReader{}, cfg, nil, logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.processMessage(ctx, &Message{}, func(context.Context, *Message) error { return errors.New("fail") })
	assert.ErrorIs(t, err, context.Canceled)
}

//Personal.AI order the ending
