package kafka

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LexConnect/internal/config"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
)

// mockKafkaReader serves queued messages then blocks until ctx ends.
type mockKafkaReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	closed    atomic.Int32
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

func (m *mockKafkaReader) Close() error {
	m.closed.Add(1)
	return nil
}

func (m *mockKafkaReader) Stats() kafka.ReaderStats { return kafka.ReaderStats{} }

func (m *mockKafkaReader) committedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.committed)
}

func newTestConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "test-group",
		Topics:  []string{TopicBookingCreated},
		RetryConfig: RetryConfig{
			MaxRetries:   2,
			RetryBackoff: time.Millisecond,
		},
	}
}

func TestValidateConsumerConfig(t *testing.T) {
	assert.NoError(t, ValidateConsumerConfig(newTestConsumerConfig()))

	cfg := newTestConsumerConfig()
	cfg.Brokers = nil
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = newTestConsumerConfig()
	cfg.GroupID = ""
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = newTestConsumerConfig()
	cfg.Topics = nil
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = newTestConsumerConfig()
	cfg.RetryConfig.MaxRetries = -1
	assert.Error(t, ValidateConsumerConfig(cfg))
}

func TestConsumerConfigFrom(t *testing.T) {
	cfg := ConsumerConfigFrom(config.KafkaConfig{Brokers: []string{"k:9092"}, GroupID: "g"}, AllTopics)
	assert.Equal(t, []string{"k:9092"}, cfg.Brokers)
	assert.Equal(t, "g", cfg.GroupID)
	assert.Len(t, cfg.Topics, 4)
}

func TestConsumer_DispatchesAndCommits(t *testing.T) {
	env, err := NewEventEnvelope(TopicBookingCreated, "test", BookingPayload{BookingID: "b-1"})
	require.NoError(t, err)
	msg, err := env.ToMessage(TopicBookingCreated, "b-1")
	require.NoError(t, err)

	reader := &mockKafkaReader{queue: []kafka.Message{
		{Topic: TopicBookingCreated, Key: msg.Key, Value: msg.Value, Headers: []kafka.Header{{Key: "event_type", Value: []byte(TopicBookingCreated)}}},
		{Topic: "unhandled.topic", Value: []byte("x")},
	}}
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), logging.NewNopLogger())

	got := make(chan string, 1)
	c.Subscribe(TopicBookingCreated, func(_ context.Context, m *ConsumedMessage) error {
		e, err := DecodeEnvelope(m.Value)
		if err != nil {
			return err
		}
		var p BookingPayload
		if err := e.DecodePayload(&p); err != nil {
			return err
		}
		assert.Equal(t, TopicBookingCreated, m.Headers["event_type"])
		got <- p.BookingID
		return nil
	})

	require.NoError(t, c.Start(context.Background()))
	assert.ErrorIs(t, c.Start(context.Background()), ErrAlreadyRunning)

	select {
	case id := <-got:
		assert.Equal(t, "b-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("handler not called")
	}
	assert.Eventually(t, func() bool { return reader.committedCount() == 2 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, c.Close())
	assert.Equal(t, int32(1), reader.closed.Load())

	consumed, processed, failed := c.Counts()
	assert.Equal(t, int64(2), consumed)
	assert.Equal(t, int64(1), processed)
	assert.Equal(t, int64(0), failed)
}

func TestConsumer_RetriesThenGivesUp(t *testing.T) {
	reader := &mockKafkaReader{queue: []kafka.Message{{Topic: TopicBookingCreated, Value: []byte("{}")}}}
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), logging.NewNopLogger())

	var calls atomic.Int32
	c.Subscribe(TopicBookingCreated, func(context.Context, *ConsumedMessage) error {
		calls.Add(1)
		return errors.New("handler failed")
	})
	require.NoError(t, c.Start(context.Background()))

	assert.Eventually(t, func() bool { return reader.committedCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())

	assert.Equal(t, int32(3), calls.Load())
	_, _, failed := c.Counts()
	assert.Equal(t, int64(1), failed)
}

func TestConsumer_RetrySucceeds(t *testing.T) {
	reader := &mockKafkaReader{queue: []kafka.Message{{Topic: TopicBookingCreated, Value: []byte("{}")}}}
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), logging.NewNopLogger())

	var calls atomic.Int32
	c.Subscribe(TopicBookingCreated, func(context.Context, *ConsumedMessage) error {
		if calls.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, c.Start(context.Background()))
	assert.Eventually(t, func() bool { return reader.committedCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())

	_, processed, _ := c.Counts()
	assert.Equal(t, int64(1), processed)
}

func TestConsumer_CloseWithoutStart(t *testing.T) {
	reader := &mockKafkaReader{}
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), logging.NewNopLogger())
	require.NoError(t, c.Close())
	assert.Equal(t, int32(1), reader.closed.Load())
}

//Personal.AI order the ending
