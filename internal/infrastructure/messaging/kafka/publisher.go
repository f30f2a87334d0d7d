package kafka

import (
	"context"
	"sync"

	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
)

// EventPublisher emits domain events.  Services treat publishing as best
// effort and only log failures.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
	Close() error
}

// EventBus wraps payloads in an EventEnvelope and hands them to a Producer.
type EventBus struct {
	producer *Producer
	source   string
	logger   logging.Logger
}

// NewEventBus returns a publisher stamping source on every envelope.
func NewEventBus(producer *Producer, source string, logger logging.Logger) *EventBus {
	return &EventBus{producer: producer, source: source, logger: logger}
}

func (b *EventBus) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	env, err := NewEventEnvelope(topic, b.source, payload)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(topic, key)
	if err != nil {
		return err
	}
	return b.producer.Publish(ctx, msg)
}

func (b *EventBus) Close() error {
	return b.producer.Close()
}

// NopPublisher drops events; used when kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                             { return nil }

// RecordingPublisher keeps envelopes in memory.  Tests and the CLI dry-run
// path use it.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []RecordedEvent
}

// RecordedEvent is one captured Publish call.
type RecordedEvent struct {
	Topic    string
	Key      string
	Envelope *EventEnvelope
}

func (r *RecordingPublisher) Publish(_ context.Context, topic, key string, payload interface{}) error {
	env, err := NewEventEnvelope(topic, "recorder", payload)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, RecordedEvent{Topic: topic, Key: key, Envelope: env})
	return nil
}

func (r *RecordingPublisher) Close() error { return nil }

// Topics returns the topics published to, in order.
func (r *RecordingPublisher) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Topic
	}
	return out
}

//Personal.AI order the ending
