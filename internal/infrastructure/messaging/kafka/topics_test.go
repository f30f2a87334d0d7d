package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
)

type mockKafkaConn struct {
	createFunc func(topics ...kafka.TopicConfig) error
	readFunc   func(topics ...string) ([]kafka.Partition, error)
	created    []kafka.TopicConfig
}

func (m *mockKafkaConn) CreateTopics(topics ...kafka.TopicConfig) error {
	m.created = append(m.created, topics...)
	if m.createFunc != nil {
		return m.createFunc(topics...)
	}
	return nil
}

func (m *mockKafkaConn) ReadPartitions(topics ...string) ([]kafka.Partition, error) {
	if m.readFunc != nil {
		return m.readFunc(topics...)
	}
	return nil, nil
}

func (m *mockKafkaConn) Close() error { return nil }

func TestNewEventEnvelope(t *testing.T) {
	env, err := NewEventEnvelope(TopicCaseClassified, "svc", CaseClassifiedPayload{Specialization: "Criminal Law", Confidence: 12})
	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, SchemaVersion, env.SchemaVersion)
	assert.False(t, env.Timestamp.IsZero())

	var p CaseClassifiedPayload
	require.NoError(t, env.DecodePayload(&p))
	assert.Equal(t, "Criminal Law", p.Specialization)
	assert.Equal(t, 12, p.Confidence)
}

func TestNewEventEnvelope_UnmarshalablePayload(t *testing.T) {
	_, err := NewEventEnvelope("t", "svc", make(chan int))
	assert.Error(t, err)
}

func TestEnvelope_ToMessageHeaders(t *testing.T) {
	env, err := NewEventEnvelope(TopicBookingCreated, "svc", BookingPayload{BookingID: "b"})
	require.NoError(t, err)
	env.TraceID = "trace-1"

	msg, err := env.ToMessage(TopicBookingCreated, "")
	require.NoError(t, err)
	assert.Nil(t, msg.Key)
	assert.Equal(t, TopicBookingCreated, msg.Headers["event_type"])
	assert.Equal(t, "svc", msg.Headers["source_service"])
	assert.Equal(t, "trace-1", msg.Headers["trace_id"])
	assert.Equal(t, env.Timestamp, msg.Timestamp)
}

func TestDecodeEnvelope_Errors(t *testing.T) {
	_, err := DecodeEnvelope(nil)
	assert.Error(t, err)
	_, err = DecodeEnvelope([]byte("{not json"))
	assert.Error(t, err)
}

func TestDecodePayload_Empty(t *testing.T) {
	env := &EventEnvelope{Payload: []byte("null")}
	var p BookingPayload
	assert.NoError(t, env.DecodePayload(&p))
	assert.Empty(t, p.BookingID)
}

func TestTopicManager_EnsureDefaultTopics(t *testing.T) {
	conn := &mockKafkaConn{}
	m := NewTopicManagerWithConn(conn, logging.NewNopLogger())

	require.NoError(t, m.EnsureDefaultTopics(context.Background()))
	require.Len(t, conn.created, len(AllTopics))
	for i, topic := range AllTopics {
		assert.Equal(t, topic, conn.created[i].Topic)
		require.Len(t, conn.created[i].ConfigEntries, 1)
		assert.Equal(t, "retention.ms", conn.created[i].ConfigEntries[0].ConfigName)
	}
	assert.NoError(t, m.Close())
}

func TestTopicManager_CreateTopic(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		m := NewTopicManagerWithConn(&mockKafkaConn{}, logging.NewNopLogger())
		assert.Error(t, m.CreateTopic(ctx, TopicConfig{}))
		assert.Error(t, m.CreateTopic(ctx, TopicConfig{Name: "t", ReplicationFactor: 1}))
		assert.Error(t, m.CreateTopic(ctx, TopicConfig{Name: "t", NumPartitions: 1}))
	})

	t.Run("existing topic is not an error", func(t *testing.T) {
		conn := &mockKafkaConn{
			createFunc: func(...kafka.TopicConfig) error { return errors.New("already exists") },
			readFunc: func(...string) ([]kafka.Partition, error) {
				return []kafka.Partition{{Topic: "t"}}, nil
			},
		}
		m := NewTopicManagerWithConn(conn, logging.NewNopLogger())
		assert.NoError(t, m.CreateTopic(ctx, TopicConfig{Name: "t", NumPartitions: 1, ReplicationFactor: 1}))
	})

	t.Run("create failure", func(t *testing.T) {
		conn := &mockKafkaConn{createFunc: func(...kafka.TopicConfig) error { return errors.New("denied") }}
		m := NewTopicManagerWithConn(conn, logging.NewNopLogger())
		assert.Error(t, m.CreateTopic(ctx, TopicConfig{Name: "t", NumPartitions: 1, ReplicationFactor: 1}))
	})
}

func TestNewTopicManager_RequiresBrokers(t *testing.T) {
	_, err := NewTopicManager(nil, logging.NewNopLogger())
	assert.Error(t, err)
}

//Personal.AI order the ending
