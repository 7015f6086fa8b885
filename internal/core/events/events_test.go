package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { f.closed = true; return nil }

func TestKafkaPublishEncodesEnvelope(t *testing.T) {
	w := &fakeWriter{}
	k := NewKafka(w)
	k.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, k.Publish(context.Background(), OrderCreated, "o1", map[string]string{"userId": "u1"}))
	require.Len(t, w.msgs, 1)
	m := w.msgs[0]
	assert.Equal(t, "o1", string(m.Key))
	assert.Equal(t, "type", m.Headers[0].Key)
	assert.Equal(t, OrderCreated, string(m.Headers[0].Value))

	var ev struct {
		Type       string            `json:"type"`
		OccurredAt time.Time         `json:"occurredAt"`
		Payload    map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(m.Value, &ev))
	assert.Equal(t, OrderCreated, ev.Type)
	assert.Equal(t, "u1", ev.Payload["userId"])
	assert.Equal(t, 2024, ev.OccurredAt.Year())

	require.NoError(t, k.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublishPropagatesWriterError(t *testing.T) {
	boom := errors.New("broker down")
	k := NewKafka(&fakeWriter{err: boom})
	assert.ErrorIs(t, k.Publish(context.Background(), PaymentCreated, "p1", nil), boom)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), OrderCreated, "o1", nil))
	assert.NoError(t, p.Close())
}
