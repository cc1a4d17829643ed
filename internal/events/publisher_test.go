package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKafkaPublisher_PublishEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w, discardLogger())

	err := p.Publish(context.Background(), "42", map[string]any{"type": OrderCreated, "orderId": 42})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, OrderCreated, got["type"])
	assert.EqualValues(t, 42, got["orderId"])
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: boom}, discardLogger())

	err := p.Publish(context.Background(), "1", struct{}{})
	assert.ErrorIs(t, err, boom)
}

func TestKafkaPublisher_MarshalError(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w, discardLogger())

	err := p.Publish(context.Background(), "1", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w, discardLogger())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
