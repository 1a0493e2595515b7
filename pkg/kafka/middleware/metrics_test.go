package kafkamiddleware

import (
	"context"
	"errors"
	"testing"

	"utsav/pkg/kafka"
	"utsav/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ProducerMiddleware(t *testing.T) {
	m := NewMetrics()
	mw := m.ProducerMiddleware()
	msg := kafka.Message{Key: "k", Value: []byte(`{}`)}

	require.NoError(t, mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil }))
	require.Error(t, mw(context.Background(), msg, func(context.Context, kafka.Message) error { return errors.New("boom") }))

	s := m.Snapshot()
	assert.Equal(t, int64(1), s.Published)
	assert.Equal(t, int64(1), s.PublishFailed)
	assert.Zero(t, s.Consumed)
}

func TestMetrics_ConsumerMiddleware(t *testing.T) {
	m := NewMetrics()
	mw := m.ConsumerMiddleware()
	msg := kafka.Message{Key: "k", Value: []byte(`{}`)}

	for range 3 {
		require.NoError(t, mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil }))
	}

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.Consumed)
	assert.Zero(t, s.ConsumeFailed)
}

func TestLoggingMiddleware_PassesErrorThrough(t *testing.T) {
	log := logger.Discard()
	want := errors.New("handler failed")

	err := LoggingConsumerMiddleware(log)(context.Background(), kafka.Message{Headers: map[string]string{}}, func(context.Context, kafka.Message) error {
		return want
	})
	assert.ErrorIs(t, err, want)

	err = LoggingProducerMiddleware(log)(context.Background(), kafka.Message{Headers: map[string]string{}}, func(context.Context, kafka.Message) error {
		return nil
	})
	assert.NoError(t, err)
}
