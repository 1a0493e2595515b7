package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"utsav/pkg/logger"
	"utsav/pkg/retry"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func (w *fakeWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.messages...)
}

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	drained   chan struct{}
	once      sync.Once
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{queue: msgs, drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	r.once.Do(func() { close(r.drained) })
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMessageBuilder_Build(t *testing.T) {
	msg, err := NewMessage().
		WithKey("booking-1").
		WithValue(map[string]string{"hallId": "m1"}).
		WithEventType("booking.created").
		WithSource("bookings").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "booking-1", msg.Key)
	assert.JSONEq(t, `{"hallId":"m1"}`, string(msg.Value))
	assert.Equal(t, "booking.created", msg.GetEventType())
	assert.NotEmpty(t, msg.GetEventID())
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])
	assert.Equal(t, "bookings", msg.Headers[HeaderSource])
}

func TestMessageBuilder_EncodeFailure(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	require.Error(t, err)
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	assert.Equal(t, 0, msg.GetRetryCount())

	for range 12 {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
	assert.Equal(t, "12", msg.Headers[HeaderRetryCount])
}

func TestMessage_DecodeValueIsPermanent(t *testing.T) {
	msg := Message{Value: []byte("not json")}
	var v map[string]any
	err := msg.DecodeValue(&v)
	require.Error(t, err)
	assert.Equal(t, ErrorTypePermanent, ClassifyError(err))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"transient wrapper", NewTransientError("smtp down", errors.New("x")), ErrorTypeTransient},
		{"permanent wrapper", NewPermanentError("bad payload", nil), ErrorTypePermanent},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"connection refused", errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{"unknown", errors.New("something odd"), ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := NewTransientError("flaky", nil)

	assert.True(t, ShouldRetry(transient, 0, 3))
	assert.False(t, ShouldRetry(transient, 3, 3))
	assert.False(t, ShouldRetry(errors.New("schema mismatch"), 0, 3))
	assert.False(t, ShouldRetry(context.Canceled, 0, 3))
	assert.False(t, ShouldRetry(nil, 0, 3))
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducer(writer, nil, "bookings.created", "", logger.Discard())

	var seen []string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seen = append(seen, msg.Topic)
		return next(ctx, msg)
	})

	msg, err := NewMessage().WithKey("b-1").WithValue(map[string]int{"n": 1}).Build()
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), msg))

	written := writer.written()
	require.Len(t, written, 1)
	assert.Equal(t, "b-1", string(written[0].Key))
	assert.Equal(t, msg.GetEventID(), headerValue(written[0], HeaderEventID))
	assert.Equal(t, []string{"bookings.created"}, seen)
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := newProducer(&fakeWriter{}, nil, "t", "", logger.Discard())

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)

	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k", Value: []byte("x")}), ErrProducerClosed)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	writer := &fakeWriter{err: writeErr}
	dlq := &fakeWriter{}
	p := newProducer(writer, dlq, "bookings.created", "bookings.created.dlq", logger.Discard())

	msg, err := NewMessage().WithKey("b-1").WithRawValue([]byte(`{}`)).Build()
	require.NoError(t, err)

	err = p.Publish(context.Background(), msg)
	require.ErrorIs(t, err, writeErr)

	parked := dlq.written()
	require.Len(t, parked, 1)
	assert.Equal(t, "bookings.created", headerValue(parked[0], HeaderOriginalTopic))
	assert.Equal(t, writeErr.Error(), headerValue(parked[0], HeaderDLQError))
	assert.Empty(t, msg.Headers[HeaderOriginalTopic], "caller's headers must not be mutated")

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
	assert.True(t, dlq.closed)
}

func noSleep(context.Context, time.Duration) error { return nil }

func runConsumer(t *testing.T, c *Consumer, reader *fakeReader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	select {
	case <-reader.drained:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not drain the queue")
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, c.Close())
}

func TestConsumer_HandlesAndCommits(t *testing.T) {
	reader := newFakeReader(
		kafka.Message{Key: []byte("a"), Value: []byte(`{}`), Offset: 1},
		kafka.Message{Key: []byte("b"), Value: []byte(`{}`), Offset: 2},
	)
	var mu sync.Mutex
	var keys []string
	handler := func(_ context.Context, msg Message) error {
		mu.Lock()
		defer mu.Unlock()
		keys = append(keys, msg.Key)
		return nil
	}

	c := newConsumer(reader, nil, "t", "g", "", retry.New(retry.Config{MaxAttempts: 3}, retry.WithSleeper(noSleep)), handler, logger.Discard())
	runConsumer(t, c, reader)

	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Len(t, reader.committed, 2)
}

func TestConsumer_RetriesTransientThenSucceeds(t *testing.T) {
	reader := newFakeReader(kafka.Message{Key: []byte("a"), Value: []byte(`{}`)})
	calls := 0
	handler := func(_ context.Context, msg Message) error {
		calls++
		if calls < 3 {
			return NewTransientError("flaky", nil)
		}
		assert.Equal(t, 2, msg.GetRetryCount())
		return nil
	}

	dlq := &fakeWriter{}
	c := newConsumer(reader, dlq, "t", "g", "t.dlq", retry.New(retry.Config{MaxAttempts: 4}, retry.WithSleeper(noSleep)), handler, logger.Discard())
	runConsumer(t, c, reader)

	assert.Equal(t, 3, calls)
	assert.Empty(t, dlq.written())
	assert.Len(t, reader.committed, 1)
}

func TestConsumer_PermanentFailureParksWithoutRetry(t *testing.T) {
	reader := newFakeReader(kafka.Message{Key: []byte("a"), Value: []byte(`nope`)})
	calls := 0
	handler := func(_ context.Context, msg Message) error {
		calls++
		var v map[string]any
		return msg.DecodeValue(&v)
	}

	dlq := &fakeWriter{}
	c := newConsumer(reader, dlq, "t", "g", "t.dlq", retry.New(retry.Config{MaxAttempts: 4}, retry.WithSleeper(noSleep)), handler, logger.Discard())
	runConsumer(t, c, reader)

	assert.Equal(t, 1, calls)
	parked := dlq.written()
	require.Len(t, parked, 1)
	assert.Equal(t, "g", headerValue(parked[0], HeaderDLQGroup))
	assert.Equal(t, "t", headerValue(parked[0], HeaderOriginalTopic))
	assert.Len(t, reader.committed, 1)
}

func TestConsumer_DLQFailureLeavesOffsetUncommitted(t *testing.T) {
	reader := newFakeReader(kafka.Message{Key: []byte("a"), Value: []byte(`{}`)})
	handler := func(context.Context, Message) error { return NewPermanentError("bad", nil) }

	dlq := &fakeWriter{err: errors.New("dlq down")}
	c := newConsumer(reader, dlq, "t", "g", "t.dlq", retry.New(retry.Config{MaxAttempts: 2}, retry.WithSleeper(noSleep)), handler, logger.Discard())
	runConsumer(t, c, reader)

	assert.Empty(t, reader.committed)
}
