package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkaconfig "utsav/pkg/kafka/config"
	"utsav/pkg/logger"
	"utsav/pkg/retry"

	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader     messageReader
	dlqWriter  messageWriter
	topic      string
	groupID    string
	dlqTopic   string
	retrier    *retry.Retrier
	handler    MessageHandler
	middleware []ConsumerMiddleware
	log        *logger.Logger
	closed     bool
	mu         sync.RWMutex
	wg         sync.WaitGroup
}

type ConsumerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

func NewConsumer(cfg *kafkaconfig.Config, topic, dlqTopic string, handler MessageHandler, log *logger.Logger) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if cfg.ConsumerGroupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}
	if log == nil {
		log = logger.Discard()
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        cfg.ConsumerGroupID,
		MinBytes:       cfg.ConsumerMinBytes,
		MaxBytes:       cfg.ConsumerMaxBytes,
		MaxWait:        cfg.ConsumerMaxWait,
		CommitInterval: cfg.ConsumerCommitInterval,
		SessionTimeout: cfg.ConsumerSessionTimeout,
		StartOffset:    cfg.ConsumerStartOffset,
		ErrorLogger:    errorLogger(log),
	})

	var dlqWriter messageWriter
	if dlqTopic != "" {
		dlqWriter = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  dlqTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			MaxAttempts:            3,
			AllowAutoTopicCreation: true,
			ErrorLogger:            errorLogger(log),
		}
	}

	retrier := retry.New(retry.Config{
		MaxAttempts:     cfg.ConsumerMaxRetries + 1,
		InitialInterval: cfg.ConsumerRetryBackoff,
		MaxInterval:     8 * cfg.ConsumerRetryBackoff,
	})

	return newConsumer(reader, dlqWriter, topic, cfg.ConsumerGroupID, dlqTopic, retrier, handler, log), nil
}

func newConsumer(reader messageReader, dlqWriter messageWriter, topic, groupID, dlqTopic string, retrier *retry.Retrier, handler MessageHandler, log *logger.Logger) *Consumer {
	return &Consumer{
		reader:    reader,
		dlqWriter: dlqWriter,
		topic:     topic,
		groupID:   groupID,
		dlqTopic:  dlqTopic,
		retrier:   retrier,
		handler:   handler,
		log:       log,
	}
}

func (c *Consumer) Use(middleware ConsumerMiddleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = append(c.middleware, middleware)
}

// Start consumes until ctx is done. Each message is committed once it was
// handled or parked on the dead letter topic.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.wg.Add(1)
	c.mu.RUnlock()
	defer c.wg.Done()

	c.log.Info("kafka consumer started", "topic", c.topic, "group_id", c.groupID)

	for {
		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ErrConsumerClosed) {
				return err
			}
			c.log.Error("failed to fetch kafka message", "topic", c.topic, "error", err)
			if sleepErr := retry.SleepContext(ctx, time.Second); sleepErr != nil {
				return sleepErr
			}
			continue
		}

		if err := c.processMessage(ctx, fromKafkaMessage(kafkaMsg)); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// parking failed; leave the offset uncommitted so the message is redelivered
			c.log.Error("kafka message left uncommitted",
				"topic", c.topic,
				"partition", kafkaMsg.Partition,
				"offset", kafkaMsg.Offset,
				"error", err,
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			c.log.Error("failed to commit kafka offset",
				"topic", c.topic,
				"partition", kafkaMsg.Partition,
				"offset", kafkaMsg.Offset,
				"error", err,
			)
		}
	}
}

// processMessage runs the handler chain with retries. It returns nil when the
// message was handled or sent to the dead letter topic.
func (c *Consumer) processMessage(ctx context.Context, msg Message) error {
	handler := c.chain()

	result := retry.Do(ctx, c.retrier, func(ctx context.Context) (struct{}, error) {
		err := handler(ctx, msg)
		if err != nil && ClassifyError(err) != ErrorTypeTransient {
			return struct{}{}, retry.Permanent(err)
		}
		if err != nil {
			msg.IncrementRetryCount()
		}
		return struct{}{}, err
	})
	if result.OK() {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	handleErr := result.Err
	c.log.Warn("kafka message handling failed",
		"topic", c.topic,
		"key", msg.Key,
		"event_id", msg.GetEventID(),
		"attempts", result.Attempts,
		"error", handleErr,
	)

	if c.dlqWriter == nil {
		return nil
	}
	if err := c.sendToDLQ(ctx, msg, handleErr); err != nil {
		return fmt.Errorf("failed to send message to DLQ: %w", err)
	}
	c.log.Info("kafka message sent to DLQ", "dlq_topic", c.dlqTopic, "key", msg.Key, "event_id", msg.GetEventID())
	return nil
}

func (c *Consumer) chain() MessageHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()

	handler := c.handler
	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}
	return handler
}

func (c *Consumer) sendToDLQ(ctx context.Context, msg Message, originalErr error) error {
	headers := cloneHeaders(msg.Headers)
	headers[HeaderOriginalTopic] = c.topic
	headers[HeaderDLQError] = originalErr.Error()
	headers[HeaderDLQTimestamp] = time.Now().UTC().Format(time.RFC3339)
	headers[HeaderDLQGroup] = c.groupID
	msg.Headers = headers
	msg.Timestamp = time.Now().UTC()

	return c.dlqWriter.WriteMessages(ctx, toKafkaMessage(msg))
}

// Close waits for Start to return, so cancel its context first.
func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()

	var err error
	if c.reader != nil {
		err = c.reader.Close()
	}
	if c.dlqWriter != nil {
		if dlqErr := c.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}
