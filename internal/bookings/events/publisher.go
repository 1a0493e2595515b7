package events

import (
	"context"
	"fmt"

	"utsav/pkg/kafka"
	"utsav/pkg/model"
)

const (
	EventTypeBookingCreated = "booking.created"
	Source                  = "bookings"
	SchemaVersion           = "1"
)

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaPublisher emits booking events keyed by booking id, so every event of
// one booking lands on the same partition.
type KafkaPublisher struct {
	producer MessagePublisher
}

func NewKafkaPublisher(producer MessagePublisher) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	if booking == nil {
		return fmt.Errorf("booking cannot be nil")
	}

	msg, err := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(booking).
		WithEventType(EventTypeBookingCreated).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithTimestamp(booking.BookedAt).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build booking event: %w", err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	return nil
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(context.Context, *model.Booking) error {
	return nil
}
