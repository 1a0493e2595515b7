package handler

import (
	"context"
	"errors"

	"utsav/internal/bookings/events"
	"utsav/internal/notifications/service"
	"utsav/pkg/kafka"
	"utsav/pkg/logger"
	"utsav/pkg/model"
)

type BookingEventsHandler struct {
	notifier service.Notifier
	log      *logger.Logger
}

func NewBookingEventsHandler(notifier service.Notifier, log *logger.Logger) *BookingEventsHandler {
	return &BookingEventsHandler{
		notifier: notifier,
		log:      log,
	}
}

// Handle is a kafka.MessageHandler. Undecodable or incomplete payloads are
// permanent errors so the consumer parks them on the dead letter topic.
func (h *BookingEventsHandler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != "" && eventType != events.EventTypeBookingCreated {
		h.log.Debug("skipping booking event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var booking model.Booking
	if err := msg.DecodeValue(&booking); err != nil {
		return err
	}
	if booking.ID == "" || booking.HallName == "" {
		return kafka.NewPermanentError("booking event is incomplete", errors.New("missing id or hall name"))
	}

	return h.notifier.BookingConfirmed(ctx, &booking)
}
