package service

import (
	"context"
	"fmt"

	"utsav/pkg/logger"
	"utsav/pkg/model"
)

// Notifier tells a guest that their booking went through.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *model.Booking) error
}

func Confirmation(booking *model.Booking) string {
	return fmt.Sprintf("Booking confirmed: %s on %s (%s)", booking.HallName, booking.BookingDate, booking.TimeSlot)
}

// LogNotifier writes confirmations to the service log.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) BookingConfirmed(_ context.Context, booking *model.Booking) error {
	n.log.Info(Confirmation(booking),
		"booking_id", booking.ID,
		"user_id", booking.UserID,
		"hall_id", booking.HallID,
	)
	return nil
}
