package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrSlotTaken = errors.New("time slot already booked for hall and date")

	ErrInvalidDate = errors.New("invalid booking date")

	ErrPastDate = errors.New("booking date is in the past")

	ErrUnknownTimeSlot = errors.New("unknown time slot")

	ErrNegativePrice = errors.New("price cannot be negative")
)
