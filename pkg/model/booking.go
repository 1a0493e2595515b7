package model

import (
	"slices"
	"time"
)

// DateLayout is the canonical form of a booking date.
const DateLayout = "2006-01-02"

// UnknownUserName is stored when a booking arrives without a display name.
const UnknownUserName = "N/A"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// TimeSlots is the fixed set of bookable slots per hall and day.
var TimeSlots = []string{
	"09:00 AM - 12:00 PM",
	"01:00 PM - 04:00 PM",
	"06:00 PM - 10:00 PM",
}

func IsTimeSlot(slot string) bool {
	return slices.Contains(TimeSlots, slot)
}

type Booking struct {
	ID            string        `json:"id" bson:"_id"`
	HallID        string        `json:"hallId" bson:"hall_id"`
	HallName      string        `json:"hallName" bson:"hall_name"`
	UserID        string        `json:"userId" bson:"user_id"`
	UserName      string        `json:"userName" bson:"user_name"`
	BookingDate   string        `json:"bookingDate" bson:"booking_date"`
	TimeSlot      string        `json:"timeSlot" bson:"time_slot"`
	Price         float64       `json:"price" bson:"price"`
	BookedAt      time.Time     `json:"bookedAt" bson:"booked_at"`
	PaymentStatus PaymentStatus `json:"paymentStatus" bson:"payment_status"`
}

// BookingRequest is the create payload. Price is a pointer so that an absent
// price can be told apart from a free booking.
type BookingRequest struct {
	HallID      string   `json:"hallId" validate:"required"`
	HallName    string   `json:"hallName" validate:"required"`
	UserID      string   `json:"userId" validate:"required"`
	UserName    string   `json:"userName"`
	BookingDate string   `json:"bookingDate" validate:"required"`
	TimeSlot    string   `json:"timeSlot" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
}

// SlotAvailability describes one time slot of a hall on a date.
type SlotAvailability struct {
	TimeSlot  string `json:"timeSlot"`
	Available bool   `json:"available"`
	BookingID string `json:"bookingId,omitempty"`
}

type HallAvailability struct {
	HallID string             `json:"hallId"`
	Date   string             `json:"date"`
	Slots  []SlotAvailability `json:"slots"`
}
