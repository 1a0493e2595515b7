package renderer

import (
	"strings"
	"time"

	"utsav/pkg/locale"
	"utsav/pkg/model"
)

const (
	Title  = "Ticket Confirmation"
	Footer = "Thank you for your booking!"

	BookedAtLayout = "02 Jan 2006, 03:04 PM MST"
)

// Ticket is a booking reduced to the printable lines of a ticket.
type Ticket struct {
	BookingID string
	Hall      string
	Date      string
	TimeSlot  string
	Price     string
	BookedBy  string
	BookedAt  string
}

// Renderer turns a ticket into a downloadable document body.
type Renderer interface {
	Render(t Ticket) ([]byte, error)
	Extension() string
	ContentType() string
}

// NewTicket formats booking for printing; BookedAt is shown in loc.
func NewTicket(booking *model.Booking, loc *time.Location) Ticket {
	if loc == nil {
		loc = locale.Location(locale.DefaultTimezone)
	}

	bookedBy := strings.TrimSpace(booking.UserName)
	if bookedBy == "" || bookedBy == model.UnknownUserName {
		bookedBy = booking.UserID
	}

	return Ticket{
		BookingID: booking.ID,
		Hall:      booking.HallName,
		Date:      booking.BookingDate,
		TimeSlot:  booking.TimeSlot,
		Price:     locale.FormatRupees(booking.Price),
		BookedBy:  bookedBy,
		BookedAt:  booking.BookedAt.In(loc).Format(BookedAtLayout),
	}
}

// Lines returns the labelled fields in print order.
func (t Ticket) Lines() []string {
	return []string{
		"Booking ID: " + t.BookingID,
		"Hall: " + t.Hall,
		"Date: " + t.Date,
		"Time Slot: " + t.TimeSlot,
		"Price: " + t.Price,
		"Booked By: " + t.BookedBy,
		"Booked At: " + t.BookedAt,
	}
}
