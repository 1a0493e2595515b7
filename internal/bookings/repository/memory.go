package repository

import (
	"context"
	"sync"

	bookingserrors "utsav/internal/bookings/errors"
	"utsav/pkg/model"
)

// MemoryBookingRepository keeps bookings in process memory. It is meant for
// tests; the check and the insert of Create happen under one lock.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings []model.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{}
}

func (r *MemoryBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOfTriple(booking.HallID, booking.BookingDate, booking.TimeSlot) >= 0 {
		return bookingserrors.ErrSlotTaken
	}
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *MemoryBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.bookings {
		if r.bookings[i].ID == id {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (r *MemoryBookingRepository) FindByTriple(ctx context.Context, hallID, bookingDate, timeSlot string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOfTriple(hallID, bookingDate, timeSlot); i >= 0 {
		b := r.bookings[i]
		return &b, nil
	}
	return nil, bookingserrors.ErrNotFound
}

func (r *MemoryBookingRepository) FindByHallAndDate(ctx context.Context, hallID, bookingDate string) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Booking{}
	for i := range r.bookings {
		if r.bookings[i].HallID == hallID && r.bookings[i].BookingDate == bookingDate {
			b := r.bookings[i]
			out = append(out, &b)
		}
	}
	return out, nil
}

// Len reports how many bookings are stored.
func (r *MemoryBookingRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings)
}

func (r *MemoryBookingRepository) indexOfTriple(hallID, bookingDate, timeSlot string) int {
	for i := range r.bookings {
		b := &r.bookings[i]
		if b.HallID == hallID && b.BookingDate == bookingDate && b.TimeSlot == timeSlot {
			return i
		}
	}
	return -1
}
