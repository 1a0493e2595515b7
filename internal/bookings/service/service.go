package service

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingserrors "utsav/internal/bookings/errors"
	"utsav/internal/bookings/repository"
	"utsav/internal/bookings/validator"
	"utsav/pkg/config"
	apperrors "utsav/pkg/errors"
	"utsav/pkg/locale"
	"utsav/pkg/model"
	"utsav/pkg/sanitizer"

	"github.com/google/uuid"
)

const (
	MsgMissingFields = "Missing required booking information."
	MsgPastDate      = "Booking date cannot be in the past."
	MsgInvalidDate   = "Invalid booking date. Use the YYYY-MM-DD format."
	MsgInvalidSlot   = "Invalid time slot."
	MsgNegativePrice = "Price cannot be negative."
	MsgSlotTaken     = "This time slot is already booked for the selected hall and date. Please choose another."
	MsgNotFound      = "Booking not found."
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Availability(ctx context.Context, hallID, date string) (*model.HallAvailability, error)
}

// EventPublisher announces stored bookings to other services.
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	events    EventPublisher
	cfg       *config.Config
	now       func() time.Time
	newID     func() string
}

type Option func(*bookingService)

// WithClock replaces time.Now, which decides "today" and bookedAt.
func WithClock(now func() time.Time) Option {
	return func(s *bookingService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *bookingService) { s.newID = newID }
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
	opts ...Option,
) BookingService {
	s := &bookingService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates in a fixed order (required fields, past date, conflict)
// and stores the booking with a pending payment status.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitize(req)

	if missing := s.validator.MissingFields(req); len(missing) > 0 {
		s.cfg.Log.Warn("Booking rejected: missing fields", "missing_fields", missing)
		return nil, apperrors.Validation(MsgMissingFields, map[string]any{"missing_fields": missing})
	}

	date, err := validator.ParseDate(req.BookingDate, s.cfg.Location)
	if err != nil {
		return nil, apperrors.Validation(MsgInvalidDate, map[string]any{"bookingDate": req.BookingDate})
	}
	if err := validator.CheckNotPast(date, s.today()); err != nil {
		s.cfg.Log.Warn("Booking rejected: past date", "booking_date", req.BookingDate)
		return nil, apperrors.Validation(MsgPastDate, map[string]any{"bookingDate": req.BookingDate})
	}
	if err := validator.CheckTimeSlot(req.TimeSlot); err != nil {
		return nil, apperrors.Validation(MsgInvalidSlot, map[string]any{"allowed": model.TimeSlots})
	}
	if err := validator.CheckPrice(*req.Price); err != nil {
		return nil, apperrors.Validation(MsgNegativePrice, nil)
	}

	booking := &model.Booking{
		ID:            s.newID(),
		HallID:        req.HallID,
		HallName:      req.HallName,
		UserID:        req.UserID,
		UserName:      req.UserName,
		BookingDate:   date.Format(model.DateLayout),
		TimeSlot:      req.TimeSlot,
		Price:         *req.Price,
		BookedAt:      s.now().UTC().Truncate(time.Millisecond),
		PaymentStatus: model.PaymentPending,
	}
	if booking.UserName == "" {
		booking.UserName = model.UnknownUserName
	}

	if err := s.verifySlotFree(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			s.logConflict(booking, "insert")
			return nil, apperrors.Conflict(MsgSlotTaken)
		}
		return nil, apperrors.Internal("Server error", err)
	}

	if s.events != nil {
		if err := s.events.BookingCreated(ctx, booking); err != nil {
			s.cfg.Log.Warn("Failed to publish booking event", "booking_id", booking.ID, "error", err)
		}
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"hall_id", booking.HallID,
		"booking_date", booking.BookingDate,
		"time_slot", booking.TimeSlot,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NotFound(MsgNotFound)
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID(MsgNotFound, "booking", id)
		}
		return nil, apperrors.Internal("Server error", err)
	}
	return booking, nil
}

// Availability lists every time slot of a hall on a date with the booking holding it.
func (s *bookingService) Availability(ctx context.Context, hallID, date string) (*model.HallAvailability, error) {
	hallID = strings.TrimSpace(hallID)
	if hallID == "" {
		return nil, apperrors.Validation("Hall is required.", nil)
	}
	day, err := validator.ParseDate(date, s.cfg.Location)
	if err != nil {
		return nil, apperrors.Validation(MsgInvalidDate, map[string]any{"date": date})
	}
	normalized := day.Format(model.DateLayout)

	bookings, err := s.repo.FindByHallAndDate(ctx, hallID, normalized)
	if err != nil {
		return nil, apperrors.Internal("Server error", err)
	}

	taken := make(map[string]string, len(bookings))
	for _, b := range bookings {
		taken[b.TimeSlot] = b.ID
	}

	result := &model.HallAvailability{HallID: hallID, Date: normalized}
	for _, slot := range model.TimeSlots {
		id, booked := taken[slot]
		result.Slots = append(result.Slots, model.SlotAvailability{
			TimeSlot:  slot,
			Available: !booked,
			BookingID: id,
		})
	}
	return result, nil
}

func (s *bookingService) verifySlotFree(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindByTriple(ctx, booking.HallID, booking.BookingDate, booking.TimeSlot)
	if err == nil && existing != nil {
		s.logConflict(booking, "lookup")
		return apperrors.Conflict(MsgSlotTaken)
	}
	if err != nil && !errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.Internal("Server error", err)
	}
	return nil
}

func (s *bookingService) logConflict(booking *model.Booking, stage string) {
	s.cfg.Log.Warn("Booking rejected: slot taken",
		"stage", stage,
		"hall_id", booking.HallID,
		"booking_date", booking.BookingDate,
		"time_slot", booking.TimeSlot,
	)
}

func (s *bookingService) today() time.Time {
	return locale.StartOfDay(s.now(), s.cfg.Location)
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.HallID = strings.TrimSpace(req.HallID)
	req.HallName = sanitizer.NormalizeName(req.HallName)
	req.UserID = strings.TrimSpace(req.UserID)
	req.UserName = sanitizer.NormalizeName(req.UserName)
	req.BookingDate = strings.TrimSpace(req.BookingDate)
	req.TimeSlot = sanitizer.TrimAndNormalize(req.TimeSlot)
}
