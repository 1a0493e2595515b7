package service

import (
	"context"
	"fmt"

	"utsav/internal/tickets/renderer"
	"utsav/pkg/config"
	"utsav/pkg/model"
	"utsav/pkg/sanitizer"
)

// BookingLookup is the slice of the bookings service the issuer needs.
type BookingLookup interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
}

// Document is a rendered ticket ready to be sent as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type TicketIssuer interface {
	Issue(ctx context.Context, bookingID string) (*Document, error)
}

type ticketIssuer struct {
	bookings BookingLookup
	primary  renderer.Renderer
	fallback renderer.Renderer
	cfg      *config.Config
}

// NewTicketIssuer renders with primary and falls back to the text renderer
// when primary is nil or fails.
func NewTicketIssuer(bookings BookingLookup, primary renderer.Renderer, cfg *config.Config) TicketIssuer {
	return &ticketIssuer{
		bookings: bookings,
		primary:  primary,
		fallback: renderer.NewTextRenderer(),
		cfg:      cfg,
	}
}

// RendererFor picks the primary renderer for a TICKET_FORMAT value.
func RendererFor(format string) renderer.Renderer {
	if format == config.TicketFormatText {
		return nil
	}
	return renderer.NewPDFRenderer()
}

func (s *ticketIssuer) Issue(ctx context.Context, bookingID string) (*Document, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	ticket := renderer.NewTicket(booking, s.cfg.Location)

	if s.primary != nil {
		body, err := s.primary.Render(ticket)
		if err == nil {
			return s.document(booking.ID, s.primary, body), nil
		}
		s.cfg.Log.Warn("Ticket rendering failed, sending text ticket",
			"booking_id", booking.ID,
			"format", s.primary.Extension(),
			"error", err,
		)
	}

	body, err := s.fallback.Render(ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to render text ticket: %w", err)
	}
	return s.document(booking.ID, s.fallback, body), nil
}

func (s *ticketIssuer) document(bookingID string, r renderer.Renderer, body []byte) *Document {
	return &Document{
		Filename:    fmt.Sprintf("ticket_%s.%s", sanitizer.FilenamePart(bookingID), r.Extension()),
		ContentType: r.ContentType(),
		Body:        body,
	}
}
