package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authhandler "utsav/internal/auth/handler"
	authrepo "utsav/internal/auth/repository"
	authservice "utsav/internal/auth/service"
	authvalidator "utsav/internal/auth/validator"
	"utsav/internal/bookings/events"
	bookinghandler "utsav/internal/bookings/handler"
	bookingrepo "utsav/internal/bookings/repository"
	bookingservice "utsav/internal/bookings/service"
	bookingvalidator "utsav/internal/bookings/validator"
	hallhandler "utsav/internal/halls/handler"
	hallrepo "utsav/internal/halls/repository"
	hallservice "utsav/internal/halls/service"
	planhandler "utsav/internal/plans/handler"
	planrepo "utsav/internal/plans/repository"
	planservice "utsav/internal/plans/service"
	planvalidator "utsav/internal/plans/validator"
	tickethandler "utsav/internal/tickets/handler"
	ticketservice "utsav/internal/tickets/service"
	"utsav/pkg/app"
	"utsav/pkg/client"
	"utsav/pkg/config"
	"utsav/pkg/llm"
	"utsav/pkg/locale"
	"utsav/pkg/logger"
	"utsav/pkg/middleware"
	"utsav/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type cannedCompleter struct{}

func (cannedCompleter) Complete(context.Context, string) (*llm.Completion, error) {
	var b strings.Builder
	b.WriteString("Your celebration plan.\n\n")
	for i, section := range model.PlanSections {
		fmt.Fprintf(&b, "%d. %s\n- first idea\n- second idea\n\n", i+1, section)
	}
	return &llm.Completion{Content: b.String(), Model: "test-model"}, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Port:               "5000",
		Location:           locale.Location(locale.DefaultTimezone),
		BcryptCost:         bcrypt.MinCost,
		AIMaxAttempts:      3,
		AIBackoffBase:      time.Millisecond,
		AIBackoffMax:       time.Millisecond,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     5 * time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1 << 20,
		Log:                logger.Discard(),
		Client:             client.NewClient(),
	}

	tokens := authservice.NewTokenManager("test-secret-that-is-long-enough", time.Hour)
	authService := authservice.NewAuthService(authrepo.NewMemoryUserRepository(), authvalidator.NewAuthValidator(), tokens, cfg)
	bookingService := bookingservice.NewBookingService(bookingrepo.NewMemoryBookingRepository(), bookingvalidator.NewBookingValidator(), events.NoopPublisher{}, cfg)
	issuer := ticketservice.NewTicketIssuer(bookingService, ticketservice.RendererFor(config.TicketFormatPDF), cfg)
	hallService := hallservice.NewHallService(hallrepo.NewMemoryHallRepository(hallrepo.SeedHalls()), cfg)
	planService := planservice.NewPlanService(cannedCompleter{}, planrepo.NoopPlanCache{}, planvalidator.NewPlanValidator(), cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		authhandler.NewAuthHandler(authService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		tickethandler.NewTicketHandler(issuer, cfg.Log),
		hallhandler.NewHallHandler(hallService, cfg.Log),
		planhandler.NewPlanHandler(planService, cfg.Log, middleware.RequireAuth(tokens, cfg.Log)),
	)

	server := httptest.NewServer(serverApp.Handler())
	t.Cleanup(server.Close)
	return server
}

func TestAPIClient_EndToEnd(t *testing.T) {
	server := newServer(t)
	api := client.NewAPIClient(server.URL)
	ctx := context.Background()

	require.NoError(t, api.HTTP().WaitForHealthy(ctx, 5*time.Second))

	auth, err := api.Signup(ctx, model.SignupRequest{Username: "asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)

	halls, err := api.ListHalls(ctx, "mumbai")
	require.NoError(t, err)
	require.NotEmpty(t, halls)
	hall := halls[0]

	price := hall.PricePerSlot
	date := time.Now().AddDate(0, 1, 0).Format(model.DateLayout)
	req := model.BookingRequest{
		HallID:      hall.ID,
		HallName:    hall.Name,
		UserID:      auth.User.ID,
		UserName:    auth.User.Username,
		BookingDate: date,
		TimeSlot:    model.TimeSlots[0],
		Price:       &price,
	}

	booking, err := api.CreateBooking(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, booking.PaymentStatus)

	_, err = api.CreateBooking(ctx, req)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, bookingservice.MsgSlotTaken, apiErr.Message)

	availability, err := api.Availability(ctx, hall.ID, date)
	require.NoError(t, err)
	assert.False(t, availability.Slots[0].Available)
	assert.True(t, availability.Slots[1].Available)

	ticket, err := api.DownloadTicket(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "ticket_"+booking.ID+".pdf", ticket.Filename)
	assert.Equal(t, "application/pdf", ticket.ContentType)
	assert.True(t, strings.HasPrefix(string(ticket.Body), "%PDF-"))

	plan, err := api.GeneratePlan(ctx, model.EventPlanRequest{EventType: "Wedding", Location: "Mumbai", Budget: 500000, GuestCount: 200})
	require.NoError(t, err)
	assert.Len(t, plan.Sections, len(model.PlanSections))

	planFile, err := api.DownloadPlan(ctx, model.EventPlanRequest{EventType: "Wedding", Location: "Mumbai", Budget: 500000, GuestCount: 200})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(planFile.Filename, "event-plan-"))
	assert.Contains(t, string(planFile.Body), "1. Venue Suggestions")
}

func TestAPIClient_PlanRequiresToken(t *testing.T) {
	api := client.NewAPIClient(newServer(t).URL)

	_, err := api.GeneratePlan(context.Background(), model.EventPlanRequest{EventType: "Wedding", Location: "Mumbai", Budget: 500000, GuestCount: 200})

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestAPIClient_IdempotentBookingReplay(t *testing.T) {
	server := newServer(t)
	httpClient := client.NewHttpClient(server.URL)
	ctx := context.Background()

	price := 1000.0
	body := model.BookingRequest{
		HallID:      "m1",
		HallName:    "The Sea View Banquet",
		UserID:      "u1",
		BookingDate: time.Now().AddDate(0, 2, 0).Format(model.DateLayout),
		TimeSlot:    model.TimeSlots[1],
		Price:       &price,
	}
	headers := map[string]string{"Idempotency-Key": "retry-1"}

	first, err := httpClient.POSTWithHeaders(ctx, "/api/bookings", body, headers)
	require.NoError(t, err)
	second, err := httpClient.POSTWithHeaders(ctx, "/api/bookings", body, headers)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, first.StatusCode)
	assert.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Empty(t, first.Header.Get("Idempotent-Replayed"))
	assert.Equal(t, "true", second.Header.Get("Idempotent-Replayed"))
	assert.Equal(t, string(first.Body), string(second.Body))

	third, err := httpClient.POSTWithHeaders(ctx, "/api/bookings", body, map[string]string{"Idempotency-Key": "retry-2"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, third.StatusCode)
}

func TestAPIClient_MalformedBody(t *testing.T) {
	httpClient := client.NewHttpClient(newServer(t).URL)

	resp, err := httpClient.POSTRaw(context.Background(), "/api/bookings", []byte(`{"hallId":`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
