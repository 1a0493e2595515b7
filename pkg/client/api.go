package client

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"utsav/pkg/model"
)

// APIClient calls the Utsav endpoints with typed requests and responses.
// A successful Signup or Signin stores the token for later calls.
type APIClient struct {
	http *HttpClient
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{http: NewHttpClient(baseURL)}
}

// HTTP exposes the underlying client, e.g. to swap the transport.
func (c *APIClient) HTTP() *HttpClient {
	return c.http
}

// Download is an attachment returned by the API.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

func (c *APIClient) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/signup", req, http.StatusCreated)
}

func (c *APIClient) Signin(ctx context.Context, req model.SigninRequest) (*model.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/signin", req, http.StatusOK)
}

func (c *APIClient) authenticate(ctx context.Context, path string, body any, want int) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.postJSON(ctx, path, body, want, &out); err != nil {
		return nil, err
	}
	c.http.Token = out.Token
	return &out, nil
}

func (c *APIClient) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	var out model.Booking
	if err := c.postJSON(ctx, "/api/bookings", req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	var out model.Booking
	if err := c.getJSON(ctx, "/api/bookings/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Availability(ctx context.Context, hallID, date string) (*model.HallAvailability, error) {
	path := fmt.Sprintf("/api/halls/%s/availability?date=%s", url.PathEscape(hallID), url.QueryEscape(date))
	var out model.HallAvailability
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DownloadTicket(ctx context.Context, bookingID string) (*Download, error) {
	resp, err := c.http.GET(ctx, "/api/bookings/"+url.PathEscape(bookingID)+"/ticket")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return download(resp), nil
}

func (c *APIClient) ListHalls(ctx context.Context, city string) ([]model.Hall, error) {
	path := "/api/halls"
	if city != "" {
		path += "?city=" + url.QueryEscape(city)
	}
	var out []model.Hall
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) GetHall(ctx context.Context, id string) (*model.Hall, error) {
	var out model.Hall
	if err := c.getJSON(ctx, "/api/halls/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) GeneratePlan(ctx context.Context, req model.EventPlanRequest) (*model.EventPlan, error) {
	var out model.EventPlan
	if err := c.postJSON(ctx, "/api/plans", req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadPlan asks for the plan as a text attachment.
func (c *APIClient) DownloadPlan(ctx context.Context, req model.EventPlanRequest) (*Download, error) {
	resp, err := c.http.POST(ctx, "/api/plans?download=true", req)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return download(resp), nil
}

func (c *APIClient) postJSON(ctx context.Context, path string, body any, want int, out any) error {
	resp, err := c.http.POST(ctx, path, body)
	if err != nil {
		return err
	}
	if err := checkResponse(resp, want); err != nil {
		return err
	}
	if err := resp.DecodeJSON(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *APIClient) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return err
	}
	if err := checkResponse(resp, http.StatusOK); err != nil {
		return err
	}
	if err := resp.DecodeJSON(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func download(resp *Response) *Download {
	d := &Download{
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		d.Filename = params["filename"]
	}
	return d
}
