package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound("Booking not found."),
			expected: "NOT_FOUND: Booking not found.",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("Server error", errors.New("mongo timeout")),
			expected: "INTERNAL_ERROR: Server error (caused by: mongo timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Booking not found."), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("Booking date cannot be in the past.", nil), CodeValidation, http.StatusBadRequest},
		{"invalid input", InvalidInput("malformed JSON"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("token required"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("origin not allowed"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("slot taken"), CodeConflict, http.StatusConflict},
		{"rate limited", TooManyRequests("slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{"upstream", Upstream("model unavailable", cause), CodeUpstream, http.StatusBadGateway},
		{"internal", Internal("Server error", cause), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("request timed out"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("Database"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.status)
			}
		})
	}
}

func TestUpstream_UnwrapsCause(t *testing.T) {
	cause := errors.New("provider returned 503")
	err := Upstream("Unable to generate event plan at the moment. Please try again later.", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should find the cause through Unwrap")
	}
}

func TestWithDetails_Merges(t *testing.T) {
	err := NotFoundWithID("Booking not found.", "booking", "b-1").
		WithDetails(map[string]any{"hint": "check the id"})

	if err.Details["id"] != "b-1" || err.Details["resource"] != "booking" {
		t.Errorf("expected original details to survive, got %v", err.Details)
	}
	if err.Details["hint"] != "check the id" {
		t.Errorf("expected merged detail, got %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("slot taken")
	wrapped := fmt.Errorf("service: %w", appErr)

	if got := AsAppError(wrapped); got != appErr {
		t.Errorf("AsAppError() should unwrap to the original AppError")
	}
	if !IsAppError(wrapped) || !HasCode(wrapped, CodeConflict) {
		t.Errorf("wrapped AppError should be detected")
	}

	regular := errors.New("regular error")
	got := AsAppError(regular)
	if got.Code != CodeInternal || got.Err != regular {
		t.Errorf("AsAppError() should wrap a plain error as internal, got %+v", got)
	}
	if got.Message != "Server error" {
		t.Errorf("internal message should not leak the cause, got %q", got.Message)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, Validation("Missing required booking information.", map[string]any{
		"missing_fields": []string{"price"},
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Code != CodeValidation || body.Message != "Missing required booking information." {
		t.Errorf("unexpected body %+v", body)
	}
	if _, ok := body.Details["missing_fields"]; !ok {
		t.Errorf("expected details to be rendered")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	data := NotFound("Booking not found.").ToJSON()
	if !strings.Contains(string(data), `"code":"NOT_FOUND"`) {
		t.Errorf("ToJSON() missing code: %s", data)
	}
	if strings.Contains(string(data), "details") {
		t.Errorf("empty details should be omitted: %s", data)
	}
}
