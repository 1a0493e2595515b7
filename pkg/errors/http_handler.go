package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteError renders err as a JSON error body. Causes are logged, never sent.
func WriteError(w http.ResponseWriter, err error) {
	appErr := AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		slog.Error("request failed", "code", appErr.Code, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())

	response := ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func WriteSuccess(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}
