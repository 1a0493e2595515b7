package middleware

import (
	"net/http"
	"runtime/debug"

	apperrors "utsav/pkg/errors"
	"utsav/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"request_id", RequestID(r),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					apperrors.WriteError(w, apperrors.Internal("Server error", nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
