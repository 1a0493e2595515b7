package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "utsav/pkg/errors"
	"utsav/pkg/logger"
)

const UserIDKey contextKey = "user_id"

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's user id in the request context.
func RequireAuth(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				apperrors.WriteError(w, apperrors.Unauthorized("No token, authorization denied"))
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				log.Warn("Rejected bearer token",
					"request_id", RequestID(r),
					"path", r.URL.Path,
					"error", err,
				)
				apperrors.WriteError(w, apperrors.Unauthorized("Token is not valid"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
