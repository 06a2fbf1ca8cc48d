package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "weddinginvites/internal/delivery/http/helpers"
	"weddinginvites/internal/domain"
)

type contextKey string

const hostIDKey contextKey = "hostID"

// SetHostID returns a context with the host ID set. Used by auth middleware.
func SetHostID(ctx context.Context, hostID string) context.Context {
	return context.WithValue(ctx, hostIDKey, hostID)
}

// HostIDFromContext returns the authenticated host ID from the context, if present.
func HostIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(hostIDKey).(string)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the host ID in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			hostID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetHostID(r.Context(), hostID))
			next(w, r)
		}
	}
}
