package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"kycgate/pkg/requestcontext"
)

// RequireAdminToken guards reviewer routes. The X-Admin-Actor-ID header is recorded
// in the context and becomes the reviewer identity on review decisions.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := r.Header.Get("X-Admin-Token")
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			next.ServeHTTP(w, withActor(r))
		})
	}
}

// CaptureActor records X-Admin-Actor-ID without checking a token. It is used
// when no admin token is configured.
func CaptureActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, withActor(r))
	})
}

func withActor(r *http.Request) *http.Request {
	actorID := r.Header.Get("X-Admin-Actor-ID")
	if actorID == "" {
		return r
	}
	return r.WithContext(requestcontext.WithAdminActorID(r.Context(), actorID))
}
