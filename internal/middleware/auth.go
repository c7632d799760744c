package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chronosvault/chronosvault/internal/auth"
	"github.com/chronosvault/chronosvault/internal/model"
)

// SessionStore resolves opaque tokens to live sessions.
// Implemented by *cache.Cache.
type SessionStore interface {
	GetSession(ctx context.Context, token string) (*model.Session, error)
}

// AuthConfig holds configuration for the session middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Cache  SessionStore
}

// Auth returns a middleware that authenticates requests with an opaque
// bearer token. The token is resolved to a session in Redis; on success
// the owning user's id is injected into the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			session, err := cfg.Cache.GetSession(r.Context(), token)
			if err != nil {
				// A session store outage is not the caller's fault.
				cfg.Logger.Error("session lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeServerError(w)
				return
			}
			if session == nil {
				// Unknown, expired and revoked tokens all look the same.
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithOwner(r.Context(), session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the session token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Invalid or missing session token"}}`))
}

// writeServerError writes a 500 response for session store failures.
func writeServerError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"An internal error occurred"}}`))
}
