// internal/auth/middleware.go
// Request authentication and role gating. User identity travels in the
// request context under unexported keys.

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/prempath/prempath-backend/internal/common/utils"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userTypeKey contextKey = "userType"
	emailKey    contextKey = "email"
)

// UserIDFromContext returns the authenticated user's ObjectID hex
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// UserTypeFromContext returns the authenticated user's role
func UserTypeFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(userTypeKey).(string)
	return t, ok
}

type Middleware struct {
	service Service
}

func NewMiddleware(service Service) *Middleware {
	return &Middleware{service: service}
}

// Authenticate verifies the bearer token and stores the identity in
// the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		claims, err := m.service.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if claims.Type != "access" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token type")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userTypeKey, claims.UserType)
		ctx = context.WithValue(ctx, emailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route to administrative users. Must run after
// Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userType, ok := UserTypeFromContext(r.Context())
		if !ok || userType != UserTypeAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "Administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Websocket clients cannot set headers from the browser
	return r.URL.Query().Get("token")
}
