package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"awards-api/internal/auth"
)

type contextKey string

const (
	AdminEmailKey contextKey = "admin_email"
	IsAdminKey    contextKey = "is_admin"
)

// AuthMiddleware validates admin JWT tokens
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the JWT token and adds admin info to context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid authorization header format")
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), AdminEmailKey, claims.Email)
		ctx = context.WithValue(ctx, IsAdminKey, true)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth validates a JWT token if present but doesn't require it.
// Public endpoints use it so a logged-in admin can bypass the closed toggle.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), AdminEmailKey, claims.Email)
		ctx = context.WithValue(ctx, IsAdminKey, true)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsAdmin reports whether the request carries a validated admin token
func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(IsAdminKey).(bool)
	return ok && isAdmin
}

// AdminEmail returns the authenticated admin's email, if any
func AdminEmail(ctx context.Context) string {
	email, _ := ctx.Value(AdminEmailKey).(string)
	return email
}

// respondWithError writes an error envelope from middleware
func respondWithError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
