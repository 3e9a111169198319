package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/akis/champion-vault/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := userIDFromRequest(r, authService)
			if !ok {
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the actor when a valid Bearer token is present
// and lets the request through as a guest otherwise. Catalog listing
// and detail endpoints use it so guests see the default-unlock
// projection.
func OptionalAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := userIDFromRequest(r, authService); ok {
				ctx := context.WithValue(r.Context(), UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates content-management endpoints. It must run inside
// Auth, which guarantees a user ID in the context.
func RequireAdmin(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			user, err := authService.GetUserByID(r.Context(), userID)
			if err != nil {
				log.Printf("ERROR [middleware.RequireAdmin] failed to load user: %v", err)
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			if !user.IsAdmin() {
				http.Error(w, "Admin access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func userIDFromRequest(r *http.Request, authService *service.AuthService) (uuid.UUID, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		log.Printf("ERROR [middleware.Auth] invalid authorization header format")
		return uuid.Nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
		return uuid.Nil, false
	}

	userIDStr, ok := (*claims)["sub"].(string)
	if !ok {
		log.Printf("ERROR [middleware.Auth] missing 'sub' claim in token")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		log.Printf("ERROR [middleware.Auth] failed to parse user ID: %v", err)
		return uuid.Nil, false
	}

	return userID, true
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
