package httpapi

import (
	"context"
	"net/http"
	"strings"

	"memory-album/internal/auth"
)

type contextKey string

const (
	UserKey  contextKey = "user_id"
	EmailKey contextKey = "email"
)

// TokenValidator is what the middleware needs from the auth service.
// The interface keeps this package decoupled from the service type.
type TokenValidator interface {
	Validate(ctx context.Context, tokenString string) (auth.Identity, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(v TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: v}
}

func (am *AuthMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			tokenString = r.URL.Query().Get("token")
		}

		if tokenString == "" {
			http.Error(w, "Missing authentication token", http.StatusUnauthorized)
			return
		}

		ident, err := am.validator.Validate(r.Context(), tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, ident.ID)
		ctx = context.WithValue(ctx, EmailKey, ident.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
