package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtinfra "github.com/wardro8e/api/internal/infrastructure/jwt"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// AuthCookieName is the httpOnly cookie carrying the access token for
// browser clients that cannot set an Authorization header.
const AuthCookieName = "auth-token"

// Auth returns middleware that validates the access token and injects claims
// into context. The token is read from the Authorization header first, then
// from the auth cookie.
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"missing or invalid authorization header"}`, http.StatusUnauthorized)
				return
			}
			claims, err := provider.Verify(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthOptional injects claims when a valid token is present but never
// rejects the request. Logout uses it: clearing the cookie must work even
// for a client whose token is expired or garbage.
func AuthOptional(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr := tokenFromRequest(r); tokenStr != "" {
				if claims, err := provider.Verify(tokenStr); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ClaimsKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if c, err := r.Cookie(AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}
