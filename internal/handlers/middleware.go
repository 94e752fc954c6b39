package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"postflow/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokenIssuer *security.TokenIssuer
	limiter     *security.RateLimiter
	secure      bool
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokenIssuer *security.TokenIssuer, limiter *security.RateLimiter, secure bool) *Middleware {
	return &Middleware{
		tokenIssuer: tokenIssuer,
		limiter:     limiter,
		secure:      secure,
	}
}

// verify pulls the session cookie off the request and validates it.
// Shared by both guard adapters so verification logic lives in one place.
func (m *Middleware) verify(r *http.Request) (*security.SessionClaims, error) {
	cookie, err := r.Cookie(security.SessionCookieName)
	if err != nil {
		return nil, err
	}
	return m.tokenIssuer.Verify(cookie.Value)
}

// RequirePage guards browser-facing routes: a missing or invalid session
// redirects to the sign-in page and clears the bad cookie.
func (m *Middleware) RequirePage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.verify(r)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(security.SessionCookieName, m.secure))
			http.Redirect(w, r, SignInPath, http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireAPI guards JSON routes: a missing or invalid session returns a
// 401 error envelope instead of a redirect.
func (m *Middleware) RequireAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.verify(r)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit throttles a handler per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// ClaimsFromContext retrieves the session claims from the request context
func ClaimsFromContext(ctx context.Context) *security.SessionClaims {
	claims, ok := ctx.Value(UserContextKey).(*security.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
