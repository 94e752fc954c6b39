package security

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "auth-token"

// StateCookieName is the short-lived cookie carrying the OAuth state value
const StateCookieName = "oauth_state"

// CreateSessionCookie creates the session cookie with proper security flags.
// The Secure attribute follows the environment (production serves HTTPS only).
func CreateSessionCookie(token string, expires time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateStateCookie creates the single-use OAuth state cookie
func CreateStateCookie(state string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateDeleteCookie creates a cookie that clears the named cookie
func CreateDeleteCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
	}
}
