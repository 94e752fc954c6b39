package security

import (
	"net/http"
	"testing"
	"time"
)

func TestCreateSessionCookie(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	cookie := CreateSessionCookie("token-value", expires, true)

	if cookie.Name != SessionCookieName {
		t.Errorf("Name = %q, want %q", cookie.Name, SessionCookieName)
	}
	if cookie.Value != "token-value" {
		t.Errorf("Value = %q, want %q", cookie.Value, "token-value")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if !cookie.Secure {
		t.Error("session cookie must be Secure when requested")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Errorf("Path = %q, want %q", cookie.Path, "/")
	}
}

func TestCreateStateCookie(t *testing.T) {
	cookie := CreateStateCookie("some-state", 10*time.Minute, false)

	if cookie.Name != StateCookieName {
		t.Errorf("Name = %q, want %q", cookie.Name, StateCookieName)
	}
	if cookie.MaxAge != 600 {
		t.Errorf("MaxAge = %d, want 600", cookie.MaxAge)
	}
	if !cookie.HttpOnly {
		t.Error("state cookie must be HttpOnly")
	}
	if cookie.Secure {
		t.Error("Secure should follow the environment flag")
	}
}

func TestCreateDeleteCookie(t *testing.T) {
	cookie := CreateDeleteCookie(SessionCookieName, false)

	if cookie.Value != "" {
		t.Errorf("Value = %q, want empty", cookie.Value)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", cookie.MaxAge)
	}
}
