package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"postflow/internal/models"
	"postflow/internal/oauth"
	"postflow/internal/security"
	"postflow/internal/service"
)

// ConnectHandler orchestrates the OAuth connection round trip: issuing the
// CSRF state, redirecting out, validating the callback and persisting the
// resulting account link.
type ConnectHandler struct {
	connector      *oauth.Connector
	accountService *service.AccountService
	secure         bool
}

// NewConnectHandler creates a new connect handler
func NewConnectHandler(connector *oauth.Connector, accountService *service.AccountService, secure bool) *ConnectHandler {
	return &ConnectHandler{
		connector:      connector,
		accountService: accountService,
		secure:         secure,
	}
}

// redirectWithError sends the browser back to the accounts page with an
// opaque outcome code. Upstream detail never reaches the URL.
func (h *ConnectHandler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, AccountsPath+"?error="+code, http.StatusFound)
}

// Connect handles GET /auth/connect/{platform}. It issues the state value,
// stores it in a short-lived cookie and redirects to the platform's
// authorization endpoint. Session presence is enforced by the route guard.
func (h *ConnectHandler) Connect(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		http.Redirect(w, r, SignInPath, http.StatusFound)
		return
	}

	platform := models.Platform(r.PathValue("platform"))

	state := security.GenerateState(claims.UserID, string(platform))

	authURL, err := h.connector.AuthCodeURL(platform, state)
	if err != nil {
		log.Printf("OAuth initiation error: %v", err)
		h.redirectWithError(w, r, OAuthErrorConnectionFail)
		return
	}

	http.SetCookie(w, security.CreateStateCookie(state, security.StateTTL, h.secure))
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles GET /auth/callback/{platform}. Validation order: session
// (route guard), upstream error parameter, presence of code and state, state
// equality with the stored cookie. The cookie is deleted before the exchange
// so a state value redeems at most once. The account insert is the last
// step; failing earlier leaves no partial state behind.
func (h *ConnectHandler) Callback(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		http.Redirect(w, r, SignInPath, http.StatusFound)
		return
	}

	platform := models.Platform(r.PathValue("platform"))
	query := r.URL.Query()

	if upstreamErr := query.Get("error"); upstreamErr != "" {
		log.Printf("OAuth error from %s: %s", platform, upstreamErr)
		h.redirectWithError(w, r, OAuthErrorUpstream)
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		h.redirectWithError(w, r, OAuthErrorMissingParams)
		return
	}

	stateCookie, err := r.Cookie(security.StateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		h.redirectWithError(w, r, OAuthErrorInvalidState)
		return
	}

	// Single-use: the state cookie goes away whether or not the rest of
	// the flow succeeds
	http.SetCookie(w, security.CreateDeleteCookie(security.StateCookieName, h.secure))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, err := h.connector.Exchange(ctx, platform, code)
	if err != nil {
		log.Printf("OAuth callback error: %v", err)
		h.redirectWithError(w, r, OAuthErrorConnectionFail)
		return
	}

	profile, err := h.connector.FetchProfile(ctx, platform, token.AccessToken)
	if err != nil {
		log.Printf("OAuth callback error: %v", err)
		h.redirectWithError(w, r, OAuthErrorConnectionFail)
		return
	}

	if _, err := h.accountService.SaveConnection(claims.UserID, platform, token, profile); err != nil {
		log.Printf("OAuth callback error: %v", err)
		h.redirectWithError(w, r, OAuthErrorConnectionFail)
		return
	}

	http.Redirect(w, r, AccountsPath+"?success="+OAuthSuccessConnected, http.StatusFound)
}
