package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"postflow/internal/models"
)

// ErrUnsupportedPlatform is returned for platforms outside the supported set
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// TokenExchangeError wraps a failed code-for-token exchange. The wrapped
// error carries the upstream response body (via *oauth2.RetrieveError);
// it is logged server-side and never shown to the browser.
type TokenExchangeError struct {
	Platform models.Platform
	Err      error
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed for %s: %v", e.Platform, e.Err)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// ProfileFetchError wraps a failed platform profile fetch
type ProfileFetchError struct {
	Platform   models.Platform
	StatusCode int
	Err        error
}

func (e *ProfileFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("profile fetch failed for %s: %v", e.Platform, e.Err)
	}
	return fmt.Sprintf("profile fetch failed for %s: status %d", e.Platform, e.StatusCode)
}

func (e *ProfileFetchError) Unwrap() error {
	return e.Err
}

// Profile is the normalized view of a platform user. ID and Username are
// always set; platforms without a username concept substitute a stable
// display identifier.
type Profile struct {
	ID       string
	Username string
	Name     string
}

// Provider holds one platform's OAuth configuration
type Provider struct {
	Config      *oauth2.Config
	UserInfoURL string
}

// Connector implements the OAuth protocol mechanics for all supported
// platforms. Stateless per call; safe for concurrent use.
type Connector struct {
	providers map[models.Platform]Provider
}

// NewConnector creates a connector over the given provider set
func NewConnector(providers map[models.Platform]Provider) *Connector {
	return &Connector{providers: providers}
}

func (c *Connector) provider(platform models.Platform) (Provider, error) {
	provider, ok := c.providers[platform]
	if !ok {
		return Provider{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	return provider, nil
}

// AuthCodeURL composes the platform's authorization URL carrying the
// client id, redirect URI, scope, response_type=code and the supplied
// state. The client secret never appears in the URL.
func (c *Connector) AuthCodeURL(platform models.Platform, state string) (string, error) {
	provider, err := c.provider(platform)
	if err != nil {
		return "", err
	}
	return provider.Config.AuthCodeURL(state), nil
}

// Exchange swaps an authorization code for a token. A single POST with
// client credentials; no retry — the caller decides on failure handling.
func (c *Connector) Exchange(ctx context.Context, platform models.Platform, code string) (*oauth2.Token, error) {
	provider, err := c.provider(platform)
	if err != nil {
		return nil, err
	}

	token, err := provider.Config.Exchange(ctx, code)
	if err != nil {
		return nil, &TokenExchangeError{Platform: platform, Err: err}
	}
	return token, nil
}

// FetchProfile retrieves and normalizes the platform user behind an
// access token. Each platform has a distinct response shape.
func (c *Connector) FetchProfile(ctx context.Context, platform models.Platform, accessToken string) (*Profile, error) {
	provider, err := c.provider(platform)
	if err != nil {
		return nil, err
	}

	switch platform {
	case models.PlatformX:
		return c.fetchXProfile(ctx, provider, accessToken)
	case models.PlatformInstagram:
		return c.fetchInstagramProfile(ctx, provider, accessToken)
	case models.PlatformLinkedIn:
		return c.fetchLinkedInProfile(ctx, provider, accessToken)
	case models.PlatformFacebook:
		return c.fetchFacebookProfile(ctx, provider, accessToken)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
}

func (c *Connector) fetchXProfile(ctx context.Context, provider Provider, accessToken string) (*Profile, error) {
	body, err := c.getWithBearer(ctx, models.PlatformX, provider.UserInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ProfileFetchError{Platform: models.PlatformX, Err: err}
	}

	return &Profile{ID: payload.Data.ID, Username: payload.Data.Username, Name: payload.Data.Name}, nil
}

func (c *Connector) fetchInstagramProfile(ctx context.Context, provider Provider, accessToken string) (*Profile, error) {
	body, err := c.getWithQueryToken(ctx, models.PlatformInstagram, provider.UserInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ProfileFetchError{Platform: models.PlatformInstagram, Err: err}
	}

	return &Profile{ID: payload.ID, Username: payload.Username}, nil
}

func (c *Connector) fetchLinkedInProfile(ctx context.Context, provider Provider, accessToken string) (*Profile, error) {
	body, err := c.getWithBearer(ctx, models.PlatformLinkedIn, provider.UserInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID                 string `json:"id"`
		LocalizedFirstName string `json:"localizedFirstName"`
		LocalizedLastName  string `json:"localizedLastName"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ProfileFetchError{Platform: models.PlatformLinkedIn, Err: err}
	}

	// LinkedIn has no username concept; the stable id stands in for it
	return &Profile{
		ID:       payload.ID,
		Username: payload.ID,
		Name:     payload.LocalizedFirstName + " " + payload.LocalizedLastName,
	}, nil
}

func (c *Connector) fetchFacebookProfile(ctx context.Context, provider Provider, accessToken string) (*Profile, error) {
	body, err := c.getWithQueryToken(ctx, models.PlatformFacebook, provider.UserInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ProfileFetchError{Platform: models.PlatformFacebook, Err: err}
	}

	// Facebook uses the display name as its public identifier
	return &Profile{ID: payload.ID, Username: payload.Name, Name: payload.Name}, nil
}

// getWithBearer performs a GET with the access token in the Authorization header
func (c *Connector) getWithBearer(ctx context.Context, platform models.Platform, userInfoURL, accessToken string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return nil, &ProfileFetchError{Platform: platform, Err: err}
	}
	request.Header.Set("Authorization", "Bearer "+accessToken)

	return c.doProfileRequest(platform, request)
}

// getWithQueryToken performs a GET with the access token as a query parameter
func (c *Connector) getWithQueryToken(ctx context.Context, platform models.Platform, userInfoURL, accessToken string) ([]byte, error) {
	separator := "?"
	if u, err := url.Parse(userInfoURL); err == nil && u.RawQuery != "" {
		separator = "&"
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL+separator+"access_token="+url.QueryEscape(accessToken), nil)
	if err != nil {
		return nil, &ProfileFetchError{Platform: platform, Err: err}
	}

	return c.doProfileRequest(platform, request)
}

func (c *Connector) doProfileRequest(platform models.Platform, request *http.Request) ([]byte, error) {
	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, &ProfileFetchError{Platform: platform, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProfileFetchError{Platform: platform, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProfileFetchError{Platform: platform, Err: err}
	}

	return body, nil
}
