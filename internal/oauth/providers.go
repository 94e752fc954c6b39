package oauth

import (
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"

	"postflow/internal/config"
	"postflow/internal/models"
)

// DefaultProviders builds the provider table for the four supported
// platforms from process configuration. Called once at startup; the
// result is read-only afterwards.
func DefaultProviders(cfg *config.Config) map[models.Platform]Provider {
	redirect := func(platform models.Platform) string {
		return fmt.Sprintf("%s/auth/callback/%s", cfg.AppBaseURL, platform)
	}

	return map[models.Platform]Provider{
		models.PlatformX: {
			Config: &oauth2.Config{
				ClientID:     cfg.XCredentials.ClientID,
				ClientSecret: cfg.XCredentials.ClientSecret,
				RedirectURL:  redirect(models.PlatformX),
				Scopes:       []string{"tweet.read", "tweet.write", "users.read", "offline.access"},
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://twitter.com/i/oauth2/authorize",
					TokenURL: "https://api.twitter.com/2/oauth2/token",
				},
			},
			UserInfoURL: "https://api.twitter.com/2/users/me",
		},
		models.PlatformInstagram: {
			Config: &oauth2.Config{
				ClientID:     cfg.InstagramCredentials.ClientID,
				ClientSecret: cfg.InstagramCredentials.ClientSecret,
				RedirectURL:  redirect(models.PlatformInstagram),
				Scopes:       []string{"user_profile,user_media"},
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://api.instagram.com/oauth/authorize",
					TokenURL: "https://api.instagram.com/oauth/access_token",
				},
			},
			UserInfoURL: "https://graph.instagram.com/me?fields=id,username",
		},
		models.PlatformLinkedIn: {
			Config: &oauth2.Config{
				ClientID:     cfg.LinkedInCredentials.ClientID,
				ClientSecret: cfg.LinkedInCredentials.ClientSecret,
				RedirectURL:  redirect(models.PlatformLinkedIn),
				Scopes:       []string{"r_liteprofile", "r_emailaddress", "w_member_social"},
				Endpoint:     linkedin.Endpoint,
			},
			UserInfoURL: "https://api.linkedin.com/v2/people/~:(id,localizedFirstName,localizedLastName)",
		},
		models.PlatformFacebook: {
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookCredentials.ClientID,
				ClientSecret: cfg.FacebookCredentials.ClientSecret,
				RedirectURL:  redirect(models.PlatformFacebook),
				Scopes:       []string{"pages_manage_posts,pages_read_engagement,pages_show_list"},
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://www.facebook.com/v18.0/dialog/oauth",
					TokenURL: "https://graph.facebook.com/v18.0/oauth/access_token",
				},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name",
		},
	}
}
