package models

import "time"

// Platform identifies a supported social network
type Platform string

const (
	PlatformX         Platform = "x"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformFacebook  Platform = "facebook"
)

// IsValid reports whether the platform is one of the supported keys
func (p Platform) IsValid() bool {
	switch p {
	case PlatformX, PlatformInstagram, PlatformLinkedIn, PlatformFacebook:
		return true
	}
	return false
}

// SocialAccount links a user to an external platform account.
// Disconnection is a soft delete: is_active flips to false, the row stays.
type SocialAccount struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	Platform       Platform   `json:"platform"`
	PlatformUserID string     `json:"platformUserId"`
	Username       string     `json:"username"`
	AccessToken    string     `json:"-"`
	RefreshToken   *string    `json:"-"`
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
}
