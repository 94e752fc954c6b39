package service

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"postflow/internal/models"
	"postflow/internal/oauth"
	"postflow/internal/repository"
)

var ErrAccountNotFound = errors.New("social account not found")

// AccountService handles social account links
type AccountService struct {
	accountRepo *repository.SocialAccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo *repository.SocialAccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// ListAccounts returns a user's active account links
func (s *AccountService) ListAccounts(userID int64) ([]models.SocialAccount, error) {
	accounts, err := s.accountRepo.GetActiveAccountsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// SaveConnection persists the result of a completed OAuth round trip as a
// new active account link. No uniqueness is enforced per (user, platform);
// the most recent active row is treated as canonical.
func (s *AccountService) SaveConnection(userID int64, platform models.Platform, token *oauth2.Token, profile *oauth.Profile) (*models.SocialAccount, error) {
	account := &models.SocialAccount{
		UserID:         userID,
		Platform:       platform,
		PlatformUserID: profile.ID,
		Username:       profile.Username,
		AccessToken:    token.AccessToken,
		IsActive:       true,
	}

	if token.RefreshToken != "" {
		refreshToken := token.RefreshToken
		account.RefreshToken = &refreshToken
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC().Truncate(time.Second)
		account.TokenExpiresAt = &expiry
	}

	saved, err := s.accountRepo.CreateSocialAccount(account)
	if err != nil {
		return nil, fmt.Errorf("failed to save connection: %w", err)
	}
	return saved, nil
}

// Disconnect soft-deletes an account link owned by the caller.
// Disconnecting an already-inactive account still succeeds; only rows that
// don't exist or belong to someone else report not found.
func (s *AccountService) Disconnect(userID, accountID int64) error {
	account, err := s.accountRepo.GetSocialAccountByID(accountID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil || account.UserID != userID {
		return ErrAccountNotFound
	}

	if !account.IsActive {
		return nil
	}

	if err := s.accountRepo.DeactivateSocialAccount(accountID); err != nil {
		return fmt.Errorf("failed to disconnect account: %w", err)
	}
	return nil
}
