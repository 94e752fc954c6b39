package repository

import (
	"database/sql"
	"fmt"
	"time"

	"postflow/internal/database"
	"postflow/internal/models"
)

// SocialAccountRepository handles database operations for social account links
type SocialAccountRepository struct {
	db *database.DB
}

// NewSocialAccountRepository creates a new social account repository
func NewSocialAccountRepository(db *database.DB) *SocialAccountRepository {
	return &SocialAccountRepository{db: db}
}

const socialAccountColumns = "id, user_id, platform, platform_user_id, username, access_token, refresh_token, token_expires_at, is_active, created_at"

func scanSocialAccount(scanner interface{ Scan(...interface{}) error }) (*models.SocialAccount, error) {
	account := &models.SocialAccount{}
	err := scanner.Scan(
		&account.ID,
		&account.UserID,
		&account.Platform,
		&account.PlatformUserID,
		&account.Username,
		&account.AccessToken,
		&account.RefreshToken,
		&account.TokenExpiresAt,
		&account.IsActive,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateSocialAccount inserts a new active account link
func (r *SocialAccountRepository) CreateSocialAccount(account *models.SocialAccount) (*models.SocialAccount, error) {
	query := `
		INSERT INTO social_accounts (user_id, platform, platform_user_id, username, access_token, refresh_token, token_expires_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		account.UserID,
		account.Platform,
		account.PlatformUserID,
		account.Username,
		account.AccessToken,
		account.RefreshToken,
		account.TokenExpiresAt,
		account.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create social account: %w", err)
	}

	account.ID = id
	account.CreatedAt = time.Now()
	return account, nil
}

// GetSocialAccountByID retrieves an account link by ID
func (r *SocialAccountRepository) GetSocialAccountByID(id int64) (*models.SocialAccount, error) {
	query := "SELECT " + socialAccountColumns + " FROM social_accounts WHERE id = ?"
	account, err := scanSocialAccount(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get social account: %w", err)
	}
	return account, nil
}

// GetActiveAccountsByUserID retrieves a user's active account links,
// most recent first
func (r *SocialAccountRepository) GetActiveAccountsByUserID(userID int64) ([]models.SocialAccount, error) {
	query := "SELECT " + socialAccountColumns + " FROM social_accounts WHERE user_id = ? AND is_active = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query social accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.SocialAccount
	for rows.Next() {
		account, err := scanSocialAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan social account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	return accounts, rows.Err()
}

// DeactivateSocialAccount soft-deletes an account link.
// Deactivating an already-inactive row is a no-op.
func (r *SocialAccountRepository) DeactivateSocialAccount(id int64) error {
	query := "UPDATE social_accounts SET is_active = ? WHERE id = ?"
	if _, err := r.db.Exec(query, false, id); err != nil {
		return fmt.Errorf("failed to deactivate social account: %w", err)
	}
	return nil
}

// CountActiveByUserID counts a user's active account links
func (r *SocialAccountRepository) CountActiveByUserID(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM social_accounts WHERE user_id = ? AND is_active = ?"
	if err := r.db.QueryRow(query, userID, true).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count social accounts: %w", err)
	}
	return count, nil
}
