package repository

import (
	"database/sql"
	"fmt"
	"time"

	"postflow/internal/database"
	"postflow/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, password_hash, first_name, last_name, age, occupation, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Age,
		&user.Occupation,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(email, passwordHash, firstName, lastName string, age *int, occupation *string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, age, occupation)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, firstName, lastName, age, occupation)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Age:          age,
		Occupation:   occupation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// UpdateUser updates a user's profile fields
func (r *UserRepository) UpdateUser(id int64, email, firstName, lastName string, age *int, occupation *string) (*models.User, error) {
	query := `
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, age = ?, occupation = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query, email, firstName, lastName, age, occupation, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return r.GetUserByID(id)
}
