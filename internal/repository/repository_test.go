package repository

import (
	"path/filepath"
	"testing"

	"postflow/internal/database"
	"postflow/internal/models"
)

// newTestDB opens a throwaway SQLite database with the full schema applied
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// createTestUser inserts a user row for tests that need a foreign key target
func createTestUser(t *testing.T, db *database.DB, email string) *models.User {
	t.Helper()

	repo := NewUserRepository(db)
	user, err := repo.CreateUser(email, "hashed-password", "Test", "User", nil, nil)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}
