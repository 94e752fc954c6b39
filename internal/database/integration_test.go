package database

import (
	"context"
	"path/filepath"
	"testing"
)

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_integration.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Migrations must be idempotent
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}

	tables := []string{"users", "social_accounts", "posts", "scheduled_jobs"}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		err := db.QueryRowContext(ctx, query, table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestExecReturningID tests ID retrieval across insert helpers
func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_ids.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	id, err := db.ExecReturningID(
		"INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?, ?, ?, ?)",
		"test@example.com", "hashedpass", "Test", "User")
	if err != nil {
		t.Fatalf("ExecReturningID() error = %v", err)
	}
	if id == 0 {
		t.Error("ExecReturningID() returned zero ID")
	}

	id2, err := db.ExecReturningID(
		"INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?, ?, ?, ?)",
		"test2@example.com", "hashedpass", "Test", "User")
	if err != nil {
		t.Fatalf("ExecReturningID() error = %v", err)
	}
	if id2 <= id {
		t.Errorf("ExecReturningID() = %d, want greater than %d", id2, id)
	}
}
