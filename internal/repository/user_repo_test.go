package repository

import (
	"testing"
)

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	age := 30
	occupation := "Engineer"
	user, err := repo.CreateUser("alice@example.com", "hash", "Alice", "Smith", &age, &occupation)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("CreateUser() returned zero ID")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "alice@example.com")
	}
	if user.Age == nil || *user.Age != 30 {
		t.Errorf("Age = %v, want 30", user.Age)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	if _, err := repo.CreateUser("dup@example.com", "hash", "First", "User", nil, nil); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if _, err := repo.CreateUser("dup@example.com", "hash", "Second", "User", nil, nil); err == nil {
		t.Error("CreateUser() with duplicate email should fail")
	}
}

func TestGetUserByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	created := createTestUser(t, db, "bob@example.com")

	user, err := repo.GetUserByEmail("bob@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if user == nil {
		t.Fatal("GetUserByEmail() returned nil for existing user")
	}
	if user.ID != created.ID {
		t.Errorf("ID = %d, want %d", user.ID, created.ID)
	}
	if user.FullName() != "Test User" {
		t.Errorf("FullName() = %q, want %q", user.FullName(), "Test User")
	}

	// Missing user is not an error
	missing, err := repo.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetUserByEmail() = %v, want nil for missing user", missing)
	}
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	created := createTestUser(t, db, "carol@example.com")

	user, err := repo.GetUserByID(created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user == nil || user.Email != "carol@example.com" {
		t.Errorf("GetUserByID() = %v, want user with email carol@example.com", user)
	}

	missing, err := repo.GetUserByID(99999)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetUserByID() = %v, want nil for missing user", missing)
	}
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	created := createTestUser(t, db, "dave@example.com")

	age := 45
	occupation := "Designer"
	updated, err := repo.UpdateUser(created.ID, "dave@new.example.com", "David", "Jones", &age, &occupation)
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	if updated.Email != "dave@new.example.com" {
		t.Errorf("Email = %q, want %q", updated.Email, "dave@new.example.com")
	}
	if updated.FirstName != "David" {
		t.Errorf("FirstName = %q, want %q", updated.FirstName, "David")
	}
	if updated.Occupation == nil || *updated.Occupation != "Designer" {
		t.Errorf("Occupation = %v, want Designer", updated.Occupation)
	}
}
