package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"postflow/internal/models"
	"postflow/internal/repository"
	"postflow/internal/security"
	"postflow/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles signup, login and profile business logic
type AuthService struct {
	userRepo     *repository.UserRepository
	tokenIssuer  *security.TokenIssuer
	emailService *EmailService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokenIssuer *security.TokenIssuer, emailService *EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenIssuer:  tokenIssuer,
		emailService: emailService,
	}
}

// SignupInput carries the fields of a signup request
type SignupInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Age        *int
	Occupation *string
}

// Signup creates a new user account
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	// Validate inputs
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("firstName", input.FirstName); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("lastName", input.LastName); err != nil {
		return nil, err
	}
	if err := validation.ValidateAge(input.Age); err != nil {
		return nil, err
	}
	if err := validation.ValidateOccupation(input.Occupation); err != nil {
		return nil, err
	}

	// Check if email already exists
	existingUser, err := s.userRepo.GetUserByEmail(input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	// Hash password
	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Create user
	user, err := s.userRepo.CreateUser(input.Email, passwordHash, input.FirstName, input.LastName, input.Age, input.Occupation)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Welcome email is best effort; signup succeeds without it
	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(ctx, user.Email, user.FullName()); err != nil {
			log.Printf("Warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login authenticates a user and issues a session token
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	// Get user by email
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	// Check password
	if !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	// Issue session token
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.FullName())
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return token, user, nil
}

// ProfileInput carries the fields of a profile update request
type ProfileInput struct {
	Email      string
	FirstName  string
	LastName   string
	Age        *int
	Occupation *string
}

// UpdateProfile updates a user's profile fields
func (s *AuthService) UpdateProfile(userID int64, input ProfileInput) (*models.User, error) {
	// Validate inputs
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("firstName", input.FirstName); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("lastName", input.LastName); err != nil {
		return nil, err
	}
	if err := validation.ValidateAge(input.Age); err != nil {
		return nil, err
	}
	if err := validation.ValidateOccupation(input.Occupation); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Check if email is already taken by another user
	existingUser, err := s.userRepo.GetUserByEmail(input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil && existingUser.ID != userID {
		return nil, ErrEmailTaken
	}

	updated, err := s.userRepo.UpdateUser(userID, input.Email, input.FirstName, input.LastName, input.Age, input.Occupation)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}
