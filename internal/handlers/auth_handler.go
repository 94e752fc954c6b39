package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"postflow/internal/security"
	"postflow/internal/service"
)

// AuthHandler handles signup, login and logout requests
type AuthHandler struct {
	authService     *service.AuthService
	sessionDuration time.Duration
	secure          bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, sessionDuration time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		sessionDuration: sessionDuration,
		secure:          secure,
	}
}

type signupRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Age        *int    `json:"age,omitempty"`
	Occupation *string `json:"occupation,omitempty"`
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	user, err := h.authService.Signup(r.Context(), service.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Occupation: req.Occupation,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userSummary is the public view of a user returned by auth endpoints
type userSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(token, time.Now().Add(h.sessionDuration), h.secure))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user": userSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.FullName(),
		},
	})
}

// Logout handles POST /auth/logout by clearing the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(security.SessionCookieName, h.secure))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
