package handlers

import (
	"encoding/json"
	"net/http"

	"postflow/internal/service"
)

// UserHandler handles profile requests
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type profileRequest struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Age        *int    `json:"age,omitempty"`
	Occupation *string `json:"occupation,omitempty"`
}

// UpdateProfile handles PUT /user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	user, err := h.authService.UpdateProfile(claims.UserID, service.ProfileInput{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Occupation: req.Occupation,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user": userSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.FullName(),
		},
	})
}
