package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"postflow/internal/service"
	"postflow/internal/validation"
)

// errorResponse is the JSON error envelope returned by API routes
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// respondError writes a JSON error envelope and logs the underlying error
// server-side; the wire message stays generic
func respondError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondServiceError maps a service-layer error to an API status code
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Email already in use"})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid email or password"})
	case errors.Is(err, service.ErrAccountNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Account not found"})
	case errors.Is(err, service.ErrPostNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
	default:
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, err)
	}
}
