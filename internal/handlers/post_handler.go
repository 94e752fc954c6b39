package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"postflow/internal/models"
	"postflow/internal/service"
	"postflow/internal/validation"
)

// PostHandler handles post and scheduled job API requests
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type postRequest struct {
	Content   string   `json:"content"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
	Hashtags  []string `json:"hashtags,omitempty"`
	Status    string   `json:"status,omitempty"`
}

func (req postRequest) toInput() service.PostInput {
	return service.PostInput{
		Content:   req.Content,
		MediaURLs: req.MediaURLs,
		Hashtags:  req.Hashtags,
		Status:    models.PostStatus(req.Status),
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	post, err := h.postService.CreatePost(claims.UserID, req.toInput())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, post)
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	posts, err := h.postService.ListPosts(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch posts", err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	respondJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	postID, ok := parseID(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
		return
	}

	post, err := h.postService.GetPost(claims.UserID, postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// UpdatePost handles PUT /posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	postID, ok := parseID(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	post, err := h.postService.UpdatePost(claims.UserID, postID, req.toInput())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	postID, ok := parseID(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
		return
	}

	if err := h.postService.DeletePost(claims.UserID, postID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

type scheduleJobRequest struct {
	PostID          int64     `json:"postId"`
	SocialAccountID int64     `json:"socialAccountId"`
	ScheduledTime   time.Time `json:"scheduledTime"`
}

// ScheduleJob handles POST /scheduled-jobs
func (h *PostHandler) ScheduleJob(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	var req scheduleJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}
	if req.ScheduledTime.IsZero() {
		respondServiceError(w, validation.ValidationError{Field: "scheduledTime", Message: "scheduledTime is required"})
		return
	}

	job, err := h.postService.ScheduleJob(claims.UserID, req.PostID, req.SocialAccountID, req.ScheduledTime)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, job)
}

// ListJobs handles GET /scheduled-jobs
func (h *PostHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	jobs, err := h.postService.ListJobs(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch scheduled jobs", err)
		return
	}
	if jobs == nil {
		jobs = []models.ScheduledJob{}
	}

	respondJSON(w, http.StatusOK, jobs)
}

// DashboardStats handles GET /dashboard/stats
func (h *PostHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	stats, err := h.postService.Stats(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
