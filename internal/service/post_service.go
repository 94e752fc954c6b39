package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"postflow/internal/models"
	"postflow/internal/repository"
	"postflow/internal/validation"
)

var ErrPostNotFound = errors.New("post not found")

// DashboardStats summarizes a user's dashboard counters
type DashboardStats struct {
	PostsCount        int `json:"postsCount"`
	ConnectedAccounts int `json:"connectedAccounts"`
	ScheduledCount    int `json:"scheduledCount"`
}

// PostService handles posts, scheduled jobs and dashboard stats.
// Scheduled jobs are data only; no worker consumes them.
type PostService struct {
	postRepo    *repository.PostRepository
	jobRepo     *repository.JobRepository
	accountRepo *repository.SocialAccountRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo *repository.PostRepository, jobRepo *repository.JobRepository, accountRepo *repository.SocialAccountRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		jobRepo:     jobRepo,
		accountRepo: accountRepo,
	}
}

// PostInput carries the fields of a post create/update request
type PostInput struct {
	Content   string
	MediaURLs []string
	Hashtags  []string
	Status    models.PostStatus
}

func validatePostInput(input PostInput) error {
	if strings.TrimSpace(input.Content) == "" {
		return validation.ValidationError{Field: "content", Message: "content is required"}
	}
	if input.Status != "" && !input.Status.IsValid() {
		return validation.ValidationError{Field: "status", Message: "unknown post status"}
	}
	return nil
}

// CreatePost creates a post for a user; status defaults to draft
func (s *PostService) CreatePost(userID int64, input PostInput) (*models.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		UserID:    userID,
		Content:   input.Content,
		MediaURLs: input.MediaURLs,
		Hashtags:  input.Hashtags,
		Status:    status,
	}

	created, err := s.postRepo.CreatePost(post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}

// GetPost returns one of the caller's posts
func (s *PostService) GetPost(userID, postID int64) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil || post.UserID != userID {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListPosts returns the caller's posts
func (s *PostService) ListPosts(userID int64) ([]models.Post, error) {
	posts, err := s.postRepo.GetPostsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// UpdatePost updates one of the caller's posts
func (s *PostService) UpdatePost(userID, postID int64, input PostInput) (*models.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post, err := s.GetPost(userID, postID)
	if err != nil {
		return nil, err
	}

	post.Content = input.Content
	post.MediaURLs = input.MediaURLs
	post.Hashtags = input.Hashtags
	if input.Status != "" {
		post.Status = input.Status
	}

	if err := s.postRepo.UpdatePost(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeletePost removes one of the caller's posts
func (s *PostService) DeletePost(userID, postID int64) error {
	if _, err := s.GetPost(userID, postID); err != nil {
		return err
	}
	if err := s.postRepo.DeletePost(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// ScheduleJob creates a pending job tying one of the caller's posts to one
// of their active account links
func (s *PostService) ScheduleJob(userID, postID, accountID int64, scheduledTime time.Time) (*models.ScheduledJob, error) {
	if _, err := s.GetPost(userID, postID); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetSocialAccountByID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil || account.UserID != userID || !account.IsActive {
		return nil, ErrAccountNotFound
	}

	job := &models.ScheduledJob{
		PostID:          postID,
		SocialAccountID: accountID,
		ScheduledTime:   scheduledTime,
		Status:          models.JobStatusPending,
	}

	created, err := s.jobRepo.CreateScheduledJob(job)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule job: %w", err)
	}
	return created, nil
}

// ListJobs returns the caller's scheduled jobs
func (s *PostService) ListJobs(userID int64) ([]models.ScheduledJob, error) {
	jobs, err := s.jobRepo.GetJobsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Stats computes the dashboard counters for a user
func (s *PostService) Stats(userID int64) (*DashboardStats, error) {
	postsCount, err := s.postRepo.CountByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	accountsCount, err := s.accountRepo.CountActiveByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	pendingCount, err := s.jobRepo.CountPendingByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending jobs: %w", err)
	}

	return &DashboardStats{
		PostsCount:        postsCount,
		ConnectedAccounts: accountsCount,
		ScheduledCount:    pendingCount,
	}, nil
}
