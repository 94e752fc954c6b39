package models

import "time"

// PostStatus tracks where a post is in its lifecycle
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
	PostStatusFailed    PostStatus = "failed"
)

// IsValid reports whether the status is a known post status
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished, PostStatusFailed:
		return true
	}
	return false
}

// Post is a piece of content a user intends to publish
type Post struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Content   string     `json:"content"`
	MediaURLs []string   `json:"mediaUrls,omitempty"`
	Hashtags  []string   `json:"hashtags,omitempty"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// JobStatus tracks a scheduled job's processing state
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ScheduledJob ties a post to a social account at a publish time.
// No worker consumes these yet; the rows are data only.
type ScheduledJob struct {
	ID              int64      `json:"id"`
	PostID          int64      `json:"postId"`
	SocialAccountID int64      `json:"socialAccountId"`
	ScheduledTime   time.Time  `json:"scheduledTime"`
	Status          JobStatus  `json:"status"`
	RetryCount      int        `json:"retryCount"`
	LastAttempt     *time.Time `json:"lastAttempt,omitempty"`
	ErrorMessage    *string    `json:"errorMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
