package repository

import (
	"fmt"
	"time"

	"postflow/internal/database"
	"postflow/internal/models"
)

// JobRepository handles database operations for scheduled jobs
type JobRepository struct {
	db *database.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *database.DB) *JobRepository {
	return &JobRepository{db: db}
}

// CreateScheduledJob inserts a new pending job
func (r *JobRepository) CreateScheduledJob(job *models.ScheduledJob) (*models.ScheduledJob, error) {
	query := `
		INSERT INTO scheduled_jobs (post_id, social_account_id, scheduled_time, status, retry_count)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, job.PostID, job.SocialAccountID, job.ScheduledTime, job.Status, job.RetryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduled job: %w", err)
	}

	job.ID = id
	job.CreatedAt = time.Now()
	return job, nil
}

// GetJobsByUserID retrieves all jobs belonging to a user's posts
func (r *JobRepository) GetJobsByUserID(userID int64) ([]models.ScheduledJob, error) {
	query := `
		SELECT j.id, j.post_id, j.social_account_id, j.scheduled_time, j.status, j.retry_count, j.last_attempt, j.error_message, j.created_at
		FROM scheduled_jobs j
		JOIN posts p ON p.id = j.post_id
		WHERE p.user_id = ?
		ORDER BY j.scheduled_time ASC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.ScheduledJob
	for rows.Next() {
		var job models.ScheduledJob
		if err := rows.Scan(
			&job.ID,
			&job.PostID,
			&job.SocialAccountID,
			&job.ScheduledTime,
			&job.Status,
			&job.RetryCount,
			&job.LastAttempt,
			&job.ErrorMessage,
			&job.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// CountPendingByUserID counts a user's pending jobs
func (r *JobRepository) CountPendingByUserID(userID int64) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM scheduled_jobs j
		JOIN posts p ON p.id = j.post_id
		WHERE p.user_id = ? AND j.status = ?
	`
	if err := r.db.QueryRow(query, userID, models.JobStatusPending).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count scheduled jobs: %w", err)
	}
	return count, nil
}
