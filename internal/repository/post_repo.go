package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"postflow/internal/database"
	"postflow/internal/models"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db *database.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = "id, user_id, content, media_urls, hashtags, status, created_at, updated_at"

// encodeStrings serializes a string slice for a TEXT column; empty slices
// are stored as NULL
func encodeStrings(values []string) (*string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	encoded := string(data)
	return &encoded, nil
}

func decodeStrings(encoded *string) ([]string, error) {
	if encoded == nil || *encoded == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(*encoded), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func scanPost(scanner interface{ Scan(...interface{}) error }) (*models.Post, error) {
	post := &models.Post{}
	var mediaURLs, hashtags *string
	err := scanner.Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&mediaURLs,
		&hashtags,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if post.MediaURLs, err = decodeStrings(mediaURLs); err != nil {
		return nil, fmt.Errorf("failed to decode media urls: %w", err)
	}
	if post.Hashtags, err = decodeStrings(hashtags); err != nil {
		return nil, fmt.Errorf("failed to decode hashtags: %w", err)
	}

	return post, nil
}

// CreatePost inserts a new post
func (r *PostRepository) CreatePost(post *models.Post) (*models.Post, error) {
	mediaURLs, err := encodeStrings(post.MediaURLs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode media urls: %w", err)
	}
	hashtags, err := encodeStrings(post.Hashtags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode hashtags: %w", err)
	}

	query := `
		INSERT INTO posts (user_id, content, media_urls, hashtags, status)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, post.UserID, post.Content, mediaURLs, hashtags, post.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	now := time.Now()
	post.ID = id
	post.CreatedAt = now
	post.UpdatedAt = now
	return post, nil
}

// GetPostByID retrieves a post by ID
func (r *PostRepository) GetPostByID(id int64) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = ?"
	post, err := scanPost(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetPostsByUserID retrieves a user's posts, most recent first
func (r *PostRepository) GetPostsByUserID(userID int64) ([]models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}

	return posts, rows.Err()
}

// UpdatePost updates a post's content and status
func (r *PostRepository) UpdatePost(post *models.Post) error {
	mediaURLs, err := encodeStrings(post.MediaURLs)
	if err != nil {
		return fmt.Errorf("failed to encode media urls: %w", err)
	}
	hashtags, err := encodeStrings(post.Hashtags)
	if err != nil {
		return fmt.Errorf("failed to encode hashtags: %w", err)
	}

	query := `
		UPDATE posts
		SET content = ?, media_urls = ?, hashtags = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, post.Content, mediaURLs, hashtags, post.Status, time.Now(), post.ID); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// DeletePost removes a post
func (r *PostRepository) DeletePost(id int64) error {
	query := "DELETE FROM posts WHERE id = ?"
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// CountByUserID counts a user's posts
func (r *PostRepository) CountByUserID(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM posts WHERE user_id = ?"
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
