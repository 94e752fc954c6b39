package repository

import (
	"reflect"
	"testing"
	"time"

	"postflow/internal/models"
)

func TestCreateAndGetPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice@example.com")

	post := &models.Post{
		UserID:    user.ID,
		Content:   "Launching next week!",
		MediaURLs: []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"},
		Hashtags:  []string{"launch", "startup"},
		Status:    models.PostStatusDraft,
	}

	created, err := repo.CreatePost(post)
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("CreatePost() returned zero ID")
	}

	got, err := repo.GetPostByID(created.ID)
	if err != nil {
		t.Fatalf("GetPostByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetPostByID() returned nil for existing post")
	}
	if got.Content != "Launching next week!" {
		t.Errorf("Content = %q, want %q", got.Content, "Launching next week!")
	}
	if !reflect.DeepEqual(got.MediaURLs, post.MediaURLs) {
		t.Errorf("MediaURLs = %v, want %v", got.MediaURLs, post.MediaURLs)
	}
	if !reflect.DeepEqual(got.Hashtags, post.Hashtags) {
		t.Errorf("Hashtags = %v, want %v", got.Hashtags, post.Hashtags)
	}
	if got.Status != models.PostStatusDraft {
		t.Errorf("Status = %q, want %q", got.Status, models.PostStatusDraft)
	}
}

func TestPostWithoutMedia(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice@example.com")

	created, err := repo.CreatePost(&models.Post{
		UserID:  user.ID,
		Content: "Plain text post",
		Status:  models.PostStatusDraft,
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	got, err := repo.GetPostByID(created.ID)
	if err != nil {
		t.Fatalf("GetPostByID() error = %v", err)
	}
	if got.MediaURLs != nil {
		t.Errorf("MediaURLs = %v, want nil", got.MediaURLs)
	}
	if got.Hashtags != nil {
		t.Errorf("Hashtags = %v, want nil", got.Hashtags)
	}
}

func TestGetPostsByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice@example.com")
	other := createTestUser(t, db, "bob@example.com")

	for _, content := range []string{"first", "second"} {
		if _, err := repo.CreatePost(&models.Post{UserID: user.ID, Content: content, Status: models.PostStatusDraft}); err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
	}
	if _, err := repo.CreatePost(&models.Post{UserID: other.ID, Content: "not mine", Status: models.PostStatusDraft}); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	posts, err := repo.GetPostsByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetPostsByUserID() error = %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("GetPostsByUserID() returned %d posts, want 2", len(posts))
	}
	for _, p := range posts {
		if p.UserID != user.ID {
			t.Errorf("post %d belongs to user %d, want %d", p.ID, p.UserID, user.ID)
		}
	}
}

func TestUpdatePost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice@example.com")

	created, err := repo.CreatePost(&models.Post{UserID: user.ID, Content: "before", Status: models.PostStatusDraft})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	created.Content = "after"
	created.Status = models.PostStatusScheduled
	created.Hashtags = []string{"updated"}
	if err := repo.UpdatePost(created); err != nil {
		t.Fatalf("UpdatePost() error = %v", err)
	}

	got, err := repo.GetPostByID(created.ID)
	if err != nil {
		t.Fatalf("GetPostByID() error = %v", err)
	}
	if got.Content != "after" {
		t.Errorf("Content = %q, want %q", got.Content, "after")
	}
	if got.Status != models.PostStatusScheduled {
		t.Errorf("Status = %q, want %q", got.Status, models.PostStatusScheduled)
	}
	if !reflect.DeepEqual(got.Hashtags, []string{"updated"}) {
		t.Errorf("Hashtags = %v, want [updated]", got.Hashtags)
	}
}

func TestDeletePost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice@example.com")

	created, err := repo.CreatePost(&models.Post{UserID: user.ID, Content: "doomed", Status: models.PostStatusDraft})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if err := repo.DeletePost(created.ID); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}

	got, err := repo.GetPostByID(created.ID)
	if err != nil {
		t.Fatalf("GetPostByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetPostByID() = %v after delete, want nil", got)
	}
}

func TestScheduledJobs(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepository(db)
	jobRepo := NewJobRepository(db)
	accountRepo := NewSocialAccountRepository(db)
	user := createTestUser(t, db, "alice@example.com")

	post, err := postRepo.CreatePost(&models.Post{UserID: user.ID, Content: "scheduled content", Status: models.PostStatusScheduled})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	account, err := accountRepo.CreateSocialAccount(newTestAccount(user.ID, models.PlatformX, "alice_x"))
	if err != nil {
		t.Fatalf("CreateSocialAccount() error = %v", err)
	}

	scheduledTime := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	job, err := jobRepo.CreateScheduledJob(&models.ScheduledJob{
		PostID:          post.ID,
		SocialAccountID: account.ID,
		ScheduledTime:   scheduledTime,
		Status:          models.JobStatusPending,
	})
	if err != nil {
		t.Fatalf("CreateScheduledJob() error = %v", err)
	}
	if job.ID == 0 {
		t.Error("CreateScheduledJob() returned zero ID")
	}

	jobs, err := jobRepo.GetJobsByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetJobsByUserID() error = %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("GetJobsByUserID() returned %d jobs, want 1", len(jobs))
	}
	if jobs[0].PostID != post.ID {
		t.Errorf("PostID = %d, want %d", jobs[0].PostID, post.ID)
	}
	if jobs[0].Status != models.JobStatusPending {
		t.Errorf("Status = %q, want %q", jobs[0].Status, models.JobStatusPending)
	}

	pending, err := jobRepo.CountPendingByUserID(user.ID)
	if err != nil {
		t.Fatalf("CountPendingByUserID() error = %v", err)
	}
	if pending != 1 {
		t.Errorf("CountPendingByUserID() = %d, want 1", pending)
	}
}
