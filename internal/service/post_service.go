package service

import (
	"context"
	"strings"

	"blog_api/internal/models"
	"blog_api/internal/repository"
)

// PostService enforces the ownership policy around the post store.
type PostService struct {
	posts    repository.Posts
	activity *ActivityService
}

func NewPostService(posts repository.Posts, activity *ActivityService) *PostService {
	return &PostService{posts: posts, activity: activity}
}

// ownedBy is the whole authorization policy for this resource: read, update
// and delete of an individual post are permitted to its owner only.
func ownedBy(userID int, p *models.Post) bool {
	return p.OwnerID == userID
}

// validatePost rejects blank title/body; whitespace-only counts as blank.
func validatePost(title, body string) *ValidationError {
	v := newValidationError()
	if strings.TrimSpace(title) == "" {
		v.add("title", "can't be blank")
	}
	if strings.TrimSpace(body) == "" {
		v.add("body", "can't be blank")
	}
	return v
}

// List returns the caller's own posts. The repository query is scoped by
// owner; nothing here filters another user's rows out after the fact.
func (s *PostService) List(ctx context.Context, userID int) ([]models.Post, error) {
	return s.posts.ListByOwner(ctx, userID)
}

// Get loads a post and authorizes the caller against it.
func (s *PostService) Get(ctx context.Context, userID, postID int) (*models.Post, error) {
	return s.loadOwned(ctx, userID, postID)
}

// Create persists a new post. The owner is forced to the caller's identity;
// there is no way for a request body to set it.
func (s *PostService) Create(ctx context.Context, userID int, title, body string) (*models.Post, error) {
	if v := validatePost(title, body); !v.empty() {
		return nil, v
	}

	p := &models.Post{Title: title, Body: body, OwnerID: userID}
	if _, err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.ActivityEvent{
		UserID:   userID,
		Type:     models.ActivityPostCreated,
		Message:  "post created",
		Metadata: map[string]any{"post_id": p.ID},
	})
	return p, nil
}

// Update applies the provided fields to an owned post. Nil means "leave as
// is"; a provided blank value is a validation error.
func (s *PostService) Update(ctx context.Context, userID, postID int, title, body *string) (*models.Post, error) {
	p, err := s.loadOwned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		p.Title = *title
	}
	if body != nil {
		p.Body = *body
	}
	if v := validatePost(p.Title, p.Body); !v.empty() {
		return nil, v
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.ActivityEvent{
		UserID:   userID,
		Type:     models.ActivityPostUpdated,
		Message:  "post updated",
		Metadata: map[string]any{"post_id": p.ID},
	})
	return p, nil
}

// Delete removes an owned post.
func (s *PostService) Delete(ctx context.Context, userID, postID int) error {
	p, err := s.loadOwned(ctx, userID, postID)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, p.ID); err != nil {
		return err
	}

	s.activity.Record(ctx, models.ActivityEvent{
		UserID:   userID,
		Type:     models.ActivityPostDeleted,
		Message:  "post deleted",
		Metadata: map[string]any{"post_id": p.ID},
	})
	return nil
}

// loadOwned fetches by id and applies the ownership predicate: missing row
// is ErrNotFound, someone else's row is ErrForbidden. The two must stay
// distinct (404 vs 403 at the HTTP layer).
func (s *PostService) loadOwned(ctx context.Context, userID, postID int) (*models.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if !ownedBy(userID, p) {
		return nil, ErrForbidden
	}
	return p, nil
}
