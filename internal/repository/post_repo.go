package repository

import (
	"blog_api/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

var _ Posts = (*PostRepository)(nil)

const (
	insertPostSQL = `INSERT INTO posts (title, body, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	selectPostSQL = `SELECT id, title, body, owner_id, created_at, updated_at FROM posts WHERE id = ?`
	// Scoped at the query, not filtered after the fact: other owners' rows
	// must never leave the database.
	listPostsByOwnerSQL = `SELECT id, title, body, owner_id, created_at, updated_at FROM posts WHERE owner_id = ? ORDER BY created_at DESC, id DESC`
	updatePostSQL       = `UPDATE posts SET title = ?, body = ?, updated_at = ? WHERE id = ?`
	deletePostSQL       = `DELETE FROM posts WHERE id = ?`
)

// Create inserts a post and returns its ID. Timestamps are set here.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) (int, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertPostSQL, p.Title, p.Body, p.OwnerID, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert post for owner %d: %w", p.OwnerID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for post: %w", err)
	}
	p.ID = int(lastID)
	p.CreatedAt = now
	p.UpdatedAt = now
	return p.ID, nil
}

// GetByID fetches a post by id. Returns (nil, nil) if not found.
func (r *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, selectPostSQL, id).
		Scan(&p.ID, &p.Title, &p.Body, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %d: %w", id, err)
	}
	return &p, nil
}

// ListByOwner returns all posts belonging to ownerID, newest first.
func (r *PostRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, listPostsByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list posts for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, 16)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts for owner %d: %w", ownerID, err)
	}
	return out, nil
}

// Update rewrites title/body and bumps updated_at. Ownership is checked by
// the service before this is called; owner_id is immutable.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, updatePostSQL, p.Title, p.Body, now, p.ID); err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	p.UpdatedAt = now
	return nil
}

// Delete removes a post by id.
func (r *PostRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deletePostSQL, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}
