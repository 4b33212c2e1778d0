package repository

import (
	"blog_api/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = ?`
	deleteUserSQL        = `DELETE FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID. Callers pass an already
// normalized email; the schema's NOCASE unique index is the backstop.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (int, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, passwordHash, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return int(lastID), nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %v: %w", arg, err)
	}
	return &u, nil
}

// Delete removes a user; posts and activity rows cascade via foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteUserSQL, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
