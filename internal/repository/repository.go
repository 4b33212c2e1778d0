package repository

import (
	"blog_api/internal/models"
	"context"
	"database/sql"
	"time"
)

type Users interface {
	Create(ctx context.Context, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

type Posts interface {
	Create(ctx context.Context, p *models.Post) (int, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id int) error
}

type Activity interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	Users    Users
	Posts    Posts
	Activity Activity
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Posts:    NewPostRepository(db),
		Activity: NewActivitySQLite(db),
	}
}
