package service

import (
	"blog_api/internal/logger"
	"blog_api/internal/models"
	"blog_api/internal/repository"
	"context"
	"time"
)

// Authorization covers registration, login and bearer-token verification.
type Authorization interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ParseToken(accessToken string) (int, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
}

// Posts exposes ownership-scoped CRUD on posts. Every operation takes the
// acting user id explicitly; there is no implicit current-user state.
type Posts interface {
	List(ctx context.Context, userID int) ([]models.Post, error)
	Get(ctx context.Context, userID, postID int) (*models.Post, error)
	Create(ctx context.Context, userID int, title, body string) (*models.Post, error)
	Update(ctx context.Context, userID, postID int, title, body *string) (*models.Post, error)
	Delete(ctx context.Context, userID, postID int) error
}

// ActivityFilter narrows an activity listing; zero values mean "no bound".
type ActivityFilter struct {
	From time.Time
	To   time.Time
	Type string
}

// Activity exposes the caller's append-only activity log.
type Activity interface {
	List(ctx context.Context, userID int, f ActivityFilter) ([]models.ActivityEvent, error)
}

// AuthConfig carries the server-held token signing material.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Posts
	Activity
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg AuthConfig, log *logger.Logger) *Service {
	activity := NewActivityService(repos.Activity, log)
	return &Service{
		Authorization: NewAuthService(repos.Users, activity, cfg),
		Posts:         NewPostService(repos.Posts, activity),
		Activity:      activity,
	}
}
