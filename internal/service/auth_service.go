package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"blog_api/internal/models"
	"blog_api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles registration, login and the stateless token contract.
type AuthService struct {
	users      repository.Users
	activity   *ActivityService
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, activity *ActivityService, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		activity:   activity,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
	}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// normalizeEmail lower-cases and trims; all lookups and inserts go through it
// so uniqueness is case-insensitive end to end.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateCredentials checks presence, email syntax and password length.
func validateCredentials(email, password string) *ValidationError {
	v := newValidationError()
	if email == "" {
		v.add("email", "can't be blank")
	} else if !emailRe.MatchString(email) {
		v.add("email", "is invalid")
	}
	if len(password) < minPasswordLength {
		v.add("password", fmt.Sprintf("is too short (minimum is %d characters)", minPasswordLength))
	}
	return v
}

// Register validates the pair, enforces case-insensitive email uniqueness,
// hashes the password and issues a token for the new user.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)

	v := validateCredentials(email, password)
	if v.empty() {
		existing, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, "", fmt.Errorf("check email uniqueness: %w", err)
		}
		if existing != nil {
			v.add("email", "has already been taken")
		}
	}
	if !v.empty() {
		return nil, "", v
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", err
	}

	id, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{ID: id, Email: email}
	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}

	s.activity.Record(ctx, models.ActivityEvent{
		UserID:  id,
		Type:    models.ActivityRegister,
		Message: "account registered",
	})
	return u, token, nil
}

// Login verifies the credential pair and returns a fresh token. Unknown email
// and wrong password both collapse into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}

	s.activity.Record(ctx, models.ActivityEvent{
		UserID:  u.ID,
		Type:    models.ActivityLogin,
		Message: "logged in",
	})
	return token, u, nil
}

// ParseToken parses a bearer token and returns the subject user id. A token
// is accepted iff the HMAC signature verifies and exp is in the future.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// UserByID resolves a verified token subject to its stored user record.
func (s *AuthService) UserByID(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(u *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: u.ID,
		Email:  u.Email,
	})
	return token.SignedString(s.signingKey)
}
