package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"blog_api/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

func newTestAuthService(users *mockUserRepo) *AuthService {
	return NewAuthService(users, nil, AuthConfig{
		SigningKey: testSigningKey,
		TokenTTL:   time.Hour,
	})
}

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn     func(email, hash string) (int, error)
	GetByEmailFn func(email string) (*models.User, error)
	GetByIDFn    func(id int) (*models.User, error)

	createCalls []struct {
		email string
		hash  string
	}
	getEmailCalls []string
}

func (m *mockUserRepo) Create(_ context.Context, email, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		email string
		hash  string
	}{email: email, hash: hash})
	return m.CreateFn(email, hash)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.getEmailCalls = append(m.getEmailCalls, email)
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(email)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockUserRepo) Delete(_ context.Context, id int) error { return nil }

// --- Register tests ---

func TestAuthService_Register_TokenSubjectIsNewUserID(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(email, hash string) (int, error) { return 42, nil },
	}
	svc := newTestAuthService(mock)

	u, token, err := svc.Register(context.Background(), "Alice@Example.com", "password123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.ID != 42 {
		t.Fatalf("expected id 42, got %d", u.ID)
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}

	// The issued token's subject must equal the new user's id.
	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected token subject 42, got %d", uid)
	}

	// Stored hash must verify against the raw password and never equal it.
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.email != "alice@example.com" {
		t.Errorf("expected lower-cased email stored, got %q", call.email)
	}
	if call.hash == "password123" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "password123"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_Register_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{name: "blank email", email: "", password: "password123", wantField: "email"},
		{name: "malformed email", email: "not-an-email", password: "password123", wantField: "email"},
		{name: "short password", email: "alice@example.com", password: "12345", wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUserRepo{
				CreateFn: func(email, hash string) (int, error) {
					t.Fatal("Create should not be called when validation fails")
					return 0, nil
				},
			}
			svc := newTestAuthService(mock)

			_, _, err := svc.Register(context.Background(), tt.email, tt.password)
			var v *ValidationError
			if !errors.As(err, &v) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := v.Fields[tt.wantField]; !ok {
				t.Fatalf("expected violation on %q, got %v", tt.wantField, v.Fields)
			}
			if len(mock.createCalls) != 0 {
				t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	existing := &models.User{ID: 1, Email: "alice@example.com"}
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email != "alice@example.com" {
				t.Fatalf("uniqueness check must use the normalized email, got %q", email)
			}
			return existing, nil
		},
		CreateFn: func(email, hash string) (int, error) {
			t.Fatal("Create should not be called for a taken email")
			return 0, nil
		},
	}
	svc := newTestAuthService(mock)

	_, _, err := svc.Register(context.Background(), "ALICE@EXAMPLE.COM", "password123")
	var v *ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msgs := v.FullMessages()
	if len(msgs) != 1 || msgs[0] != "Email has already been taken" {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

// --- Login tests ---

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: 7, Email: "diana@example.com", PasswordHash: hash}

	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email != "diana@example.com" {
				t.Fatalf("expected normalized email, got %q", email)
			}
			return user, nil
		},
	}
	svc := newTestAuthService(mock)

	token, u, err := svc.Login(context.Background(), "Diana@Example.com", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("expected user 7, got %d", u.ID)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user id 7 from token, got %d", uid)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}

	tests := []struct {
		name string
		repo *mockUserRepo
	}{
		{
			name: "unknown email",
			repo: &mockUserRepo{
				GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
			},
		},
		{
			name: "wrong password",
			repo: &mockUserRepo{
				GetByEmailFn: func(email string) (*models.User, error) {
					return &models.User{ID: 1, Email: "eve@example.com", PasswordHash: correctHash}, nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(tt.repo)
			_, _, err := svc.Login(context.Background(), "eve@example.com", "wrong")
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
			}
		})
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := newTestAuthService(mock)

	_, _, err := svc.Login(context.Background(), "john@example.com", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected plain repo error, got: %v", err)
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Success(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})
	token, err := svc.issueToken(&models.User{ID: 99, Email: "z@example.com"})
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if uid != 99 {
		t.Fatalf("expected user id 99, got %d", uid)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})
	if _, err := svc.ParseToken("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	// Token signed with a different key.
	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 5,
	})
	badToken, err := tk.SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(badToken); err == nil {
		t.Fatalf("expected signature verification error")
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	// Already expired token signed with the right key.
	past := time.Now().Add(-2 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
		UserID: 11,
	})
	expiredToken, err := tk.SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(expiredToken); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 12,
	})
	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(tokenStr); err == nil {
		t.Fatalf("expected error due to unexpected signing method")
	}
}

// --- UserByID ---

func TestAuthService_UserByID_NotFound(t *testing.T) {
	mock := &mockUserRepo{
		GetByIDFn: func(id int) (*models.User, error) { return nil, nil },
	}
	svc := newTestAuthService(mock)

	_, err := svc.UserByID(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
