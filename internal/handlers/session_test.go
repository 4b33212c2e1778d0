package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog_api/internal/models"
	"blog_api/internal/service"
)

func TestCreateSession_ReturnsTokenAndBareUser(t *testing.T) {
	auth := &mockAuth{
		loginToken: "tok789",
		loginUser:  &models.User{ID: 7, Email: "diana@example.com", PasswordHash: "hash-should-not-leak"},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/session", `{"email":"diana@example.com","password":"letmein"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var out struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Token != "tok789" {
		t.Fatalf("expected token, got %q", out.Token)
	}
	if int(out.User["id"].(float64)) != 7 || out.User["email"] != "diana@example.com" {
		t.Fatalf("unexpected user: %v", out.User)
	}
	// hash and timestamps must not be serialized
	for _, forbidden := range []string{"password_hash", "created_at", "updated_at"} {
		if _, ok := out.User[forbidden]; ok {
			t.Fatalf("user payload leaked %q: %v", forbidden, out.User)
		}
	}
}

func TestDestroySession_Always200(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	// No token at all: logout is stateless and still succeeds.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/session", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Message != "Logged out successfully" {
		t.Fatalf("unexpected message: %q", out.Message)
	}
}

func TestShowSession(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		auth          *mockAuth
		wantCode      int
		wantAuthField bool
	}{
		{
			name:     "no token",
			header:   "",
			auth:     &mockAuth{},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "invalid token",
			header:   "Bearer bad",
			auth:     &mockAuth{parseErr: errors.New("expired")},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			auth: &mockAuth{
				parseID:  7,
				userByID: &models.User{ID: 7, Email: "diana@example.com"},
			},
			wantCode:      http.StatusOK,
			wantAuthField: true,
		},
		{
			name:     "valid token for deleted user",
			header:   "Bearer good",
			auth:     &mockAuth{parseID: 7, userByIDErr: service.ErrNotFound},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tt.auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/session", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tt.wantCode, w.Body.String())
			}

			var out struct {
				Authenticated bool           `json:"authenticated"`
				User          map[string]any `json:"user"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.Authenticated != tt.wantAuthField {
				t.Fatalf("authenticated: got %v, want %v", out.Authenticated, tt.wantAuthField)
			}
			if tt.wantAuthField && out.User["email"] != "diana@example.com" {
				t.Fatalf("unexpected user: %v", out.User)
			}
		})
	}
}
