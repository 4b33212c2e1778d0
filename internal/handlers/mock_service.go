package handlers

import (
	"context"
	"net/http/httptest"

	"blog_api/internal/models"
	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser  *models.User
	registerToken string
	registerErr   error
	loginToken    string
	loginUser     *models.User
	loginErr      error
	parseID       int
	parseErr      error
	userByID      *models.User
	userByIDErr   error

	lastRegisterEmail    string
	lastRegisterPassword string
	lastLoginEmail       string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, email, password string) (*models.User, string, error) {
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerUser, m.registerToken, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (string, *models.User, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginUser, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) UserByID(_ context.Context, id int) (*models.User, error) {
	return m.userByID, m.userByIDErr
}

type mockPosts struct {
	listResp   []models.Post
	listErr    error
	getResp    *models.Post
	getErr     error
	createResp *models.Post
	createErr  error
	updateResp *models.Post
	updateErr  error
	deleteErr  error

	lastUserID      int
	lastPostID      int
	lastCreateTitle string
	lastCreateBody  string
	lastUpdateTitle *string
	lastUpdateBody  *string
}

func (m *mockPosts) List(_ context.Context, userID int) ([]models.Post, error) {
	m.lastUserID = userID
	return m.listResp, m.listErr
}

func (m *mockPosts) Get(_ context.Context, userID, postID int) (*models.Post, error) {
	m.lastUserID = userID
	m.lastPostID = postID
	return m.getResp, m.getErr
}

func (m *mockPosts) Create(_ context.Context, userID int, title, body string) (*models.Post, error) {
	m.lastUserID = userID
	m.lastCreateTitle = title
	m.lastCreateBody = body
	return m.createResp, m.createErr
}

func (m *mockPosts) Update(_ context.Context, userID, postID int, title, body *string) (*models.Post, error) {
	m.lastUserID = userID
	m.lastPostID = postID
	m.lastUpdateTitle = title
	m.lastUpdateBody = body
	return m.updateResp, m.updateErr
}

func (m *mockPosts) Delete(_ context.Context, userID, postID int) error {
	m.lastUserID = userID
	m.lastPostID = postID
	return m.deleteErr
}

type mockActivity struct {
	resp []models.ActivityEvent
	err  error

	lastUserID int
	lastFilter service.ActivityFilter
}

func (m *mockActivity) List(_ context.Context, userID int, f service.ActivityFilter) ([]models.ActivityEvent, error) {
	m.lastUserID = userID
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func testGinContext(w *httptest.ResponseRecorder, method, target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c
}
