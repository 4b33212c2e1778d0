package handlers

import (
	"net/http"

	"blog_api/internal/logger"
	"blog_api/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLog)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Credential endpoints (no token required)
	router.POST("/register", h.register)
	router.POST("/login", h.login)

	// Session endpoints; GET uses the soft gate so the handler itself can
	// answer {authenticated:false} instead of being short-circuited.
	session := router.Group("/session")
	{
		session.POST("", h.createSession)
		session.DELETE("", h.destroySession)
		session.GET("", h.authOptional, h.showSession)
	}

	// Post endpoints (strict gate + ownership policy)
	posts := router.Group("/posts", h.authRequired)
	{
		posts.GET("", h.listPosts)
		posts.POST("", h.createPost)
		posts.GET("/:id", h.getPost)
		posts.PATCH("/:id", h.updatePost)
		posts.DELETE("/:id", h.deletePost)
	}

	// Caller's activity log (strict gate)
	router.GET("/activity", h.authRequired, h.listActivity)

	// Live posts feed (HTTP upgrade) — same port, token via query
	router.GET("/ws", h.wsPostsFeed)

	return router
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
