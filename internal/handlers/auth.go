package handlers

import (
	"errors"
	"net/http"

	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for register, login and session create.
// Presence and format are checked by the service so that failures come back
// as field-level validation errors, not bind errors.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

const invalidCredentialsMsg = "Invalid email or password"

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.Request.URL.Path, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  credentialsRequest  true  "Credentials"
// @Success      201  {object}  map[string]string  "token"
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}  "errors"
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input credentialsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	_, token, err := h.services.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		var v *service.ValidationError
		if errors.As(err, &v) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": v.FullMessages()})
			return
		}
		if h.log != nil {
			h.log.Errorw("register_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  credentialsRequest  true  "Credentials"
// @Success      200  {object}  map[string]string  "token"
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input credentialsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, _, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentialsMsg})
			return
		}
		if h.log != nil {
			h.log.Errorw("login_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
