package handlers

import (
	"errors"
	"net/http"

	"blog_api/internal/models"
	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// sessionUser is the user shape returned by session endpoints: no hash, no
// timestamps.
type sessionUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

func toSessionUser(u *models.User) sessionUser {
	return sessionUser{ID: u.ID, Email: u.Email}
}

// @Summary      Create a session (login variant returning the user)
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  credentialsRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "token, user"
// @Failure      401  {object}  map[string]string
// @Router       /session [post]
func (h *Handler) createSession(c *gin.Context) {
	var input credentialsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, user, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentialsMsg})
			return
		}
		if h.log != nil {
			h.log.Errorw("session_create_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": toSessionUser(user)})
}

// @Summary      Log out
// @Description  Tokens are stateless, so there is nothing to invalidate server-side.
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /session [delete]
func (h *Handler) destroySession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// @Summary      Who am I
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "user, authenticated"
// @Failure      401  {object}  map[string]bool
// @Router       /session [get]
// @Security     BearerAuth
func (h *Handler) showSession(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	user, err := h.services.UserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// token subject no longer exists
			c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
			return
		}
		if h.log != nil {
			h.log.Errorw("session_show_failed", "err", err, "user_id", userID)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toSessionUser(user), "authenticated": true})
}
