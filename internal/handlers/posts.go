package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTOs. There is deliberately no owner field anywhere: the owner is
// always the authenticated caller, whatever the body claims.
type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type updatePostRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// postID parses the :id path segment; unparseable ids read as "no such post".
func postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return 0, false
	}
	return id, true
}

// respondPostError maps service errors onto the 422/403/404/500 taxonomy.
func (h *Handler) respondPostError(c *gin.Context, err error, logKey string) {
	var v *service.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusUnprocessableEntity, v.Fields)
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// @Summary      List own posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   models.Post
// @Failure      401  {object}  map[string]string
// @Router       /posts [get]
// @Security     BearerAuth
func (h *Handler) listPosts(c *gin.Context) {
	userID, _ := h.currentUserID(c)
	posts, err := h.services.Posts.List(c.Request.Context(), userID)
	if err != nil {
		h.respondPostError(c, err, "posts_list_failed")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary      Get one of own posts
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  models.Post
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
// @Security     BearerAuth
func (h *Handler) getPost(c *gin.Context) {
	userID, _ := h.currentUserID(c)
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.services.Posts.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.respondPostError(c, err, "posts_get_failed")
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body  createPostRequest  true  "Post payload"
// @Success      201  {object}  models.Post
// @Failure      422  {object}  map[string]interface{}  "field errors"
// @Router       /posts [post]
// @Security     BearerAuth
func (h *Handler) createPost(c *gin.Context) {
	userID, _ := h.currentUserID(c)
	var input createPostRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	post, err := h.services.Posts.Create(c.Request.Context(), userID, input.Title, input.Body)
	if err != nil {
		h.respondPostError(c, err, "posts_create_failed")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// @Summary      Update own post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "Post id"
// @Param        body  body  updatePostRequest  true  "Fields to change"
// @Success      200  {object}  models.Post
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}  "field errors"
// @Router       /posts/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updatePost(c *gin.Context) {
	userID, _ := h.currentUserID(c)
	id, ok := postID(c)
	if !ok {
		return
	}
	var input updatePostRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	post, err := h.services.Posts.Update(c.Request.Context(), userID, id, input.Title, input.Body)
	if err != nil {
		h.respondPostError(c, err, "posts_update_failed")
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      Delete own post
// @Tags         posts
// @Param        id  path  int  true  "Post id"
// @Success      204  "no content"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePost(c *gin.Context) {
	userID, _ := h.currentUserID(c)
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := h.services.Posts.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondPostError(c, err, "posts_delete_failed")
		return
	}
	c.Status(http.StatusNoContent)
}
