package handler

import (
	"net/http"

	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/middleware"
	"comboshare/internal/microservices/http-api/service"
	"comboshare/internal/search"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	g = g.orPass()
	router.GET("/combos/:id/comments", g.Optional, h.List)
	router.POST("/combos/:id/comments", g.Auth, g.Limit, h.Create)
	router.DELETE("/comments/:id", g.Auth, h.Delete)
}

// List returns the visible comments of a combo, oldest first
// GET /api/combos/:id/comments?page=&pageSize=
func (h *CommentHandler) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.commentService.List(ctx, id, middleware.ViewerFrom(c), queryInt(c, "page", 1), queryInt(c, "pageSize", search.DefaultTake))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Create adds a comment
// POST /api/combos/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.commentService.Create(ctx, id, middleware.ViewerFrom(c), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Delete removes the caller's own comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.commentService.DeleteOwn(ctx, id, c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
