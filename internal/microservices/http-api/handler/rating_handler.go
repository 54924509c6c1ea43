package handler

import (
	"net/http"

	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/middleware"
	"comboshare/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RegisterRoutes registers rating routes under /combos/:id
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	g = g.orPass()
	rating := router.Group("/combos/:id/rating", g.Auth)
	{
		rating.PUT("", h.Set)
		rating.DELETE("", h.Clear)
	}
}

// Set creates or updates the caller's rating
// PUT /api/combos/:id/rating
func (h *RatingHandler) Set(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.ratingService.Set(ctx, id, middleware.ViewerFrom(c), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Clear removes the caller's rating
// DELETE /api/combos/:id/rating
func (h *RatingHandler) Clear(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.ratingService.Clear(ctx, id, middleware.ViewerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
