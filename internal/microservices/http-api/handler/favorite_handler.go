package handler

import (
	"net/http"

	"comboshare/internal/microservices/http-api/middleware"
	"comboshare/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	g = g.orPass()
	router.POST("/combos/:id/favorite", g.Auth, h.Toggle)
}

// Toggle adds or removes the combo from the caller's favorites
// POST /api/combos/:id/favorite
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.favoriteService.Toggle(ctx, id, middleware.ViewerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
