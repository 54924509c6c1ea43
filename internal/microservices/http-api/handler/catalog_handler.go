package handler

import (
	"net/http"

	"comboshare/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	characters := router.Group("/characters")
	{
		characters.GET("", h.Characters)
		characters.GET("/:id/moves", h.Moves)
	}
	router.GET("/lookups", h.Lookups)
}

// GET /api/characters
func (h *CatalogHandler) Characters(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.catalogService.Characters(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// GET /api/characters/:id/moves
func (h *CatalogHandler) Moves(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.catalogService.Moves(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// Lookups returns the condition and attribute options
// GET /api/lookups
func (h *CatalogHandler) Lookups(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.catalogService.Lookups(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
