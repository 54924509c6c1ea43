package handler

import (
	"net/http"

	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/middleware"
	"comboshare/internal/microservices/http-api/service"
	"comboshare/internal/search"

	"github.com/gin-gonic/gin"
)

type ComboHandler struct {
	comboService service.ComboService
}

func NewComboHandler(comboService service.ComboService) *ComboHandler {
	return &ComboHandler{comboService: comboService}
}

// RegisterRoutes registers /combos routes
func (h *ComboHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	g = g.orPass()
	combos := router.Group("/combos")
	{
		combos.GET("", g.Optional, h.Search)
		combos.GET("/picks", h.Picks)
		combos.GET("/mine", g.Auth, h.ListMine)
		combos.GET("/:id", g.Optional, h.Get)
		combos.POST("", g.Auth, g.Limit, h.Create)
	}
}

// Search lists combos matching the query string filters
// GET /api/combos?q=&characterId=&tags=&mode=&minDamage=&maxDamage=&maxDrive=&maxSuper=&sort=&dir=&page=&take=
func (h *ComboHandler) Search(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	params := search.ParseParams(c.Request.URL.Query())
	res, err := h.comboService.Search(ctx, params, middleware.ViewerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Get returns one combo
// GET /api/combos/:id
func (h *ComboHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	combo, err := h.comboService.Get(ctx, id, middleware.ViewerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, combo)
}

// Create publishes a new combo owned by the caller
// POST /api/combos
func (h *ComboHandler) Create(c *gin.Context) {
	var req dto.CreateComboDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	combo, err := h.comboService.Create(ctx, c.GetString("userID"), req)
	if err != nil {
		// an unknown character in the body is a client error, not a missing resource
		if statusFor(err) == http.StatusNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, combo)
}

// ListMine lists the caller's combos including unpublished ones
// GET /api/combos/mine?page=&pageSize=
func (h *ComboHandler) ListMine(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.comboService.ListMine(ctx, c.GetString("userID"), queryInt(c, "page", 1), queryInt(c, "pageSize", search.DefaultTake))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Picks returns the featured combos per character
// GET /api/combos/picks
func (h *ComboHandler) Picks(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	picks, err := h.comboService.Picks(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"characters": picks})
}
