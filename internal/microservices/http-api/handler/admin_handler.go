package handler

import (
	"context"
	"net/http"

	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	moderationService service.ModerationService
}

func NewAdminHandler(moderationService service.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

// RegisterRoutes registers /admin routes; every route requires an admin session
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	g = g.orPass()
	admin := router.Group("/admin", g.Auth, g.Admin)
	{
		admin.POST("/combos/publish", h.publish(h.moderationService.PublishCombo))
		admin.POST("/combos/delete", h.apply(h.moderationService.DeleteCombo))
		admin.POST("/combos/restore", h.apply(h.moderationService.RestoreCombo))

		admin.POST("/comments/publish", h.publish(h.moderationService.PublishComment))
		admin.POST("/comments/delete", h.apply(h.moderationService.DeleteComment))
		admin.POST("/comments/restore", h.apply(h.moderationService.RestoreComment))
	}
}

type publishFunc func(ctx context.Context, id int64, publish bool) (*service.ModerationResult, error)
type actionFunc func(ctx context.Context, id int64) (*service.ModerationResult, error)

func bindModeration(c *gin.Context, requirePublish bool) (dto.ModerationInput, bool) {
	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return dto.ModerationInput{}, false
	}
	in, err := req.Normalize(requirePublish)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return dto.ModerationInput{}, false
	}
	return in, true
}

func (h *AdminHandler) publish(fn publishFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindModeration(c, true)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := fn(ctx, in.ID, *in.Publish)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func (h *AdminHandler) apply(fn actionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindModeration(c, false)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := fn(ctx, in.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
