package handler

import (
	"net/http"
	"time"

	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/middleware"
	"comboshare/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
}

func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// RegisterRoutes registers /auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	g = g.orPass()
	auth := router.Group("/auth")
	{
		auth.POST("/register", g.Limit, h.Register)
		auth.POST("/login", g.Limit, h.Login)
		auth.POST("/logout", g.Auth, h.Logout)
		auth.GET("/me", g.Auth, h.Me)
	}
}

// Register creates an account
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.Register(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user, h.authService.IsAdmin(user.Email)))
}

// Login opens a session, sets the cookie and returns the token for non-browser clients
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, res.Token, int(time.Until(res.ExpiresAt).Seconds()))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      dto.FromModelToUserResponse(res.User, res.IsAdmin),
	})
}

// Logout ends the current session
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.Logout(ctx, middleware.TokenFromRequest(c)); err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the current user
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, isAdmin, err := h.authService.Me(ctx, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user, isAdmin))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.secureCookies, true)
}
