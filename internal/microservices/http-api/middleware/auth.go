package middleware

import (
	"errors"
	"net/http"
	"strings"

	"comboshare/internal/microservices/http-api/service"
	"comboshare/internal/search"

	"github.com/gin-gonic/gin"
)

// SessionCookie holds the signed session token for browsers.
const SessionCookie = "session_token"

// TokenFromRequest reads the session token from the cookie or an "Authorization: Bearer" header.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2) // 0 is Bearer, 1 is token
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func setPrincipal(c *gin.Context, p *service.Principal) {
	c.Set("userID", p.User.ID)
	c.Set("email", p.User.Email)
	c.Set("isAdmin", p.IsAdmin)
	c.Set("sessionID", p.SessionID)
}

// OptionalAuth identifies the caller when a valid session is presented and lets anonymous
// requests through otherwise.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := TokenFromRequest(c); token != "" {
			if p, err := authService.Authenticate(c.Request.Context(), token); err == nil {
				setPrincipal(c, p)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a live session.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		p, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			msg := "invalid session"
			if errors.Is(err, service.ErrSessionExpired) {
				msg = "session expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

// ViewerFrom returns who is asking; anonymous when no auth middleware identified the caller.
func ViewerFrom(c *gin.Context) search.Viewer {
	return search.Viewer{
		UserID:  c.GetString("userID"),
		IsAdmin: c.GetBool("isAdmin"),
	}
}
