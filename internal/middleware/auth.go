package middleware

import (
	"errors"
	"net/http"
	"strings"

	"gala/internal/domain"
	"gala/internal/models"
	"gala/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxAdmin = "admin"
	ctxUser  = "user"
)

// bearerToken reads the session token from cookie, falling back to the
// Authorization header.
func bearerToken(c *gin.Context, cookie string) string {
	if v, err := c.Cookie(cookie); err == nil && v != "" {
		return v
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AdminRequired authenticates the admin session and stores the admin in context.
func AdminRequired(admins *service.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c, domain.AdminCookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Admin authentication required"})
			return
		}
		a, err := admins.Authenticate(c.Request.Context(), token)
		if err != nil {
			msg := "Invalid or expired admin session"
			if errors.Is(err, service.ErrAccountDisabled) {
				msg = "Admin account is deactivated"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}
		c.Set(ctxAdmin, a)
		c.Next()
	}
}

// UserRequired authenticates a site user session.
func UserRequired(users *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c, domain.UserCookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		u, err := users.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

// GetAdmin returns the admin stored by AdminRequired.
func GetAdmin(c *gin.Context) *models.Admin {
	v, _ := c.Get(ctxAdmin)
	a, _ := v.(*models.Admin)
	return a
}

func GetUser(c *gin.Context) *models.User {
	v, _ := c.Get(ctxUser)
	u, _ := v.(*models.User)
	return u
}
