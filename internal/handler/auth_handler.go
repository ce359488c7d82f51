package handler

import (
	"net/http"

	"gala/config"
	"gala/internal/domain"
	"gala/internal/middleware"
	"gala/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func setSessionCookie(c *gin.Context, cfg *config.JWTConfig, name, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, int(cfg.Expiry.Seconds()), "/", "", cfg.SecureCookies, true)
}

func clearSessionCookie(c *gin.Context, cfg *config.JWTConfig, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", cfg.SecureCookies, true)
}

// AuthHandler serves site user sign-up and sessions.
type AuthHandler struct {
	svc *service.AuthService
	cfg *config.JWTConfig
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, cfg *config.JWTConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg, log: log}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	u, err := h.svc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, u, "signup")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setSessionCookie(c, h.cfg, domain.UserCookieName, token)
	ok(c, http.StatusOK, gin.H{"user": u, "token": token}, "login")
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, h.cfg, domain.UserCookieName)
	ok(c, http.StatusOK, middleware.GetUser(c), "logout")
}

// ListUsers handles GET /api/users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	list, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, list, "Users retrieved successfully")
}

// GetUser handles GET /api/users/:id.
func (h *AuthHandler) GetUser(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	u, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, u, "User retrieved successfully")
}

// DeleteUser handles DELETE /api/users/:id.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
