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

type AdminHandler struct {
	svc *service.AdminAuthService
	cfg *config.JWTConfig
	log *zap.Logger
}

func NewAdminHandler(svc *service.AdminAuthService, cfg *config.JWTConfig, log *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, cfg: cfg, log: log}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	a, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setSessionCookie(c, h.cfg, domain.AdminCookieName, token)
	h.log.Info("admin login", zap.Uint("admin_id", a.ID), zap.String("ip", c.ClientIP()))
	ok(c, http.StatusOK, gin.H{"admin": a, "token": token}, "admin login successful")
}

// Logout handles POST /api/admin/logout.
func (h *AdminHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, h.cfg, domain.AdminCookieName)
	c.JSON(http.StatusOK, gin.H{"message": "admin logout successful"})
}

// Profile handles GET /api/admin/profile.
func (h *AdminHandler) Profile(c *gin.Context) {
	ok(c, http.StatusOK, middleware.GetAdmin(c), "admin profile")
}

// Create handles POST /api/admin/create.
func (h *AdminHandler) Create(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	a, err := h.svc.Create(c.Request.Context(), service.CreateAdminInput{
		Email: req.Email, Password: req.Password, Name: req.Name, Role: req.Role,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, a, "Admin created successfully")
}

// List handles GET /api/admin/list.
func (h *AdminHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, list, "Admins retrieved successfully")
}

// SetStatus handles PATCH /api/admin/:id/status.
func (h *AdminHandler) SetStatus(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "is_active is required")
		return
	}
	actor := middleware.GetAdmin(c)
	a, err := h.svc.SetActive(c.Request.Context(), actor, id, *req.IsActive)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.Info("admin status changed",
		zap.Uint("admin_id", a.ID), zap.Bool("is_active", a.IsActive), zap.Uint("by", actor.ID))
	ok(c, http.StatusOK, a, "Admin status updated successfully")
}
