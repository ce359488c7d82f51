package handler

import (
	"net/http"
	"strings"

	"gala/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentHandler serves locale-resolved section content to the public site.
type ContentHandler struct {
	svc *service.ContentService
	log *zap.Logger
}

func NewContentHandler(svc *service.ContentService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, log: log}
}

// Get handles GET /api/content/:sectionName?lang=xx.
func (h *ContentHandler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("sectionName"), c.Query("lang"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setETag(c, res.Version)
	ok(c, http.StatusOK, res, "Content retrieved successfully")
}

// GetMany handles GET /api/content?names=a,b&lang=xx.
func (h *ContentHandler) GetMany(c *gin.Context) {
	res, err := h.svc.GetMany(c.Request.Context(), strings.Split(c.Query("names"), ","), c.Query("lang"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, res, "Content retrieved successfully")
}
