package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"gala/internal/jsontree"
	"gala/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SectionHandler struct {
	svc *service.SectionService
	log *zap.Logger
}

func NewSectionHandler(svc *service.SectionService, log *zap.Logger) *SectionHandler {
	return &SectionHandler{svc: svc, log: log}
}

type createSectionRequest struct {
	Section string          `json:"section"`
	Data    json.RawMessage `json:"data"`
}

type updateSectionRequest struct {
	Section *string         `json:"section"`
	Data    json.RawMessage `json:"data"`
	Version *int64          `json:"version"`
}

type editFieldsRequest struct {
	Locale  string          `json:"locale"`
	Version *int64          `json:"version"`
	Edits   []jsontree.Edit `json:"edits"`
}

// List handles GET /api/sections.
func (h *SectionHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, list, "Sections retrieved successfully")
}

// Get handles GET /api/sections/:id.
func (h *SectionHandler) Get(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	sec, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setETag(c, sec.Version)
	ok(c, http.StatusOK, sec, "Section retrieved successfully")
}

// GetByName handles GET /api/sections/name/:sectionName.
func (h *SectionHandler) GetByName(c *gin.Context) {
	sec, err := h.svc.GetByName(c.Request.Context(), c.Param("sectionName"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setETag(c, sec.Version)
	ok(c, http.StatusOK, sec, "Section retrieved successfully")
}

// Create handles POST /api/sections.
func (h *SectionHandler) Create(c *gin.Context) {
	var req createSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	sec, err := h.svc.Create(c.Request.Context(), service.CreateSectionInput{Section: req.Section, Data: omitNull(req.Data)})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setETag(c, sec.Version)
	ok(c, http.StatusCreated, sec, "Section created successfully")
}

// Update handles PUT /api/sections/:id. data replaces the stored document.
func (h *SectionHandler) Update(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req updateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	expected, err := readExpectedVersion(c, req.Version)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	sec, err := h.svc.Update(c.Request.Context(), id, service.UpdateSectionInput{
		Section:         req.Section,
		Data:            omitNull(req.Data),
		ExpectedVersion: expected,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setETag(c, sec.Version)
	ok(c, http.StatusOK, sec, "Section updated successfully")
}

// Delete handles DELETE /api/sections/:id.
func (h *SectionHandler) Delete(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
}

// Form handles GET /api/sections/:id/form?locale=en.
func (h *SectionHandler) Form(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	form, err := h.svc.Form(c.Request.Context(), id, c.Query("locale"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setETag(c, form.Version)
	ok(c, http.StatusOK, form, "Section form retrieved successfully")
}

// EditFields handles PATCH /api/sections/:id/fields.
func (h *SectionHandler) EditFields(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req editFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	expected, err := readExpectedVersion(c, req.Version)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	sec, err := h.svc.ApplyEdits(c.Request.Context(), id, req.Locale, expected, req.Edits)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	setETag(c, sec.Version)
	ok(c, http.StatusOK, sec, "Section updated successfully")
}

// omitNull treats an explicit JSON null like an absent field.
func omitNull(raw json.RawMessage) json.RawMessage {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}
