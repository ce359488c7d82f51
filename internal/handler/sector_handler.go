package handler

import (
	"net/http"
	"strconv"

	"gala/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SectorHandler exposes the sector item / service / detail hierarchy.
type SectorHandler struct {
	svc *service.SectorService
	log *zap.Logger
}

func NewSectorHandler(svc *service.SectorService, log *zap.Logger) *SectorHandler {
	return &SectorHandler{svc: svc, log: log}
}

// ListItems handles GET /api/sector-items?type=ENERGY.
func (h *SectorHandler) ListItems(c *gin.Context) {
	list, err := h.svc.ListItems(c.Request.Context(), c.Query("type"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, list, "Sector items retrieved successfully")
}

// GetItem handles GET /api/sector-items/:id.
func (h *SectorHandler) GetItem(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	it, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, it, "Sector item retrieved successfully")
}

// CreateItem handles POST /api/sector-items.
func (h *SectorHandler) CreateItem(c *gin.Context) {
	var in service.SectorItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	it, err := h.svc.CreateItem(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, it, "Sector item created successfully")
}

// UpdateItem handles PUT /api/sector-items/:id.
func (h *SectorHandler) UpdateItem(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var in service.SectorItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	it, err := h.svc.UpdateItem(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, it, "Sector item updated successfully")
}

// DeleteItem handles DELETE /api/sector-items/:id.
func (h *SectorHandler) DeleteItem(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListServices handles GET /api/sector-item-services?sectorItemId=1.
func (h *SectorHandler) ListServices(c *gin.Context) {
	itemID, valid := queryID(c, "sectorItemId")
	if !valid {
		return
	}
	list, err := h.svc.ListServices(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, list, "Sector item services retrieved successfully")
}

func (h *SectorHandler) GetService(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	svc, err := h.svc.GetService(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, svc, "Sector item service retrieved successfully")
}

func (h *SectorHandler) CreateService(c *gin.Context) {
	var in service.SectorServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	svc, err := h.svc.CreateService(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, svc, "Sector item service created successfully")
}

func (h *SectorHandler) UpdateService(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var in service.SectorServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	svc, err := h.svc.UpdateService(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, svc, "Sector item service updated successfully")
}

func (h *SectorHandler) DeleteService(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.DeleteService(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDetails handles GET /api/sector-item-service-details?sectorItemServiceId=1.
func (h *SectorHandler) ListDetails(c *gin.Context) {
	serviceID, valid := queryID(c, "sectorItemServiceId")
	if !valid {
		return
	}
	list, err := h.svc.ListDetails(c.Request.Context(), serviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, list, "Sector item service details retrieved successfully")
}

func (h *SectorHandler) GetDetail(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	d, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, d, "Sector item service detail retrieved successfully")
}

func (h *SectorHandler) CreateDetail(c *gin.Context) {
	var in service.SectorDetailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	d, err := h.svc.CreateDetail(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, d, "Sector item service detail created successfully")
}

func (h *SectorHandler) UpdateDetail(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var in service.SectorDetailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	d, err := h.svc.UpdateDetail(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, d, "Sector item service detail updated successfully")
}

func (h *SectorHandler) DeleteDetail(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.DeleteDetail(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		badRequest(c, name+" query parameter must be a number")
		return 0, false
	}
	return uint(id), true
}
