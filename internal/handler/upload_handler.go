package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"gala/internal/service"
	"gala/pkg/imageproc"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadHandler struct {
	svc *service.UploadService
	log *zap.Logger
}

func NewUploadHandler(svc *service.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, log: log}
}

// UploadImage handles POST /api/upload/image. The multipart field is "image";
// quality, maxWidth, maxHeight, format and folder come from the query.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image file provided"})
		return
	}
	if file.Size > h.svc.MaxBytes() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false,
			"message": fmt.Sprintf("File size too large. Maximum size is %dMB", h.svc.MaxBytes()>>20)})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "could not read file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.svc.MaxBytes()+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "could not read file"})
		return
	}

	opts := imageproc.Options{
		Quality:   queryInt(c, "quality"),
		MaxWidth:  queryInt(c, "maxWidth"),
		MaxHeight: queryInt(c, "maxHeight"),
		Format:    strings.ToLower(c.Query("format")),
	}
	res, err := h.svc.UploadImage(c.Request.Context(), data, c.Query("folder"), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Image uploaded and compressed successfully",
		"url":      res.URL,
		"filename": res.Filename,
		"width":    res.Width,
		"height":   res.Height,
		"compression": gin.H{
			"originalSize":     res.OriginalSize,
			"compressedSize":   res.CompressedSize,
			"compressionRatio": strconv.Itoa(res.CompressionRatio) + "%",
			"savedBytes":       res.OriginalSize - res.CompressedSize,
		},
	})
}

// DeleteImage handles DELETE /api/upload/image/*filename. The reference may
// be a bare name or a folder-qualified path.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	ref := strings.TrimPrefix(c.Param("filename"), "/")
	if err := h.svc.DeleteImage(c.Request.Context(), ref); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted successfully"})
}

// fail renders err in the {success, message} envelope used by upload routes.
func (h *UploadHandler) fail(c *gin.Context, err error) {
	status, body := errorBody(c, h.log, err)
	body["success"] = false
	c.JSON(status, body)
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
