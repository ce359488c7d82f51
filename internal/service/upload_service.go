package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"gala/internal/domain"
	"gala/pkg/imageproc"
	"gala/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultUploadFolder = "sector-items"

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var folderPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type UploadService struct {
	store     storage.Store
	maxBytes  int64
	maxPixels int64
	log       *zap.Logger
}

func NewUploadService(store storage.Store, maxImageMB int, maxPixels int64, log *zap.Logger) *UploadService {
	return &UploadService{store: store, maxBytes: int64(maxImageMB) << 20, maxPixels: maxPixels, log: log}
}

type UploadResult struct {
	URL              string `json:"url"`
	Filename         string `json:"filename"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	OriginalSize     int64  `json:"originalSize"`
	CompressedSize   int64  `json:"compressedSize"`
	CompressionRatio int    `json:"compressionRatio"`
}

// MaxBytes is the largest accepted upload.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// UploadImage validates, compresses and stores an image under folder.
func (s *UploadService) UploadImage(ctx context.Context, data []byte, folder string, opts imageproc.Options) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, domain.BadRequest("No image file provided")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, domain.BadRequest(fmt.Sprintf("File size too large. Maximum size is %dMB", s.maxBytes>>20))
	}
	if !isAllowedImage(data) {
		return nil, domain.BadRequest("Invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed")
	}
	if folder == "" {
		folder = DefaultUploadFolder
	}
	if !folderPattern.MatchString(folder) {
		return nil, domain.BadRequest("Invalid folder name")
	}

	opts.MaxPixels = s.maxPixels
	img, err := imageproc.Compress(bytes.NewReader(data), opts)
	if err != nil {
		s.log.Warn("image rejected", zap.Int("size", len(data)), zap.Error(err))
		return nil, domain.BadRequest("Image could not be processed")
	}
	filename := uuid.New().String() + img.Ext
	u, err := s.store.Put(ctx, folder+"/"+filename, bytes.NewReader(img.Data), img.ContentType)
	if err != nil {
		return nil, err
	}

	orig, comp := int64(len(data)), int64(len(img.Data))
	res := &UploadResult{
		URL:              u,
		Filename:         filename,
		Width:            img.Width,
		Height:           img.Height,
		OriginalSize:     orig,
		CompressedSize:   comp,
		CompressionRatio: int(math.Round(float64(orig-comp) / float64(orig) * 100)),
	}
	s.log.Info("image uploaded",
		zap.String("folder", folder), zap.String("filename", filename),
		zap.Int64("original_size", orig), zap.Int64("compressed_size", comp))
	return res, nil
}

// DeleteImage removes a stored image. ref may be a bare filename, folder/name
// or a full /uploads/images/folder/name path.
func (s *UploadService) DeleteImage(ctx context.Context, ref string) error {
	keys, err := imageKeys(ref)
	if err != nil {
		return err
	}
	for _, k := range keys {
		err := s.store.Delete(ctx, k)
		if err == nil {
			s.log.Info("image deleted", zap.String("key", k))
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	return domain.NotFound("Image not found or could not be deleted")
}

// imageKeys turns a client reference into candidate storage keys, rejecting
// anything that could escape the upload root.
func imageKeys(ref string) ([]string, error) {
	if dec, err := url.PathUnescape(ref); err == nil {
		ref = dec
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if strings.ContainsAny(ref, "\\\x00") {
		return nil, domain.BadRequest("Invalid file path")
	}
	var parts []string
	for _, p := range strings.Split(ref, "/") {
		switch p {
		case "":
			continue
		case ".", "..":
			return nil, domain.BadRequest("Invalid file path")
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return nil, domain.BadRequest("Filename is required")
	}
	name := parts[len(parts)-1]
	if len(parts) >= 2 {
		return []string{parts[len(parts)-2] + "/" + name}, nil
	}
	return []string{name, DefaultUploadFolder + "/" + name}, nil
}

func isAllowedImage(data []byte) bool {
	m := mimetype.Detect(data)
	for _, t := range allowedImageTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}
