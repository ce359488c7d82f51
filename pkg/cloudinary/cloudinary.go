// Package cloudinary stores uploaded images in Cloudinary.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"gala/pkg/storage"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Optimized delivery params for the public site.
const (
	ImageQuality     = "auto"
	ImageFetchFormat = "auto"
)

// BuildOptimizedImageURL returns a delivery URL with automatic quality and format.
func BuildOptimizedImageURL(cloudName, publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_%s,f_%s/%s",
		cloudName, ImageQuality, ImageFetchFormat, publicID)
}

// uploadAPI is the subset of the SDK uploader the store needs.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Store implements storage.Store on top of the Cloudinary upload API. Keys
// map to public IDs under Folder with the file extension dropped.
type Store struct {
	cloudName string
	folder    string
	api       uploadAPI
}

var _ storage.Store = (*Store)(nil)

var overwrite = true

func (s *Store) publicID(key string) string {
	id := strings.TrimSuffix(key, path.Ext(key))
	if s.folder == "" {
		return id
	}
	return s.folder + "/" + id
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, _ string) (string, error) {
	res, err := s.api.Upload(ctx, r, uploader.UploadParams{
		PublicID:  s.publicID(key),
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	return BuildOptimizedImageURL(s.cloudName, res.PublicID), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: s.publicID(key)})
	if err != nil {
		return err
	}
	switch res.Result {
	case "ok":
		return nil
	case "not found":
		return storage.ErrNotFound
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return fmt.Errorf("cloudinary destroy: %s", res.Result)
}

// NewStoreFromParams builds a Store from Cloudinary cloud name, API key, and secret.
func NewStoreFromParams(cloudName, apiKey, apiSecret, folder string) (*Store, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{cloudName: cloudName, folder: strings.Trim(folder, "/"), api: up}, nil
}
