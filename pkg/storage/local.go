package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local stores objects on disk under Root and serves them from URLPrefix.
type Local struct {
	Root      string // e.g. "uploads/images"
	URLPrefix string // e.g. "/uploads/images"
}

func NewLocal(root, urlPrefix string) *Local {
	return &Local{Root: root, URLPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *Local) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	full := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.URLPrefix + "/" + path.Clean(key), nil
}

func (s *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
