package main

import (
	"fmt"
	"path"
	"path/filepath"

	"gala/config"
	"gala/internal/database"
	"gala/pkg/cloudinary"
	"gala/pkg/logger"
	"gala/pkg/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds what every subcommand needs.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func bootstrap() (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Upload.Driver == "cloudinary" {
		c := cfg.Cloudinary
		return cloudinary.NewStoreFromParams(c.CloudName, c.APIKey, c.APISecret, c.Folder)
	}
	return storage.NewLocal(filepath.Join(cfg.Upload.Root, "images"), path.Join(cfg.Upload.PublicPath, "images")), nil
}
