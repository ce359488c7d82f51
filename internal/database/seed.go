package database

import (
	"context"
	"errors"
	"strings"

	"gala/config"
	"gala/internal/domain"
	"gala/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the bootstrap super admin when credentials are configured
// and the admins table is empty.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg config.AdminSeedConfig, log *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}
	var count int64
	if err := db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a := &models.Admin{
		Email:        strings.ToLower(cfg.Email),
		PasswordHash: string(hash),
		Name:         cfg.Name,
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return err
	}
	log.Info("seeded bootstrap admin", zap.String("email", a.Email))
	return nil
}

type seedDetail struct {
	Title, Description, ImageSrc, PdfURL string
}

var completionDetails = []seedDetail{
	{Title: "Liner Hanger", Description: "Compliance to damaged or deformed casings, enhanced reliability for the life of the well", ImageSrc: "completionS1.jpg"},
	{Title: "Tieback Liner", Description: "Ensure reliability and efficiency while simplifying well construction", ImageSrc: "completionS2.jpg"},
	{Title: "Advanced Well Architecture", Description: "The AWA system provides zonal isolation and zonal control for an open hole intelligent completion", ImageSrc: "completionS3.jpg"},
	{Title: "Well Construction & Integrity", Description: "Eliminate sustained casing pressure via enhanced well integrity", ImageSrc: "completionS4.jpg"},
	{Title: "Inner-String Packer", Description: "Create a reliable and high-integrity seal", ImageSrc: "completionS5.jpg"},
	{Title: "Zonal Isolation", Description: "Enhanced zonal isolation within the reservoir", ImageSrc: "completionS6.jpg"},
	{Title: "Zonal Control", Description: "Optimize well delivery in changing reservoir conditions", ImageSrc: "completionS7.jpg"},
	{Title: "Well Abandonment", Description: "Enhance well construction for CAPEX effective P&A", ImageSrc: "completionS8.jpg",
		PdfURL: "https://turkmengala.com/admin/storage/item_feature/pdf/vUVVLUv7gzBjnSS75U6NidTrRhjsghwdOJjOaLzz.pdf"},
	{Title: "CARBON CAPTURE AND STORAGE", Description: "To reduce CO2 emissions in the atmosphere and mitigate climate change", ImageSrc: "completionS9.jpg"},
}

// ErrAlreadySeeded is returned by SeedSectors when sector items already exist.
var ErrAlreadySeeded = errors.New("sector items already present")

// SeedSectors inserts a sample energy sector with one service and its
// completion details. It refuses to run against a non-empty table.
func SeedSectors(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.SectorItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrAlreadySeeded
	}
	item := models.SectorItem{
		Label:       "Oil & Gas",
		LabelRu:     "Нефть и газ",
		Description: "Upstream services for the energy sector",
		Type:        domain.SectorTypeEnergy,
		Services: []models.SectorItemService{{
			Label:       "Completion",
			LabelRu:     "Заканчивание скважин",
			Description: "Well completion systems",
		}},
	}
	for _, d := range completionDetails {
		item.Services[0].Details = append(item.Services[0].Details, models.SectorItemServiceDetails{
			Title:       d.Title,
			Description: d.Description,
			ImageSrc:    d.ImageSrc,
			PdfURL:      d.PdfURL,
		})
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return 0, err
	}
	return len(completionDetails), nil
}
