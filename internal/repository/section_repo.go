package repository

import (
	"context"
	"time"

	"gala/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// SectionPatch lists the columns a versioned update may change. Nil fields are left untouched.
type SectionPatch struct {
	Section *string
	Data    *datatypes.JSON
}

// List returns every section, newest first.
func (r *SectionRepository) List(ctx context.Context) ([]models.Section, error) {
	var list []models.Section
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&list).Error
	return list, err
}

func (r *SectionRepository) GetByID(ctx context.Context, id uint) (*models.Section, error) {
	var s models.Section
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) GetByName(ctx context.Context, name string) (*models.Section, error) {
	var s models.Section
	if err := r.db.WithContext(ctx).Where("section = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByNames returns the sections whose names are in names; missing names are skipped.
func (r *SectionRepository) GetByNames(ctx context.Context, names []string) ([]models.Section, error) {
	var list []models.Section
	if len(names) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("section IN ?", names).Find(&list).Error
	return list, err
}

// Create inserts s with version 1. A taken name yields ErrDuplicate.
func (r *SectionRepository) Create(ctx context.Context, s *models.Section) error {
	s.Version = 1
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

// UpdateVersioned applies p to the row only if its version still equals
// expected, bumping the version. It reports the number of rows changed;
// zero means the row is gone or was modified concurrently.
func (r *SectionRepository) UpdateVersioned(ctx context.Context, id uint, expected int64, p SectionPatch) (int64, error) {
	updates := map[string]interface{}{
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	}
	if p.Section != nil {
		updates["section"] = *p.Section
	}
	if p.Data != nil {
		updates["data"] = *p.Data
	}
	res := r.db.WithContext(ctx).Model(&models.Section{}).
		Where("id = ? AND version = ?", id, expected).
		Updates(updates)
	return res.RowsAffected, translate(res.Error)
}

func (r *SectionRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Section{}, id)
	return res.RowsAffected, res.Error
}
