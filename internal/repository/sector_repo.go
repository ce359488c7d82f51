package repository

import (
	"context"

	"gala/internal/models"

	"gorm.io/gorm"
)

// SectorRepository persists the sector item -> service -> details hierarchy.
type SectorRepository struct {
	db *gorm.DB
}

func NewSectorRepository(db *gorm.DB) *SectorRepository {
	return &SectorRepository{db: db}
}

// ListItems returns sector items with their services, optionally filtered by type.
func (r *SectorRepository) ListItems(ctx context.Context, itemType string) ([]models.SectorItem, error) {
	q := r.db.WithContext(ctx).Preload("Services")
	if itemType != "" {
		q = q.Where("type = ?", itemType)
	}
	var list []models.SectorItem
	err := q.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *SectorRepository) GetItem(ctx context.Context, id uint) (*models.SectorItem, error) {
	var it models.SectorItem
	if err := r.db.WithContext(ctx).Preload("Services").First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *SectorRepository) CreateItem(ctx context.Context, it *models.SectorItem) error {
	return r.db.WithContext(ctx).Omit("Services").Create(it).Error
}

func (r *SectorRepository) SaveItem(ctx context.Context, it *models.SectorItem) error {
	return r.db.WithContext(ctx).Omit("Services").Save(it).Error
}

// DeleteItem removes an item together with its services and their details in one transaction.
func (r *SectorRepository) DeleteItem(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		serviceIDs := tx.Model(&models.SectorItemService{}).Select("id").Where("sector_item_id = ?", id)
		if err := tx.Where("sector_item_service_id IN (?)", serviceIDs).Delete(&models.SectorItemServiceDetails{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sector_item_id = ?", id).Delete(&models.SectorItemService{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.SectorItem{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *SectorRepository) ListServices(ctx context.Context, itemID uint) ([]models.SectorItemService, error) {
	var list []models.SectorItemService
	err := r.db.WithContext(ctx).Preload("Details").Where("sector_item_id = ?", itemID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *SectorRepository) GetService(ctx context.Context, id uint) (*models.SectorItemService, error) {
	var s models.SectorItemService
	if err := r.db.WithContext(ctx).Preload("Details").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectorRepository) CreateService(ctx context.Context, s *models.SectorItemService) error {
	return r.db.WithContext(ctx).Omit("Details").Create(s).Error
}

func (r *SectorRepository) SaveService(ctx context.Context, s *models.SectorItemService) error {
	return r.db.WithContext(ctx).Omit("Details").Save(s).Error
}

// DeleteService removes a service and its details in one transaction.
func (r *SectorRepository) DeleteService(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sector_item_service_id = ?", id).Delete(&models.SectorItemServiceDetails{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.SectorItemService{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *SectorRepository) ListDetails(ctx context.Context, serviceID uint) ([]models.SectorItemServiceDetails, error) {
	var list []models.SectorItemServiceDetails
	err := r.db.WithContext(ctx).Where("sector_item_service_id = ?", serviceID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *SectorRepository) GetDetail(ctx context.Context, id uint) (*models.SectorItemServiceDetails, error) {
	var d models.SectorItemServiceDetails
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SectorRepository) CreateDetail(ctx context.Context, d *models.SectorItemServiceDetails) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *SectorRepository) SaveDetail(ctx context.Context, d *models.SectorItemServiceDetails) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *SectorRepository) DeleteDetail(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.SectorItemServiceDetails{}, id)
	return res.RowsAffected, res.Error
}
