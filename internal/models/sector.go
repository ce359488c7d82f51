package models

import "time"

// SectorItem is a top-level business sector (energy, infrastructure).
type SectorItem struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	Img           string              `gorm:"size:512" json:"img"`
	Label         string              `gorm:"size:255;not null" json:"label"`
	LabelRu       string              `gorm:"size:255" json:"label_ru"`
	Description   string              `gorm:"type:text" json:"description"`
	DescriptionRu string              `gorm:"type:text" json:"description_ru"`
	Type          string              `gorm:"size:20;not null;default:ENERGY;index" json:"type"` // ENERGY | INFRA
	Services      []SectorItemService `gorm:"foreignKey:SectorItemID" json:"services,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (SectorItem) TableName() string { return "sector_items" }

type SectorItemService struct {
	ID            uint                       `gorm:"primaryKey" json:"id"`
	Img           string                     `gorm:"size:512" json:"img"`
	BrandLogo     string                     `gorm:"size:512" json:"brand_logo"`
	Label         string                     `gorm:"size:255;not null" json:"label"`
	LabelRu       string                     `gorm:"size:255" json:"label_ru"`
	Description   string                     `gorm:"type:text" json:"description"`
	DescriptionRu string                     `gorm:"type:text" json:"description_ru"`
	SectorItemID  uint                       `gorm:"not null;index" json:"sector_item_id"`
	Details       []SectorItemServiceDetails `gorm:"foreignKey:SectorItemServiceID" json:"details,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

func (SectorItemService) TableName() string { return "sector_item_services" }

type SectorItemServiceDetails struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Title               string    `gorm:"size:255;not null" json:"title"`
	TitleRu             string    `gorm:"size:255" json:"title_ru"`
	Description         string    `gorm:"type:text" json:"description"`
	DescriptionRu       string    `gorm:"type:text" json:"description_ru"`
	ImageSrc            string    `gorm:"size:512" json:"image_src"`
	PdfURL              string    `gorm:"size:512" json:"pdf_url"`
	SectorItemServiceID uint      `gorm:"not null;index" json:"sector_item_service_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (SectorItemServiceDetails) TableName() string { return "sector_item_service_details" }
