package models

import (
	"time"

	"gorm.io/datatypes"
)

// Section is a named, schema-less JSON document edited through the CMS.
type Section struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Section   string         `gorm:"uniqueIndex;size:255;not null" json:"section"`
	Data      datatypes.JSON `gorm:"not null" json:"data"`
	Version   int64          `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Section) TableName() string { return "sections" }
