package models

import (
	"time"

	"gorm.io/datatypes"
)

type Shop struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"uniqueIndex" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Category string `gorm:"size:50" json:"category"`
	Area     string `gorm:"size:100" json:"area"`
	Address  string `gorm:"size:255" json:"address"`

	// Maps link or similar external location reference.
	LocationURL string `gorm:"size:255" json:"location_url"`

	Services datatypes.JSON `gorm:"type:json" json:"services"`
	PhotoURL string         `gorm:"size:255" json:"photo_url"`

	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	Verified bool `gorm:"default:false" json:"verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
