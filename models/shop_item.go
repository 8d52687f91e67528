package models

import (
	"time"

	"gorm.io/gorm"
)

// ShopItem is an entry in the exclusive $GRIND shop (digital goods, virtual
// experiences). Seeded at startup; admin CRUD can come later.
type ShopItem struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"` // $GRIND
	ImageURL    string  `gorm:"type:text" json:"image_url"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
