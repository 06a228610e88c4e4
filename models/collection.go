package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collection is a seller-curated set of products ("Summer Edit" etc.).
type Collection struct {
	ID          uuid.UUID        `gorm:"type:char(36);primary_key" json:"id"`
	SellerID    uuid.UUID        `gorm:"type:char(36);not null;index" json:"seller_id"`
	Seller      User             `gorm:"foreignKey:SellerID" json:"-"`
	Name        string           `gorm:"not null" json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	IsPublished bool             `gorm:"default:false" json:"is_published"`
	Items       []CollectionItem `gorm:"foreignKey:CollectionID" json:"items"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CollectionItem struct {
	ID           uuid.UUID `gorm:"type:char(36);primary_key" json:"id"`
	CollectionID uuid.UUID `gorm:"type:char(36);not null;index" json:"collection_id"`
	ProductID    uuid.UUID `gorm:"type:char(36);not null;index" json:"product_id"`
	Product      Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Position     int       `gorm:"default:0" json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *CollectionItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
