package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is lazily created on first access and emptied on order placement.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:char(36);primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem snapshots the unit price at add time as a 2-decimal string.
// At most one row exists per (cart, product, variant); re-adding increments
// the quantity and overwrites the snapshot price.
type CartItem struct {
	ID        uuid.UUID       `gorm:"type:char(36);primary_key" json:"id"`
	CartID    uuid.UUID       `gorm:"type:char(36);not null;index" json:"cart_id"`
	ProductID uuid.UUID       `gorm:"type:char(36);not null;index" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	VariantID *uuid.UUID      `gorm:"type:char(36);index" json:"variant_id,omitempty"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Quantity  int             `gorm:"default:1" json:"quantity"`
	UnitPrice string          `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
