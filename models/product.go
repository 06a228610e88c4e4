package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductStatusActive  = "active"
	ProductStatusDeleted = "deleted"
)

type Product struct {
	ID              uuid.UUID        `gorm:"type:char(36);primary_key" json:"id"`
	SellerID        uuid.UUID        `gorm:"type:char(36);not null;index" json:"seller_id"`
	Seller          User             `gorm:"foreignKey:SellerID" json:"-"`
	Name            string           `gorm:"not null;index" json:"name"`
	Description     string           `json:"description"`
	Brand           string           `json:"brand"`
	Category        string           `gorm:"index" json:"category"` // men, women, kids, accessories
	Price           float64          `gorm:"not null" json:"price"`
	DiscountPercent float64          `gorm:"default:0" json:"discount_percent"`
	Stock           int              `gorm:"default:0" json:"stock"`
	Status          string           `gorm:"default:active;index" json:"status"`
	Variants        []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Images          []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductVariant is a size/color option. A nil Price falls back to the
// product's own price.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:char(36);primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:char(36);not null;index" json:"product_id"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Price     *float64  `json:"price,omitempty"`
	Stock     int       `gorm:"default:0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:char(36);primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:char(36);not null;index" json:"product_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BasePrice returns the undiscounted unit price for a product/variant pair.
func (p *Product) BasePrice(variant *ProductVariant) float64 {
	if variant != nil && variant.Price != nil {
		return *variant.Price
	}
	return p.Price
}
