package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SaleStatusDraft  = "draft"
	SaleStatusActive = "active"

	DiscountTypePercent = "percent"
)

// Sale is a percentage discount campaign over a set of products. Activating
// it writes DiscountValue onto each linked product's discount_percent.
// Deactivation deliberately leaves discount_percent untouched.
type Sale struct {
	ID            uuid.UUID      `gorm:"type:char(36);primary_key" json:"id"`
	SellerID      uuid.UUID      `gorm:"type:char(36);not null;index" json:"seller_id"`
	Seller        User           `gorm:"foreignKey:SellerID" json:"-"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	DiscountType  string         `gorm:"default:percent" json:"discount_type"`
	DiscountValue float64        `gorm:"not null" json:"discount_value"`
	Status        string         `gorm:"default:draft;index" json:"status"`
	StartAt       *time.Time     `json:"start_at,omitempty"`
	EndAt         *time.Time     `json:"end_at,omitempty"`
	Items         []SaleItem     `gorm:"foreignKey:SaleID" json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SaleItem struct {
	ID        uuid.UUID `gorm:"type:char(36);primary_key" json:"id"`
	SaleID    uuid.UUID `gorm:"type:char(36);not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:char(36);not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
