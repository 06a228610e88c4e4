package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeOrder = "order"
	NotificationTypeSale  = "sale"
)

// Notification is the in-app record only; push delivery happens elsewhere.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:char(36);primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;index" json:"user_id"`
	Type      string     `gorm:"default:order" json:"type"`
	Title     string     `gorm:"not null" json:"title"`
	Body      string     `json:"body"`
	OrderID   *uuid.UUID `gorm:"type:char(36)" json:"order_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
