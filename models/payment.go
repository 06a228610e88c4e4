package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusCreated  = "created"
	PaymentStatusCaptured = "captured"
	PaymentStatusFailed   = "failed"
)

// Payment records one Razorpay checkout attempt for an order.
type Payment struct {
	ID                uuid.UUID `gorm:"type:char(36);primary_key" json:"id"`
	OrderID           uuid.UUID `gorm:"type:char(36);not null;index" json:"order_id"`
	Order             Order     `gorm:"foreignKey:OrderID" json:"-"`
	UserID            uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	GatewayOrderID    string    `gorm:"index" json:"gateway_order_id"`
	GatewayPaymentID  string    `json:"gateway_payment_id"`
	GatewaySignature  string    `json:"-"`
	AmountPaise       int64     `gorm:"not null" json:"amount_paise"`
	Currency          string    `gorm:"default:INR" json:"currency"`
	Status            string    `gorm:"default:created;index" json:"status"`
	FailureReason     string    `json:"failure_reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
