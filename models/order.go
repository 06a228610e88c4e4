package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusProcessing      OrderStatus = "processing"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusOutForDelivery  OrderStatus = "out_for_delivery"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusReturnRequested OrderStatus = "return_requested"
	OrderStatusReturnApproved  OrderStatus = "return_approved"
	OrderStatusReturnPicked    OrderStatus = "return_picked"
	OrderStatusRefunded        OrderStatus = "refunded"
)

// Order is an immutable snapshot of a checkout. Money fields are stored as
// 2-decimal strings taken at creation time; only Status changes afterwards.
type Order struct {
	ID             uuid.UUID       `gorm:"type:char(36);primary_key" json:"id"`
	UserID         uuid.UUID       `gorm:"type:char(36);not null;index" json:"user_id"`
	User           User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderNumber    string          `gorm:"uniqueIndex;not null" json:"order_number"`
	TrackingNumber string          `gorm:"uniqueIndex;not null" json:"tracking_number"`
	Status         OrderStatus     `gorm:"default:pending;index" json:"status"`
	Subtotal       string          `gorm:"not null" json:"subtotal"`
	Shipping       string          `gorm:"not null" json:"shipping"`
	Total          string          `gorm:"not null" json:"total"`
	AddressText    string          `gorm:"not null" json:"address_text"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Tracking       []OrderTracking `gorm:"foreignKey:OrderID" json:"tracking,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a frozen copy of a cart item at order time.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"type:char(36);primary_key" json:"id"`
	OrderID     uuid.UUID  `gorm:"type:char(36);not null;index" json:"order_id"`
	ProductID   uuid.UUID  `gorm:"type:char(36);not null;index" json:"product_id"`
	VariantID   *uuid.UUID `gorm:"type:char(36)" json:"variant_id,omitempty"`
	ProductName string     `gorm:"not null" json:"product_name"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	UnitPrice   string     `gorm:"not null" json:"unit_price"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// OrderTracking is an append-only log entry. Rows are never updated or
// deleted.
type OrderTracking struct {
	ID      uuid.UUID `gorm:"type:char(36);primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:char(36);not null;index" json:"order_id"`
	Status  string    `gorm:"not null" json:"status"`
	EventAt time.Time `gorm:"not null" json:"event_at"`
}

func (t *OrderTracking) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// AllowedTransitions defines the valid order status state machine, including
// the return/refund branch. It is enforced server-side on every status update
// and exposed to clients so the dashboard dropdown and the API cannot drift.
var AllowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:         {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:         {OrderStatusOutForDelivery, OrderStatusDelivered},
	OrderStatusOutForDelivery:  {OrderStatusDelivered},
	OrderStatusDelivered:       {OrderStatusReturnRequested},
	OrderStatusReturnRequested: {OrderStatusReturnApproved, OrderStatusDelivered},
	OrderStatusReturnApproved:  {OrderStatusReturnPicked},
	OrderStatusReturnPicked:    {OrderStatusRefunded},
	OrderStatusCancelled:       {},
	OrderStatusRefunded:        {},
}

// IsValidTransition checks if a status transition is allowed.
func IsValidTransition(from, to OrderStatus) bool {
	allowed, exists := AllowedTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is part of the status vocabulary at all.
func IsValidStatus(s OrderStatus) bool {
	_, ok := AllowedTransitions[s]
	return ok
}

var trackingMessages = map[OrderStatus]string{
	OrderStatusPending:         "Order placed",
	OrderStatusConfirmed:       "Order confirmed by seller",
	OrderStatusProcessing:      "Order is being processed",
	OrderStatusShipped:         "Order shipped",
	OrderStatusOutForDelivery:  "Out for delivery",
	OrderStatusDelivered:       "Order delivered",
	OrderStatusCancelled:       "Order cancelled",
	OrderStatusReturnRequested: "Return requested",
	OrderStatusReturnApproved:  "Return approved",
	OrderStatusReturnPicked:    "Return picked up",
	OrderStatusRefunded:        "Refund issued",
}

// TrackingMessage returns the human-readable tracking line for a status,
// falling back to a generic message for anything unmapped.
func TrackingMessage(s OrderStatus) string {
	if msg, ok := trackingMessages[s]; ok {
		return msg
	}
	return "Status updated to " + string(s)
}
