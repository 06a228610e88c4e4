package dtos

import (
	"github.com/google/uuid"

	"vastra-backend/models"
)

// CartView is the computed cart response: raw items plus derived totals.
type CartView struct {
	ID        uuid.UUID         `json:"id"`
	Items     []models.CartItem `json:"items"`
	Subtotal  string            `json:"subtotal"`
	ItemCount int               `json:"item_count"`
}

// InvoiceLine is one row of the JSON invoice.
type InvoiceLine struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// Invoice is the JSON rendering of an order invoice.
type Invoice struct {
	OrderNumber    string        `json:"order_number"`
	TrackingNumber string        `json:"tracking_number"`
	IssuedAt       string        `json:"issued_at"`
	AddressText    string        `json:"address_text"`
	Lines          []InvoiceLine `json:"lines"`
	Subtotal       string        `json:"subtotal"`
	Shipping       string        `json:"shipping"`
	Total          string        `json:"total"`
}
