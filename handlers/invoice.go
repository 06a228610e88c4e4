package handlers

import (
	"fmt"
	"net/http"

	"vastra-backend/dtos"
	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
)

// loadInvoiceOrder fetches an order with its items, scoped to the caller
// unless they are a seller or admin.
func (h *OrderHandler) loadInvoiceOrder(c *gin.Context) (*models.Order, bool) {
	id := c.Param("id")
	userID, _ := c.Get("user_id")
	userRole, _ := c.Get("user_role")

	query := h.DB.Preload("Items")
	roleStr, _ := userRole.(string)
	if roleStr == "seller" || roleStr == "admin" {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("id = ? AND user_id = ?", id, userID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	return &order, true
}

func (h *OrderHandler) GetInvoice(c *gin.Context) {
	order, ok := h.loadInvoiceOrder(c)
	if !ok {
		return
	}

	lines := make([]dtos.InvoiceLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, dtos.InvoiceLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   utils.FormatAmount(utils.LineTotal(item.UnitPrice, item.Quantity)),
		})
	}

	c.JSON(http.StatusOK, dtos.Invoice{
		OrderNumber:    order.OrderNumber,
		TrackingNumber: order.TrackingNumber,
		IssuedAt:       order.CreatedAt.Format("2006-01-02"),
		AddressText:    order.AddressText,
		Lines:          lines,
		Subtotal:       order.Subtotal,
		Shipping:       order.Shipping,
		Total:          order.Total,
	})
}

func (h *OrderHandler) GetInvoicePDF(c *gin.Context) {
	order, ok := h.loadInvoiceOrder(c)
	if !ok {
		return
	}

	pdf, err := utils.RenderInvoicePDF(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", order.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
