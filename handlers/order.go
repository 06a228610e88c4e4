package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD%d", now.UnixMilli())
}

func newTrackingNumber() string {
	return fmt.Sprintf("TRK%08d", rand.Intn(100000000))
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var req struct {
		Shipping float64 `json:"shipping"`
	}
	// Body is optional; shipping defaults to 0.
	_ = c.ShouldBindJSON(&req)
	shipping := utils.CoerceShipping(req.Shipping)

	cart, err := getOrCreateCart(h.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	var cartItems []models.CartItem
	if err := h.DB.Preload("Product").Preload("Variant").
		Where("cart_id = ?", cart.ID).
		Order("created_at ASC").
		Find(&cartItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	// Default address, else the most recently created one
	var address models.Address
	err = h.DB.Where("user_id = ? AND is_default = ?", uid, true).First(&address).Error
	if err == gorm.ErrRecordNotFound {
		err = h.DB.Where("user_id = ?", uid).Order("created_at DESC").First(&address).Error
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No address on file"})
		return
	}

	var subtotal float64
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		subtotal += utils.LineTotal(item.UnitPrice, item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ID:          uuid.New(),
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	now := time.Now()
	order := models.Order{
		ID:             uuid.New(),
		UserID:         uid,
		OrderNumber:    newOrderNumber(now),
		TrackingNumber: newTrackingNumber(),
		Status:         models.OrderStatusPending,
		Subtotal:       utils.FormatAmount(subtotal),
		Shipping:       utils.FormatAmount(shipping),
		Total:          utils.FormatAmount(subtotal + shipping),
		AddressText:    address.Text(),
	}
	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}

	// Order, items, the seed tracking event and the cart clear are one
	// atomic unit.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.CreateInBatches(&orderItems, 100).Error; err != nil {
			return err
		}
		seed := models.OrderTracking{
			ID:      uuid.New(),
			OrderID: order.ID,
			Status:  models.TrackingMessage(models.OrderStatusPending),
			EventAt: now,
		}
		if err := tx.Create(&seed).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	h.DB.Preload("Items").Preload("User").First(&order, "id = ?", order.ID)

	h.DB.Create(&models.Notification{
		UserID:  uid,
		Type:    models.NotificationTypeOrder,
		Title:   "Order placed",
		Body:    fmt.Sprintf("Order %s has been placed.", order.OrderNumber),
		OrderID: &order.ID,
	})

	if order.User.Email != "" {
		utils.SendOrderConfirmation(order.User.Email, order.User.Name, order.OrderNumber, order.Total)
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := h.DB.Preload("Items").Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("user_id")
	userRole, _ := c.Get("user_role")

	query := h.DB.Preload("Items").Preload("Tracking", func(db *gorm.DB) *gorm.DB {
		return db.Order("event_at ASC")
	})

	roleStr, _ := userRole.(string)
	if roleStr == "seller" || roleStr == "admin" {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("id = ? AND user_id = ?", id, userID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetAdminOrders(c *gin.Context) {
	query := h.DB.Preload("Items").Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown status '%s'", req.Status)})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !models.IsValidTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status transition from '%s' to '%s'", order.Status, req.Status),
		})
		return
	}

	// Status write and tracking append are one atomic unit.
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderTracking{
			ID:      uuid.New(),
			OrderID: order.ID,
			Status:  models.TrackingMessage(req.Status),
			EventAt: time.Now(),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	h.DB.Preload("Items").Preload("User").First(&order, "id = ?", order.ID)

	h.DB.Create(&models.Notification{
		UserID:  order.UserID,
		Type:    models.NotificationTypeOrder,
		Title:   "Order update",
		Body:    models.TrackingMessage(req.Status),
		OrderID: &order.ID,
	})

	if order.User.Email != "" {
		utils.SendOrderStatusUpdate(order.User.Email, order.User.Name, order.OrderNumber, string(req.Status))
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrderTransitions(c *gin.Context) {
	c.JSON(http.StatusOK, models.AllowedTransitions)
}

func (h *OrderHandler) GetTracking(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("user_id")
	userRole, _ := c.Get("user_role")

	query := h.DB.Where("id = ?", id)
	roleStr, _ := userRole.(string)
	if roleStr != "seller" && roleStr != "admin" {
		query = query.Where("user_id = ?", userID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var events []models.OrderTracking
	if err := h.DB.Where("order_id = ?", order.ID).Order("event_at ASC").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tracking"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// AddTracking appends a free-form tracking event (seller/admin only).
// Events are never updated or deleted.
func (h *OrderHandler) AddTracking(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	event := models.OrderTracking{
		ID:      uuid.New(),
		OrderID: order.ID,
		Status:  req.Status,
		EventAt: time.Now(),
	}
	if err := h.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add tracking event"})
		return
	}

	c.JSON(http.StatusOK, event)
}
