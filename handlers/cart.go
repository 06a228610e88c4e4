package handlers

import (
	"net/http"

	"vastra-backend/dtos"
	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

// getOrCreateCart returns the user's cart, creating it on first access.
func getOrCreateCart(db *gorm.DB, userID uuid.UUID) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return cart, err
	}

	cart = models.Cart{ID: uuid.New(), UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return cart, err
	}
	return cart, nil
}

// cartView loads the cart's items and computes subtotal and item count.
func cartView(db *gorm.DB, cart models.Cart) (dtos.CartView, error) {
	var items []models.CartItem
	if err := db.Preload("Product").Preload("Variant").
		Where("cart_id = ?", cart.ID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return dtos.CartView{}, err
	}

	var subtotal float64
	var itemCount int
	for _, item := range items {
		subtotal += utils.LineTotal(item.UnitPrice, item.Quantity)
		itemCount += item.Quantity
	}

	return dtos.CartView{
		ID:        cart.ID,
		Items:     items,
		Subtotal:  utils.FormatAmount(subtotal),
		ItemCount: itemCount,
	}, nil
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	view, err := cartView(h.DB, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		ProductID uuid.UUID  `json:"product_id" binding:"required"`
		VariantID *uuid.UUID `json:"variant_id"`
		Quantity  int        `json:"quantity"`
		SalePrice *float64   `json:"sale_price"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	// Quantity is clamped, never rejected
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.DB.Where("id = ? AND status = ?", req.ProductID, models.ProductStatusActive).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var variant *models.ProductVariant
	if req.VariantID != nil {
		var v models.ProductVariant
		if err := h.DB.Where("id = ? AND product_id = ?", req.VariantID, product.ID).First(&v).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}
		variant = &v
	}

	// Unit price snapshot: supplied sale price wins, otherwise the current
	// discounted variant/product price. Re-adding overwrites the stored
	// snapshot on the existing row.
	var unitPrice float64
	if req.SalePrice != nil {
		unitPrice = *req.SalePrice
	} else {
		unitPrice = utils.EffectivePrice(product.BasePrice(variant), product.DiscountPercent)
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	query := h.DB.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID)
	if req.VariantID != nil {
		query = query.Where("variant_id = ?", req.VariantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var cartItem models.CartItem
	err = query.First(&cartItem).Error

	if err == nil {
		cartItem.Quantity += req.Quantity
		cartItem.UnitPrice = utils.FormatAmount(unitPrice)
		h.DB.Save(&cartItem)
	} else {
		cartItem = models.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: product.ID,
			VariantID: req.VariantID,
			Quantity:  req.Quantity,
			UnitPrice: utils.FormatAmount(unitPrice),
		}
		if err := h.DB.Create(&cartItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
			return
		}
	}

	h.DB.Preload("Product").Preload("Variant").First(&cartItem, "id = ?", cartItem.ID)
	c.JSON(http.StatusCreated, cartItem)
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	var cartItem models.CartItem
	if err := h.DB.Where("id = ? AND cart_id = ?", id, cart.ID).First(&cartItem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	// A non-positive quantity means "remove the item"
	if *req.Quantity <= 0 {
		if err := h.DB.Delete(&cartItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	cartItem.Quantity = *req.Quantity
	h.DB.Save(&cartItem)

	h.DB.Preload("Product").Preload("Variant").First(&cartItem, "id = ?", cartItem.ID)
	c.JSON(http.StatusOK, cartItem)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	id := c.Param("id")
	if err := h.DB.Where("id = ? AND cart_id = ?", id, cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	if err := h.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
