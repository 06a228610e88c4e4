package handlers

import (
	"net/http"

	"vastra-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var items []models.WishlistItem
	if err := h.DB.Preload("Product").Preload("Product.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddToWishlist is idempotent: re-adding an item returns the existing row.
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ? AND status = ?", productID, models.ProductStatusActive).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var item models.WishlistItem
	err = h.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		c.JSON(http.StatusOK, item)
		return
	}

	item = models.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID.(uuid.UUID),
		ProductID: productID,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
		return
	}

	h.DB.Preload("Product").First(&item, "id = ?", item.ID)
	c.JSON(http.StatusCreated, item)
}

func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID := c.Param("productId")
	if err := h.DB.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
