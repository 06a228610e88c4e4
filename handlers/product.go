package handlers

import (
	"net/http"
	"strconv"

	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

type productRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Brand           string   `json:"brand"`
	Category        string   `json:"category"`
	Price           float64  `json:"price" binding:"required,gt=0"`
	Stock           int      `json:"stock"`
	DiscountPercent *float64 `json:"discount_percent"`
	Variants        []struct {
		Size  string   `json:"size"`
		Color string   `json:"color"`
		Price *float64 `json:"price"`
		Stock int      `json:"stock"`
	} `json:"variants"`
	ImageURLs []string `json:"image_urls"`
}

// productView decorates a product with its current effective price.
func productView(p models.Product) gin.H {
	return gin.H{
		"product":         p,
		"effective_price": utils.FormatAmount(utils.EffectivePrice(p.Price, p.DiscountPercent)),
	}
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	query := h.DB.Preload("Variants").Preload("Images").
		Where("status = ?", models.ProductStatusActive)

	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var products []models.Product
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, productView(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Preload("Variants").Preload("Images").
		Where("id = ? AND status = ?", id, models.ProductStatusActive).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, productView(product))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	product := models.Product{
		ID:          uuid.New(),
		SellerID:    userID.(uuid.UUID),
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Status:      models.ProductStatusActive,
	}
	if req.DiscountPercent != nil {
		product.DiscountPercent = *req.DiscountPercent
	}

	for _, v := range req.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			ID:    uuid.New(),
			Size:  v.Size,
			Color: v.Color,
			Price: v.Price,
			Stock: v.Stock,
		})
	}
	for i, url := range req.ImageURLs {
		product.Images = append(product.Images, models.ProductImage{
			ID:        uuid.New(),
			ImageURL:  url,
			IsPrimary: i == 0,
		})
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ? AND seller_id = ?", id, userID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Brand = req.Brand
	product.Category = req.Category
	product.Price = req.Price
	product.Stock = req.Stock
	if req.DiscountPercent != nil {
		product.DiscountPercent = *req.DiscountPercent
	}

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.DB.Preload("Variants").Preload("Images").First(&product, "id = ?", product.ID)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes when the product appears in any order, so
// historical order items keep a valid reference; otherwise it is removed
// outright.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ? AND seller_id = ?", id, userID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var orderItemCount int64
	h.DB.Model(&models.OrderItem{}).Where("product_id = ?", product.ID).Count(&orderItemCount)

	if orderItemCount > 0 {
		if err := h.DB.Model(&product).Update("status", models.ProductStatusDeleted).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "soft_deleted": true})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&product).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "soft_deleted": false})
}

// GetSellerProducts lists the caller's own products including soft-deleted
// ones, for the dashboard.
func (h *ProductHandler) GetSellerProducts(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var products []models.Product
	if err := h.DB.Preload("Variants").Preload("Images").
		Where("seller_id = ?", userID).
		Order("created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
