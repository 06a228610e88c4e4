package handlers

import (
	"net/http"

	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleHandler struct {
	DB *gorm.DB
}

type saleRequest struct {
	Name          string      `json:"name" binding:"required"`
	Description   string      `json:"description"`
	DiscountType  string      `json:"discount_type" binding:"required"`
	DiscountValue float64     `json:"discount_value" binding:"required,gt=0,lt=100"`
	Status        string      `json:"status"`
	StartAt       *string     `json:"start_at"`
	EndAt         *string     `json:"end_at"`
	ProductIDs    []uuid.UUID `json:"product_ids" binding:"required,min=1"`
}

// applyDiscount writes the sale's percentage onto every linked product owned
// by the seller. A plain overwrite: it does not stack with other sales and is
// never reverted on deactivation.
func applyDiscount(tx *gorm.DB, sellerID uuid.UUID, productIDs []uuid.UUID, percent float64) error {
	return tx.Model(&models.Product{}).
		Where("id IN ? AND seller_id = ?", productIDs, sellerID).
		Update("discount_percent", percent).Error
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	sellerID := userID.(uuid.UUID)

	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.DiscountType != models.DiscountTypePercent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only percent discounts are supported"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.SaleStatusDraft
	}
	if status != models.SaleStatusDraft && status != models.SaleStatusActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be draft or active"})
		return
	}

	var ownedCount int64
	h.DB.Model(&models.Product{}).Where("id IN ? AND seller_id = ?", req.ProductIDs, sellerID).Count(&ownedCount)
	if ownedCount != int64(len(req.ProductIDs)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All products must belong to you"})
		return
	}

	sale := models.Sale{
		ID:            uuid.New(),
		SellerID:      sellerID,
		Name:          req.Name,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Status:        status,
	}
	sale.StartAt = parseOptionalTime(req.StartAt)
	sale.EndAt = parseOptionalTime(req.EndAt)

	items := make([]models.SaleItem, 0, len(req.ProductIDs))
	for _, pid := range req.ProductIDs {
		items = append(items, models.SaleItem{ID: uuid.New(), SaleID: sale.ID, ProductID: pid})
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		if status == models.SaleStatusActive {
			return applyDiscount(tx, sellerID, req.ProductIDs, req.DiscountValue)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		return
	}

	h.DB.Preload("Items").First(&sale, "id = ?", sale.ID)
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) UpdateSale(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	sellerID := userID.(uuid.UUID)
	id := c.Param("id")

	var sale models.Sale
	if err := h.DB.Where("id = ? AND seller_id = ?", id, sellerID).First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.DiscountType != models.DiscountTypePercent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only percent discounts are supported"})
		return
	}

	status := req.Status
	if status == "" {
		status = sale.Status
	}
	if status != models.SaleStatusDraft && status != models.SaleStatusActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be draft or active"})
		return
	}

	var ownedCount int64
	h.DB.Model(&models.Product{}).Where("id IN ? AND seller_id = ?", req.ProductIDs, sellerID).Count(&ownedCount)
	if ownedCount != int64(len(req.ProductIDs)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All products must belong to you"})
		return
	}

	sale.Name = req.Name
	sale.Description = req.Description
	sale.DiscountType = req.DiscountType
	sale.DiscountValue = req.DiscountValue
	sale.Status = status
	sale.StartAt = parseOptionalTime(req.StartAt)
	sale.EndAt = parseOptionalTime(req.EndAt)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&sale).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		items := make([]models.SaleItem, 0, len(req.ProductIDs))
		for _, pid := range req.ProductIDs {
			items = append(items, models.SaleItem{ID: uuid.New(), SaleID: sale.ID, ProductID: pid})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		// Deactivating does NOT clear discount_percent on products;
		// the last applied value sticks until overwritten.
		if status == models.SaleStatusActive {
			return applyDiscount(tx, sellerID, req.ProductIDs, req.DiscountValue)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sale"})
		return
	}

	h.DB.Preload("Items").First(&sale, "id = ?", sale.ID)
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) GetSales(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var sales []models.Sale
	if err := h.DB.Preload("Items").Where("seller_id = ?", userID).
		Order("created_at DESC").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) DeleteSale(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")

	var sale models.Sale
	if err := h.DB.Where("id = ? AND seller_id = ?", id, userID).First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	// Deleting a sale leaves product discount_percent values in place.
	if err := h.DB.Delete(&sale).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// saleProductView adds the effective price to each product in a public sale.
func saleProductView(item models.SaleItem, discount float64) gin.H {
	return gin.H{
		"product":         item.Product,
		"effective_price": utils.FormatAmount(utils.EffectivePrice(item.Product.Price, discount)),
	}
}

func (h *SaleHandler) GetPublicSales(c *gin.Context) {
	var sales []models.Sale
	if err := h.DB.Preload("Items.Product").Where("status = ?", models.SaleStatusActive).
		Order("created_at DESC").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	out := make([]gin.H, 0, len(sales))
	for _, sale := range sales {
		products := make([]gin.H, 0, len(sale.Items))
		for _, item := range sale.Items {
			if item.Product.Status != models.ProductStatusActive {
				continue
			}
			products = append(products, saleProductView(item, sale.DiscountValue))
		}
		out = append(out, gin.H{
			"id":             sale.ID,
			"name":           sale.Name,
			"description":    sale.Description,
			"discount_type":  sale.DiscountType,
			"discount_value": sale.DiscountValue,
			"start_at":       sale.StartAt,
			"end_at":         sale.EndAt,
			"products":       products,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *SaleHandler) GetPublicSale(c *gin.Context) {
	id := c.Param("id")

	var sale models.Sale
	if err := h.DB.Preload("Items.Product").
		Where("id = ? AND status = ?", id, models.SaleStatusActive).
		First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	products := make([]gin.H, 0, len(sale.Items))
	for _, item := range sale.Items {
		if item.Product.Status != models.ProductStatusActive {
			continue
		}
		products = append(products, saleProductView(item, sale.DiscountValue))
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             sale.ID,
		"name":           sale.Name,
		"description":    sale.Description,
		"discount_type":  sale.DiscountType,
		"discount_value": sale.DiscountValue,
		"start_at":       sale.StartAt,
		"end_at":         sale.EndAt,
		"products":       products,
	})
}
