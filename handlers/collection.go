package handlers

import (
	"net/http"

	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionHandler struct {
	DB *gorm.DB
}

type collectionRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	IsPublished bool        `json:"is_published"`
	ProductIDs  []uuid.UUID `json:"product_ids"`
}

func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	sellerID := userID.(uuid.UUID)

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	collection := models.Collection{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
	}
	for i, pid := range req.ProductIDs {
		collection.Items = append(collection.Items, models.CollectionItem{
			ID:        uuid.New(),
			ProductID: pid,
			Position:  i,
		})
	}

	if err := h.DB.Create(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection"})
		return
	}

	c.JSON(http.StatusCreated, collection)
}

func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")

	var collection models.Collection
	if err := h.DB.Where("id = ? AND seller_id = ?", id, userID).First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	collection.Name = req.Name
	collection.Description = req.Description
	collection.ImageURL = req.ImageURL
	collection.IsPublished = req.IsPublished

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&collection).Error; err != nil {
			return err
		}
		if err := tx.Where("collection_id = ?", collection.ID).Delete(&models.CollectionItem{}).Error; err != nil {
			return err
		}
		if len(req.ProductIDs) == 0 {
			return nil
		}
		items := make([]models.CollectionItem, 0, len(req.ProductIDs))
		for i, pid := range req.ProductIDs {
			items = append(items, models.CollectionItem{
				ID:           uuid.New(),
				CollectionID: collection.ID,
				ProductID:    pid,
				Position:     i,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update collection"})
		return
	}

	h.DB.Preload("Items").First(&collection, "id = ?", collection.ID)
	c.JSON(http.StatusOK, collection)
}

func (h *CollectionHandler) GetCollections(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var collections []models.Collection
	if err := h.DB.Preload("Items").Where("seller_id = ?", userID).
		Order("created_at DESC").Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}

	c.JSON(http.StatusOK, collections)
}

func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")

	var collection models.Collection
	if err := h.DB.Where("id = ? AND seller_id = ?", id, userID).First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	if err := h.DB.Delete(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete collection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CollectionHandler) GetPublicCollections(c *gin.Context) {
	var collections []models.Collection
	if err := h.DB.Preload("Items.Product").Preload("Items.Product.Images").
		Where("is_published = ?", true).
		Order("created_at DESC").Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}

	c.JSON(http.StatusOK, collections)
}

func (h *CollectionHandler) GetPublicCollection(c *gin.Context) {
	id := c.Param("id")

	var collection models.Collection
	if err := h.DB.Preload("Items.Product").Preload("Items.Product.Images").
		Where("id = ? AND is_published = ?", id, true).
		First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	c.JSON(http.StatusOK, collection)
}
