package handlers

import (
	"net/http"

	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressHandler struct {
	DB *gorm.DB
}

type addressRequest struct {
	Label     string `json:"label"`
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	PostCode  string `json:"post_code" binding:"required"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// setDefaultLocked clears every sibling default and flags the target in one
// transaction, so exactly one default survives concurrent writers.
func setDefaultLocked(tx *gorm.DB, userID, addressID uuid.UUID) error {
	if err := tx.Model(&models.Address{}).
		Where("user_id = ? AND id <> ?", userID, addressID).
		Update("is_default", false).Error; err != nil {
		return err
	}
	return tx.Model(&models.Address{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Update("is_default", true).Error
}

func (h *AddressHandler) GetAddresses(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var addresses []models.Address
	if err := h.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&addresses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}

	c.JSON(http.StatusOK, addresses)
}

func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	address := models.Address{
		ID:       uuid.New(),
		UserID:   uid,
		Label:    req.Label,
		Name:     req.Name,
		Phone:    req.Phone,
		Line1:    req.Line1,
		Line2:    req.Line2,
		City:     req.City,
		State:    req.State,
		PostCode: req.PostCode,
		Country:  req.Country,
	}

	// The first address becomes the default automatically.
	var count int64
	h.DB.Model(&models.Address{}).Where("user_id = ?", uid).Count(&count)
	makeDefault := req.IsDefault || count == 0

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&address).Error; err != nil {
			return err
		}
		if makeDefault {
			return setDefaultLocked(tx, uid, address.ID)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}

	h.DB.First(&address, "id = ?", address.ID)
	c.JSON(http.StatusCreated, address)
}

func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)
	id := c.Param("id")

	var address models.Address
	if err := h.DB.Where("id = ? AND user_id = ?", id, uid).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	address.Label = req.Label
	address.Name = req.Name
	address.Phone = req.Phone
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostCode = req.PostCode
	if req.Country != "" {
		address.Country = req.Country
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&address).Error; err != nil {
			return err
		}
		if req.IsDefault {
			return setDefaultLocked(tx, uid, address.ID)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	h.DB.First(&address, "id = ?", address.ID)
	c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) SetDefaultAddress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)
	id := c.Param("id")

	var address models.Address
	if err := h.DB.Where("id = ? AND user_id = ?", id, uid).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		return setDefaultLocked(tx, uid, address.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default address"})
		return
	}

	h.DB.First(&address, "id = ?", address.ID)
	c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")

	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
