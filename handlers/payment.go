package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"time"

	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"
)

// Gateway creates payment orders at the provider. Wrapped in an interface so
// tests can stub the network call.
type Gateway interface {
	CreateOrder(amountPaise int64, currency, receipt string) (string, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway() Gateway {
	return &razorpayGateway{
		client: razorpay.NewClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET")),
	}
}

func (g *razorpayGateway) CreateOrder(amountPaise int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}
	id, _ := order["id"].(string)
	return id, nil
}

// VerifySignature checks the Razorpay checkout signature:
// HMAC-SHA256(orderID|paymentID) under the key secret.
func VerifySignature(gatewayOrderID, gatewayPaymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type PaymentHandler struct {
	DB      *gorm.DB
	Gateway Gateway
}

// CreatePayment opens a gateway order for one of the caller's pending orders.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		OrderID uuid.UUID `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not awaiting payment"})
		return
	}

	amountPaise := utils.ToPaise(order.Total)
	gatewayOrderID, err := h.Gateway.CreateOrder(amountPaise, "INR", order.OrderNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	payment := models.Payment{
		ID:             uuid.New(),
		OrderID:        order.ID,
		UserID:         order.UserID,
		GatewayOrderID: gatewayOrderID,
		AmountPaise:    amountPaise,
		Currency:       "INR",
		Status:         models.PaymentStatusCreated,
	}
	if err := h.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":          payment,
		"gateway_order_id": gatewayOrderID,
		"amount_paise":     amountPaise,
		"currency":         "INR",
		"key_id":           os.Getenv("RAZORPAY_KEY_ID"),
	})
}

// VerifyPayment validates the checkout signature, captures the payment and
// confirms the order through the regular status machine path.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
		GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		Signature        string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var payment models.Payment
	if err := h.DB.Where("gateway_order_id = ? AND user_id = ?", req.GatewayOrderID, userID).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	if payment.Status == models.PaymentStatusCaptured {
		c.JSON(http.StatusOK, payment)
		return
	}

	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if !VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature, secret) {
		h.DB.Model(&payment).Updates(map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"failure_reason": "signature mismatch",
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ?", payment.OrderID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"status":             models.PaymentStatusCaptured,
			"gateway_payment_id": req.GatewayPaymentID,
			"gateway_signature":  req.Signature,
		}).Error; err != nil {
			return err
		}
		// Payment confirms a pending order; anything else leaves the
		// status alone.
		if models.IsValidTransition(order.Status, models.OrderStatusConfirmed) {
			if err := tx.Model(&order).Update("status", models.OrderStatusConfirmed).Error; err != nil {
				return err
			}
			return tx.Create(&models.OrderTracking{
				ID:      uuid.New(),
				OrderID: order.ID,
				Status:  "Payment received",
				EventAt: time.Now(),
			}).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify payment"})
		return
	}

	h.DB.Create(&models.Notification{
		UserID:  order.UserID,
		Type:    models.NotificationTypeOrder,
		Title:   "Payment received",
		Body:    fmt.Sprintf("Payment for order %s was successful.", order.OrderNumber),
		OrderID: &order.ID,
	})

	h.DB.First(&payment, "id = ?", payment.ID)
	c.JSON(http.StatusOK, payment)
}

// GetPayments lists the caller's payment records.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payments []models.Payment
	if err := h.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
