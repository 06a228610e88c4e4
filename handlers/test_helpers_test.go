package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"vastra-backend/middleware"
	"vastra-backend/models"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
	os.Setenv("RAZORPAY_KEY_SECRET", "test-razorpay-secret")

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	// Limit to 1 open connection to prevent SQLite concurrent access issues
	// with in-memory databases.
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := testDB.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Collection{},
		&models.CollectionItem{},
		&models.WishlistItem{},
		&models.Notification{},
		&models.Payment{},
	); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	code := m.Run()
	os.Exit(code)
}

// freshDB returns a clean database for each test by deleting all rows.
func freshDB() *gorm.DB {
	// Delete in correct order to respect foreign keys
	testDB.Exec("DELETE FROM payments")
	testDB.Exec("DELETE FROM notifications")
	testDB.Exec("DELETE FROM order_trackings")
	testDB.Exec("DELETE FROM order_items")
	testDB.Exec("DELETE FROM orders")
	testDB.Exec("DELETE FROM cart_items")
	testDB.Exec("DELETE FROM carts")
	testDB.Exec("DELETE FROM wishlist_items")
	testDB.Exec("DELETE FROM collection_items")
	testDB.Exec("DELETE FROM collections")
	testDB.Exec("DELETE FROM sale_items")
	testDB.Exec("DELETE FROM sales")
	testDB.Exec("DELETE FROM product_images")
	testDB.Exec("DELETE FROM product_variants")
	testDB.Exec("DELETE FROM products")
	testDB.Exec("DELETE FROM addresses")
	testDB.Exec("DELETE FROM users")
	return testDB
}

// seedTestUser creates a user with the given role and returns it along with a valid JWT token.
func seedTestUser(db *gorm.DB, email, role string) (models.User, string) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     "Test User",
		Role:     role,
	}
	db.Create(&user)

	token, _ := utils.GenerateToken(user.ID, user.Email, user.Role)
	return user, token
}

// seedProduct creates a test product owned by the given seller.
func seedProduct(db *gorm.DB, sellerID uuid.UUID, name string, price float64) models.Product {
	prod := models.Product{
		ID:       uuid.New(),
		SellerID: sellerID,
		Name:     name,
		Category: "women",
		Price:    price,
		Stock:    100,
		Status:   models.ProductStatusActive,
	}
	db.Create(&prod)
	return prod
}

// seedAddress creates a test address.
func seedAddress(db *gorm.DB, userID uuid.UUID, isDefault bool) models.Address {
	addr := models.Address{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     "Test Receiver",
		Line1:    "12 High Street",
		City:     "Mumbai",
		PostCode: "400001",
	}
	db.Create(&addr)
	// Explicitly update is_default to ensure false values are persisted,
	// since GORM may skip zero-value bools during Create.
	db.Model(&addr).Update("is_default", isDefault)
	addr.IsDefault = isDefault
	return addr
}

// seedCartItem puts an item with a fixed unit price into the user's cart.
func seedCartItem(db *gorm.DB, userID uuid.UUID, productID uuid.UUID, quantity int, unitPrice string) models.CartItem {
	cart, _ := getOrCreateCart(db, userID)
	item := models.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	db.Create(&item)
	return item
}

// seedOrder creates an order with one item in the given status.
func seedOrder(db *gorm.DB, userID uuid.UUID, status models.OrderStatus) models.Order {
	order := models.Order{
		ID:             uuid.New(),
		UserID:         userID,
		OrderNumber:    "ORD" + uuid.New().String()[:8],
		TrackingNumber: "TRK" + uuid.New().String()[:8],
		Status:         status,
		Subtotal:       "100.00",
		Shipping:       "0.00",
		Total:          "100.00",
		AddressText:    "Test Receiver, 12 High Street, Mumbai 400001",
	}
	db.Create(&order)
	db.Create(&models.OrderItem{
		ID:          uuid.New(),
		OrderID:     order.ID,
		ProductID:   uuid.New(),
		ProductName: "Seeded Product",
		Quantity:    1,
		UnitPrice:   "100.00",
	})
	db.Create(&models.OrderTracking{
		ID:      uuid.New(),
		OrderID: order.ID,
		Status:  models.TrackingMessage(status),
		EventAt: time.Now(),
	})
	return order
}

// authRequest builds a JSON request with a bearer token.
func authRequest(method, path string, body interface{}, token string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func parseResponseArray(w *httptest.ResponseRecorder) []map[string]interface{} {
	var resp []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func setupAuthRouter(db *gorm.DB, otp *utils.OTPStore) *gin.Engine {
	r := gin.New()
	h := &AuthHandler{DB: db, OTP: otp}
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/profile", middleware.AuthMiddleware(), h.GetProfile)
	r.POST("/api/auth/otp/request", h.RequestOTP)
	r.POST("/api/auth/otp/verify", h.VerifyOTP)
	return r
}

func setupCartRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &CartHandler{DB: db}
	auth := r.Group("/api", middleware.AuthMiddleware())
	auth.GET("/cart", h.GetCart)
	auth.POST("/cart/add", h.AddToCart)
	auth.PATCH("/cart/item/:id", h.UpdateCartItem)
	auth.DELETE("/cart/item/:id", h.RemoveFromCart)
	auth.DELETE("/cart/clear", h.ClearCart)
	return r
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &OrderHandler{DB: db}
	auth := r.Group("/api", middleware.AuthMiddleware())
	auth.POST("/orders", h.CreateOrder)
	auth.GET("/orders", h.GetOrders)
	auth.GET("/orders/transitions", h.GetOrderTransitions)
	auth.GET("/orders/:id", h.GetOrder)
	auth.GET("/orders/:id/tracking", h.GetTracking)
	auth.GET("/orders/:id/invoice", h.GetInvoice)
	auth.GET("/orders/:id/invoice/pdf", h.GetInvoicePDF)

	seller := r.Group("/api", middleware.AuthMiddleware(), middleware.SellerMiddleware())
	seller.GET("/orders/admin", h.GetAdminOrders)
	seller.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	seller.POST("/orders/:id/tracking", h.AddTracking)
	return r
}

func setupSaleRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &SaleHandler{DB: db}
	r.GET("/api/sales/public", h.GetPublicSales)
	r.GET("/api/sales/public/:id", h.GetPublicSale)

	seller := r.Group("/api", middleware.AuthMiddleware(), middleware.SellerMiddleware())
	seller.POST("/sales", h.CreateSale)
	seller.GET("/sales", h.GetSales)
	seller.PUT("/sales/:id", h.UpdateSale)
	seller.DELETE("/sales/:id", h.DeleteSale)
	return r
}

func setupAddressRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &AddressHandler{DB: db}
	auth := r.Group("/api", middleware.AuthMiddleware())
	auth.GET("/addresses", h.GetAddresses)
	auth.POST("/addresses", h.CreateAddress)
	auth.PUT("/addresses/:id", h.UpdateAddress)
	auth.PATCH("/addresses/:id/default", h.SetDefaultAddress)
	auth.DELETE("/addresses/:id", h.DeleteAddress)
	return r
}

func setupProductRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &ProductHandler{DB: db}
	r.GET("/api/products", h.GetProducts)
	r.GET("/api/products/:id", h.GetProduct)

	seller := r.Group("/api", middleware.AuthMiddleware(), middleware.SellerMiddleware())
	seller.POST("/products", h.CreateProduct)
	seller.PUT("/products/:id", h.UpdateProduct)
	seller.DELETE("/products/:id", h.DeleteProduct)
	seller.GET("/seller/products", h.GetSellerProducts)
	return r
}

func setupWishlistRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &WishlistHandler{DB: db}
	auth := r.Group("/api", middleware.AuthMiddleware())
	auth.GET("/wishlist", h.GetWishlist)
	auth.POST("/wishlist/:productId", h.AddToWishlist)
	auth.DELETE("/wishlist/:productId", h.RemoveFromWishlist)
	return r
}

func setupCollectionRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &CollectionHandler{DB: db}
	r.GET("/api/collections/public", h.GetPublicCollections)
	r.GET("/api/collections/public/:id", h.GetPublicCollection)

	seller := r.Group("/api", middleware.AuthMiddleware(), middleware.SellerMiddleware())
	seller.POST("/collections", h.CreateCollection)
	seller.GET("/collections", h.GetCollections)
	seller.PUT("/collections/:id", h.UpdateCollection)
	seller.DELETE("/collections/:id", h.DeleteCollection)
	return r
}

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &NotificationHandler{DB: db}
	auth := r.Group("/api", middleware.AuthMiddleware())
	auth.GET("/notifications", h.GetNotifications)
	auth.PATCH("/notifications/:id/read", h.MarkRead)
	auth.POST("/notifications/read-all", h.MarkAllRead)
	return r
}

// stubGateway fakes the payment provider.
type stubGateway struct {
	orderID string
	err     error
	calls   int
}

func (s *stubGateway) CreateOrder(amountPaise int64, currency, receipt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.orderID, nil
}

func setupPaymentRouter(db *gorm.DB, gw Gateway) *gin.Engine {
	r := gin.New()
	h := &PaymentHandler{DB: db, Gateway: gw}
	auth := r.Group("/api", middleware.AuthMiddleware())
	auth.POST("/payments/create", h.CreatePayment)
	auth.POST("/payments/verify", h.VerifyPayment)
	auth.GET("/payments", h.GetPayments)
	return r
}
