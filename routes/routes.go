package routes

import (
	"time"

	"vastra-backend/handlers"
	"vastra-backend/middleware"
	"vastra-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, gateway handlers.Gateway) {
	// Initialize handlers
	otpStore := utils.NewOTPStore(5 * time.Minute)
	authHandler := &handlers.AuthHandler{DB: db, OTP: otpStore}
	productHandler := &handlers.ProductHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db}
	saleHandler := &handlers.SaleHandler{DB: db}
	addressHandler := &handlers.AddressHandler{DB: db}
	collectionHandler := &handlers.CollectionHandler{DB: db}
	wishlistHandler := &handlers.WishlistHandler{DB: db}
	notificationHandler := &handlers.NotificationHandler{DB: db}
	paymentHandler := &handlers.PaymentHandler{DB: db, Gateway: gateway}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)
		api.POST("/auth/otp/request", authLimiter.Middleware(), authHandler.RequestOTP)
		api.POST("/auth/otp/verify", authLimiter.Middleware(), authHandler.VerifyOTP)

		// Public catalog
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		// Public sales
		api.GET("/sales/public", saleHandler.GetPublicSales)
		api.GET("/sales/public/:id", saleHandler.GetPublicSale)

		// Public collections
		api.GET("/collections/public", collectionHandler.GetPublicCollections)
		api.GET("/collections/public/:id", collectionHandler.GetPublicCollection)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// User profile
		protected.GET("/auth/profile", authHandler.GetProfile)

		// Cart routes
		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart/add", cartHandler.AddToCart)
		protected.PATCH("/cart/item/:id", cartHandler.UpdateCartItem)
		protected.DELETE("/cart/item/:id", cartHandler.RemoveFromCart)
		protected.DELETE("/cart/clear", cartHandler.ClearCart)

		// Order routes
		protected.POST("/orders", orderHandler.CreateOrder)
		protected.GET("/orders", orderHandler.GetOrders)
		protected.GET("/orders/transitions", orderHandler.GetOrderTransitions)
		protected.GET("/orders/:id", orderHandler.GetOrder)
		protected.GET("/orders/:id/tracking", orderHandler.GetTracking)
		protected.GET("/orders/:id/invoice", orderHandler.GetInvoice)
		protected.GET("/orders/:id/invoice/pdf", orderHandler.GetInvoicePDF)

		// Address routes
		protected.GET("/addresses", addressHandler.GetAddresses)
		protected.POST("/addresses", addressHandler.CreateAddress)
		protected.PUT("/addresses/:id", addressHandler.UpdateAddress)
		protected.PATCH("/addresses/:id/default", addressHandler.SetDefaultAddress)
		protected.DELETE("/addresses/:id", addressHandler.DeleteAddress)

		// Wishlist routes
		protected.GET("/wishlist", wishlistHandler.GetWishlist)
		protected.POST("/wishlist/:productId", wishlistHandler.AddToWishlist)
		protected.DELETE("/wishlist/:productId", wishlistHandler.RemoveFromWishlist)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)

		// Payment routes
		protected.POST("/payments/create", paymentHandler.CreatePayment)
		protected.POST("/payments/verify", paymentHandler.VerifyPayment)
		protected.GET("/payments", paymentHandler.GetPayments)
	}

	// Seller routes (seller or admin role)
	seller := api.Group("")
	seller.Use(middleware.AuthMiddleware())
	seller.Use(middleware.SellerMiddleware())
	{
		// Product management
		seller.POST("/products", productHandler.CreateProduct)
		seller.PUT("/products/:id", productHandler.UpdateProduct)
		seller.DELETE("/products/:id", productHandler.DeleteProduct)
		seller.GET("/seller/products", productHandler.GetSellerProducts)

		// Order management
		seller.GET("/orders/admin", orderHandler.GetAdminOrders)
		seller.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)
		seller.POST("/orders/:id/tracking", orderHandler.AddTracking)

		// Sale management
		seller.POST("/sales", saleHandler.CreateSale)
		seller.GET("/sales", saleHandler.GetSales)
		seller.PUT("/sales/:id", saleHandler.UpdateSale)
		seller.DELETE("/sales/:id", saleHandler.DeleteSale)

		// Collection management
		seller.POST("/collections", collectionHandler.CreateCollection)
		seller.GET("/collections", collectionHandler.GetCollections)
		seller.PUT("/collections/:id", collectionHandler.UpdateCollection)
		seller.DELETE("/collections/:id", collectionHandler.DeleteCollection)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
