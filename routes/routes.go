package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/khanhtran-03/shopsphere/config"
	"github.com/khanhtran-03/shopsphere/controllers"
	"github.com/khanhtran-03/shopsphere/middleware"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	paymentCtrl := controllers.NewPaymentController(
		controllers.DBOrderFetcher{},
		config.LoadBankConfig(),
		cfg.PollInterval,
	)

	api := router.Group("/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		api.GET("/products", controllers.ListProducts)
		api.GET("/products/:id", controllers.GetProduct)

		// Bank reconciliation callback, protected by a shared secret.
		api.POST("/payment/webhook/bank-transfer", controllers.BankTransferWebhook)

		user := api.Group("")
		user.Use(middleware.AuthMiddleware())
		{
			user.GET("/cart", controllers.GetCart)
			user.POST("/cart", controllers.AddToCart)
			user.PUT("/cart/:productId", controllers.UpdateCartItem)
			user.DELETE("/cart/:productId", controllers.RemoveFromCart)
			user.DELETE("/cart", controllers.ClearCart)

			user.GET("/checkout", controllers.GetCheckoutSummary)
			user.POST("/checkout", controllers.PlaceOrder)

			user.GET("/checkout/payment/:id", paymentCtrl.GetPaymentInstructions)
			user.GET("/checkout/payment/:id/status", paymentCtrl.CheckPaymentStatus)
			user.GET("/checkout/payment/:id/countdown", paymentCtrl.StreamCountdown)
			user.GET("/checkout/success", paymentCtrl.PaymentSuccess)

			user.GET("/orders", controllers.ListOrders)
			user.GET("/orders/:id", controllers.GetOrderDetails)
			user.GET("/orders/:id/invoice", controllers.DownloadInvoice)
		}
	}

	return router
}
