package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/thebilalkhokhar/EatsOnline/controllers/payment"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(api *gin.RouterGroup, db *gorm.DB) {
	// Checkout session creation needs a logged-in customer
	api.POST("/create-checkout-session", middleware.ValidateToken, paymentControllers.CreateCheckoutSession(db))

	// Stripe calls this server-to-server; signature verification replaces auth
	api.POST("/webhook", paymentControllers.StripeWebhookHandler(db))

	// Client-side confirmation fallback after redirect-back
	api.POST("/payment-success", middleware.ValidateToken, paymentControllers.PaymentSuccessHandler(db))
}
