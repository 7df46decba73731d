package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry‐point that wires up every route group
// under /api.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	// Public auth + JWT‐protected profile routes
	SetupAuthRoutes(api, db)

	// Restaurants, categories, products
	SetupCatalogRoutes(api, db)

	// Cart routes (JWT‐protected)
	SetupCartRoutes(api, db)

	// Order routes
	SetupOrderRoutes(api, db)

	// Review routes
	SetupReviewRoutes(api, db)

	// Stripe payment routes
	SetupPaymentRoutes(api, db)

	// Admin routes (JWT + admin role + restaurant scope)
	SetupAdminRoutes(api, db)
}
