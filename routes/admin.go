package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/thebilalkhokhar/EatsOnline/controllers/order"
	reportControllers "github.com/thebilalkhokhar/EatsOnline/controllers/report"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Every route requires
// an admin token bound to a restaurant.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.AdminOnly, middleware.RequireRestaurant(db))
	{
		// ─────────── Order Management ───────────
		adminGroup.GET("/orders", orderControllers.GetAdminOrdersHandler(db))
		adminGroup.PUT("/orders/:orderId/status", orderControllers.UpdateOrderStatusHandler(db))

		// ─────────── Reporting ───────────
		adminGroup.GET("/reports/sales", reportControllers.SalesReportHandler(db))
		adminGroup.GET("/reports/sales/export", reportControllers.ExportSalesReportHandler(db))
		adminGroup.GET("/dashboard", reportControllers.DashboardHandler(db))
	}
}
