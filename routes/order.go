package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/thebilalkhokhar/EatsOnline/controllers/order"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Public order status lookup for tracking pages
		orders.GET("/:orderId/status", orderControllers.GetOrderStatusHandler(db))

		authed := orders.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.POST("", orderControllers.PlaceOrderHandler(db))
			authed.GET("", orderControllers.GetOrdersHandler(db))
			authed.GET("/:orderId", orderControllers.GetOrderByIDHandler(db))
		}
	}
}
