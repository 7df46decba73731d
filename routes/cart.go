package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/thebilalkhokhar/EatsOnline/controllers/cart"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"gorm.io/gorm"
)

func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddCartItem(db))
		cart.PUT("/update", cartControllers.UpdateCartItem(db))
		cart.DELETE("/remove/:productId", cartControllers.RemoveCartItem(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
	}
}
