package routes

import (
	"github.com/gin-gonic/gin"
	categoryControllers "github.com/thebilalkhokhar/EatsOnline/controllers/category"
	productControllers "github.com/thebilalkhokhar/EatsOnline/controllers/product"
	restaurantControllers "github.com/thebilalkhokhar/EatsOnline/controllers/restaurant"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers restaurant, category, and product endpoints.
// Browsing is public; management requires an admin token scoped to a
// restaurant.
func SetupCatalogRoutes(api *gin.RouterGroup, db *gorm.DB) {
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", restaurantControllers.GetRestaurants(db))
		restaurants.GET("/:id", restaurantControllers.GetRestaurantByID(db))

		restaurants.POST("", middleware.ValidateToken, middleware.AdminOnly, restaurantControllers.CreateRestaurant(db))
		restaurants.PUT("/:id", middleware.ValidateToken, middleware.AdminOnly, restaurantControllers.UpdateRestaurant(db))
	}

	categories := api.Group("/categories")
	{
		categories.GET("/restaurant/:restaurantId", categoryControllers.GetRestaurantCategories(db))

		managed := categories.Group("")
		managed.Use(middleware.ValidateToken, middleware.AdminOnly, middleware.RequireRestaurant(db))
		{
			managed.GET("", categoryControllers.GetCategories(db))
			managed.POST("", categoryControllers.CreateCategory(db))
			managed.PUT("/:id", categoryControllers.UpdateCategory(db))
			managed.DELETE("/:id", categoryControllers.DeleteCategory(db))
		}
	}

	products := api.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))

		managed := products.Group("")
		managed.Use(middleware.ValidateToken, middleware.AdminOnly, middleware.RequireRestaurant(db))
		{
			managed.POST("", productControllers.CreateProduct(db))
			managed.PUT("/:id", productControllers.UpdateProduct(db))
			managed.DELETE("/:id", productControllers.DeleteProduct(db))
		}
	}
}
