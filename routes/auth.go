package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/thebilalkhokhar/EatsOnline/controllers/auth"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all “/auth/*” and “/users/*” endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authControllers.Signup(db))
		authGroup.POST("/login", authControllers.Login(db))
	}

	users := api.Group("/users")
	users.Use(middleware.ValidateToken)
	{
		users.GET("/profile", authControllers.GetProfile(db))
		users.PUT("/profile", authControllers.UpdateProfile(db))
	}
}
