package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

// RequireRestaurant loads the acting admin and rejects admins who have not
// created a restaurant yet. Stores the restaurant id in the context.
func RequireRestaurant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, CurrentUserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			c.Abort()
			return
		}
		if user.RestaurantID == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access with restaurant required"})
			c.Abort()
			return
		}
		c.Set("restaurant_id", *user.RestaurantID)
		c.Next()
	}
}

// AdminRestaurantID returns the restaurant id set by RequireRestaurant.
func AdminRestaurantID(c *gin.Context) uint {
	v, exists := c.Get("restaurant_id")
	if !exists {
		return 0
	}
	id, _ := v.(uint)
	return id
}
