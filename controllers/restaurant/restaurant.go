package restaurantControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

type RestaurantRequest struct {
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	Address             models.Address `json:"address"`
	Contact             models.Contact `json:"contact"`
	CuisineType         []string       `json:"cuisine_type"`
	DeliveryAvailable   *bool          `json:"delivery_available"`
	MinimumOrderAmount  *float64       `json:"minimum_order_amount"`
	AverageDeliveryTime *int           `json:"average_delivery_time"`
	LogoURL             string         `json:"logo_url"`
}

// POST /api/restaurants — an admin's first and only restaurant.
func CreateRestaurant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Name == "" || req.Address.City == "" || req.Address.Country == "" ||
			req.Contact.Phone == "" || len(req.CuisineType) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All required fields are missing"})
			return
		}

		var user models.User
		if err := db.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if user.RestaurantID != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Admin already has a restaurant"})
			return
		}

		restaurant := models.Restaurant{
			Name:              req.Name,
			Description:       req.Description,
			AdminID:           user.ID,
			Address:           req.Address,
			Contact:           req.Contact,
			CuisineType:       req.CuisineType,
			DeliveryAvailable: true,
			LogoURL:           req.LogoURL,
			IsActive:          true,
		}
		if req.DeliveryAvailable != nil {
			restaurant.DeliveryAvailable = *req.DeliveryAvailable
		}
		if req.MinimumOrderAmount != nil {
			restaurant.MinimumOrderAmount = *req.MinimumOrderAmount
		}
		if req.AverageDeliveryTime != nil {
			restaurant.AverageDeliveryTime = *req.AverageDeliveryTime
		}

		if err := db.Create(&restaurant).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant name already taken"})
			return
		}

		user.RestaurantID = &restaurant.ID
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link restaurant to admin"})
			return
		}

		c.JSON(http.StatusCreated, restaurant)
	}
}

// PUT /api/restaurants/:id — owner only.
func UpdateRestaurant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var restaurant models.Restaurant
		if err := db.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		if user.RestaurantID == nil || *user.RestaurantID != restaurant.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this restaurant"})
			return
		}

		var req RestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if req.Name != "" {
			restaurant.Name = req.Name
		}
		restaurant.Description = req.Description
		if req.Address.City != "" {
			restaurant.Address = req.Address
		}
		if req.Contact.Phone != "" {
			restaurant.Contact = req.Contact
		}
		if len(req.CuisineType) > 0 {
			restaurant.CuisineType = req.CuisineType
		}
		if req.DeliveryAvailable != nil {
			restaurant.DeliveryAvailable = *req.DeliveryAvailable
		}
		if req.MinimumOrderAmount != nil {
			restaurant.MinimumOrderAmount = *req.MinimumOrderAmount
		}
		if req.AverageDeliveryTime != nil {
			restaurant.AverageDeliveryTime = *req.AverageDeliveryTime
		}
		if req.LogoURL != "" {
			restaurant.LogoURL = req.LogoURL
		}

		if err := db.Save(&restaurant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

// GET /api/restaurants — public, active restaurants only.
func GetRestaurants(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var restaurants []models.Restaurant
		if err := db.Where("is_active = ?", true).Order("name ASC").Find(&restaurants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
			return
		}
		c.JSON(http.StatusOK, restaurants)
	}
}

// GET /api/restaurants/:id — public.
func GetRestaurantByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var restaurant models.Restaurant
		if err := db.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}
