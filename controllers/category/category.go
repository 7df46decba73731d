package categoryControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// POST /api/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
			return
		}
		restaurantID := middleware.AdminRestaurantID(c)

		var existing models.Category
		err := db.Where("name = ? AND restaurant_id = ?", req.Name, restaurantID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists for this restaurant"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
			return
		}

		category := models.Category{
			Name:         req.Name,
			Description:  req.Description,
			RestaurantID: restaurantID,
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists for this restaurant"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GET /api/categories — categories of the admin's restaurant.
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Where("restaurant_id = ?", middleware.AdminRestaurantID(c)).
			Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /api/categories/restaurant/:restaurantId — public menu sections.
func GetRestaurantCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Where("restaurant_id = ?", c.Param("restaurantId")).
			Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// PUT /api/categories/:id
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if category.RestaurantID != middleware.AdminRestaurantID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this category"})
			return
		}

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
			return
		}

		category.Name = req.Name
		category.Description = req.Description
		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists for this restaurant"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /api/categories/:id
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if category.RestaurantID != middleware.AdminRestaurantID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this category"})
			return
		}

		var productCount int64
		db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount)
		if productCount > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete a category that still has products"})
			return
		}

		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
