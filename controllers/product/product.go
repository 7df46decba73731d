package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Stock       *int     `json:"stock" binding:"required"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	ImageURL    string   `json:"image_url"`
}

// POST /api/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, category_id, price, stock"})
			return
		}
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
		restaurantID := middleware.AdminRestaurantID(c)

		var category models.Category
		if err := db.Where("id = ? AND restaurant_id = ?", req.CategoryID, restaurantID).
			First(&category).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not belong to your restaurant"})
			return
		}

		var existing models.Product
		err := db.Where("name = ? AND category_id = ? AND restaurant_id = ?",
			req.Name, req.CategoryID, restaurantID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Product already exists in this category"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		product := models.Product{
			Name:         req.Name,
			Description:  req.Description,
			Price:        *req.Price,
			Stock:        *req.Stock,
			ImageURL:     req.ImageURL,
			CategoryID:   req.CategoryID,
			RestaurantID: restaurantID,
			CreatedBy:    middleware.CurrentUserID(c),
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		db.Preload("Category").First(&product, product.ID)
		c.JSON(http.StatusCreated, product)
	}
}

// GET /api/products — public, with optional filters.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category")

		if restaurantID := c.Query("restaurantId"); restaurantID != "" {
			if _, err := strconv.ParseUint(restaurantID, 10, 64); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
				return
			}
			query = query.Where("restaurant_id = ?", restaurantID)
		}
		if categoryID := c.Query("category"); categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}
		if minPrice := c.Query("price_min"); minPrice != "" {
			if mp, err := strconv.ParseFloat(minPrice, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price_min"})
				return
			}
		}
		if maxPrice := c.Query("price_max"); maxPrice != "" {
			if mp, err := strconv.ParseFloat(maxPrice, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price_max"})
				return
			}
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Category").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// PUT /api/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		restaurantID := middleware.AdminRestaurantID(c)
		if product.RestaurantID != restaurantID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this product"})
			return
		}

		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, category_id, price, stock"})
			return
		}
		if *req.Price < 0 || *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price and stock cannot be negative"})
			return
		}
		if req.CategoryID != product.CategoryID {
			var category models.Category
			if err := db.Where("id = ? AND restaurant_id = ?", req.CategoryID, restaurantID).
				First(&category).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not belong to your restaurant"})
				return
			}
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Price = *req.Price
		product.Stock = *req.Stock
		product.CategoryID = req.CategoryID
		if req.ImageURL != "" {
			product.ImageURL = req.ImageURL
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		db.Preload("Category").First(&product, product.ID)
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.RestaurantID != middleware.AdminRestaurantID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this product"})
			return
		}
		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
