package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// loadOrCreateCart returns the user's cart, creating it lazily.
func loadOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func cartSnapshot(db *gorm.DB, cartID uint) []models.CartItem {
	var items []models.CartItem
	db.Preload("Product").Preload("Product.Category").
		Where("cart_id = ?", cartID).Order("added_at ASC").Find(&items)
	if items == nil {
		items = []models.CartItem{}
	}
	return items
}

// POST /api/cart — adds a product, overwriting the quantity if the line
// already exists.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		qty := input.Quantity
		if qty < 1 {
			qty = 1
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.Stock < qty {
			c.JSON(http.StatusBadRequest, gin.H{"error": product.Name + " is out of stock"})
			return
		}

		cart, err := loadOrCreateCart(db, middleware.CurrentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		status := http.StatusCreated
		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Quantity:  qty,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		default:
			status = http.StatusOK // an existing line was overwritten, not created
			item.Quantity = qty    // overwrite, not increment
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		}

		c.JSON(status, gin.H{
			"message": "Product added to cart",
			"cart":    gin.H{"items": cartSnapshot(db, cart.CartID)},
		})
	}
}

// PUT /api/cart — overwrites the quantity of an existing cart line.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and quantity are required"})
			return
		}
		if input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", middleware.CurrentUserID(c)).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.Stock < input.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{"error": product.Name + " has insufficient stock"})
			return
		}

		var item models.CartItem
		if err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).
			First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Cart updated successfully",
			"cart":    gin.H{"items": cartSnapshot(db, cart.CartID)},
		})
	}
}

// DELETE /api/cart/:productId
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cart models.Cart
		if err := db.Where("user_id = ?", middleware.CurrentUserID(c)).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, c.Param("productId")).
			Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Product removed from cart",
			"cart":    gin.H{"items": cartSnapshot(db, cart.CartID)},
		})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cart models.Cart
		if err := db.Where("user_id = ?", middleware.CurrentUserID(c)).First(&cart).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully", "cart": gin.H{"items": []models.CartItem{}}})
			return
		}
		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully", "cart": gin.H{"items": []models.CartItem{}}})
	}
}

// GET /api/cart — joins live product data and prunes lines whose product
// has vanished, persisting the pruned cart.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cart models.Cart
		if err := db.Where("user_id = ?", middleware.CurrentUserID(c)).First(&cart).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart is empty", "cart": gin.H{"items": []models.CartItem{}}})
			return
		}

		items := cartSnapshot(db, cart.CartID)
		valid := items[:0]
		for _, item := range items {
			if item.Product.ID == 0 || item.Product.RestaurantID == 0 {
				db.Delete(&models.CartItem{}, item.ID)
				continue
			}
			valid = append(valid, item)
		}

		c.JSON(http.StatusOK, gin.H{"cart": gin.H{"items": valid, "updated_at": cart.UpdatedAt}})
	}
}
