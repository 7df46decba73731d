package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrDeliveryUnavailable = errors.New("delivery is not available for this restaurant")
	ErrProductNotFound     = errors.New("product not found")
	ErrMixedRestaurants    = errors.New("all items must belong to the same restaurant")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrMinimumOrderNotMet  = errors.New("minimum order amount not met")
)

// OrderLine is one requested (product, quantity) pair. Price < 0 means
// "snapshot the product's current price"; the Stripe webhook passes the
// price the customer actually paid.
type OrderLine struct {
	ProductID uint
	Quantity  int
	Price     float64
}

type PlaceOrderInput struct {
	UserID          uint
	RestaurantID    uint
	DeliveryAddress string
	PaymentMethod   models.PaymentMethod
	Status          models.OrderStatus // defaults to Pending
	StripeSessionID string
	Lines           []OrderLine // nil means "use the user's cart"
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder validates the requested lines, decrements stock, persists the
// order and clears the cart, all inside one transaction. A conditional
// per-line decrement (stock = stock - n WHERE stock >= n) makes concurrent
// checkouts safe: the loser of a race on the last unit rolls back whole.
// When StripeSessionID is set the call is idempotent on it, so duplicate
// webhook deliveries yield a single order.
func PlaceOrder(db *gorm.DB, in PlaceOrderInput) (*models.Order, error) {
	if in.DeliveryAddress == "" {
		return nil, errors.New("delivery address is required")
	}
	if in.RestaurantID == 0 {
		return nil, errors.New("restaurant is required")
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentCashOnDelivery
	}
	if in.Status == "" {
		in.Status = models.OrderStatusPending
	}

	lines := in.Lines
	if lines == nil {
		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", in.UserID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmptyCart
			}
			return nil, err
		}
		if len(cart.Items) == 0 {
			return nil, ErrEmptyCart
		}
		for _, item := range cart.Items {
			lines = append(lines, OrderLine{ProductID: item.ProductID, Quantity: item.Quantity, Price: -1})
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var sessionID *string
	if in.StripeSessionID != "" {
		sessionID = &in.StripeSessionID
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if sessionID != nil {
			var existing models.Order
			err := tx.Where("stripe_session_id = ?", *sessionID).First(&existing).Error
			if err == nil {
				order = existing
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var restaurant models.Restaurant
		if err := tx.First(&restaurant, in.RestaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRestaurantNotFound
			}
			return err
		}
		if !restaurant.DeliveryAvailable {
			return ErrDeliveryUnavailable
		}

		var totalPrice float64
		var orderItems []models.OrderItem
		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", ErrProductNotFound, line.ProductID)
				}
				return err
			}
			if product.RestaurantID != in.RestaurantID {
				return ErrMixedRestaurants
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			price := line.Price
			if price < 0 {
				price = product.Price
			}
			totalPrice += price * float64(line.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.ImageURL,
				Price:        price,
				Quantity:     line.Quantity,
			})
		}

		if totalPrice < restaurant.MinimumOrderAmount {
			return fmt.Errorf("%w: minimum order amount is %.0f", ErrMinimumOrderNotMet, restaurant.MinimumOrderAmount)
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          in.UserID,
			RestaurantID:    in.RestaurantID,
			Items:           orderItems,
			TotalPrice:      totalPrice,
			DeliveryAddress: in.DeliveryAddress,
			PaymentMethod:   in.PaymentMethod,
			Status:          in.Status,
			StripeSessionID: sessionID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", in.UserID).First(&cart).Error; err == nil {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The unique index on stripe_session_id is the backstop for two
		// concurrent deliveries of the same session: the loser's insert is
		// rejected and rolled back, and the winner's order is returned.
		if sessionID != nil {
			var existing models.Order
			if ferr := db.Preload("Items").
				Where("stripe_session_id = ?", *sessionID).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &order, nil
}

func statusForOrderError(err error) int {
	switch {
	case errors.Is(err, ErrRestaurantNotFound), errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrDeliveryUnavailable),
		errors.Is(err, ErrMixedRestaurants), errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrMinimumOrderNotMet):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// -------- Handlers --------

type PlaceOrderRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
	RestaurantID    uint   `json:"restaurant_id" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery address and restaurant are required"})
			return
		}

		method := models.PaymentCashOnDelivery
		if req.PaymentMethod == string(models.PaymentOnline) {
			method = models.PaymentOnline
		}

		order, err := PlaceOrder(db, PlaceOrderInput{
			UserID:          middleware.CurrentUserID(c),
			RestaurantID:    req.RestaurantID,
			DeliveryAddress: req.DeliveryAddress,
			PaymentMethod:   method,
		})
		if err != nil {
			c.JSON(statusForOrderError(err), gin.H{"error": err.Error()})
			return
		}

		BroadcastOrderUpdate(*order)
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Order placed successfully",
			"order_id":    order.ID,
			"total_price": order.TotalPrice,
			"status":      order.Status,
		})
	}
}

// GET /api/orders — customers see their own orders; admins additionally see
// orders placed against their restaurant.
func GetOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		query := db.Where("user_id = ?", userID)
		if c.GetString("role") == string(models.RoleAdmin) {
			var user models.User
			if err := db.First(&user, userID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			if user.RestaurantID != nil {
				query = db.Where("user_id = ? OR restaurant_id = ?", userID, *user.RestaurantID)
			}
		}

		var orders []models.Order
		if err := query.
			Preload("Restaurant").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:orderId
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.
			Preload("User").
			Preload("Restaurant").
			Preload("Items").
			First(&order, "id = ?", c.Param("orderId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		userID := middleware.CurrentUserID(c)
		if order.UserID != userID {
			authorized := false
			if c.GetString("role") == string(models.RoleAdmin) {
				var user models.User
				if err := db.First(&user, userID).Error; err == nil &&
					user.RestaurantID != nil && *user.RestaurantID == order.RestaurantID {
					authorized = true
				}
			}
			if !authorized {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to view this order"})
				return
			}
		}

		c.JSON(http.StatusOK, order)
	}
}

// GET /api/orders/:orderId/status — public, used for order-tracking pages.
func GetOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Select("id", "status").First(&order, "id = ?", c.Param("orderId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": order.Status})
	}
}

// PUT /api/orders/:orderId — admin status transition for their restaurant.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		newStatus, err := ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("orderId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.RestaurantID != middleware.AdminRestaurantID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this order"})
			return
		}
		if !CanTransition(order.Status, newStatus) {
			c.JSON(http.StatusConflict, gin.H{
				"error": fmt.Sprintf("cannot change order status from %s to %s", order.Status, newStatus),
			})
			return
		}

		order.Status = newStatus
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		BroadcastOrderUpdate(order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
	}
}

// GET /api/admin/orders — the admin's restaurant orders, optionally by status.
func GetAdminOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("restaurant_id = ?", middleware.AdminRestaurantID(c))
		if status := c.Query("status"); status != "" {
			parsed, err := ParseOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
			query = query.Where("status = ?", parsed)
		}

		var orders []models.Order
		if err := query.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
