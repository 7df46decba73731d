package orderControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	orderControllers "github.com/thebilalkhokhar/EatsOnline/controllers/order"
	"github.com/thebilalkhokhar/EatsOnline/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Restaurant{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string, minOrder float64) models.Restaurant {
	t.Helper()
	r := models.Restaurant{
		Name:               name,
		AdminID:            99,
		DeliveryAvailable:  true,
		MinimumOrderAmount: minOrder,
		IsActive:           true,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedProduct(t *testing.T, db *gorm.DB, restaurantID uint, name string, price float64, stock int) models.Product {
	t.Helper()
	cat := models.Category{Name: name + " cat", RestaurantID: restaurantID}
	require.NoError(t, db.Create(&cat).Error)
	p := models.Product{
		Name:         name,
		Price:        price,
		Stock:        stock,
		CategoryID:   cat.ID,
		RestaurantID: restaurantID,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedCart(t *testing.T, db *gorm.DB, userID uint, items ...models.CartItem) models.Cart {
	t.Helper()
	cart := models.Cart{UserID: userID}
	require.NoError(t, db.Create(&cart).Error)
	for i := range items {
		items[i].CartID = cart.CartID
		items[i].AddedAt = time.Now()
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return cart
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Stock
}

func TestPlaceOrderFromCart(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Karachi Biryani House", 0)
	pizza := seedProduct(t, db, restaurant.ID, "Chicken Tikka Pizza", 850, 10)
	roll := seedProduct(t, db, restaurant.ID, "Seekh Kabab Roll", 250, 5)
	seedCart(t, db, 1,
		models.CartItem{ProductID: pizza.ID, Quantity: 2},
		models.CartItem{ProductID: roll.ID, Quantity: 3},
	)

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID:          1,
		RestaurantID:    restaurant.ID,
		DeliveryAddress: "House 12, DHA Phase 5, Lahore",
	})
	require.NoError(t, err)

	assert.Equal(t, 850.0*2+250*3, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentCashOnDelivery, order.PaymentMethod)
	assert.NotEmpty(t, order.OrderRef)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Chicken Tikka Pizza", order.Items[0].ProductName)
	assert.Equal(t, 850.0, order.Items[0].Price)

	// stock decremented
	assert.Equal(t, 8, productStock(t, db, pizza.ID))
	assert.Equal(t, 2, productStock(t, db, roll.ID))

	// cart cleared
	var remaining int64
	db.Model(&models.CartItem{}).Count(&remaining)
	assert.Zero(t, remaining)
}

func TestPlaceOrderSnapshotsPrice(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Snapshot Diner", 0)
	product := seedProduct(t, db, restaurant.ID, "Daal Makhani", 400, 10)
	seedCart(t, db, 1, models.CartItem{ProductID: product.ID, Quantity: 1})

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 1, RestaurantID: restaurant.ID, DeliveryAddress: "Gulberg III, Lahore",
	})
	require.NoError(t, err)

	// a later price change must not rewrite order history
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", 999).Error)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 400.0, items[0].Price)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Empty Cart Cafe", 0)

	_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 1, RestaurantID: restaurant.ID, DeliveryAddress: "Somewhere",
	})
	assert.ErrorIs(t, err, orderControllers.ErrEmptyCart)

	seedCart(t, db, 2)
	_, err = orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 2, RestaurantID: restaurant.ID, DeliveryAddress: "Somewhere",
	})
	assert.ErrorIs(t, err, orderControllers.ErrEmptyCart)
}

func TestPlaceOrderMixedRestaurantsRollsBack(t *testing.T) {
	db := openTestDB(t)
	first := seedRestaurant(t, db, "First Kitchen", 0)
	second := seedRestaurant(t, db, "Second Kitchen", 0)
	ours := seedProduct(t, db, first.ID, "Chapli Kabab", 300, 10)
	theirs := seedProduct(t, db, second.ID, "Nihari", 500, 10)
	seedCart(t, db, 1,
		models.CartItem{ProductID: ours.ID, Quantity: 1},
		models.CartItem{ProductID: theirs.ID, Quantity: 1},
	)

	_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 1, RestaurantID: first.ID, DeliveryAddress: "Test Street",
	})
	assert.ErrorIs(t, err, orderControllers.ErrMixedRestaurants)

	// the first line's decrement must have rolled back
	assert.Equal(t, 10, productStock(t, db, ours.ID))
	assert.Equal(t, 10, productStock(t, db, theirs.ID))

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Low Stock Grill", 0)
	plenty := seedProduct(t, db, restaurant.ID, "Fries", 150, 100)
	scarce := seedProduct(t, db, restaurant.ID, "Special Karahi", 1200, 2)
	seedCart(t, db, 1,
		models.CartItem{ProductID: plenty.ID, Quantity: 5},
		models.CartItem{ProductID: scarce.ID, Quantity: 3},
	)

	_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 1, RestaurantID: restaurant.ID, DeliveryAddress: "Test Street",
	})
	assert.ErrorIs(t, err, orderControllers.ErrInsufficientStock)

	assert.Equal(t, 100, productStock(t, db, plenty.ID))
	assert.Equal(t, 2, productStock(t, db, scarce.ID))

	// cart survives a failed checkout
	var remaining int64
	db.Model(&models.CartItem{}).Count(&remaining)
	assert.Equal(t, int64(2), remaining)
}

func TestPlaceOrderMinimumOrderAmount(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Minimum Order Bistro", 500)
	product := seedProduct(t, db, restaurant.ID, "Samosa", 250, 50)

	t.Run("below minimum fails", func(t *testing.T) {
		seedCart(t, db, 1, models.CartItem{ProductID: product.ID, Quantity: 1})
		_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
			UserID: 1, RestaurantID: restaurant.ID, DeliveryAddress: "Test Street",
		})
		assert.ErrorIs(t, err, orderControllers.ErrMinimumOrderNotMet)
		assert.Equal(t, 50, productStock(t, db, product.ID))
	})

	t.Run("exactly the minimum passes", func(t *testing.T) {
		seedCart(t, db, 2, models.CartItem{ProductID: product.ID, Quantity: 2})
		order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
			UserID: 2, RestaurantID: restaurant.ID, DeliveryAddress: "Test Street",
		})
		require.NoError(t, err)
		assert.Equal(t, 500.0, order.TotalPrice)
	})
}

func TestPlaceOrderDeliveryUnavailable(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Pickup Only Shack", 0)
	require.NoError(t, db.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
		Update("delivery_available", false).Error)
	product := seedProduct(t, db, restaurant.ID, "Chai", 100, 10)
	seedCart(t, db, 1, models.CartItem{ProductID: product.ID, Quantity: 1})

	_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 1, RestaurantID: restaurant.ID, DeliveryAddress: "Test Street",
	})
	assert.ErrorIs(t, err, orderControllers.ErrDeliveryUnavailable)
}

func TestPlaceOrderIdempotentOnSession(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Webhook Kitchen", 0)
	product := seedProduct(t, db, restaurant.ID, "Club Sandwich", 450, 10)

	input := orderControllers.PlaceOrderInput{
		UserID:          1,
		RestaurantID:    restaurant.ID,
		DeliveryAddress: "Test Street",
		PaymentMethod:   models.PaymentOnline,
		Status:          models.OrderStatusConfirmed,
		StripeSessionID: "cs_test_abc123",
		Lines: []orderControllers.OrderLine{
			{ProductID: product.ID, Quantity: 2, Price: 450},
		},
	}

	first, err := orderControllers.PlaceOrder(db, input)
	require.NoError(t, err)
	second, err := orderControllers.PlaceOrder(db, input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(1), orders)

	// stock decremented exactly once
	assert.Equal(t, 8, productStock(t, db, product.ID))
}

func TestStripeSessionUniqueConstraint(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Constraint Kitchen", 0)

	session := "cs_test_dup"
	first := models.Order{
		OrderRef: "ref-a", UserID: 1, RestaurantID: restaurant.ID,
		TotalPrice: 100, DeliveryAddress: "Test Street", StripeSessionID: &session,
	}
	require.NoError(t, db.Create(&first).Error)

	// a second insert for the same session must be rejected at the database,
	// not just by the application-level lookup
	duplicate := models.Order{
		OrderRef: "ref-b", UserID: 2, RestaurantID: restaurant.ID,
		TotalPrice: 100, DeliveryAddress: "Test Street", StripeSessionID: &session,
	}
	assert.Error(t, db.Create(&duplicate).Error)

	// cash orders carry no session id and never collide with each other
	for i := 0; i < 2; i++ {
		cod := models.Order{
			OrderRef: "ref-cod-" + strconv.Itoa(i), UserID: 3, RestaurantID: restaurant.ID,
			TotalPrice: 100, DeliveryAddress: "Test Street",
		}
		require.NoError(t, db.Create(&cod).Error)
	}
}

func TestPlaceOrderCompetingCheckouts(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Last Unit Grill", 0)
	product := seedProduct(t, db, restaurant.ID, "Limited Platter", 800, 3)

	// both customers carted the product while stock still covered each of
	// them individually
	seedCart(t, db, 1, models.CartItem{ProductID: product.ID, Quantity: 2})
	seedCart(t, db, 2, models.CartItem{ProductID: product.ID, Quantity: 2})

	winner, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 1, RestaurantID: restaurant.ID, DeliveryAddress: "Test Street",
	})
	require.NoError(t, err)
	assert.Equal(t, 1600.0, winner.TotalPrice)

	// the second checkout finds the stock already consumed; the conditional
	// decrement refuses it and nothing is written
	_, err = orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 2, RestaurantID: restaurant.ID, DeliveryAddress: "Test Street",
	})
	assert.ErrorIs(t, err, orderControllers.ErrInsufficientStock)

	assert.Equal(t, 1, productStock(t, db, product.ID))

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(1), orders)

	// the loser keeps their cart for a retry
	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", 2).First(&cart).Error)
	assert.Len(t, cart.Items, 1)
}

func TestPlaceOrderDeliveryToggledOff(t *testing.T) {
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Toggle Tandoor", 0)
	product := seedProduct(t, db, restaurant.ID, "Paneer Tikka", 500, 10)
	seedCart(t, db, 1, models.CartItem{ProductID: product.ID, Quantity: 1})

	// the availability check reads the restaurant inside the checkout
	// transaction, so a toggle right before checkout is always honored
	require.NoError(t, db.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
		Update("delivery_available", false).Error)

	_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 1, RestaurantID: restaurant.ID, DeliveryAddress: "Test Street",
	})
	assert.ErrorIs(t, err, orderControllers.ErrDeliveryUnavailable)
	assert.Equal(t, 10, productStock(t, db, product.ID))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusPreparing, true},
		{models.OrderStatusPreparing, models.OrderStatusOutForDelivery, true},
		{models.OrderStatusOutForDelivery, models.OrderStatusDelivered, true},
		{models.OrderStatusPending, models.OrderStatusDelivered, false},
		{models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, orderControllers.CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

// stubAuth injects the context values normally set by the JWT and
// restaurant middleware.
func stubAuth(userID uint, role models.Role, restaurantID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", string(role))
		if restaurantID != 0 {
			c.Set("restaurant_id", restaurantID)
		}
		c.Next()
	}
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	restaurant := seedRestaurant(t, db, "Status Kitchen", 0)
	product := seedProduct(t, db, restaurant.ID, "Pulao", 350, 10)
	seedCart(t, db, 1, models.CartItem{ProductID: product.ID, Quantity: 1})

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID: 1, RestaurantID: restaurant.ID, DeliveryAddress: "Test Street",
	})
	require.NoError(t, err)

	r := gin.New()
	r.PUT("/api/admin/orders/:orderId/status",
		stubAuth(99, models.RoleAdmin, restaurant.ID),
		orderControllers.UpdateOrderStatusHandler(db))

	updateStatus := func(id uint, status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(gin.H{"status": status})
		req := httptest.NewRequest(http.MethodPut,
			"/api/admin/orders/"+strconv.Itoa(int(id))+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("valid forward transition", func(t *testing.T) {
		w := updateStatus(order.ID, "Confirmed")
		assert.Equal(t, http.StatusOK, w.Code)

		var updated models.Order
		require.NoError(t, db.First(&updated, order.ID).Error)
		assert.Equal(t, models.OrderStatusConfirmed, updated.Status)
	})

	t.Run("skipping a step conflicts", func(t *testing.T) {
		w := updateStatus(order.ID, "Delivered")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		w := updateStatus(order.ID, "Teleported")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
