package paymentControllers

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/thebilalkhokhar/EatsOnline/controllers/order"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type CheckoutItemInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price"`
}

type CreateCheckoutSessionRequest struct {
	Items           []CheckoutItemInput `json:"items" binding:"required"`
	Total           float64             `json:"total" binding:"required"`
	RestaurantID    uint                `json:"restaurant_id" binding:"required"`
	DeliveryAddress string              `json:"delivery_address" binding:"required"`
}

// checkoutMetadata is what the webhook gets back from Stripe; it carries
// everything needed to re-derive the order.
type checkoutMetadata struct {
	UserID          uint
	RestaurantID    uint
	DeliveryAddress string
	Items           []orderControllers.OrderLine
}

type metadataItem struct {
	Product  uint    `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// POST /api/create-checkout-session
func CreateCheckoutSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCheckoutSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
			return
		}
		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid items to process"})
			return
		}

		stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
		frontendURL := os.Getenv("FRONTEND_URL")
		if frontendURL == "" {
			frontendURL = "http://localhost:5173"
		}

		var lineItems []*stripe.CheckoutSessionLineItemParams
		metaItems := make([]metadataItem, 0, len(req.Items))
		for _, item := range req.Items {
			name := item.Name
			if name == "" {
				name = "Unknown Product"
			}
			lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("pkr"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(name),
						Description: stripe.String("Quantity: " + strconv.Itoa(item.Quantity)),
					},
					UnitAmount: stripe.Int64(int64(math.Round(item.Price * 100))),
				},
				Quantity: stripe.Int64(int64(item.Quantity)),
			})
			metaItems = append(metaItems, metadataItem{
				Product:  item.ProductID,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}

		itemsJSON, err := json.Marshal(metaItems)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode items"})
			return
		}

		params := &stripe.CheckoutSessionParams{
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
			Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
			LineItems:          lineItems,
			SuccessURL:         stripe.String(frontendURL + "/orders?session_id={CHECKOUT_SESSION_ID}"),
			CancelURL:          stripe.String(frontendURL + "/cancel"),
		}
		params.AddMetadata("user_id", strconv.FormatUint(uint64(middleware.CurrentUserID(c)), 10))
		params.AddMetadata("restaurant_id", strconv.FormatUint(uint64(req.RestaurantID), 10))
		params.AddMetadata("delivery_address", req.DeliveryAddress)
		params.AddMetadata("total", strconv.FormatFloat(req.Total, 'f', 2, 64))
		params.AddMetadata("items", string(itemsJSON))

		s, err := session.New(params)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create Stripe session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": s.ID})
	}
}

func parseMetadata(meta map[string]string) (checkoutMetadata, error) {
	userID, err := strconv.ParseUint(meta["user_id"], 10, 64)
	if err != nil {
		return checkoutMetadata{}, errors.New("missing user_id in metadata")
	}
	restaurantID, err := strconv.ParseUint(meta["restaurant_id"], 10, 64)
	if err != nil {
		return checkoutMetadata{}, errors.New("missing restaurant_id in metadata")
	}
	var items []metadataItem
	if err := json.Unmarshal([]byte(meta["items"]), &items); err != nil || len(items) == 0 {
		return checkoutMetadata{}, errors.New("missing items in metadata")
	}

	out := checkoutMetadata{
		UserID:          uint(userID),
		RestaurantID:    uint(restaurantID),
		DeliveryAddress: meta["delivery_address"],
	}
	for _, item := range items {
		out.Items = append(out.Items, orderControllers.OrderLine{
			ProductID: item.Product,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return out, nil
}

// finalizeCheckoutSession re-derives the order from session metadata and
// persists it as Confirmed. Idempotent on the session id: the payment
// provider delivers events at least once, and the client-side confirmation
// races this path.
func finalizeCheckoutSession(db *gorm.DB, sessionID string, meta checkoutMetadata) (*models.Order, error) {
	return orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		UserID:          meta.UserID,
		RestaurantID:    meta.RestaurantID,
		DeliveryAddress: meta.DeliveryAddress,
		PaymentMethod:   models.PaymentOnline,
		Status:          models.OrderStatusConfirmed,
		StripeSessionID: sessionID,
		Lines:           meta.Items,
	})
}

// confirmOnlineOrder moves a Pending online order to Confirmed. Idempotent;
// safe for the webhook and the client redirect to race.
func confirmOnlineOrder(db *gorm.DB, sessionID string) (*models.Order, error) {
	var order models.Order
	if err := db.Where("stripe_session_id = ?", sessionID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.PaymentMethod == models.PaymentOnline && order.Status == models.OrderStatusPending {
		order.Status = models.OrderStatusConfirmed
		if err := db.Save(&order).Error; err != nil {
			return nil, err
		}
	}
	return &order, nil
}

// POST /api/webhook — raw Stripe payload, verified against the shared
// webhook secret. Rejected payloads get a 400 with no retry instruction;
// Stripe retries on its own schedule.
func StripeWebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
			return
		}

		event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"),
			os.Getenv("STRIPE_WEBHOOK_SECRET"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook signature verification failed"})
			return
		}

		switch event.Type {
		case "checkout.session.completed":
			var s stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed session payload"})
				return
			}
			meta, err := parseMetadata(s.Metadata)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			order, err := finalizeCheckoutSession(db, s.ID, meta)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing webhook"})
				return
			}
			orderControllers.BroadcastOrderUpdate(*order)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

// POST /api/payment-success — client-side fallback after redirect-back.
func PaymentSuccessHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			SessionID string `json:"session_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		order, err := confirmOnlineOrder(db, req.SessionID)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}
