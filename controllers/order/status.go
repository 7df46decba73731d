package orderControllers

import (
	"errors"
	"strings"

	"github.com/thebilalkhokhar/EatsOnline/models"
)

var orderStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusConfirmed,
	models.OrderStatusPreparing,
	models.OrderStatusOutForDelivery,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

// ParseOrderStatus maps a string to a known status, case-insensitively.
func ParseOrderStatus(status string) (models.OrderStatus, error) {
	for _, s := range orderStatuses {
		if strings.EqualFold(status, string(s)) {
			return s, nil
		}
	}
	return "", errors.New("invalid order status")
}

// nextStatuses defines the allowed transitions: forward progression through
// the fulfilment pipeline, with Cancelled reachable from any non-terminal
// state. Delivered and Cancelled are terminal.
var nextStatuses = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:        {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:      {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing:      {models.OrderStatusOutForDelivery, models.OrderStatusCancelled},
	models.OrderStatusOutForDelivery: {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range nextStatuses[from] {
		if next == to {
			return true
		}
	}
	return false
}
