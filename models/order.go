package models

import "time"

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusConfirmed      OrderStatus = "Confirmed"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"

	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentOnline         PaymentMethod = "Online"
)

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderRef        string        `gorm:"uniqueIndex" json:"order_ref"`
	UserID          uint          `gorm:"not null;index" json:"user_id"`
	User            User          `gorm:"foreignKey:UserID" json:"user"`
	RestaurantID    uint          `gorm:"not null;index" json:"restaurant_id"`
	Restaurant      Restaurant    `gorm:"foreignKey:RestaurantID" json:"restaurant"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice      float64       `gorm:"not null" json:"total_price"`
	DeliveryAddress string        `gorm:"not null" json:"delivery_address"`
	PaymentMethod   PaymentMethod `gorm:"type:VARCHAR(20);default:'Cash on Delivery'" json:"payment_method"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	StripeSessionID *string       `gorm:"uniqueIndex" json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// OrderItem snapshots name and price at order time so later product edits
// never rewrite order history.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"-"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Price        float64 `gorm:"not null" json:"price"`
	Quantity     int     `gorm:"not null" json:"quantity"`
}
