package models

import "time"

// Address is embedded in Restaurant.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Rating holds the aggregate review stats, recomputed whenever a review
// is created, updated or approved.
type Rating struct {
	Average float64 `json:"average"`
	Total   int     `json:"total"`
	Star1   int     `json:"star1"`
	Star2   int     `json:"star2"`
	Star3   int     `json:"star3"`
	Star4   int     `json:"star4"`
	Star5   int     `json:"star5"`
}

type Restaurant struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"uniqueIndex;not null" json:"name"`
	Description         string    `json:"description"`
	AdminID             uint      `gorm:"not null;index" json:"admin_id"`
	Address             Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Contact             Contact   `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	CuisineType         []string  `gorm:"serializer:json" json:"cuisine_type"`
	DeliveryAvailable   bool      `gorm:"default:true" json:"delivery_available"`
	MinimumOrderAmount  float64   `gorm:"default:0" json:"minimum_order_amount"`
	AverageDeliveryTime int       `gorm:"default:30" json:"average_delivery_time"` // minutes
	Rating              Rating    `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	LogoURL             string    `json:"logo_url"`
	IsActive            bool      `gorm:"default:true" json:"is_active"` // soft flag, restaurants are never hard-deleted
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
