package models

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Phone        string    `gorm:"uniqueIndex;not null" json:"phone"`
	Addresses    []string  `gorm:"serializer:json" json:"addresses"`
	Role         Role      `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	RestaurantID *uint     `json:"restaurant_id,omitempty"` // set once an admin creates their restaurant
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
