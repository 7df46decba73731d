package models

import "time"

type Product struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Price        float64   `gorm:"not null" json:"price"`
	Stock        int       `gorm:"not null" json:"stock"`
	ImageURL     string    `json:"image_url"` // hosted on the external CDN
	CategoryID   uint      `gorm:"not null;index" json:"category_id"`
	Category     Category  `gorm:"foreignKey:CategoryID" json:"category"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	CreatedBy    uint      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
