package models

import "time"

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null;uniqueIndex:idx_category_name_restaurant" json:"name"`
	Description  string    `json:"description"`
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_category_name_restaurant" json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}
