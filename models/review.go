package models

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

type Review struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	OrderID      uint         `gorm:"uniqueIndex;not null" json:"order_id"` // at most one review per order
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	User         User         `gorm:"foreignKey:UserID" json:"user"`
	RestaurantID uint         `gorm:"not null;index" json:"restaurant_id"`
	Rating       int          `gorm:"not null" json:"rating"` // 1..5
	Comment      string       `gorm:"size:500" json:"comment"`
	Status       ReviewStatus `gorm:"type:VARCHAR(20);default:'approved'" json:"status"`
	HelpfulVotes int          `json:"helpful_votes"`
	ReportCount  int          `json:"report_count"`
	ResponseText string       `json:"response_text,omitempty"` // restaurant owner's reply
	RespondedAt  *time.Time   `json:"responded_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
