package models

import (
	"time"
)

// Customer is a profile upserted from checkout, keyed by email.
type Customer struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address" gorm:"type:text"`
	OrderCount  int        `json:"order_count" gorm:"default:0"`
	LastOrderAt *time.Time `json:"last_order_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
