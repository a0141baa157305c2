package models

import (
	"time"
)

type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	ProductID string    `json:"product_id" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     int64     `json:"price" gorm:"not null"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func (i OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
