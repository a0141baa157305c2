package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderNumber   string         `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerName  string         `json:"customer_name" gorm:"not null"`
	CustomerEmail string         `json:"customer_email" gorm:"not null;index"`
	CustomerPhone string         `json:"customer_phone" gorm:"not null"`
	Address       string         `json:"address" gorm:"type:text;not null"`
	TotalAmount   int64          `json:"total_amount" gorm:"not null"`
	Discount      int64          `json:"discount" gorm:"not null;default:0"`
	PaymentMethod string         `json:"payment_method" gorm:"not null"` // cod, advance_10, full_100, gateway
	Status        string         `json:"status" gorm:"default:'pending';index"`
	SessionID     string         `json:"session_id"`
	Items         []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
