package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Category    string         `json:"category" gorm:"not null;index"` // sliding, roller, motor, accessory
	CurtainType string         `json:"curtain_type" gorm:"index"`
	MotorType   string         `json:"motor_type"`
	Price       int64          `json:"price" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	ImageURL    string         `json:"image_url"`
	Features    []string       `json:"features" gorm:"type:jsonb;serializer:json"`
	InStock     bool           `json:"in_stock" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type ProductCategory string

const (
	CategorySliding   ProductCategory = "sliding"
	CategoryRoller    ProductCategory = "roller"
	CategoryMotor     ProductCategory = "motor"
	CategoryAccessory ProductCategory = "accessory"
)

type CategoryImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Category  string    `json:"category" gorm:"not null;index"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}
