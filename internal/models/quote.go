package models

import (
	"time"
)

type Quote struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone" gorm:"not null"`
	Message        string    `json:"message" gorm:"type:text"`
	CurtainType    string    `json:"curtain_type"`
	MotorType      string    `json:"motor_type"`
	WidthFeet      float64   `json:"width_feet"`
	EstimatedTotal int64     `json:"estimated_total"`
	Status         string    `json:"status" gorm:"default:'new';index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type QuoteStatus string

const (
	QuoteNew       QuoteStatus = "new"
	QuoteContacted QuoteStatus = "contacted"
	QuoteQuoted    QuoteStatus = "quoted"
	QuoteClosed    QuoteStatus = "closed"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteNew, QuoteContacted, QuoteQuoted, QuoteClosed:
		return true
	}
	return false
}
