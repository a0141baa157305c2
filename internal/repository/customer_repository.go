package repository

import (
	"context"
	"time"

	"curtain_store/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	Upsert(ctx context.Context, customer *models.Customer) error
	List(ctx context.Context) ([]models.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Upsert inserts by email or refreshes the contact details and bumps the
// order counter of an existing profile.
func (r *customerRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	now := time.Now()
	customer.LastOrderAt = &now
	customer.OrderCount = 1

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":          customer.Name,
			"phone":         customer.Phone,
			"address":       customer.Address,
			"order_count":   gorm.Expr("customers.order_count + 1"),
			"last_order_at": now,
			"updated_at":    now,
		}),
	}).Create(customer).Error
}

func (r *customerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).Order("last_order_at DESC NULLS LAST").Find(&customers).Error
	return customers, err
}
