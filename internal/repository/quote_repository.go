package repository

import (
	"context"

	"curtain_store/internal/models"

	"gorm.io/gorm"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	List(ctx context.Context, status string) ([]models.Quote, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepository) List(ctx context.Context, status string) ([]models.Quote, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var quotes []models.Quote
	err := q.Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Quote{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
