package repository

import (
	"context"
	"regexp"
	"strings"
	"time"

	"curtain_store/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]models.Order, error)
	ListSince(ctx context.Context, since time.Time) ([]models.Order, error)
	Search(ctx context.Context, query string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Where("created_at >= ?", since).Order("created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Search(ctx context.Context, query string) ([]models.Order, error) {
	q := SanitizeSearch(query)
	if q == "" {
		return r.List(ctx, 0, 0)
	}
	pattern := "%" + q + "%"

	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("order_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ? OR customer_phone ILIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var searchDisallowed = regexp.MustCompile(`[^a-zA-Z0-9+\-\s]`)

// SanitizeSearch keeps letters, digits, '+', '-' and whitespace so the value
// can be embedded in a LIKE pattern without wildcards or quotes leaking in.
func SanitizeSearch(query string) string {
	return strings.TrimSpace(searchDisallowed.ReplaceAllString(query, ""))
}
