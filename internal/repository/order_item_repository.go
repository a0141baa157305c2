package repository

import (
	"context"

	"curtain_store/internal/models"

	"gorm.io/gorm"
)

type OrderItemRepository interface {
	GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}

type ProductSales struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// TopProducts aggregates sold quantity and revenue per product, skipping
// cancelled orders.
func (r *orderItemRepository) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	var rows []ProductSales
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id, MAX(order_items.name) AS name, SUM(order_items.quantity) AS quantity, SUM(order_items.quantity * order_items.price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ? AND orders.deleted_at IS NULL", models.OrderCancelled).
		Group("order_items.product_id").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
