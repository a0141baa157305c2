package repository

import (
	"context"

	"curtain_store/internal/models"

	"gorm.io/gorm"
)

type ProductFilter struct {
	Category    string
	CurtainType string
	MotorType   string
	Search      string
	InStockOnly bool
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.CurtainType != "" {
		q = q.Where("curtain_type = ?", filter.CurtainType)
	}
	if filter.MotorType != "" {
		q = q.Where("motor_type = ?", filter.MotorType)
	}
	if s := SanitizeSearch(filter.Search); s != "" {
		q = q.Where("name ILIKE ?", "%"+s+"%")
	}
	if filter.InStockOnly {
		q = q.Where("in_stock = ?", true)
	}

	var products []models.Product
	err := q.Order("category, price").Find(&products).Error
	return products, err
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
