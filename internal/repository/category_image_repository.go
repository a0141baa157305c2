package repository

import (
	"context"

	"curtain_store/internal/models"

	"gorm.io/gorm"
)

type CategoryImageRepository interface {
	List(ctx context.Context, category string) ([]models.CategoryImage, error)
	Add(ctx context.Context, image *models.CategoryImage) error
	GetByID(ctx context.Context, id uint) (*models.CategoryImage, error)
	Delete(ctx context.Context, id uint) error
}

type categoryImageRepository struct {
	db *gorm.DB
}

func NewCategoryImageRepository(db *gorm.DB) CategoryImageRepository {
	return &categoryImageRepository{db: db}
}

func (r *categoryImageRepository) List(ctx context.Context, category string) ([]models.CategoryImage, error) {
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var images []models.CategoryImage
	err := q.Order("category, sort_order, id").Find(&images).Error
	return images, err
}

func (r *categoryImageRepository) Add(ctx context.Context, image *models.CategoryImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *categoryImageRepository) GetByID(ctx context.Context, id uint) (*models.CategoryImage, error) {
	var image models.CategoryImage
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *categoryImageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CategoryImage{}, id).Error
}
