package services

import (
	"context"
	"io"
	"strconv"
	"strings"

	"curtain_store/internal/apperr"
	"curtain_store/internal/models"
	"curtain_store/internal/repository"
	"curtain_store/internal/storage"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	ListCategoryImages(ctx context.Context, category string) ([]models.CategoryImage, error)
	AddCategoryImage(ctx context.Context, image *models.CategoryImage) error
	DeleteCategoryImage(ctx context.Context, id uint) error
	UploadProductImage(ctx context.Context, filename string, r io.Reader, productID uint) (string, error)
	DeleteProductImage(ctx context.Context, url string) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryImageRepository
	images       storage.ImageStore
	logger       *zap.Logger
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryImageRepository,
	images storage.ImageStore,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{productRepo: productRepo, categoryRepo: categoryRepo, images: images, logger: logger}
}

func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.productRepo.Create(ctx, product)
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return notFound(err, "product")
	}
	product.CreatedAt = existing.CreatedAt
	return s.productRepo.Update(ctx, product)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "product")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return notFound(err, "product")
	}
	if product.ImageURL != "" {
		if err := s.images.Delete(ctx, product.ImageURL); err != nil {
			s.logger.Warn("product image not removed", zap.Uint("product_id", id), zap.String("url", product.ImageURL), zap.Error(err))
		}
	}
	return nil
}

func (s *catalogService) ListCategoryImages(ctx context.Context, category string) ([]models.CategoryImage, error) {
	return s.categoryRepo.List(ctx, strings.TrimSpace(category))
}

func (s *catalogService) AddCategoryImage(ctx context.Context, image *models.CategoryImage) error {
	image.Category = strings.TrimSpace(image.Category)
	if image.Category == "" || strings.TrimSpace(image.ImageURL) == "" {
		return apperr.InvalidArgument("category and image_url are required")
	}
	return s.categoryRepo.Add(ctx, image)
}

func (s *catalogService) DeleteCategoryImage(ctx context.Context, id uint) error {
	image, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "category image")
	}
	return s.categoryRepo.Delete(ctx, image.ID)
}

// UploadProductImage stores the file and, when productID is non-zero, points
// the product at it.
func (s *catalogService) UploadProductImage(ctx context.Context, filename string, r io.Reader, productID uint) (string, error) {
	var product *models.Product
	folder := ""
	if productID != 0 {
		p, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return "", notFound(err, "product")
		}
		product = p
		folder = strconv.FormatUint(uint64(productID), 10)
	}

	url, err := s.images.Upload(ctx, filename, r, folder)
	if err != nil {
		return "", err
	}
	if product == nil {
		return url, nil
	}

	previous := product.ImageURL
	product.ImageURL = url
	if err := s.productRepo.Update(ctx, product); err != nil {
		return "", err
	}
	if previous != "" {
		if err := s.images.Delete(ctx, previous); err != nil {
			s.logger.Warn("previous product image not removed", zap.String("url", previous), zap.Error(err))
		}
	}
	return url, nil
}

func (s *catalogService) DeleteProductImage(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return apperr.InvalidArgument("url is required")
	}
	return s.images.Delete(ctx, url)
}

func validateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	if p.Name == "" {
		return apperr.InvalidArgument("product name is required")
	}
	switch models.ProductCategory(p.Category) {
	case models.CategorySliding, models.CategoryRoller, models.CategoryMotor, models.CategoryAccessory:
	default:
		return apperr.InvalidArgumentf("unknown product category %q", p.Category)
	}
	if p.Price < 0 {
		return apperr.InvalidArgument("price cannot be negative")
	}
	return nil
}
