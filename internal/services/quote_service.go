package services

import (
	"context"
	"strings"

	"curtain_store/internal/apperr"
	"curtain_store/internal/models"
	"curtain_store/internal/pricing"
	"curtain_store/internal/repository"
)

type QuoteRequest struct {
	Name    string                     `json:"name"`
	Email   string                     `json:"email"`
	Phone   string                     `json:"phone"`
	Message string                     `json:"message"`
	Config  pricing.ConfigurationInput `json:"config"`
}

type QuoteService interface {
	CreateQuote(ctx context.Context, req QuoteRequest) (*models.Quote, error)
	ListQuotes(ctx context.Context, status string) ([]models.Quote, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type quoteService struct {
	quoteRepo repository.QuoteRepository
}

func NewQuoteService(quoteRepo repository.QuoteRepository) QuoteService {
	return &quoteService{quoteRepo: quoteRepo}
}

// CreateQuote records a callback request with the estimate for whatever
// configuration the visitor had selected.
func (s *quoteService) CreateQuote(ctx context.Context, req QuoteRequest) (*models.Quote, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" {
		return nil, apperr.InvalidArgument("name and phone are required")
	}

	cfg, err := pricing.NewConfiguration(req.Config)
	if err != nil {
		return nil, err
	}

	quote := &models.Quote{
		Name:           req.Name,
		Email:          strings.TrimSpace(req.Email),
		Phone:          req.Phone,
		Message:        strings.TrimSpace(req.Message),
		CurtainType:    string(cfg.Curtain),
		MotorType:      string(cfg.Motor),
		WidthFeet:      cfg.WidthFeet,
		EstimatedTotal: pricing.Compute(cfg).Total,
		Status:         string(models.QuoteNew),
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) ListQuotes(ctx context.Context, status string) ([]models.Quote, error) {
	return s.quoteRepo.List(ctx, strings.TrimSpace(status))
}

func (s *quoteService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !models.QuoteStatus(status).Valid() {
		return apperr.InvalidArgumentf("unknown quote status %q", status)
	}
	return notFound(s.quoteRepo.UpdateStatus(ctx, id, status), "quote")
}
