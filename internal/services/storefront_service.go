package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"curtain_store/internal/apperr"
	"curtain_store/internal/cart"
	"curtain_store/internal/checkout"
	"curtain_store/internal/pricing"
	"curtain_store/internal/redis"
	"curtain_store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore is satisfied by *redis.Client.
type SessionStore interface {
	SaveSession(ctx context.Context, session *checkout.Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*checkout.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	AcquireCheckoutLock(ctx context.Context, sessionID string, ttl time.Duration) (func(context.Context) error, bool, error)
}

const postCheckoutSaveAttempts = 2

type StorefrontService interface {
	Session(ctx context.Context, sessionID string) (*checkout.Session, error)
	Navigate(ctx context.Context, sessionID string, action checkout.Action) (*checkout.Session, error)
	AddProduct(ctx context.Context, sessionID string, productID uint) (*checkout.Session, error)
	AddConfigured(ctx context.Context, sessionID string, productID uint, in pricing.ConfigurationInput) (*checkout.Session, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, delta int) (*checkout.Session, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*checkout.Session, error)
	Quote(in pricing.ConfigurationInput) (pricing.Configuration, pricing.Breakdown, error)
	Checkout(ctx context.Context, sessionID string, form checkout.Form) (*checkout.Receipt, error)
}

type storefrontService struct {
	sessions   SessionStore
	products   repository.ProductRepository
	placer     checkout.OrderPlacer
	logger     *zap.Logger
	sessionTTL time.Duration
	lockTTL    time.Duration
	now        func() time.Time
}

func NewStorefrontService(
	sessions SessionStore,
	products repository.ProductRepository,
	placer checkout.OrderPlacer,
	logger *zap.Logger,
	sessionTTL, lockTTL time.Duration,
) StorefrontService {
	return &storefrontService{
		sessions:   sessions,
		products:   products,
		placer:     placer,
		logger:     logger,
		sessionTTL: sessionTTL,
		lockTTL:    lockTTL,
		now:        time.Now,
	}
}

// Session loads the shopper's session, starting a fresh one for an empty or
// expired ID. New sessions are not persisted until they are mutated.
func (s *storefrontService) Session(ctx context.Context, sessionID string) (*checkout.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return checkout.NewSession(uuid.NewString(), s.now()), nil
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, apperr.InvalidArgument("invalid session id")
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if errors.Is(err, redis.ErrSessionNotFound) {
		return checkout.NewSession(sessionID, s.now()), nil
	}
	if err != nil {
		return nil, err
	}
	if session.Cart == nil {
		session.Cart = cart.New()
	}
	if session.Flow.View == "" {
		session.Flow = checkout.NewFlow()
	}
	return session, nil
}

func (s *storefrontService) mutate(ctx context.Context, sessionID string, fn func(*checkout.Session) error) (*checkout.Session, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *storefrontService) save(ctx context.Context, session *checkout.Session) error {
	session.UpdatedAt = s.now()
	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *storefrontService) Navigate(ctx context.Context, sessionID string, action checkout.Action) (*checkout.Session, error) {
	return s.mutate(ctx, sessionID, func(session *checkout.Session) error {
		return session.Flow.Apply(action, session.Cart.Len())
	})
}

func (s *storefrontService) AddProduct(ctx context.Context, sessionID string, productID uint) (*checkout.Session, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, notFound(err, "product")
	}
	if !product.InStock {
		return nil, apperr.FailedPreconditionf("%s is out of stock", product.Name)
	}
	item, err := cart.NewLineItem(strconv.FormatUint(uint64(product.ID), 10), product.Name, product.Price, product.Category, product.ImageURL)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(session *checkout.Session) error {
		session.Cart.Add(item)
		return nil
	})
}

// AddConfigured prices a curtain configuration and adds it as its own line.
// Identical configurations of the same product share one line. Lines carry
// the undiscounted subtotal; any payment discount is taken at checkout.
func (s *storefrontService) AddConfigured(ctx context.Context, sessionID string, productID uint, in pricing.ConfigurationInput) (*checkout.Session, error) {
	cfg, breakdown, err := s.Quote(in)
	if err != nil {
		return nil, err
	}
	if !cfg.Complete() {
		return nil, apperr.InvalidArgument("curtain type and motor type are required")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, notFound(err, "product")
	}

	item, err := cart.NewLineItem(configuredItemID(product.ID, cfg), configuredItemName(product.Name, cfg), breakdown.Subtotal, product.Category, product.ImageURL)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(session *checkout.Session) error {
		session.Config = cfg
		session.Cart.Add(item)
		return nil
	})
}

func (s *storefrontService) UpdateQuantity(ctx context.Context, sessionID, itemID string, delta int) (*checkout.Session, error) {
	if delta == 0 {
		return nil, apperr.InvalidArgument("delta must not be zero")
	}
	return s.mutate(ctx, sessionID, func(session *checkout.Session) error {
		if _, ok := session.Cart.Get(itemID); !ok {
			return apperr.NotFound("item not in cart")
		}
		session.Cart.UpdateQuantity(itemID, delta)
		return nil
	})
}

func (s *storefrontService) RemoveItem(ctx context.Context, sessionID, itemID string) (*checkout.Session, error) {
	return s.mutate(ctx, sessionID, func(session *checkout.Session) error {
		session.Cart.Remove(itemID)
		return nil
	})
}

func (s *storefrontService) Quote(in pricing.ConfigurationInput) (pricing.Configuration, pricing.Breakdown, error) {
	cfg, err := pricing.NewConfiguration(in)
	if err != nil {
		return pricing.Configuration{}, pricing.Breakdown{}, err
	}
	return cfg, pricing.Compute(cfg), nil
}

// Checkout submits the session's cart while holding the per-session lock, so
// a double click cannot place two orders.
func (s *storefrontService) Checkout(ctx context.Context, sessionID string, form checkout.Form) (*checkout.Receipt, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperr.InvalidArgument("session id is required")
	}

	release, ok, err := s.sessions.AcquireCheckoutLock(ctx, sessionID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict("checkout already in progress")
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release checkout lock", zap.String("session_id", sessionID), zap.Error(err))
		}
	}()

	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	receipt, err := checkout.Submit(ctx, session, form, s.placer)
	if err != nil {
		s.logger.Warn("checkout failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	s.settleAfterOrder(context.WithoutCancel(ctx), session, receipt.OrderNumber)
	return receipt, nil
}

// settleAfterOrder persists the emptied cart of a placed order. It runs under
// the checkout lock. If the session cannot be saved it is dropped, so the old
// cart can never be submitted a second time.
func (s *storefrontService) settleAfterOrder(ctx context.Context, session *checkout.Session, orderNumber string) {
	var err error
	for attempt := 0; attempt < postCheckoutSaveAttempts; attempt++ {
		if err = s.save(ctx, session); err == nil {
			return
		}
	}
	s.logger.Error("order placed but session not saved, dropping session",
		zap.String("session_id", session.ID),
		zap.String("order_number", orderNumber),
		zap.Error(err),
	)
	if err := s.sessions.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Error("failed to drop session after order",
			zap.String("session_id", session.ID),
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
	}
}

func configuredItemID(productID uint, cfg pricing.Configuration) string {
	return fmt.Sprintf("%d:%s:%s:%s:%s:%t",
		productID,
		cfg.Curtain,
		cfg.Motor,
		strconv.FormatFloat(cfg.WidthFeet, 'f', -1, 64),
		cfg.Installation,
		cfg.RemoteSetup,
	)
}

func configuredItemName(name string, cfg pricing.Configuration) string {
	parts := []string{string(cfg.Curtain), string(cfg.Motor)}
	if cfg.WidthFeet > 0 {
		parts = append(parts, strconv.FormatFloat(cfg.WidthFeet, 'f', -1, 64)+" ft")
	}
	if cfg.Installation == pricing.InstallationVendor {
		parts = append(parts, "installation")
	}
	if cfg.RemoteSetup {
		parts = append(parts, "remote setup")
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(parts, ", "))
}
