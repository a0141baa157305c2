package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"curtain_store/internal/apperr"
	"curtain_store/internal/checkout"
	"curtain_store/internal/models"
	"curtain_store/internal/redis"
	"curtain_store/internal/repository"
	"curtain_store/internal/services"

	"gorm.io/gorm"
)

type memSessions struct {
	mu    sync.Mutex
	data  map[string][]byte
	locks map[string]bool
}

func newMemSessions() *memSessions {
	return &memSessions{data: make(map[string][]byte), locks: make(map[string]bool)}
}

func (s *memSessions) SaveSession(_ context.Context, session *checkout.Session, _ time.Duration) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = b
	return nil
}

func (s *memSessions) GetSession(_ context.Context, id string) (*checkout.Session, error) {
	s.mu.Lock()
	b, ok := s.data[id]
	s.mu.Unlock()
	if !ok {
		return nil, redis.ErrSessionNotFound
	}
	var session checkout.Session
	if err := json.Unmarshal(b, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memSessions) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *memSessions) AcquireCheckoutLock(_ context.Context, id string, _ time.Duration) (func(context.Context) error, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[id] {
		return nil, false, nil
	}
	s.locks[id] = true
	return func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.locks, id)
		return nil
	}, true, nil
}

type memProducts struct {
	products map[uint]models.Product
}

func (r *memProducts) List(_ context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	var out []models.Product
	for id := uint(1); id <= uint(len(r.products)); id++ {
		p, ok := r.products[id]
		if !ok || (filter.Category != "" && p.Category != filter.Category) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProducts) GetByID(_ context.Context, id uint) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memProducts) Create(_ context.Context, p *models.Product) error {
	p.ID = uint(len(r.products) + 1)
	r.products[p.ID] = *p
	return nil
}

func (r *memProducts) Update(_ context.Context, p *models.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *memProducts) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

type stubPlacer struct {
	calls int
}

func (p *stubPlacer) PlaceOrder(_ context.Context, req checkout.OrderRequest) (*checkout.PlacedOrder, error) {
	p.calls++
	return &checkout.PlacedOrder{OrderNumber: "ORD-20260314-0000BEEF", CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}, nil
}

// stubOrders implements services.OrderService over a fixed order list.
type stubOrders struct {
	orders []models.Order
}

func (s *stubOrders) PlaceOrder(context.Context, checkout.OrderRequest) (*checkout.PlacedOrder, error) {
	return nil, apperr.FailedPrecondition("not supported")
}

func (s *stubOrders) GetOrder(_ context.Context, id uint) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}
	return nil, apperr.NotFound("order not found")
}

func (s *stubOrders) GetOrderByNumber(_ context.Context, number string) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].OrderNumber == number {
			return &s.orders[i], nil
		}
	}
	return nil, apperr.NotFound("order not found")
}

func (s *stubOrders) ListOrders(context.Context, int, int) ([]models.Order, error) {
	return s.orders, nil
}

func (s *stubOrders) SearchOrders(_ context.Context, q string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if o.OrderNumber == q || o.CustomerName == q {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrders) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !models.OrderStatus(status).Valid() {
		return nil, apperr.InvalidArgumentf("unknown order status %q", status)
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

func (s *stubOrders) TopProducts(context.Context, int) ([]repository.ProductSales, error) {
	return nil, nil
}

func (s *stubOrders) LoadStore(context.Context, time.Time) error {
	return nil
}

type stubAuth struct {
	tokens map[string]*models.User
}

func (a *stubAuth) Login(_ context.Context, username, password string) (string, *models.User, error) {
	for token, u := range a.tokens {
		if u.Username == username && password == "correct-horse" {
			return token, u, nil
		}
	}
	return "", nil, services.ErrInvalidCredentials
}

func (a *stubAuth) Verify(_ context.Context, token string) (*models.User, error) {
	u, ok := a.tokens[token]
	if !ok {
		return nil, services.ErrUnauthenticated
	}
	return u, nil
}

func (a *stubAuth) Logout(_ context.Context, token string) error {
	delete(a.tokens, token)
	return nil
}
