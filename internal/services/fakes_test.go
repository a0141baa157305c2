package services

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"sync"
	"time"

	"curtain_store/internal/apperr"
	"curtain_store/internal/checkout"
	"curtain_store/internal/models"
	"curtain_store/internal/redis"
	"curtain_store/internal/repository"

	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	orders    []*models.Order
	createErr error
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	order.ID = uint(len(r.orders) + 1)
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uint) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetByNumber(_ context.Context, number string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) List(_ context.Context, _, _ int) ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListSince(_ context.Context, since time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if !o.CreatedAt.Before(since) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Search(ctx context.Context, _ string) ([]models.Order, error) {
	return r.List(ctx, 0, 0)
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeOrderItemRepo struct{}

func (fakeOrderItemRepo) GetByOrderID(context.Context, uint) ([]models.OrderItem, error) {
	return nil, nil
}

func (fakeOrderItemRepo) TopProducts(_ context.Context, limit int) ([]repository.ProductSales, error) {
	return []repository.ProductSales{{ProductID: "1", Name: "Sliding Curtain", Quantity: int64(limit), Revenue: 36000}}, nil
}

type fakeCustomerRepo struct {
	upserted []models.Customer
	err      error
}

func (r *fakeCustomerRepo) Upsert(_ context.Context, c *models.Customer) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, *c)
	return nil
}

func (r *fakeCustomerRepo) List(context.Context) ([]models.Customer, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) OrderPlaced(_ context.Context, order *models.Order) error {
	n.sent = append(n.sent, order.OrderNumber)
	return n.err
}

type fakeProductRepo struct {
	products map[uint]*models.Product
	nextID   uint
}

func newFakeProductRepo(products ...models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uint]*models.Product)}
	for i := range products {
		p := products[i]
		r.products[p.ID] = &p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uint) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeImageStore struct {
	uploaded []string
	deleted  []string
}

func (s *fakeImageStore) Upload(_ context.Context, filename string, r io.Reader, productID string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	folder := productID
	if folder == "" {
		folder = "unassigned"
	}
	url := "http://localhost/uploads/products/" + folder + "/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeImageStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

// fakeSessions round-trips sessions through JSON like the Redis client does.
type fakeSessions struct {
	mu      sync.Mutex
	data    map[string][]byte
	locks   map[string]bool
	saveErr error
	saves   int
	deleted []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: make(map[string][]byte), locks: make(map[string]bool)}
}

func (s *fakeSessions) SaveSession(_ context.Context, session *checkout.Session, _ time.Duration) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[session.ID] = b
	return nil
}

func (s *fakeSessions) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeSessions) GetSession(_ context.Context, id string) (*checkout.Session, error) {
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

func (s *fakeSessions) AcquireCheckoutLock(_ context.Context, id string, _ time.Duration) (func(context.Context) error, bool, error) {
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

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
	logins map[uint]time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), logins: make(map[uint]time.Time)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetAll(context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	r.logins[id] = at
	return nil
}

type fakeQuoteRepo struct {
	quotes []*models.Quote
}

func (r *fakeQuoteRepo) Create(_ context.Context, q *models.Quote) error {
	q.ID = uint(len(r.quotes) + 1)
	r.quotes = append(r.quotes, q)
	return nil
}

func (r *fakeQuoteRepo) List(_ context.Context, status string) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range r.quotes {
		if status == "" || q.Status == status {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	for _, q := range r.quotes {
		if q.ID == id {
			q.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func codeOf(err error) apperr.Code {
	code, ok := apperr.CodeOf(err)
	if !ok {
		return -1
	}
	return code
}

type fakeTokens struct {
	tokens map[string]uint
}

func (f *fakeTokens) SaveAdminToken(_ context.Context, token string, userID uint, _ time.Duration) error {
	if f.tokens == nil {
		f.tokens = make(map[string]uint)
	}
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokens) AdminUserID(_ context.Context, token string) (uint, error) {
	id, ok := f.tokens[token]
	if !ok {
		return 0, redis.ErrTokenNotFound
	}
	return id, nil
}

func (f *fakeTokens) DeleteAdminToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}
