package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"curtain_store/internal/apperr"
	"curtain_store/internal/checkout"
	"curtain_store/internal/models"
	"curtain_store/internal/orderstore"
	"curtain_store/internal/pricing"
	"curtain_store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req checkout.OrderRequest) (*checkout.PlacedOrder, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error)
	SearchOrders(ctx context.Context, query string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error)
	TopProducts(ctx context.Context, limit int) ([]repository.ProductSales, error)
	LoadStore(ctx context.Context, since time.Time) error
}

type orderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	customerRepo  repository.CustomerRepository
	store         *orderstore.Store
	notifier      Notifier
	logger        *zap.Logger
	now           func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	customerRepo repository.CustomerRepository,
	store *orderstore.Store,
	notifier Notifier,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		customerRepo:  customerRepo,
		store:         store,
		notifier:      notifier,
		logger:        logger,
		now:           time.Now,
	}
}

// PlaceOrder persists the order, then runs the side effects. Only the insert
// can fail the call; customer upsert and notification failures are logged.
func (s *orderService) PlaceOrder(ctx context.Context, req checkout.OrderRequest) (*checkout.PlacedOrder, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		OrderNumber:   newOrderNumber(now),
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		Address:       req.Customer.Address,
		TotalAmount:   req.Total,
		Discount:      lineSum(req.Items) - req.Total,
		PaymentMethod: string(req.PaymentMethod),
		Status:        string(models.OrderPending),
		SessionID:     req.SessionID,
		CreatedAt:     now,
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Category:  line.Category,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("failed to create order",
			zap.String("order_number", order.OrderNumber),
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total", order.TotalAmount),
		zap.String("payment_method", order.PaymentMethod),
		zap.Int("items", len(order.Items)),
	)

	s.upsertCustomer(ctx, order)
	s.store.Add(entryFromOrder(order))
	s.notify(ctx, order)

	return &checkout.PlacedOrder{OrderNumber: order.OrderNumber, CreatedAt: order.CreatedAt}, nil
}

func (s *orderService) upsertCustomer(ctx context.Context, order *models.Order) {
	customer := &models.Customer{
		Name:    order.CustomerName,
		Email:   strings.ToLower(order.CustomerEmail),
		Phone:   order.CustomerPhone,
		Address: order.Address,
	}
	if err := s.customerRepo.Upsert(ctx, customer); err != nil {
		s.logger.Warn("customer profile upsert failed",
			zap.String("order_number", order.OrderNumber),
			zap.String("email", customer.Email),
			zap.Error(err),
		)
	}
}

func (s *orderService) notify(ctx context.Context, order *models.Order) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.notifier.OrderPlaced(ctx, order); err != nil {
		s.logger.Warn("order confirmation not sent",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return order, nil
}

func (s *orderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	return s.orderRepo.List(ctx, limit, offset)
}

func (s *orderService) SearchOrders(ctx context.Context, query string) ([]models.Order, error) {
	return s.orderRepo.Search(ctx, query)
}

func (s *orderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.OrderStatus(status).Valid() {
		return nil, apperr.InvalidArgumentf("unknown order status %q", status)
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "order")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	s.store.UpdateStatus(order.OrderNumber, status)
	s.logger.Info("order status updated", zap.String("order_number", order.OrderNumber), zap.String("status", status))
	return order, nil
}

func (s *orderService) TopProducts(ctx context.Context, limit int) ([]repository.ProductSales, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.orderItemRepo.TopProducts(ctx, limit)
}

// LoadStore seeds the dashboard store from persisted orders.
func (s *orderService) LoadStore(ctx context.Context, since time.Time) error {
	orders, err := s.orderRepo.ListSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	entries := make([]orderstore.Entry, 0, len(orders))
	for i := range orders {
		entries = append(entries, entryFromOrder(&orders[i]))
	}
	s.store.Load(entries)
	s.logger.Info("order store loaded", zap.Int("orders", len(entries)), zap.Time("since", since))
	return nil
}

func validateOrderRequest(req checkout.OrderRequest) error {
	c := req.Customer
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" ||
		strings.TrimSpace(c.Phone) == "" || strings.TrimSpace(c.Address) == "" {
		return apperr.InvalidArgument("customer name, email, phone and address are required")
	}
	if len(req.Items) == 0 {
		return checkout.ErrCartEmpty
	}
	for _, line := range req.Items {
		if line.Quantity < 1 || line.Price < 0 {
			return apperr.InvalidArgumentf("invalid line for product %q", line.ProductID)
		}
	}
	sum := lineSum(req.Items)
	if want := sum - pricing.Discount(sum, req.PaymentMethod); want != req.Total {
		return apperr.InvalidArgumentf("order total %d does not match items %d for %s", req.Total, want, req.PaymentMethod)
	}
	return nil
}

func lineSum(lines []checkout.OrderLine) int64 {
	var sum int64
	for _, line := range lines {
		sum += line.Price * int64(line.Quantity)
	}
	return sum
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func entryFromOrder(o *models.Order) orderstore.Entry {
	return orderstore.Entry{
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		Total:         o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		PlacedAt:      o.CreatedAt,
	}
}
