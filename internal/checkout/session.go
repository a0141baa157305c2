package checkout

import (
	"context"
	"errors"
	"time"

	"curtain_store/internal/apperr"
	"curtain_store/internal/cart"
	"curtain_store/internal/pricing"
)

var ErrCartEmpty = apperr.FailedPrecondition("cart is empty")

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
}

// OrderRequest is what checkout hands to the order placer.
type OrderRequest struct {
	SessionID     string              `json:"session_id"`
	Customer      Customer            `json:"customer"`
	Items         []OrderLine         `json:"items"`
	Subtotal      int64               `json:"subtotal"`
	Discount      int64               `json:"discount"`
	Total         int64               `json:"total"`
	PaymentMethod pricing.PaymentPlan `json:"payment_method"`
}

type PlacedOrder struct {
	OrderNumber string
	CreatedAt   time.Time
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (*PlacedOrder, error)
}

// Session is everything the storefront remembers about one shopper.
type Session struct {
	ID        string                `json:"id"`
	Flow      Flow                  `json:"flow"`
	Cart      *cart.Cart            `json:"cart"`
	Config    pricing.Configuration `json:"config"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Flow:      NewFlow(),
		Cart:      cart.New(),
		Config:    pricing.Configuration{Plan: pricing.PlanCOD},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BuildOrderRequest validates the form against the cart and assembles the
// request. Cart lines are undiscounted; the full_100 discount is taken here
// from the chosen payment method.
func BuildOrderRequest(s *Session, form Form) (OrderRequest, error) {
	if s.Cart == nil || s.Cart.IsEmpty() {
		return OrderRequest{}, ErrCartEmpty
	}
	totals := s.Cart.Totals()
	if err := form.Validate(totals.Price); err != nil {
		return OrderRequest{}, err
	}
	form = form.normalized()

	method := form.PaymentMethod
	if method == "" {
		method = pricing.PlanCOD
	}

	discount := pricing.Discount(totals.Price, method)

	items := s.Cart.Items()
	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, OrderLine{
			ProductID: item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
			Category:  item.Category,
		})
	}

	return OrderRequest{
		SessionID: s.ID,
		Customer: Customer{
			Name:    form.Name,
			Email:   form.Email,
			Phone:   form.Phone,
			Address: form.Address,
		},
		Items:         lines,
		Subtotal:      totals.Price,
		Discount:      discount,
		Total:         totals.Price - discount,
		PaymentMethod: method,
	}, nil
}

// Submit places the order for the session's cart. On failure the session is
// left in the checkout form untouched so the shopper can retry.
func Submit(ctx context.Context, s *Session, form Form, placer OrderPlacer) (*Receipt, error) {
	if s.Flow.View != ViewCheckoutForm {
		return nil, apperr.FailedPreconditionf("cannot submit an order from the %s view", s.Flow.View)
	}
	req, err := BuildOrderRequest(s, form)
	if err != nil {
		return nil, err
	}

	placed, err := placer.PlaceOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	if placed == nil || placed.OrderNumber == "" {
		return nil, errors.New("order placer returned no order number")
	}

	s.Cart.Clear()
	s.Flow.markSubmitted(placed.OrderNumber)

	return NewReceipt(req, placed), nil
}
