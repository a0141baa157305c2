package checkout

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"curtain_store/internal/apperr"
)

var ErrReceiptNotFound = apperr.NotFound("order not found")

type ReceiptItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Category string `json:"category,omitempty"`
}

// Receipt is the confirmation payload carried in the `data` query parameter.
type Receipt struct {
	OrderNumber   string        `json:"orderNumber"`
	CustomerName  string        `json:"customerName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      int64         `json:"subtotal"`
	Discount      int64         `json:"discount,omitempty"`
	Total         int64         `json:"total"`
	PaymentMethod string        `json:"paymentMethod"`
	PlacedAt      time.Time     `json:"placedAt"`
}

func NewReceipt(req OrderRequest, placed *PlacedOrder) *Receipt {
	items := make([]ReceiptItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, ReceiptItem{
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
			Category: line.Category,
		})
	}
	return &Receipt{
		OrderNumber:   placed.OrderNumber,
		CustomerName:  req.Customer.Name,
		Email:         req.Customer.Email,
		Phone:         req.Customer.Phone,
		Address:       req.Customer.Address,
		Items:         items,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Total:         req.Total,
		PaymentMethod: string(req.PaymentMethod),
		PlacedAt:      placed.CreatedAt,
	}
}

// Query returns "data=<url-escaped json>" for the receipt page link.
func (r *Receipt) Query() (string, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return url.Values{"data": {string(raw)}}.Encode(), nil
}

// DecodeReceipt parses the value of the `data` query parameter. It accepts the
// JSON directly or still percent-encoded once more, and reports
// ErrReceiptNotFound for anything it cannot read.
func DecodeReceipt(data string) (*Receipt, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, ErrReceiptNotFound
	}

	r, err := parseReceipt(data)
	if err != nil {
		unescaped, uerr := url.QueryUnescape(data)
		if uerr != nil {
			return nil, ErrReceiptNotFound
		}
		if r, err = parseReceipt(unescaped); err != nil {
			return nil, ErrReceiptNotFound
		}
	}
	return r, nil
}

func parseReceipt(raw string) (*Receipt, error) {
	var r Receipt
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, err
	}
	if r.OrderNumber == "" {
		return nil, ErrReceiptNotFound
	}
	return &r, nil
}
