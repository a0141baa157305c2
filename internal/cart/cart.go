package cart

import (
	"encoding/json"
	"strings"

	"curtain_store/internal/apperr"
)

type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// NewLineItem builds an item with quantity 1.
func NewLineItem(id, name string, unitPrice int64, category, image string) (LineItem, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return LineItem{}, apperr.InvalidArgument("item id is required")
	}
	if name == "" {
		return LineItem{}, apperr.InvalidArgument("item name is required")
	}
	if unitPrice < 0 {
		return LineItem{}, apperr.InvalidArgument("unit price cannot be negative")
	}
	return LineItem{
		ID:        id,
		Name:      name,
		UnitPrice: unitPrice,
		Category:  category,
		Image:     image,
		Quantity:  1,
	}, nil
}

type Totals struct {
	Items int   `json:"items"`
	Price int64 `json:"price"`
}

// Cart holds at most one row per item ID. It is owned by a single session and
// is not safe for concurrent use.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// Add increments the quantity of an existing row or appends a new one.
func (c *Cart) Add(item LineItem) {
	if i := c.indexOf(item.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

func (c *Cart) Remove(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// UpdateQuantity applies delta only when the result stays positive; it never
// removes a row.
func (c *Cart) UpdateQuantity(id string, delta int) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	if q := c.items[i].Quantity + delta; q > 0 {
		c.items[i].Quantity = q
	}
}

func (c *Cart) Totals() Totals {
	var t Totals
	for _, item := range c.items {
		t.Items += item.Quantity
		t.Price += item.UnitPrice * int64(item.Quantity)
	}
	return t
}

func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Get(id string) (LineItem, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return LineItem{}, false
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

type snapshot struct {
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(snapshot{Items: items, Totals: c.Totals()})
}

// UnmarshalJSON rebuilds the cart row by row so duplicated IDs in stored
// payloads collapse into one row. Totals in the payload are ignored.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	c.items = nil
	for _, item := range s.Items {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		if i := c.indexOf(item.ID); i >= 0 {
			c.items[i].Quantity += item.Quantity
			continue
		}
		c.items = append(c.items, item)
	}
	return nil
}
