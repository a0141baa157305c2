// Package orderstore keeps the placed orders the admin dashboard aggregates
// over and notifies subscribers when they change.
package orderstore

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const PaymentCOD = "cod"

type Entry struct {
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	Total         int64     `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	PlacedAt      time.Time `json:"placed_at"`
}

type EventType string

const (
	EventOrderAdded    EventType = "order_added"
	EventStatusChanged EventType = "status_changed"
)

type Event struct {
	Type  EventType `json:"type"`
	Entry Entry     `json:"entry"`
}

type Stats struct {
	TotalOrders  int   `json:"total_orders"`
	CODOrders    int   `json:"cod_orders"`
	OnlineOrders int   `json:"online_orders"`
	Revenue      int64 `json:"revenue"`
}

type DayRevenue struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

type Option func(*Store)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

type Store struct {
	mu          sync.RWMutex
	entries     []Entry
	subscribers map[int]chan Event
	nextSubID   int
	now         func() time.Time
	logger      *zap.Logger
}

func New(opts ...Option) *Store {
	s := &Store{
		subscribers: make(map[int]chan Event),
		now:         time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Add(entry Entry) {
	if entry.PlacedAt.IsZero() {
		entry.PlacedAt = s.now()
	}
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.publishLocked(Event{Type: EventOrderAdded, Entry: entry})
	s.mu.Unlock()
}

// Load replaces the contents without notifying subscribers.
func (s *Store) Load(entries []Entry) {
	s.mu.Lock()
	s.entries = append([]Entry(nil), entries...)
	s.mu.Unlock()
}

func (s *Store) UpdateStatus(orderNumber, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].OrderNumber == orderNumber {
			s.entries[i].Status = status
			s.publishLocked(Event{Type: EventStatusChanged, Entry: s.entries[i]})
			return true
		}
	}
	return false
}

// Orders returns every entry, newest first.
func (s *Store) Orders() []Entry {
	s.mu.RLock()
	out := append([]Entry(nil), s.entries...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out
}

func (s *Store) TodaysOrders() []Entry {
	today := s.now()
	var out []Entry
	for _, e := range s.Orders() {
		if sameDay(e.PlacedAt, today) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) TodaysStats() Stats {
	var st Stats
	for _, e := range s.TodaysOrders() {
		st.TotalOrders++
		if e.PaymentMethod == PaymentCOD {
			st.CODOrders++
		} else {
			st.OnlineOrders++
		}
		st.Revenue += e.Total
	}
	return st
}

// RevenueByDay returns one bucket per day for the last `days` days, oldest first.
func (s *Store) RevenueByDay(days int) []DayRevenue {
	if days <= 0 {
		return nil
	}
	now := s.now()
	start := startOfDay(now).AddDate(0, 0, -(days - 1))

	buckets := make([]DayRevenue, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i].Date = key
		index[key] = i
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		i, ok := index[e.PlacedAt.In(now.Location()).Format("2006-01-02")]
		if !ok {
			continue
		}
		buckets[i].Orders++
		buckets[i].Revenue += e.Total
	}
	return buckets
}

// Subscribe registers a listener. Events are dropped for a subscriber whose
// buffer is full. cancel closes the channel and is safe to call twice.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) publishLocked(ev Event) {
	for id, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			s.logger.Warn("order store subscriber is full, dropping event",
				zap.Int("subscriber", id),
				zap.String("order_number", ev.Entry.OrderNumber),
			)
		}
	}
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
