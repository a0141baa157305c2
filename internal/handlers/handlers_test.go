package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"curtain_store/internal/models"
	"curtain_store/internal/orderstore"
	"curtain_store/internal/services"
	"curtain_store/pkg/whatsapp"
)

type testServer struct {
	router *gin.Engine
	placer *stubPlacer
	orders *stubOrders
	store  *orderstore.Store
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)

	products := &memProducts{products: map[uint]models.Product{
		1: {ID: 1, Name: "Sliding Curtain", Category: "sliding", Price: 36000, InStock: true},
		2: {ID: 2, Name: "Zigbee Hub", Category: "accessory", Price: 6500, InStock: true},
	}}
	placer := &stubPlacer{}
	orders := &stubOrders{orders: []models.Order{
		{ID: 7, OrderNumber: "ORD-20260314-0000CAFE", CustomerName: "Ayesha Khan", CustomerPhone: "03001234567", Status: "pending"},
	}}
	store := orderstore.New()
	logger := zap.NewNop()
	auth := &stubAuth{tokens: map[string]*models.User{
		"admin-token": {ID: 1, Username: "admin", Role: "super_admin", IsActive: true},
		"staff-token": {ID: 2, Username: "staff", Role: "staff", IsActive: true},
	}}

	storefront := services.NewStorefrontService(newMemSessions(), products, placer, logger, time.Hour, time.Second)
	catalog := services.NewCatalogService(products, nil, nil, logger)
	quotes := services.NewQuoteService(nil)
	reports := services.NewReportService(store, orders)
	wa := whatsapp.NewClient("", "", "", "", "92")

	router := gin.New()
	RegisterRoutes(router,
		NewAPIHandler(storefront, catalog, quotes),
		NewAdminHandler(orders, catalog, nil, auth, quotes, reports),
		NewWhatsAppHandler(wa, orders, services.NewWhatsAppNotifier(wa), logger),
		auth,
	)
	return &testServer{router: router, placer: placer, orders: orders, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type sessionBody struct {
	Session struct {
		ID   string `json:"id"`
		Flow struct {
			View        string `json:"view"`
			OrderNumber string `json:"order_number"`
		} `json:"flow"`
		Cart struct {
			Items []struct {
				ID       string `json:"id"`
				Quantity int    `json:"quantity"`
			} `json:"items"`
			Totals struct {
				Items int   `json:"items"`
				Price int64 `json:"price"`
			} `json:"totals"`
		} `json:"cart"`
	} `json:"session"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestStorefrontCheckoutFlow(t *testing.T) {
	s := newTestServer()

	w := s.do(t, http.MethodGet, "/api/session", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sid := w.Header().Get(SessionHeader)
	require.NotEmpty(t, sid)
	h := map[string]string{SessionHeader: sid}

	w = s.do(t, http.MethodPost, "/api/cart/items", gin.H{"product_id": 1}, h)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/cart/items", gin.H{"product_id": 2}, h)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPatch, "/api/cart/items/2", gin.H{"delta": 1}, h)
	require.Equal(t, http.StatusOK, w.Code)

	var body sessionBody
	decode(t, w, &body)
	assert.Equal(t, 3, body.Session.Cart.Totals.Items)
	assert.Equal(t, int64(49000), body.Session.Cart.Totals.Price)

	w = s.do(t, http.MethodPost, "/api/session/navigate", gin.H{"type": "open_cart"}, h)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/session/navigate", gin.H{"type": "checkout"}, h)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/checkout", gin.H{
		"name": "Ayesha Khan", "email": "ayesha@example.com", "phone": "03001234567",
		"address": "12 Canal Road", "payment_method": "advance_10",
	}, h)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var placed struct {
		Receipt struct {
			OrderNumber string `json:"orderNumber"`
			Total       int64  `json:"total"`
		} `json:"receipt"`
		ReceiptURL string `json:"receipt_url"`
	}
	decode(t, w, &placed)
	assert.Equal(t, "ORD-20260314-0000BEEF", placed.Receipt.OrderNumber)
	assert.Equal(t, int64(49000), placed.Receipt.Total)
	assert.Equal(t, 1, s.placer.calls)

	w = s.do(t, http.MethodGet, placed.ReceiptURL, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"orderNumber":"ORD-20260314-0000BEEF"`)

	w = s.do(t, http.MethodGet, "/api/session", nil, h)
	decode(t, w, &body)
	assert.Equal(t, "submitted", body.Session.Flow.View)
	assert.Equal(t, "ORD-20260314-0000BEEF", body.Session.Flow.OrderNumber)
	assert.Empty(t, body.Session.Cart.Items)
}

func TestCheckoutErrors(t *testing.T) {
	s := newTestServer()
	h := map[string]string{SessionHeader: "5d0c1f7e-7a59-4d0e-9c1b-0d7f0b9e2a11"}

	w := s.do(t, http.MethodPost, "/api/checkout", gin.H{"name": "x"}, h)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/session/navigate", gin.H{"type": "open_cart"}, h)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/session/navigate", gin.H{"type": "checkout"}, h)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"cart is empty"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/session", nil, map[string]string{SessionHeader: "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/cart/items", gin.H{"product_id": 99}, h)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Zero(t, s.placer.calls)
}

func TestReceiptNotFound(t *testing.T) {
	s := newTestServer()
	for _, path := range []string{"/receipt", "/receipt?data=%7Bbroken", "/receipt?data=%7B%7D"} {
		w := s.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"order not found"}`, w.Body.String(), path)
	}
}

func TestPricingQuote(t *testing.T) {
	s := newTestServer()

	w := s.do(t, http.MethodPost, "/api/pricing/quote", gin.H{"curtain_type": "sliding", "motor_type": "wifi", "width": "10"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Breakdown struct {
			Total int64 `json:"total"`
		} `json:"breakdown"`
	}
	decode(t, w, &body)
	assert.Equal(t, int64(41000), body.Breakdown.Total)

	w = s.do(t, http.MethodPost, "/api/pricing/quote", gin.H{"installation": "vendor", "remote_setup": true}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/quotes", gin.H{"name": "Hamza"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminAuth(t *testing.T) {
	s := newTestServer()

	w := s.do(t, http.MethodGet, "/api/admin/dashboard", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/dashboard", nil, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/admin/login", gin.H{"username": "admin", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/admin/login", gin.H{"username": "admin", "password": "correct-horse"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"admin-token"`)

	w = s.do(t, http.MethodGet, "/api/admin/users", nil, map[string]string{"Authorization": "Bearer staff-token"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOrders(t *testing.T) {
	s := newTestServer()
	h := map[string]string{"Authorization": "Bearer admin-token"}

	s.store.Add(orderstore.Entry{OrderNumber: "ORD-1", Total: 1000, PaymentMethod: "cod", PlacedAt: time.Now()})
	s.store.Add(orderstore.Entry{OrderNumber: "ORD-2", Total: 2000, PaymentMethod: "gateway", PlacedAt: time.Now()})

	w := s.do(t, http.MethodGet, "/api/admin/dashboard", nil, h)
	require.Equal(t, http.StatusOK, w.Code)
	var dash services.Dashboard
	decode(t, w, &dash)
	assert.Equal(t, orderstore.Stats{TotalOrders: 2, CODOrders: 1, OnlineOrders: 1, Revenue: 3000}, dash.Stats)

	w = s.do(t, http.MethodPatch, "/api/admin/orders/7/status", gin.H{"status": "confirmed"}, h)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", s.orders.orders[0].Status)

	w = s.do(t, http.MethodPatch, "/api/admin/orders/7/status", gin.H{"status": "teleported"}, h)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/admin/orders/8/status", gin.H{"status": "confirmed"}, h)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/orders/abc", nil, h)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/reports/revenue?days=3", nil, h)
	require.Equal(t, http.StatusOK, w.Code)
	var rev struct {
		Days []orderstore.DayRevenue `json:"days"`
	}
	decode(t, w, &rev)
	require.Len(t, rev.Days, 3)
	assert.Equal(t, int64(3000), rev.Days[2].Revenue)

	w = s.do(t, http.MethodPost, "/api/admin/orders/7/resend-confirmation", nil, h)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWhatsAppWebhookReportsOrderStatus(t *testing.T) {
	s := newTestServer()

	w := s.do(t, http.MethodPost, "/api/whatsapp/webhook", gin.H{
		"from":    "923001234567@s.whatsapp.net",
		"message": gin.H{"text": "status of ord-20260314-0000cafe please"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Order ORD-20260314-0000CAFE is pending.")

	w = s.do(t, http.MethodPost, "/api/whatsapp/webhook", gin.H{
		"from":    "923339999999@s.whatsapp.net",
		"message": gin.H{"text": "ORD-20260314-0000CAFE"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "could not find order")

	w = s.do(t, http.MethodPost, "/api/whatsapp/webhook", gin.H{"message": gin.H{"text": "hi"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWhatsAppWebhookDigitlessSenderNeverMatches(t *testing.T) {
	s := newTestServer()
	s.orders.orders = append(s.orders.orders, models.Order{
		ID: 9, OrderNumber: "ORD-20260314-0000BEEF", CustomerName: "Walk-in", CustomerPhone: "n/a", Status: "pending",
	})

	w := s.do(t, http.MethodPost, "/api/whatsapp/webhook", gin.H{
		"from":    "status@s.whatsapp.net",
		"message": gin.H{"text": "ORD-20260314-0000BEEF"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "could not find order ORD-20260314-0000BEEF")
	assert.NotContains(t, w.Body.String(), "is pending")
}
