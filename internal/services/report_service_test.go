package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"curtain_store/internal/orderstore"
)

func TestDashboard(t *testing.T) {
	store := orderstore.New(orderstore.WithClock(fixedNow))
	svc := NewReportService(store, nil)

	empty := svc.Dashboard()
	assert.NotNil(t, empty.Orders)
	assert.Zero(t, empty.Stats.TotalOrders)

	store.Add(orderstore.Entry{OrderNumber: "A", Total: 1000, PaymentMethod: "cod", PlacedAt: fixedNow()})
	store.Add(orderstore.Entry{OrderNumber: "B", Total: 2000, PaymentMethod: "gateway", PlacedAt: fixedNow().Add(-time.Hour)})
	store.Add(orderstore.Entry{OrderNumber: "C", Total: 9000, PaymentMethod: "cod", PlacedAt: fixedNow().AddDate(0, 0, -2)})

	d := svc.Dashboard()
	assert.Equal(t, orderstore.Stats{TotalOrders: 2, CODOrders: 1, OnlineOrders: 1, Revenue: 3000}, d.Stats)
	assert.Len(t, d.Orders, 2)

	assert.Len(t, svc.RevenueByDay(0), 7)
	assert.Len(t, svc.RevenueByDay(3), 3)
}
