package services

import (
	"context"

	"curtain_store/internal/orderstore"
	"curtain_store/internal/repository"
)

type Dashboard struct {
	Stats  orderstore.Stats   `json:"stats"`
	Orders []orderstore.Entry `json:"orders"`
}

type ReportService interface {
	Dashboard() Dashboard
	RevenueByDay(days int) []orderstore.DayRevenue
	TopProducts(ctx context.Context, limit int) ([]repository.ProductSales, error)
	Subscribe(buffer int) (<-chan orderstore.Event, func())
}

type reportService struct {
	store  *orderstore.Store
	orders OrderService
}

func NewReportService(store *orderstore.Store, orders OrderService) ReportService {
	return &reportService{store: store, orders: orders}
}

func (s *reportService) Dashboard() Dashboard {
	orders := s.store.TodaysOrders()
	if orders == nil {
		orders = []orderstore.Entry{}
	}
	return Dashboard{Stats: s.store.TodaysStats(), Orders: orders}
}

func (s *reportService) RevenueByDay(days int) []orderstore.DayRevenue {
	if days <= 0 || days > 365 {
		days = 7
	}
	return s.store.RevenueByDay(days)
}

func (s *reportService) TopProducts(ctx context.Context, limit int) ([]repository.ProductSales, error) {
	return s.orders.TopProducts(ctx, limit)
}

func (s *reportService) Subscribe(buffer int) (<-chan orderstore.Event, func()) {
	return s.store.Subscribe(buffer)
}
