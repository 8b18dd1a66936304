package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/store"
)

// SupplierStats is the read-only dashboard aggregate for one supplier,
// derived entirely from current order and product state.
type SupplierStats struct {
	TotalRevenue    float64 `json:"total_revenue"`
	CompletedOrders int     `json:"completed_orders"`
	TopSellingItem  string  `json:"top_selling_item"`
}

// AnalyticsService computes supplier dashboard figures.
type AnalyticsService struct {
	orders   store.OrderStore
	products store.ProductStore
}

func NewAnalyticsService(orders store.OrderStore, products store.ProductStore) *AnalyticsService {
	return &AnalyticsService{orders: orders, products: products}
}

// SupplierStats sums snapshot revenue across the supplier's lines in
// delivered orders, counts the distinct orders involved, and names the
// supplier's product with the most units sold ("N/A" with no products).
func (s *AnalyticsService) SupplierStats(ctx context.Context, supplierID primitive.ObjectID) (*SupplierStats, error) {
	revenue, orders, err := s.orders.SupplierRevenue(ctx, supplierID)
	if err != nil {
		return nil, storeErr(err)
	}

	stats := &SupplierStats{
		TotalRevenue:    revenue,
		CompletedOrders: orders,
		TopSellingItem:  "N/A",
	}

	top, err := s.products.TopSelling(ctx, supplierID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, storeErr(err)
	}
	if top != nil {
		stats.TopSellingItem = top.Name
	}
	return stats, nil
}
