package controllers

import (
	"net/http"

	"localmarket/services"
)

// DashboardController serves the supplier analytics view.
type DashboardController struct {
	analytics *services.AnalyticsService
	products  *services.ProductService
}

func NewDashboardController(analytics *services.AnalyticsService, products *services.ProductService) *DashboardController {
	return &DashboardController{analytics: analytics, products: products}
}

// SupplierDashboard returns the supplier's catalog together with revenue,
// delivered-order count and the top-selling item.
func (dc *DashboardController) SupplierDashboard(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	stats, err := dc.analytics.SupplierStats(ctx, supplierID)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := dc.products.Mine(ctx, supplierID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats":    stats,
		"products": products,
	})
}
