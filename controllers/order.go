package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
	"localmarket/services"
	"localmarket/utils"
)

// OrderController handles checkout, fulfilment and rating requests.
type OrderController struct {
	orders *services.OrderService
	email  *utils.EmailService
}

func NewOrderController(orders *services.OrderService, email *utils.EmailService) *OrderController {
	return &OrderController{orders: orders, email: email}
}

// Checkout converts the vendor's cart into an order.
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, vendorID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	order, err := oc.orders.Checkout(ctx, vendorID)
	if err != nil {
		writeError(w, err)
		return
	}

	go func(email string, orderID string, total float64) {
		if err := oc.email.SendOrderPlaced(email, orderID, total); err != nil {
			slog.Error("failed to send order confirmation", "to", email, "error", err)
		}
	}(claims.Email, order.ID.Hex(), order.TotalPrice)

	writeJSON(w, http.StatusCreated, order)
}

// History lists the vendor's orders, newest first.
func (oc *OrderController) History(w http.ResponseWriter, r *http.Request) {
	_, vendorID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	orders, err := oc.orders.History(ctx, vendorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Manage lists orders containing the calling supplier's products.
func (oc *OrderController) Manage(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	orders, err := oc.orders.ManagedBy(ctx, supplierID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus overwrites an order's status on behalf of a supplier.
func (oc *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := oc.orders.UpdateStatus(ctx, orderID, supplierID, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Order status updated")
}

// Rate submits the vendor's rating of a supplier for one order.
func (oc *OrderController) Rate(w http.ResponseWriter, r *http.Request) {
	_, vendorID, ok := principal(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req struct {
		SupplierID string `json:"supplier_id"`
		Rating     int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	supplierID, err := primitive.ObjectIDFromHex(req.SupplierID)
	if err != nil {
		http.Error(w, "Invalid supplier id", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := oc.orders.Rate(ctx, vendorID, orderID, supplierID, req.Rating); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Thank you for your rating")
}
