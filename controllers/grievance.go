package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"localmarket/models"
	"localmarket/services"
	"localmarket/utils"
)

// GrievanceController handles the complaint workflow across all three roles.
type GrievanceController struct {
	grievances *services.GrievanceService
	users      *services.UserService
	email      *utils.EmailService
}

func NewGrievanceController(grievances *services.GrievanceService, users *services.UserService, email *utils.EmailService) *GrievanceController {
	return &GrievanceController{grievances: grievances, users: users, email: email}
}

// File creates a complaint about one of the vendor's orders.
func (gc *GrievanceController) File(w http.ResponseWriter, r *http.Request) {
	_, vendorID, ok := principal(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(w, mux.Vars(r), "orderId")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	grievance, err := gc.grievances.File(ctx, vendorID, orderID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	// Notify the supplier off the request path; a mail failure never fails
	// the filing. The request context is gone once the handler returns, so
	// the lookup runs on its own context.
	go func(g *models.Grievance) {
		supplier, err := gc.users.Profile(context.Background(), g.SupplierID)
		if err != nil {
			slog.Error("grievance notification: supplier lookup failed", "supplier_id", g.SupplierID.Hex(), "error", err)
			return
		}
		if err := gc.email.SendGrievanceFiled(supplier.Email, g.OrderID.Hex()); err != nil {
			slog.Error("failed to send grievance notification", "to", supplier.Email, "error", err)
		}
	}(grievance)

	writeJSON(w, http.StatusCreated, grievance)
}

// Mine lists the calling vendor's complaints.
func (gc *GrievanceController) Mine(w http.ResponseWriter, r *http.Request) {
	_, vendorID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	grievances, err := gc.grievances.ForVendor(ctx, vendorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grievances)
}

// AgainstMe lists complaints filed against the calling supplier.
func (gc *GrievanceController) AgainstMe(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	grievances, err := gc.grievances.ForSupplier(ctx, supplierID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grievances)
}

// AddNote sets the supplier's note on a complaint against them.
func (gc *GrievanceController) AddNote(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}
	grievanceID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := gc.grievances.AddNote(ctx, supplierID, grievanceID, req.Note); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Note saved")
}

// All lists every complaint for the admin dashboard.
func (gc *GrievanceController) All(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	grievances, err := gc.grievances.All(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grievances)
}

// Resolve overwrites a complaint's status on behalf of an admin and tells
// the vendor.
func (gc *GrievanceController) Resolve(w http.ResponseWriter, r *http.Request) {
	grievanceID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req struct {
		Status models.GrievanceStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	grievance, err := gc.grievances.Get(ctx, grievanceID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := gc.grievances.Resolve(ctx, grievanceID, req.Status); err != nil {
		writeError(w, err)
		return
	}

	go func(vendorID string) {
		vendor, err := gc.users.Profile(context.Background(), grievance.VendorID)
		if err != nil {
			slog.Error("grievance update notification: vendor lookup failed", "vendor_id", vendorID, "error", err)
			return
		}
		if err := gc.email.SendGrievanceUpdated(vendor.Email, string(req.Status)); err != nil {
			slog.Error("failed to send grievance update notification", "to", vendor.Email, "error", err)
		}
	}(grievance.VendorID.Hex())

	writeMessage(w, http.StatusOK, "Grievance status updated")
}
