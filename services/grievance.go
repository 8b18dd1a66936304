package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
	"localmarket/store"
)

// GrievanceService owns the complaint workflow: vendor files, supplier
// annotates, admin resolves.
type GrievanceService struct {
	orders     store.OrderStore
	grievances store.GrievanceStore
}

func NewGrievanceService(orders store.OrderStore, grievances store.GrievanceStore) *GrievanceService {
	return &GrievanceService{orders: orders, grievances: grievances}
}

// File creates a complaint against the order's supplier. The order must
// belong to the filing vendor; an order owned by someone else reads as not
// found. The supplier is taken from the order's first line, the documented
// simplification for multi-supplier orders.
func (s *GrievanceService) File(ctx context.Context, vendorID, orderID primitive.ObjectID, reason string) (*models.Grievance, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrValidation
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, storeErr(err)
	}
	if order.VendorID != vendorID {
		return nil, ErrNotFound
	}
	// Checkout never produces an order without lines, but a hand-edited
	// document could; refuse it rather than index into nothing.
	if len(order.Products) == 0 {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	grievance := &models.Grievance{
		OrderID:    orderID,
		VendorID:   vendorID,
		SupplierID: order.Products[0].SupplierID,
		Reason:     reason,
		Status:     models.GrievancePendingReview,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := s.grievances.Insert(ctx, grievance)
	if err != nil {
		return nil, storeErr(err)
	}
	grievance.ID = id
	return grievance, nil
}

// Get returns one complaint by id.
func (s *GrievanceService) Get(ctx context.Context, grievanceID primitive.ObjectID) (*models.Grievance, error) {
	grievance, err := s.grievances.FindByID(ctx, grievanceID)
	if err != nil {
		return nil, storeErr(err)
	}
	return grievance, nil
}

// ForVendor lists the vendor's complaints, newest first.
func (s *GrievanceService) ForVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Grievance, error) {
	grievances, err := s.grievances.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, storeErr(err)
	}
	return grievances, nil
}

// ForSupplier lists complaints filed against the supplier, newest first.
func (s *GrievanceService) ForSupplier(ctx context.Context, supplierID primitive.ObjectID) ([]models.Grievance, error) {
	grievances, err := s.grievances.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, storeErr(err)
	}
	return grievances, nil
}

// All lists every complaint for the admin dashboard, newest first.
func (s *GrievanceService) All(ctx context.Context) ([]models.Grievance, error) {
	grievances, err := s.grievances.FindAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return grievances, nil
}

// AddNote overwrites the supplier's note on a complaint filed against them.
// Last write wins; there is no history. A grievance belonging to a different
// supplier reads as not found.
func (s *GrievanceService) AddNote(ctx context.Context, supplierID, grievanceID primitive.ObjectID, note string) error {
	grievance, err := s.grievances.FindByID(ctx, grievanceID)
	if err != nil {
		return storeErr(err)
	}
	if grievance.SupplierID != supplierID {
		return ErrNotFound
	}

	if err := s.grievances.SetSupplierNote(ctx, grievanceID, strings.TrimSpace(note)); err != nil {
		return storeErr(err)
	}
	return nil
}

// Resolve overwrites the complaint status. Any member of the enum is
// accepted from any current state, including moving backward; only enum
// membership is checked. Ownership is not constrained beyond the admin role
// gate at the route.
func (s *GrievanceService) Resolve(ctx context.Context, grievanceID primitive.ObjectID, status models.GrievanceStatus) error {
	if !status.Valid() {
		return ErrValidation
	}
	if err := s.grievances.SetStatus(ctx, grievanceID, status); err != nil {
		return storeErr(err)
	}
	return nil
}
