package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
)

type grievanceFixture struct {
	orders     *fakeOrderStore
	grievances *fakeGrievanceStore
	svc        *GrievanceService

	vendorID   primitive.ObjectID
	supplierID primitive.ObjectID
	order      models.Order
}

func newGrievanceFixture() *grievanceFixture {
	orders := newFakeOrderStore()
	grievances := newFakeGrievanceStore()
	vendorID := primitive.NewObjectID()
	supplierID := primitive.NewObjectID()
	order := orders.put(models.Order{
		VendorID: vendorID,
		Products: []models.OrderLine{
			{Quantity: 1, SupplierID: supplierID},
			{Quantity: 2, SupplierID: primitive.NewObjectID()},
		},
		Status: models.OrderDelivered,
	})
	return &grievanceFixture{
		orders:     orders,
		grievances: grievances,
		svc:        NewGrievanceService(orders, grievances),
		vendorID:   vendorID,
		supplierID: supplierID,
		order:      order,
	}
}

func TestFileGrievance(t *testing.T) {
	f := newGrievanceFixture()

	grievance, err := f.svc.File(context.Background(), f.vendorID, f.order.ID, "  rotten produce  ")
	require.NoError(t, err)

	assert.Equal(t, "rotten produce", grievance.Reason)
	assert.Equal(t, models.GrievancePendingReview, grievance.Status)
	assert.Equal(t, f.supplierID, grievance.SupplierID,
		"supplier comes from the order's first line")
	assert.Equal(t, f.order.ID, grievance.OrderID)
}

func TestFileGrievanceOnSomeoneElsesOrder(t *testing.T) {
	f := newGrievanceFixture()

	_, err := f.svc.File(context.Background(), primitive.NewObjectID(), f.order.ID, "late delivery")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.grievances.grievances, "no record may be created")
}

func TestFileGrievanceMissingOrder(t *testing.T) {
	f := newGrievanceFixture()

	_, err := f.svc.File(context.Background(), f.vendorID, primitive.NewObjectID(), "late delivery")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileGrievanceOrderWithoutLines(t *testing.T) {
	f := newGrievanceFixture()
	empty := f.orders.put(models.Order{VendorID: f.vendorID, Status: models.OrderDelivered})

	_, err := f.svc.File(context.Background(), f.vendorID, empty.ID, "no produce arrived")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.grievances.grievances)
}

func TestFileGrievanceEmptyReason(t *testing.T) {
	f := newGrievanceFixture()

	for _, reason := range []string{"", "   "} {
		_, err := f.svc.File(context.Background(), f.vendorID, f.order.ID, reason)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, f.grievances.grievances)
}

func TestAddNoteOverwrites(t *testing.T) {
	f := newGrievanceFixture()
	grievance, err := f.svc.File(context.Background(), f.vendorID, f.order.ID, "underweight bags")
	require.NoError(t, err)

	require.NoError(t, f.svc.AddNote(context.Background(), f.supplierID, grievance.ID, "checking with the packer"))
	require.NoError(t, f.svc.AddNote(context.Background(), f.supplierID, grievance.ID, "replacement sent"))

	stored, _ := f.grievances.FindByID(context.Background(), grievance.ID)
	assert.Equal(t, "replacement sent", stored.SupplierNote, "last write wins")
}

func TestAddNoteWrongSupplier(t *testing.T) {
	f := newGrievanceFixture()
	grievance, err := f.svc.File(context.Background(), f.vendorID, f.order.ID, "underweight bags")
	require.NoError(t, err)

	err = f.svc.AddNote(context.Background(), primitive.NewObjectID(), grievance.ID, "not mine")
	assert.ErrorIs(t, err, ErrNotFound)

	stored, _ := f.grievances.FindByID(context.Background(), grievance.ID)
	assert.Empty(t, stored.SupplierNote)
}

func TestResolveAllowsAnyTransition(t *testing.T) {
	f := newGrievanceFixture()
	grievance, err := f.svc.File(context.Background(), f.vendorID, f.order.ID, "wrong items")
	require.NoError(t, err)

	require.NoError(t, f.svc.Resolve(context.Background(), grievance.ID, models.GrievanceResolved))
	// Backward moves are permitted; there is no enforced ordering.
	require.NoError(t, f.svc.Resolve(context.Background(), grievance.ID, models.GrievancePendingReview))

	stored, _ := f.grievances.FindByID(context.Background(), grievance.ID)
	assert.Equal(t, models.GrievancePendingReview, stored.Status)
}

func TestResolveRejectsUnknownStatus(t *testing.T) {
	f := newGrievanceFixture()
	grievance, err := f.svc.File(context.Background(), f.vendorID, f.order.ID, "wrong items")
	require.NoError(t, err)

	err = f.svc.Resolve(context.Background(), grievance.ID, models.GrievanceStatus("Escalated"))
	assert.ErrorIs(t, err, ErrValidation)
}
