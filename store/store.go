// Package store provides MongoDB-backed persistence for the marketplace
// collections. Services consume the narrow interfaces below so business
// rules stay testable without a live database.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"localmarket/models"
)

// ErrNotFound is returned when a filter matches no document.
var ErrNotFound = errors.New("store: not found")

// UserStore persists accounts, carts and supplier rating aggregates.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	UpdateCart(ctx context.Context, userID primitive.ObjectID, cart []models.CartItem) error
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, hash string) error
	UpdateRating(ctx context.Context, supplierID primitive.ObjectID, average float64, total int) error
	FindByLocality(ctx context.Context, locality string, exclude primitive.ObjectID) ([]models.User, error)
}

// ProductUpdate carries the supplier-editable fields of a product.
type ProductUpdate struct {
	Name        string
	Description string
	Price       float64
	Unit        models.Unit
	Stock       int
	ImagePath   string
}

// ProductStore persists catalog listings.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id, supplierID primitive.ObjectID, upd ProductUpdate) error
	Delete(ctx context.Context, id, supplierID primitive.ObjectID) error
	// IncrementCounters applies atomic deltas to stock and units_sold.
	IncrementCounters(ctx context.Context, id primitive.ObjectID, stockDelta, soldDelta int) error
	TopSelling(ctx context.Context, supplierID primitive.ObjectID) (*models.Product, error)
}

// OrderStore persists checkout snapshots.
type OrderStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Order, error)
	FindBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
	SetRatingGiven(ctx context.Context, id primitive.ObjectID) error
	// SupplierRevenue aggregates delivered order lines for one supplier:
	// total snapshot revenue and the number of distinct orders involved.
	SupplierRevenue(ctx context.Context, supplierID primitive.ObjectID) (revenue float64, orders int, err error)
}

// GrievanceStore persists complaints.
type GrievanceStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Grievance, error)
	Insert(ctx context.Context, grievance *models.Grievance) (primitive.ObjectID, error)
	FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Grievance, error)
	FindBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]models.Grievance, error)
	FindAll(ctx context.Context) ([]models.Grievance, error)
	SetSupplierNote(ctx context.Context, id primitive.ObjectID, note string) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.GrievanceStatus) error
}

// Stores bundles one store per collection.
type Stores struct {
	Users      UserStore
	Products   ProductStore
	Orders     OrderStore
	Grievances GrievanceStore
}

// New wires all collection stores against db.
func New(db *mongo.Database) *Stores {
	return &Stores{
		Users:      &userStore{col: db.Collection("users")},
		Products:   &productStore{col: db.Collection("products")},
		Orders:     &orderStore{col: db.Collection("orders")},
		Grievances: &grievanceStore{col: db.Collection("grievances")},
	}
}

// wrapNotFound converts the driver's no-documents error into ErrNotFound.
func wrapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
