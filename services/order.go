package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
	"localmarket/store"
)

// OrderService owns checkout, status transitions and rating submission.
type OrderService struct {
	users    store.UserStore
	products store.ProductStore
	orders   store.OrderStore
}

func NewOrderService(users store.UserStore, products store.ProductStore, orders store.OrderStore) *OrderService {
	return &OrderService{users: users, products: products, orders: orders}
}

// Checkout converts the vendor's cart into an immutable order.
//
// Cart lines whose product or supplier no longer exists are silently dropped
// and excluded from the total. If the cart is empty, or every line was
// dropped, the store is left untouched and ErrEmptyCart is returned.
//
// On success one order is created with deep product snapshots, each retained
// product gets an atomic stock/units_sold increment, and the cart is
// cleared. The three steps are not a single transaction: a failure after
// order creation leaves the counters or cart partially updated, which is
// logged and surfaced as ErrPersistence without rollback.
func (s *OrderService) Checkout(ctx context.Context, vendorID primitive.ObjectID) (*models.Order, error) {
	vendor, err := s.users.FindByID(ctx, vendorID)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(vendor.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	var lines []models.OrderLine
	var total float64
	for _, item := range vendor.Cart {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, storeErr(err)
		}
		if _, err := s.users.FindByID(ctx, product.SupplierID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, storeErr(err)
		}

		total += float64(item.Quantity) * product.Price
		lines = append(lines, models.OrderLine{
			Product:    *product,
			Quantity:   item.Quantity,
			SupplierID: product.SupplierID,
		})
	}

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		VendorID:   vendorID,
		Products:   lines,
		TotalPrice: total,
		Status:     models.OrderPending,
		OrderDate:  time.Now().UTC(),
	}
	id, err := s.orders.Insert(ctx, order)
	if err != nil {
		return nil, storeErr(err)
	}
	order.ID = id

	for _, line := range lines {
		if err := s.products.IncrementCounters(ctx, line.Product.ID, -line.Quantity, line.Quantity); err != nil {
			slog.Error("checkout: stock update failed after order creation",
				"order_id", id.Hex(), "product_id", line.Product.ID.Hex(), "error", err)
			return nil, storeErr(err)
		}
	}

	if err := s.users.UpdateCart(ctx, vendorID, nil); err != nil {
		slog.Error("checkout: cart clear failed after order creation",
			"order_id", id.Hex(), "vendor_id", vendorID.Hex(), "error", err)
		return nil, storeErr(err)
	}

	return order, nil
}

// History returns the vendor's orders, newest first.
func (s *OrderService) History(ctx context.Context, vendorID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

// ManagedBy returns orders containing at least one line from the supplier,
// newest first.
func (s *OrderService) ManagedBy(ctx context.Context, supplierID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

// UpdateStatus overwrites the order status. The caller must be one of the
// order's line suppliers; beyond enum membership there is no edge
// validation, so any status may replace any other regardless of the current
// state.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, supplierID primitive.ObjectID, status models.OrderStatus) error {
	if !status.Valid() {
		return ErrValidation
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return storeErr(err)
	}
	if !order.SuppliedBy(supplierID) {
		return ErrUnauthorized
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return storeErr(err)
	}
	return nil
}

// Rate records the vendor's rating of a supplier for one order and folds it
// into the supplier's aggregate:
//
//	newAverage = (oldAverage*oldCount + rating) / (oldCount+1)
//
// The rating must be an integer in [1,5] and an order can only be rated
// once. The ratingGiven read and set are two store round-trips, so two
// racing submissions can still both pass the check; serializing that would
// need a compare-and-swap on the flag.
func (s *OrderService) Rate(ctx context.Context, vendorID, orderID, supplierID primitive.ObjectID, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrValidation
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return storeErr(err)
	}
	if order.VendorID != vendorID {
		return ErrNotFound
	}
	if order.RatingGiven {
		return ErrValidation
	}

	supplier, err := s.users.FindByID(ctx, supplierID)
	if err != nil {
		return storeErr(err)
	}

	if err := s.orders.SetRatingGiven(ctx, orderID); err != nil {
		return storeErr(err)
	}

	newTotal := supplier.TotalRatings + 1
	newAverage := (supplier.AverageRating*float64(supplier.TotalRatings) + float64(rating)) / float64(newTotal)
	if err := s.users.UpdateRating(ctx, supplierID, newAverage, newTotal); err != nil {
		return storeErr(err)
	}
	return nil
}
