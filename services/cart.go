package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
	"localmarket/store"
)

// CartService mutates the cart stored on the vendor's user document.
type CartService struct {
	users    store.UserStore
	products store.ProductStore
}

func NewCartService(users store.UserStore, products store.ProductStore) *CartService {
	return &CartService{users: users, products: products}
}

// Add puts one unit of the product into the vendor's cart. If the product is
// already there its quantity is incremented, so repeated adds never create
// duplicate lines. There is no stock or existence check at add time; dangling
// references are dropped later, at checkout.
func (s *CartService) Add(ctx context.Context, vendorID, productID primitive.ObjectID) error {
	vendor, err := s.users.FindByID(ctx, vendorID)
	if err != nil {
		return storeErr(err)
	}

	found := false
	for i := range vendor.Cart {
		if vendor.Cart[i].ProductID == productID {
			vendor.Cart[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		vendor.Cart = append(vendor.Cart, models.CartItem{ProductID: productID, Quantity: 1})
	}

	if err := s.users.UpdateCart(ctx, vendorID, vendor.Cart); err != nil {
		return storeErr(err)
	}
	return nil
}

// Remove pulls the product's line from the cart. Removing a product that is
// not in the cart is a no-op.
func (s *CartService) Remove(ctx context.Context, vendorID, productID primitive.ObjectID) error {
	vendor, err := s.users.FindByID(ctx, vendorID)
	if err != nil {
		return storeErr(err)
	}

	kept := vendor.Cart[:0]
	for _, item := range vendor.Cart {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.users.UpdateCart(ctx, vendorID, kept); err != nil {
		return storeErr(err)
	}
	return nil
}

// CartLine is a cart item resolved against the live catalog.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// CartView is the vendor's cart with a running total. Lines whose product no
// longer exists are skipped and contribute nothing to the total.
type CartView struct {
	Items      []CartLine `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

// View resolves the vendor's cart against current product prices.
func (s *CartService) View(ctx context.Context, vendorID primitive.ObjectID) (*CartView, error) {
	vendor, err := s.users.FindByID(ctx, vendorID)
	if err != nil {
		return nil, storeErr(err)
	}

	view := &CartView{Items: []CartLine{}}
	for _, item := range vendor.Cart {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, storeErr(err)
		}
		subtotal := float64(item.Quantity) * product.Price
		view.Items = append(view.Items, CartLine{
			Product:  *product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.TotalPrice += subtotal
	}
	return view, nil
}
