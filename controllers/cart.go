package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"localmarket/services"
)

// CartController handles cart mutations for vendors.
type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// AddToCart adds one unit of the product, incrementing an existing line.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	_, vendorID, ok := principal(w, r)
	if !ok {
		return
	}
	productID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := cc.cart.Add(ctx, vendorID, productID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item added to cart")
}

// RemoveFromCart pulls the product's line from the cart.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	_, vendorID, ok := principal(w, r)
	if !ok {
		return
	}
	productID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := cc.cart.Remove(ctx, vendorID, productID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item removed from cart")
}

// GetCart returns the resolved cart with a running total.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	_, vendorID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	view, err := cc.cart.View(ctx, vendorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
