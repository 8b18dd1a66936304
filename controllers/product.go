package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"localmarket/services"
)

// ProductController handles catalog and marketplace requests.
type ProductController struct {
	products *services.ProductService
	users    *services.UserService
}

func NewProductController(products *services.ProductService, users *services.UserService) *ProductController {
	return &ProductController{products: products, users: users}
}

// CreateProduct lists a new item for the calling supplier.
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}

	var input services.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	supplier, err := pc.users.Profile(ctx, supplierID)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := pc.products.Create(ctx, supplier, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// GetProductByID returns a single listing.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	product, err := pc.products.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// MyProducts lists the calling supplier's catalog.
func (pc *ProductController) MyProducts(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	products, err := pc.products.Mine(ctx, supplierID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// UpdateProduct edits a listing owned by the calling supplier.
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var input services.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := pc.products.Update(ctx, id, supplierID, input); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Product updated")
}

// DeleteProduct removes a listing owned by the calling supplier.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	_, supplierID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := pc.products.Delete(ctx, id, supplierID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Product deleted")
}

// Marketplace lists products from suppliers in the vendor's locality.
func (pc *ProductController) Marketplace(w http.ResponseWriter, r *http.Request) {
	claims, _, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := pc.products.Marketplace(ctx, claims.Locality)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
