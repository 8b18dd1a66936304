package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
	"localmarket/store"
	"localmarket/utils"
)

// ProductInput carries the supplier-provided fields for create and update.
type ProductInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Unit        models.Unit `json:"unit"`
	Stock       int         `json:"stock"`
	ImagePath   string      `json:"image_path"`
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return ErrValidation
	}
	if in.Price <= 0 || in.Stock < 0 {
		return ErrValidation
	}
	if !in.Unit.Valid() {
		return ErrValidation
	}
	return nil
}

// ProductService owns the supplier-scoped catalog and the vendor-facing
// marketplace view.
type ProductService struct {
	products store.ProductStore
	users    store.UserStore
}

func NewProductService(products store.ProductStore, users store.UserStore) *ProductService {
	return &ProductService{products: products, users: users}
}

// Create lists a new product for the supplier, stamping it with a
// human-readable unique code derived from the supplier's locality.
func (s *ProductService) Create(ctx context.Context, supplier *models.User, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Unit:        in.Unit,
		SupplierID:  supplier.ID,
		UniqueCode:  utils.GenerateProductCode(supplier.Locality),
		ImagePath:   in.ImagePath,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.products.Insert(ctx, product)
	if err != nil {
		return nil, storeErr(err)
	}
	product.ID = id
	return product, nil
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return product, nil
}

// Mine lists the supplier's own products, newest first.
func (s *ProductService) Mine(ctx context.Context, supplierID primitive.ObjectID) ([]models.Product, error) {
	products, err := s.products.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, storeErr(err)
	}
	return products, nil
}

// Update edits a product owned by the supplier. Someone else's product
// reads as not found.
func (s *ProductService) Update(ctx context.Context, id, supplierID primitive.ObjectID, in ProductInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	err := s.products.Update(ctx, id, supplierID, store.ProductUpdate{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Unit:        in.Unit,
		Stock:       in.Stock,
		ImagePath:   in.ImagePath,
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// Delete removes a product owned by the supplier.
func (s *ProductService) Delete(ctx context.Context, id, supplierID primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id, supplierID); err != nil {
		return storeErr(err)
	}
	return nil
}

// MarketplaceItem is a listing resolved with its supplier for display.
type MarketplaceItem struct {
	Product        models.Product `json:"product"`
	SupplierEmail  string         `json:"supplier_email"`
	SupplierRating float64        `json:"supplier_rating"`
	TotalRatings   int            `json:"total_ratings"`
}

// Marketplace lists products whose supplier shares the vendor's locality,
// newest first. Listings with a missing supplier are skipped.
func (s *ProductService) Marketplace(ctx context.Context, locality string) ([]MarketplaceItem, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	items := []MarketplaceItem{}
	for _, product := range products {
		supplier, err := s.users.FindByID(ctx, product.SupplierID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, storeErr(err)
		}
		if supplier.Locality != locality {
			continue
		}
		items = append(items, MarketplaceItem{
			Product:        product,
			SupplierEmail:  supplier.Email,
			SupplierRating: supplier.AverageRating,
			TotalRatings:   supplier.TotalRatings,
		})
	}
	return items, nil
}
