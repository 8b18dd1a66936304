package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
)

func newProductFixture() (*fakeUserStore, *fakeProductStore, *ProductService) {
	users := newFakeUserStore()
	products := newFakeProductStore()
	return users, products, NewProductService(products, users)
}

func TestCreateProductStampsUniqueCode(t *testing.T) {
	users, _, svc := newProductFixture()
	supplier := users.put(models.User{Email: "s@market.test", Role: models.RoleSupplier, Locality: "Nagpur"})

	product, err := svc.Create(context.Background(), &supplier, ProductInput{
		Name: "Bananas", Description: "ripe", Price: 30, Unit: models.UnitDozen, Stock: 15,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(product.UniqueCode, "NAG-"), "code %q must carry the locality prefix", product.UniqueCode)
	assert.Equal(t, supplier.ID, product.SupplierID)
	assert.Zero(t, product.UnitsSold)
}

func TestCreateProductValidation(t *testing.T) {
	users, _, svc := newProductFixture()
	supplier := users.put(models.User{Email: "s@market.test", Role: models.RoleSupplier, Locality: "Nagpur"})

	cases := []struct {
		name  string
		input ProductInput
	}{
		{"missing name", ProductInput{Description: "d", Price: 1, Unit: models.UnitKg}},
		{"missing description", ProductInput{Name: "n", Price: 1, Unit: models.UnitKg}},
		{"zero price", ProductInput{Name: "n", Description: "d", Price: 0, Unit: models.UnitKg}},
		{"negative stock", ProductInput{Name: "n", Description: "d", Price: 1, Unit: models.UnitKg, Stock: -1}},
		{"unknown unit", ProductInput{Name: "n", Description: "d", Price: 1, Unit: models.Unit("box")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &supplier, tc.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateProductScopedToOwner(t *testing.T) {
	users, products, svc := newProductFixture()
	owner := users.put(models.User{Email: "owner@market.test", Role: models.RoleSupplier, Locality: "Pune"})
	product := products.put(models.Product{Name: "Chillies", Price: 20, Unit: models.UnitKg, SupplierID: owner.ID})

	input := ProductInput{Name: "Green Chillies", Description: "hot", Price: 22, Unit: models.UnitKg, Stock: 5}

	err := svc.Update(context.Background(), product.ID, primitive.NewObjectID(), input)
	assert.ErrorIs(t, err, ErrNotFound, "someone else's product reads as not found")

	require.NoError(t, svc.Update(context.Background(), product.ID, owner.ID, input))
	stored, _ := products.FindByID(context.Background(), product.ID)
	assert.Equal(t, "Green Chillies", stored.Name)
}

func TestDeleteProductScopedToOwner(t *testing.T) {
	users, products, svc := newProductFixture()
	owner := users.put(models.User{Email: "owner@market.test", Role: models.RoleSupplier, Locality: "Pune"})
	product := products.put(models.Product{Name: "Chillies", Price: 20, Unit: models.UnitKg, SupplierID: owner.ID})

	err := svc.Delete(context.Background(), product.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), product.ID, owner.ID))
	_, err = svc.Get(context.Background(), product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarketplaceFiltersByLocality(t *testing.T) {
	users, products, svc := newProductFixture()
	local := users.put(models.User{Email: "local@market.test", Role: models.RoleSupplier, Locality: "Pune", AverageRating: 4.2})
	remote := users.put(models.User{Email: "remote@market.test", Role: models.RoleSupplier, Locality: "Delhi"})

	products.put(models.Product{Name: "Local Mangoes", Price: 60, Unit: models.UnitDozen, SupplierID: local.ID})
	products.put(models.Product{Name: "Remote Apples", Price: 80, Unit: models.UnitKg, SupplierID: remote.ID})
	products.put(models.Product{Name: "Orphan", Price: 10, Unit: models.UnitKg, SupplierID: primitive.NewObjectID()})

	items, err := svc.Marketplace(context.Background(), "Pune")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Local Mangoes", items[0].Product.Name)
	assert.Equal(t, "local@market.test", items[0].SupplierEmail)
	assert.Equal(t, 4.2, items[0].SupplierRating)
}
