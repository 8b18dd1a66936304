package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
)

func newCartFixture() (*fakeUserStore, *fakeProductStore, *CartService, models.User) {
	users := newFakeUserStore()
	products := newFakeProductStore()
	vendor := users.put(models.User{Email: "vendor@market.test", Role: models.RoleVendor, Locality: "Pune"})
	return users, products, NewCartService(users, products), vendor
}

func TestAddToCartIsIdempotentInLineCount(t *testing.T) {
	users, products, svc, vendor := newCartFixture()
	product := products.put(models.Product{Name: "Rice", Price: 40, Unit: models.UnitKg})

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Add(context.Background(), vendor.ID, product.ID))
	}

	got, _ := users.FindByID(context.Background(), vendor.ID)
	require.Len(t, got.Cart, 1, "repeated adds must not duplicate the line")
	assert.Equal(t, 3, got.Cart[0].Quantity)
}

func TestAddToCartAppendsNewLine(t *testing.T) {
	users, products, svc, vendor := newCartFixture()
	first := products.put(models.Product{Name: "Rice", Price: 40, Unit: models.UnitKg})
	second := products.put(models.Product{Name: "Dal", Price: 90, Unit: models.UnitKg})

	require.NoError(t, svc.Add(context.Background(), vendor.ID, first.ID))
	require.NoError(t, svc.Add(context.Background(), vendor.ID, second.ID))

	got, _ := users.FindByID(context.Background(), vendor.ID)
	require.Len(t, got.Cart, 2)
	assert.Equal(t, 1, got.Cart[1].Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	users, products, svc, vendor := newCartFixture()
	product := products.put(models.Product{Name: "Rice", Price: 40, Unit: models.UnitKg})
	require.NoError(t, svc.Add(context.Background(), vendor.ID, product.ID))

	require.NoError(t, svc.Remove(context.Background(), vendor.ID, product.ID))

	got, _ := users.FindByID(context.Background(), vendor.ID)
	assert.Empty(t, got.Cart)

	// Removing a product that is not in the cart is a no-op.
	require.NoError(t, svc.Remove(context.Background(), vendor.ID, primitive.NewObjectID()))
}

func TestViewCartSkipsDanglingLines(t *testing.T) {
	users, products, svc, vendor := newCartFixture()
	product := products.put(models.Product{Name: "Rice", Price: 40, Unit: models.UnitKg})
	users.UpdateCart(context.Background(), vendor.ID, []models.CartItem{ //nolint:errcheck
		{ProductID: product.ID, Quantity: 2},
		{ProductID: primitive.NewObjectID(), Quantity: 7},
	})

	view, err := svc.View(context.Background(), vendor.ID)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 80.0, view.Items[0].Subtotal)
	assert.Equal(t, 80.0, view.TotalPrice, "dangling line must not affect the total")
}
