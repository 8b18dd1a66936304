package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/models"
	"localmarket/store"
)

// In-memory store fakes. They hold value copies and return fresh copies,
// mimicking driver decode semantics, so aliasing bugs in the services show
// up in tests.

type fakeUserStore struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUserStore) put(user models.User) models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	user.Cart = append([]models.CartItem(nil), user.Cart...)
	return &user, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	u := *user
	u.ID = id
	f.users[id] = u
	return id, nil
}

func (f *fakeUserStore) UpdateCart(_ context.Context, userID primitive.ObjectID, cart []models.CartItem) error {
	user, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	if cart == nil {
		cart = []models.CartItem{}
	}
	user.Cart = append([]models.CartItem(nil), cart...)
	f.users[userID] = user
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID primitive.ObjectID, hash string) error {
	user, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	user.Password = hash
	f.users[userID] = user
	return nil
}

func (f *fakeUserStore) UpdateRating(_ context.Context, supplierID primitive.ObjectID, average float64, total int) error {
	user, ok := f.users[supplierID]
	if !ok {
		return store.ErrNotFound
	}
	user.AverageRating = average
	user.TotalRatings = total
	f.users[supplierID] = user
	return nil
}

func (f *fakeUserStore) FindByLocality(_ context.Context, locality string, exclude primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if user.Locality == locality && user.ID != exclude {
			out = append(out, user)
		}
	}
	return out, nil
}

type fakeProductStore struct {
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[primitive.ObjectID]models.Product{}}
}

func (f *fakeProductStore) put(product models.Product) models.Product {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	f.products[product.ID] = product
	return product
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &product, nil
}

func (f *fakeProductStore) FindAll(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, product := range f.products {
		out = append(out, product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProductStore) FindBySupplier(_ context.Context, supplierID primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, product := range f.products {
		if product.SupplierID == supplierID {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProductStore) Insert(_ context.Context, product *models.Product) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	p := *product
	p.ID = id
	f.products[id] = p
	return id, nil
}

func (f *fakeProductStore) Update(_ context.Context, id, supplierID primitive.ObjectID, upd store.ProductUpdate) error {
	product, ok := f.products[id]
	if !ok || product.SupplierID != supplierID {
		return store.ErrNotFound
	}
	product.Name = upd.Name
	product.Description = upd.Description
	product.Price = upd.Price
	product.Unit = upd.Unit
	product.Stock = upd.Stock
	product.ImagePath = upd.ImagePath
	f.products[id] = product
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, id, supplierID primitive.ObjectID) error {
	product, ok := f.products[id]
	if !ok || product.SupplierID != supplierID {
		return store.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductStore) IncrementCounters(_ context.Context, id primitive.ObjectID, stockDelta, soldDelta int) error {
	product, ok := f.products[id]
	if !ok {
		return store.ErrNotFound
	}
	product.Stock += stockDelta
	product.UnitsSold += soldDelta
	f.products[id] = product
	return nil
}

func (f *fakeProductStore) TopSelling(_ context.Context, supplierID primitive.ObjectID) (*models.Product, error) {
	var top *models.Product
	for _, product := range f.products {
		if product.SupplierID != supplierID {
			continue
		}
		p := product
		if top == nil || p.UnitsSold > top.UnitsSold {
			top = &p
		}
	}
	if top == nil {
		return nil, store.ErrNotFound
	}
	return top, nil
}

type fakeOrderStore struct {
	orders map[primitive.ObjectID]models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (f *fakeOrderStore) put(order models.Order) models.Order {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	f.orders[order.ID] = order
	return order
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	order.Products = append([]models.OrderLine(nil), order.Products...)
	return &order, nil
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	o := *order
	o.ID = id
	o.Products = append([]models.OrderLine(nil), order.Products...)
	f.orders[id] = o
	return id, nil
}

func (f *fakeOrderStore) FindByVendor(_ context.Context, vendorID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		if order.VendorID == vendorID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (f *fakeOrderStore) FindBySupplier(_ context.Context, supplierID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		if order.SuppliedBy(supplierID) {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	order.Status = status
	f.orders[id] = order
	return nil
}

func (f *fakeOrderStore) SetRatingGiven(_ context.Context, id primitive.ObjectID) error {
	order, ok := f.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	order.RatingGiven = true
	f.orders[id] = order
	return nil
}

func (f *fakeOrderStore) SupplierRevenue(_ context.Context, supplierID primitive.ObjectID) (float64, int, error) {
	var revenue float64
	var count int
	for _, order := range f.orders {
		if order.Status != models.OrderDelivered {
			continue
		}
		matched := false
		for _, line := range order.Products {
			if line.SupplierID == supplierID {
				revenue += line.Product.Price * float64(line.Quantity)
				matched = true
			}
		}
		if matched {
			count++
		}
	}
	return revenue, count, nil
}

type fakeGrievanceStore struct {
	grievances map[primitive.ObjectID]models.Grievance
}

func newFakeGrievanceStore() *fakeGrievanceStore {
	return &fakeGrievanceStore{grievances: map[primitive.ObjectID]models.Grievance{}}
}

func (f *fakeGrievanceStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Grievance, error) {
	grievance, ok := f.grievances[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &grievance, nil
}

func (f *fakeGrievanceStore) Insert(_ context.Context, grievance *models.Grievance) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	g := *grievance
	g.ID = id
	f.grievances[id] = g
	return id, nil
}

func (f *fakeGrievanceStore) FindByVendor(_ context.Context, vendorID primitive.ObjectID) ([]models.Grievance, error) {
	var out []models.Grievance
	for _, grievance := range f.grievances {
		if grievance.VendorID == vendorID {
			out = append(out, grievance)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeGrievanceStore) FindBySupplier(_ context.Context, supplierID primitive.ObjectID) ([]models.Grievance, error) {
	var out []models.Grievance
	for _, grievance := range f.grievances {
		if grievance.SupplierID == supplierID {
			out = append(out, grievance)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeGrievanceStore) FindAll(_ context.Context) ([]models.Grievance, error) {
	var out []models.Grievance
	for _, grievance := range f.grievances {
		out = append(out, grievance)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeGrievanceStore) SetSupplierNote(_ context.Context, id primitive.ObjectID, note string) error {
	grievance, ok := f.grievances[id]
	if !ok {
		return store.ErrNotFound
	}
	grievance.SupplierNote = note
	f.grievances[id] = grievance
	return nil
}

func (f *fakeGrievanceStore) SetStatus(_ context.Context, id primitive.ObjectID, status models.GrievanceStatus) error {
	grievance, ok := f.grievances[id]
	if !ok {
		return store.ErrNotFound
	}
	grievance.Status = status
	f.grievances[id] = grievance
	return nil
}
