package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account types in the marketplace.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleVendor, RoleSupplier, RoleAdmin:
		return true
	}
	return false
}

// CartItem is one line of a vendor's cart, stored on the user document.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// User represents an account in the system. Vendors carry a cart; suppliers
// carry the rating aggregate fed by order ratings.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password,omitempty" json:"-"`
	Role          Role               `bson:"role" json:"role"`
	Locality      string             `bson:"locality" json:"locality"`
	Cart          []CartItem         `bson:"cart" json:"cart,omitempty"`
	AverageRating float64            `bson:"average_rating" json:"average_rating"`
	TotalRatings  int                `bson:"total_ratings" json:"total_ratings"`
}
