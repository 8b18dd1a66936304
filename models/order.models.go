package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfilment state of an order. Status changes are
// supplier-controlled; any member may overwrite any other (there is no
// transition table, matching the behavior the rest of the system expects).
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderLine is one purchased line. Product is a deep snapshot taken at
// checkout so later catalog edits never rewrite order history.
type OrderLine struct {
	Product    Product            `bson:"product" json:"product"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	SupplierID primitive.ObjectID `bson:"supplier_id" json:"supplier_id"`
}

// Order is an immutable record of a checkout. Products is non-empty and
// frozen after creation.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VendorID    primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	Products    []OrderLine        `bson:"products" json:"products"`
	TotalPrice  float64            `bson:"total_price" json:"total_price"`
	Status      OrderStatus        `bson:"status" json:"status"`
	OrderDate   time.Time          `bson:"order_date" json:"order_date"`
	RatingGiven bool               `bson:"rating_given" json:"rating_given"`
}

// SuppliedBy reports whether any line of the order belongs to supplierID.
func (o *Order) SuppliedBy(supplierID primitive.ObjectID) bool {
	for _, line := range o.Products {
		if line.SupplierID == supplierID {
			return true
		}
	}
	return false
}
