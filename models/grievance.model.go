package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GrievanceStatus is the admin-controlled resolution state of a complaint.
// No ordering is enforced between members.
type GrievanceStatus string

const (
	GrievancePendingReview      GrievanceStatus = "Pending Review"
	GrievanceUnderInvestigation GrievanceStatus = "Under Investigation"
	GrievanceResolved           GrievanceStatus = "Resolved"
)

// Valid reports whether s is a known grievance status.
func (s GrievanceStatus) Valid() bool {
	switch s {
	case GrievancePendingReview, GrievanceUnderInvestigation, GrievanceResolved:
		return true
	}
	return false
}

// Grievance is a vendor complaint tied to exactly one order and one supplier.
// The supplier is the one on the order's first line, a documented
// simplification for multi-supplier orders.
type Grievance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID      primitive.ObjectID `bson:"order_id" json:"order_id"`
	VendorID     primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	SupplierID   primitive.ObjectID `bson:"supplier_id" json:"supplier_id"`
	Reason       string             `bson:"reason" json:"reason"`
	Status       GrievanceStatus    `bson:"status" json:"status"`
	SupplierNote string             `bson:"supplier_note,omitempty" json:"supplier_note,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
