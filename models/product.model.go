package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit is the measurement unit a product is sold in.
type Unit string

const (
	UnitKg    Unit = "kg"
	UnitDozen Unit = "dozen"
	UnitPiece Unit = "piece"
	UnitBunch Unit = "bunch"
	UnitLitre Unit = "litre"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitDozen, UnitPiece, UnitBunch, UnitLitre:
		return true
	}
	return false
}

// Product is a supplier-owned catalog listing. Stock and UnitsSold are
// mutated only by checkout, via atomic increments.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Unit        Unit               `bson:"unit" json:"unit"`
	SupplierID  primitive.ObjectID `bson:"supplier_id" json:"supplier_id"`
	UniqueCode  string             `bson:"unique_code" json:"unique_code"`
	ImagePath   string             `bson:"image_path,omitempty" json:"image_path,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	UnitsSold   int                `bson:"units_sold" json:"units_sold"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
