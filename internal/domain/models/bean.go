package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bean is an inventory record for a coffee-bean batch. Currency amounts
// are persisted as Decimal128; stock_grams is the remaining quantity
// available for roasting and is mutated by the roast lifecycle.
type Bean struct {
	ID                  primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Name                string                `bson:"name" json:"name"`
	Origin              string                `bson:"origin" json:"origin"`
	Process             string                `bson:"process" json:"process"`
	Supplier            string                `bson:"supplier" json:"supplier"`
	Notes               string                `bson:"notes" json:"notes"`
	Color               string                `bson:"color,omitempty" json:"color,omitempty"`
	PurchaseDate        *time.Time            `bson:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	PurchasePriceTotal  *primitive.Decimal128 `bson:"purchase_price_total,omitempty" json:"purchase_price_total,omitempty"`
	PurchaseWeightGrams int                   `bson:"purchase_weight_grams,omitempty" json:"purchase_weight_grams,omitempty"`
	StockGrams          int                   `bson:"stock_grams,omitempty" json:"stock_grams,omitempty"`
	UnitPricePerKg      *primitive.Decimal128 `bson:"unit_price_per_kg,omitempty" json:"unit_price_per_kg,omitempty"`
	Archived            bool                  `bson:"archived,omitempty" json:"archived,omitempty"`
	CreatedAt           time.Time             `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time             `bson:"updated_at" json:"updated_at"`
}
