package mongodb

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/domain/models"
	"github.com/mcharron/roastlog/internal/parse"
)

// buildBeanInsert assembles the document for a new bean. Parse failures
// never abort the insert: a bad date is stored as null and bad numeric
// fields are stored as zero.
func buildBeanInsert(in models.BeanInput, now time.Time, logger *zap.Logger) bson.M {
	doc := bson.M{
		"name":       in.Name,
		"origin":     in.Origin,
		"process":    in.Process,
		"supplier":   in.Supplier,
		"notes":      in.Notes,
		"created_at": now,
		"updated_at": now,
	}
	if in.Color != "" {
		doc["color"] = in.Color
	}

	if in.PurchaseDate != "" {
		if t, defaulted := parse.Date(in.PurchaseDate); defaulted {
			logger.Debug("unparseable purchase date stored as null", zap.String("value", in.PurchaseDate))
			doc["purchase_date"] = nil
		} else {
			doc["purchase_date"] = t
		}
	}

	var (
		price     decimal.Decimal
		priceSet  bool
		weight    int
		weightSet bool
	)

	if in.PurchasePriceTotal != "" {
		var defaulted bool
		price, defaulted = parse.Decimal(in.PurchasePriceTotal)
		if defaulted {
			logger.Debug("unparseable purchase price stored as zero", zap.String("value", in.PurchasePriceTotal))
		}
		priceSet = true
		doc["purchase_price_total"] = toDecimal128(price)
	}

	if in.PurchaseWeightGrams != "" {
		var defaulted bool
		weight, defaulted = parse.Int(in.PurchaseWeightGrams)
		if defaulted {
			logger.Debug("unparseable purchase weight stored as zero", zap.String("value", in.PurchaseWeightGrams))
		}
		weightSet = true
		doc["purchase_weight_grams"] = weight
	}

	if in.StockGrams != "" {
		stock, defaulted := parse.Int(in.StockGrams)
		if defaulted {
			logger.Debug("unparseable stock stored as zero", zap.String("value", in.StockGrams))
		}
		doc["stock_grams"] = stock
	}

	if priceSet && weightSet && weight > 0 {
		doc["unit_price_per_kg"] = unitPricePerKg(price, weight)
	}

	return doc
}

// buildBeanUpdate assembles the $set document for a bean edit. Unlike
// the insert path, numeric and date parse failures leave the previously
// stored value untouched instead of zeroing it.
func buildBeanUpdate(in models.BeanInput, now time.Time, logger *zap.Logger) bson.M {
	doc := bson.M{
		"name":       in.Name,
		"origin":     in.Origin,
		"process":    in.Process,
		"supplier":   in.Supplier,
		"notes":      in.Notes,
		"updated_at": now,
	}
	if in.Color != "" {
		doc["color"] = in.Color
	}

	if in.PurchaseDate != "" {
		if t, defaulted := parse.Date(in.PurchaseDate); defaulted {
			logger.Debug("keeping stored purchase date, input unparseable", zap.String("value", in.PurchaseDate))
		} else {
			doc["purchase_date"] = t
		}
	}

	var (
		price     decimal.Decimal
		priceSet  bool
		weight    int
		weightSet bool
	)

	if in.PurchasePriceTotal != "" {
		if d, defaulted := parse.Decimal(in.PurchasePriceTotal); defaulted {
			logger.Debug("keeping stored purchase price, input unparseable", zap.String("value", in.PurchasePriceTotal))
		} else {
			price = d
			priceSet = true
			doc["purchase_price_total"] = toDecimal128(d)
		}
	}

	if in.PurchaseWeightGrams != "" {
		if n, defaulted := parse.Int(in.PurchaseWeightGrams); defaulted {
			logger.Debug("keeping stored purchase weight, input unparseable", zap.String("value", in.PurchaseWeightGrams))
		} else {
			weight = n
			weightSet = true
			doc["purchase_weight_grams"] = n
		}
	}

	if in.StockGrams != "" {
		if n, defaulted := parse.Int(in.StockGrams); defaulted {
			logger.Debug("keeping stored stock, input unparseable", zap.String("value", in.StockGrams))
		} else {
			doc["stock_grams"] = n
		}
	}

	if priceSet && weightSet && weight > 0 {
		doc["unit_price_per_kg"] = unitPricePerKg(price, weight)
	}

	return doc
}

// unitPricePerKg derives price / (weight/1000). Callers guarantee a
// positive weight.
func unitPricePerKg(price decimal.Decimal, weightGrams int) primitive.Decimal128 {
	weightKg := decimal.NewFromInt(int64(weightGrams)).Div(decimal.NewFromInt(1000))
	return toDecimal128(price.Div(weightKg))
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	// ParseDecimal128 cannot fail on the canonical string form.
	v, _ := primitive.ParseDecimal128(d.String())
	return v
}
