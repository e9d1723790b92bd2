package mongodb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/domain/models"
)

var docNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func docDecimal(t *testing.T, doc bson.M, key string) decimal.Decimal {
	t.Helper()
	raw, found := doc[key]
	require.True(t, found, "missing %s", key)
	d128, isDecimal := raw.(primitive.Decimal128)
	require.True(t, isDecimal, "%s is no Decimal128", key)
	d, err := decimal.NewFromString(d128.String())
	require.NoError(t, err)
	return d
}

func TestBuildBeanInsertDerivesUnitPrice(t *testing.T) {
	doc := buildBeanInsert(models.BeanInput{
		Name:                "Yirgacheffe",
		PurchasePriceTotal:  "20.00",
		PurchaseWeightGrams: "1000",
		StockGrams:          "1000",
	}, docNow, zap.NewNop())

	assert.Equal(t, "Yirgacheffe", doc["name"])
	assert.Equal(t, 1000, doc["purchase_weight_grams"])
	assert.Equal(t, 1000, doc["stock_grams"])
	assert.Equal(t, docNow, doc["created_at"])
	assert.Equal(t, docNow, doc["updated_at"])
	assert.True(t, docDecimal(t, doc, "unit_price_per_kg").Equal(decimal.NewFromInt(20)))
}

func TestBuildBeanInsertUnitPriceFractionalWeight(t *testing.T) {
	doc := buildBeanInsert(models.BeanInput{
		PurchasePriceTotal:  "12.50",
		PurchaseWeightGrams: "500",
	}, docNow, zap.NewNop())

	assert.True(t, docDecimal(t, doc, "unit_price_per_kg").Equal(decimal.NewFromInt(25)))
}

func TestBuildBeanInsertZeroesUnparseableNumbers(t *testing.T) {
	doc := buildBeanInsert(models.BeanInput{
		PurchasePriceTotal:  "twenty",
		PurchaseWeightGrams: "a kilo",
		StockGrams:          "some",
		PurchaseDate:        "junk",
	}, docNow, zap.NewNop())

	assert.True(t, docDecimal(t, doc, "purchase_price_total").IsZero())
	assert.Equal(t, 0, doc["purchase_weight_grams"])
	assert.Equal(t, 0, doc["stock_grams"])

	date, found := doc["purchase_date"]
	require.True(t, found, "unparseable date is stored as null, not dropped")
	assert.Nil(t, date)

	_, found = doc["unit_price_per_kg"]
	assert.False(t, found, "no derivation with a zero weight")
}

func TestBuildBeanInsertSkipsAbsentOptionals(t *testing.T) {
	doc := buildBeanInsert(models.BeanInput{Name: "Caturra"}, docNow, zap.NewNop())

	for _, key := range []string{"purchase_date", "purchase_price_total", "purchase_weight_grams", "stock_grams", "unit_price_per_kg", "color"} {
		_, found := doc[key]
		assert.False(t, found, "unexpected %s", key)
	}
}

func TestBuildBeanUpdateKeepsStoredValuesOnParseFailure(t *testing.T) {
	doc := buildBeanUpdate(models.BeanInput{
		Name:                "Caturra",
		PurchaseDate:        "junk",
		PurchasePriceTotal:  "twenty",
		PurchaseWeightGrams: "a kilo",
		StockGrams:          "some",
	}, docNow, zap.NewNop())

	for _, key := range []string{"purchase_date", "purchase_price_total", "purchase_weight_grams", "stock_grams", "unit_price_per_kg"} {
		_, found := doc[key]
		assert.False(t, found, "parse failure must not overwrite stored %s", key)
	}
	assert.Equal(t, docNow, doc["updated_at"])
}

func TestUnitPriceIdenticalOnCreateAndUpdate(t *testing.T) {
	in := models.BeanInput{
		PurchasePriceTotal:  "37.80",
		PurchaseWeightGrams: "840",
	}

	created := buildBeanInsert(in, docNow, zap.NewNop())
	updated := buildBeanUpdate(in, docNow, zap.NewNop())

	want := decimal.RequireFromString("45")
	assert.True(t, docDecimal(t, created, "unit_price_per_kg").Equal(want))
	assert.True(t, docDecimal(t, updated, "unit_price_per_kg").Equal(want))
}

func TestBuildBeanUpdateNoDerivationWithoutBothInputs(t *testing.T) {
	doc := buildBeanUpdate(models.BeanInput{PurchasePriceTotal: "20.00"}, docNow, zap.NewNop())
	_, found := doc["unit_price_per_kg"]
	assert.False(t, found)

	doc = buildBeanUpdate(models.BeanInput{PurchaseWeightGrams: "1000"}, docNow, zap.NewNop())
	_, found = doc["unit_price_per_kg"]
	assert.False(t, found)
}
