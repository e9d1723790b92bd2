package mongodb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/apierror"
	"github.com/mcharron/roastlog/internal/domain/models"
)

func TestBuildRoastDraft(t *testing.T) {
	doc := buildRoastDraft(docNow)

	assert.Equal(t, models.DefaultTitle, doc["title"])
	assert.Equal(t, docNow, doc["roast_date"])
	assert.Equal(t, bson.A{}, doc["key_timings"])
	assert.Equal(t, bson.A{}, doc["temp_curve"])
	assert.Equal(t, bson.A{}, doc["reviews"])
	assert.Equal(t, docNow, doc["created_at"])
	assert.Equal(t, docNow, doc["updated_at"])
}

func TestBuildRoastUpdateDerivesWeightLoss(t *testing.T) {
	doc, adjustments, err := buildRoastUpdate(&models.Roast{}, models.RoastInput{
		Title:               "Sunday batch",
		OriginalWeightGrams: "250",
		RoastedWeightGrams:  "200",
	}, docNow, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "Sunday batch", doc["title"])
	assert.Equal(t, 250, doc["original_weight_grams"])
	assert.Equal(t, 200, doc["roasted_weight_grams"])
	assert.Equal(t, 20.0, doc["weight_loss_percentage"])
	assert.Nil(t, adjustments, "no bean involved, no stock moves")
}

func TestBuildRoastUpdateWeightLossRounding(t *testing.T) {
	doc, _, err := buildRoastUpdate(&models.Roast{}, models.RoastInput{
		OriginalWeightGrams: "300",
		RoastedWeightGrams:  "251",
	}, docNow, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 16.33, doc["weight_loss_percentage"])
}

func TestBuildRoastUpdateDefaultsEmptyTitle(t *testing.T) {
	doc, _, err := buildRoastUpdate(&models.Roast{}, models.RoastInput{}, docNow, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, models.DefaultTitle, doc["title"])
}

func TestBuildRoastUpdateLenientDate(t *testing.T) {
	doc, _, err := buildRoastUpdate(&models.Roast{}, models.RoastInput{RoastDate: "bogus"}, docNow, zap.NewNop())
	require.NoError(t, err)
	_, found := doc["roast_date"]
	assert.False(t, found)

	doc, _, err = buildRoastUpdate(&models.Roast{}, models.RoastInput{RoastDate: "2025-04-01"}, docNow, zap.NewNop())
	require.NoError(t, err)
	_, found = doc["roast_date"]
	assert.True(t, found)
}

func TestBuildRoastUpdateRejectsMalformedBean(t *testing.T) {
	_, _, err := buildRoastUpdate(&models.Roast{}, models.RoastInput{BeanID: "zzz"}, docNow, zap.NewNop())
	assert.ErrorIs(t, err, apierror.ErrInvalidReference)
}

func TestBuildRoastUpdateBeanSwapStockPlan(t *testing.T) {
	beanA := primitive.NewObjectID()
	beanB := primitive.NewObjectID()
	existing := &models.Roast{BeanID: &beanA, OriginalWeightGrams: 250}

	// Same weight, different bean: stock stays where it is.
	_, adjustments, err := buildRoastUpdate(existing, models.RoastInput{
		BeanID:              beanB.Hex(),
		OriginalWeightGrams: "250",
	}, docNow, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, adjustments)

	// New weight on the new bean: restore the old bean, charge the new.
	_, adjustments, err = buildRoastUpdate(existing, models.RoastInput{
		BeanID:              beanB.Hex(),
		OriginalWeightGrams: "300",
	}, docNow, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []stockAdjustment{
		{beanID: beanA, deltaGrams: 250},
		{beanID: beanB, deltaGrams: -300},
	}, adjustments)
}

func TestBuildTimingEventOptionalFields(t *testing.T) {
	event := buildTimingEvent(models.TimingInput{EventName: "First Crack Start", TimeSeconds: 300})
	assert.Equal(t, bson.M{"event_name": "First Crack Start", "time_seconds": 300}, event)

	temp := 198.5
	fan := 4
	event = buildTimingEvent(models.TimingInput{
		EventName:   "First Crack Start",
		TimeSeconds: 300,
		Temperature: &temp,
		FanSetting:  &fan,
	})
	assert.Equal(t, 198.5, event["temperature"])
	assert.Equal(t, 4, event["fan_setting"])
	_, found := event["power_setting"]
	assert.False(t, found)
}

func TestBuildCurvePointDefaults(t *testing.T) {
	point := buildCurvePoint(models.CurveInput{TimeSeconds: 60, Temperature: 145.0})

	assert.Equal(t, 0, point["fan_setting"])
	assert.Equal(t, 0, point["power_setting"])
	_, found := point["note"]
	assert.False(t, found)

	point = buildCurvePoint(models.CurveInput{TimeSeconds: 60, Temperature: 145.0, Note: "gas down"})
	assert.Equal(t, "gas down", point["note"])
}

func TestBuildReviewScoreDefault(t *testing.T) {
	id := primitive.NewObjectID()

	review := buildReview(id, models.ReviewInput{ExtractionMethod: "V60"}, docNow)
	assert.Equal(t, 3, review["overall_score"])
	assert.Equal(t, id, review["_id"])

	score := 5
	review = buildReview(id, models.ReviewInput{OverallScore: &score}, docNow)
	assert.Equal(t, 5, review["overall_score"])

	fields := buildReviewUpdate(models.ReviewInput{Notes: "fruitier than expected"}, docNow)
	assert.Equal(t, 3, fields["reviews.$.overall_score"])
	assert.Equal(t, "fruitier than expected", fields["reviews.$.notes"])
	assert.Equal(t, docNow, fields["reviews.$.updated_at"])
	assert.Equal(t, docNow, fields["updated_at"])
}

// TestRoastLifecycleStockRoundTrip walks the whole flow: a bean is
// purchased, a roast starts against it, finishes, gets its roasted
// weight, and is archived. Stock must come back to where it started.
func TestRoastLifecycleStockRoundTrip(t *testing.T) {
	beanDoc := buildBeanInsert(models.BeanInput{
		Name:                "Huila",
		PurchasePriceTotal:  "20.00",
		PurchaseWeightGrams: "1000",
		StockGrams:          "1000",
	}, docNow, zap.NewNop())
	assert.True(t, docDecimal(t, beanDoc, "unit_price_per_kg").Equal(decimal.NewFromInt(20)))

	beanID := primitive.NewObjectID()
	stock := map[primitive.ObjectID]int{beanID: beanDoc["stock_grams"].(int)}

	apply := func(adj stockAdjustment) { stock[adj.beanID] += adj.deltaGrams }

	// Start with bean and charge weight in the same call.
	adj, ok := startStockAdjustment(&beanID, 250)
	require.True(t, ok)
	apply(adj)
	assert.Equal(t, 750, stock[beanID])

	roast := &models.Roast{BeanID: &beanID, OriginalWeightGrams: 250}

	// Edit sets the roasted weight; the unchanged charge weight moves no stock.
	doc, adjustments, err := buildRoastUpdate(roast, models.RoastInput{
		BeanID:              beanID.Hex(),
		OriginalWeightGrams: "250",
		RoastedWeightGrams:  "200",
	}, docNow, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, adjustments)
	assert.Equal(t, 20.0, doc["weight_loss_percentage"])
	assert.Equal(t, 750, stock[beanID])

	// Archiving hands the charge weight back.
	adj, ok = archiveStockAdjustment(roast)
	require.True(t, ok)
	apply(adj)
	assert.Equal(t, 1000, stock[beanID])
}
