package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/apierror"
	"github.com/mcharron/roastlog/internal/domain/models"
	"github.com/mcharron/roastlog/internal/parse"
)

const defaultReviewScore = 3

// buildRoastDraft assembles a fresh draft document: default title,
// empty arrays, no timers.
func buildRoastDraft(now time.Time) bson.M {
	return bson.M{
		"title":                   models.DefaultTitle,
		"roast_date":              now,
		"temp_measurement_method": "",
		"general_notes":           "",
		"key_timings":             bson.A{},
		"temp_curve":              bson.A{},
		"reviews":                 bson.A{},
		"created_at":              now,
		"updated_at":              now,
	}
}

// buildRoastUpdate assembles the $set document for a full roast edit and
// plans the bean stock adjustments implied by weight or bean changes.
// The only error condition is a malformed bean reference; every field
// parse failure is swallowed, leaving the stored value untouched.
func buildRoastUpdate(existing *models.Roast, in models.RoastInput, now time.Time, logger *zap.Logger) (bson.M, []stockAdjustment, error) {
	title := in.Title
	if title == "" {
		title = models.DefaultTitle
	}

	doc := bson.M{
		"title":                   title,
		"temp_measurement_method": in.TempMeasurementMethod,
		"general_notes":           in.GeneralNotes,
		"updated_at":              now,
	}

	if in.RoastDate != "" {
		if t, defaulted := parse.Date(in.RoastDate); defaulted {
			logger.Debug("keeping stored roast date, input unparseable", zap.String("value", in.RoastDate))
		} else {
			doc["roast_date"] = t
		}
	}

	var newBean *primitive.ObjectID
	if in.BeanID != "" {
		oid, err := primitive.ObjectIDFromHex(in.BeanID)
		if err != nil {
			return nil, nil, apierror.ErrInvalidReference
		}
		newBean = &oid
		doc["bean_id"] = oid
	}

	newWeight := 0
	if in.OriginalWeightGrams != "" {
		if n, defaulted := parse.Int(in.OriginalWeightGrams); defaulted {
			logger.Debug("keeping stored original weight, input unparseable", zap.String("value", in.OriginalWeightGrams))
		} else {
			newWeight = n
			doc["original_weight_grams"] = n
		}
	}

	roastedSet := false
	roastedWeight := 0
	if in.RoastedWeightGrams != "" {
		if n, defaulted := parse.Int(in.RoastedWeightGrams); defaulted {
			logger.Debug("keeping stored roasted weight, input unparseable", zap.String("value", in.RoastedWeightGrams))
		} else {
			roastedSet = true
			roastedWeight = n
			doc["roasted_weight_grams"] = n
		}
	}

	if roastedSet {
		if pct, ok := models.WeightLossPercentage(newWeight, roastedWeight); ok {
			doc["weight_loss_percentage"] = pct
		}
	}

	adjustments := planStockAdjustments(existing.BeanID, existing.OriginalWeightGrams, newBean, newWeight)
	return doc, adjustments, nil
}

// buildTimingEvent assembles a key_timings element. Optional settings
// are included only when the client supplied them.
func buildTimingEvent(in models.TimingInput) bson.M {
	event := bson.M{
		"event_name":   in.EventName,
		"time_seconds": in.TimeSeconds,
	}
	if in.Temperature != nil {
		event["temperature"] = *in.Temperature
	}
	if in.FanSetting != nil {
		event["fan_setting"] = *in.FanSetting
	}
	if in.PowerSetting != nil {
		event["power_setting"] = *in.PowerSetting
	}
	return event
}

// buildCurvePoint assembles a temp_curve element. Fan and power default
// to 0 when absent; the note is included only when non-empty.
func buildCurvePoint(in models.CurveInput) bson.M {
	point := bson.M{
		"time_seconds":  in.TimeSeconds,
		"temperature":   in.Temperature,
		"fan_setting":   in.FanSetting,
		"power_setting": in.PowerSetting,
	}
	if in.Note != "" {
		point["note"] = in.Note
	}
	return point
}

func reviewScore(in models.ReviewInput) int {
	if in.OverallScore == nil {
		return defaultReviewScore
	}
	return *in.OverallScore
}

// buildReview assembles a new reviews element with its own identity.
func buildReview(id primitive.ObjectID, in models.ReviewInput, now time.Time) bson.M {
	return bson.M{
		"_id":               id,
		"overall_score":     reviewScore(in),
		"extraction_method": in.ExtractionMethod,
		"notes":             in.Notes,
		"review_date":       now,
		"created_at":        now,
		"updated_at":        now,
	}
}

// buildReviewUpdate assembles the positional $set for editing one
// matched element of the reviews array.
func buildReviewUpdate(in models.ReviewInput, now time.Time) bson.M {
	return bson.M{
		"reviews.$.overall_score":     reviewScore(in),
		"reviews.$.extraction_method": in.ExtractionMethod,
		"reviews.$.notes":             in.Notes,
		"reviews.$.updated_at":        now,
		"updated_at":                  now,
	}
}
