package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mcharron/roastlog/internal/domain/models"
)

// stockAdjustment is one pending $inc against a bean's stock_grams.
// Positive deltas restore inventory, negative deltas deplete it.
type stockAdjustment struct {
	beanID     primitive.ObjectID
	deltaGrams int
}

// planStockAdjustments decides how bean stock moves when a roast edit
// changes the bean reference or the original weight. oldBean/oldWeight
// are the stored values, newBean/newWeight the incoming ones (absent
// weight arrives as 0).
//
// When the weight is unchanged nothing moves, even if the bean
// reference changed. That leaves stock attributed to the wrong bean
// after a bean swap; it is the historical behavior and is kept until
// product intent says otherwise (see DESIGN.md).
func planStockAdjustments(oldBean *primitive.ObjectID, oldWeight int, newBean *primitive.ObjectID, newWeight int) []stockAdjustment {
	if newWeight == oldWeight {
		return nil
	}

	if oldBean != nil && newBean != nil && *oldBean != *newBean {
		var adjustments []stockAdjustment
		if oldWeight > 0 {
			adjustments = append(adjustments, stockAdjustment{beanID: *oldBean, deltaGrams: oldWeight})
		}
		if newWeight > 0 {
			adjustments = append(adjustments, stockAdjustment{beanID: *newBean, deltaGrams: -newWeight})
		}
		return adjustments
	}

	if newBean != nil {
		// Same or newly set bean: a weight increase depletes the
		// difference, a decrease restores it.
		return []stockAdjustment{{beanID: *newBean, deltaGrams: oldWeight - newWeight}}
	}

	return nil
}

// startStockAdjustment is the decrement applied when a roast starts. It
// fires only when the bean and the charge weight arrive in the same
// call; a weight without a bean never touches stock.
func startStockAdjustment(beanID *primitive.ObjectID, weightGrams int) (stockAdjustment, bool) {
	if beanID == nil || weightGrams == 0 {
		return stockAdjustment{}, false
	}
	return stockAdjustment{beanID: *beanID, deltaGrams: -weightGrams}, true
}

// archiveStockAdjustment restores the roast's charge weight to its bean
// when the roast is archived.
func archiveStockAdjustment(roast *models.Roast) (stockAdjustment, bool) {
	if roast == nil || roast.BeanID == nil || roast.OriginalWeightGrams == 0 {
		return stockAdjustment{}, false
	}
	return stockAdjustment{beanID: *roast.BeanID, deltaGrams: roast.OriginalWeightGrams}, true
}
