package models

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// firstCrackEvent is matched as a substring so variants like
// "First Crack Start (rolling)" still count.
const firstCrackEvent = "First Crack Start"

// TimingEvent is a named milestone (e.g. "First Crack Start") at an
// elapsed time. The optional machine settings are persisted only when
// they were supplied with the event.
type TimingEvent struct {
	EventName    string   `bson:"event_name" json:"event_name"`
	TimeSeconds  int      `bson:"time_seconds" json:"time_seconds"`
	Temperature  *float64 `bson:"temperature,omitempty" json:"temperature,omitempty"`
	FanSetting   *int     `bson:"fan_setting,omitempty" json:"fan_setting,omitempty"`
	PowerSetting *int     `bson:"power_setting,omitempty" json:"power_setting,omitempty"`
}

// CurvePoint is one sample of the temperature curve. Fan and power
// default to 0 when the client does not report them.
type CurvePoint struct {
	TimeSeconds  int     `bson:"time_seconds" json:"time_seconds"`
	Temperature  float64 `bson:"temperature" json:"temperature"`
	FanSetting   int     `bson:"fan_setting" json:"fan_setting"`
	PowerSetting int     `bson:"power_setting" json:"power_setting"`
	Note         string  `bson:"note,omitempty" json:"note,omitempty"`
}

// Review is a tasting review of a finished roast. Reviews carry their
// own identity so they can be updated or deleted individually.
type Review struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	OverallScore     int                `bson:"overall_score" json:"overall_score"`
	ExtractionMethod string             `bson:"extraction_method" json:"extraction_method"`
	Notes            string             `bson:"notes" json:"notes"`
	ReviewDate       time.Time          `bson:"review_date" json:"review_date"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// Roast is a logged roasting session. BeanID is a weak reference: the
// bean may have been archived or removed, so it must only be resolved
// through a lookup that tolerates a dangling id.
type Roast struct {
	ID                    primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title                 string              `bson:"title" json:"title"`
	RoastDate             time.Time           `bson:"roast_date" json:"roast_date"`
	BeanID                *primitive.ObjectID `bson:"bean_id,omitempty" json:"bean_id,omitempty"`
	OriginalWeightGrams   int                 `bson:"original_weight_grams,omitempty" json:"original_weight_grams,omitempty"`
	RoastedWeightGrams    int                 `bson:"roasted_weight_grams,omitempty" json:"roasted_weight_grams,omitempty"`
	WeightLossPercentage  float64             `bson:"weight_loss_percentage,omitempty" json:"weight_loss_percentage,omitempty"`
	RoastStartTime        *time.Time          `bson:"roast_start_time,omitempty" json:"roast_start_time,omitempty"`
	RoastEndTime          *time.Time          `bson:"roast_end_time,omitempty" json:"roast_end_time,omitempty"`
	TempMeasurementMethod string              `bson:"temp_measurement_method" json:"temp_measurement_method"`
	GeneralNotes          string              `bson:"general_notes" json:"general_notes"`
	KeyTimings            []TimingEvent       `bson:"key_timings" json:"key_timings"`
	TempCurve             []CurvePoint        `bson:"temp_curve" json:"temp_curve"`
	Reviews               []Review            `bson:"reviews" json:"reviews"`
	Archived              bool                `bson:"archived,omitempty" json:"archived,omitempty"`
	CreatedAt             time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time           `bson:"updated_at" json:"updated_at"`
}

// DefaultTitle is assigned to drafts and to title updates with empty input.
const DefaultTitle = "Untitled Roast"

// Duration returns the total roast duration in whole seconds. It reports
// false when either timestamp is missing or the end precedes the start;
// a negative duration is never produced.
func (r *Roast) Duration() (int, bool) {
	if r.RoastStartTime == nil || r.RoastEndTime == nil {
		return 0, false
	}
	if r.RoastEndTime.Before(*r.RoastStartTime) {
		return 0, false
	}
	return int(r.RoastEndTime.Sub(*r.RoastStartTime).Seconds()), true
}

// TimeAfterFirstCrack returns the development time in seconds between
// the latest "First Crack Start" timing and the end of the roast. When
// the same event was logged more than once the latest entry wins.
func (r *Roast) TimeAfterFirstCrack() (int, bool) {
	total, ok := r.Duration()
	if !ok {
		return 0, false
	}

	fcStart := 0
	for _, t := range r.KeyTimings {
		if strings.Contains(t.EventName, firstCrackEvent) {
			fcStart = t.TimeSeconds
		}
	}
	if fcStart == 0 {
		return 0, false
	}
	return total - fcStart, true
}

// WeightLossPercentage computes the derived weight-loss figure, rounded
// to two decimals. It reports false unless originalGrams is positive;
// the same function backs both the stored field and display logic.
func WeightLossPercentage(originalGrams, roastedGrams int) (float64, bool) {
	if originalGrams <= 0 {
		return 0, false
	}
	loss := float64(originalGrams-roastedGrams) / float64(originalGrams) * 100
	return math.Round(loss*100) / 100, true
}
