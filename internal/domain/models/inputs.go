package models

// BeanInput carries raw form values for bean create/update. Numeric and
// date fields stay strings here: the repository applies the lenient
// parsing rules, which differ between create and update.
type BeanInput struct {
	Name                string
	Origin              string
	Process             string
	Supplier            string
	Notes               string
	Color               string
	PurchaseDate        string
	PurchasePriceTotal  string
	PurchaseWeightGrams string
	StockGrams          string
}

// StartInput is the JSON body of the roast start call. The stock
// decrement only fires when BeanID and OriginalWeightGrams arrive in
// the same call.
type StartInput struct {
	BeanID              string `json:"bean_id"`
	OriginalWeightGrams int    `json:"original_weight_grams"`
}

// TitleInput is the JSON body of a title update.
type TitleInput struct {
	Title string `json:"title"`
}

// TimingInput is the JSON body of a key-timing append. Optional settings
// are pointers so absent fields can be left out of the stored event.
type TimingInput struct {
	EventName    string   `json:"event_name" binding:"required"`
	TimeSeconds  int      `json:"time_seconds"`
	Temperature  *float64 `json:"temperature"`
	FanSetting   *int     `json:"fan_setting"`
	PowerSetting *int     `json:"power_setting"`
}

// CurveInput is the JSON body of a temperature-curve append.
type CurveInput struct {
	TimeSeconds  int     `json:"time_seconds"`
	Temperature  float64 `json:"temperature"`
	FanSetting   int     `json:"fan_setting"`
	PowerSetting int     `json:"power_setting"`
	Note         string  `json:"note"`
}

// RoastInput carries raw form values for the full roast edit.
type RoastInput struct {
	Title                 string
	RoastDate             string
	BeanID                string
	OriginalWeightGrams   string
	RoastedWeightGrams    string
	TempMeasurementMethod string
	GeneralNotes          string
}

// ReviewInput carries review fields for add/update. A nil OverallScore
// falls back to the neutral default of 3.
type ReviewInput struct {
	OverallScore     *int   `json:"overall_score"`
	ExtractionMethod string `json:"extraction_method"`
	Notes            string `json:"notes"`
}
