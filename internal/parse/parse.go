// Package parse implements the best-effort field parsing applied to form
// input. Malformed values never propagate as errors: each combinator
// returns the zero value together with a defaulted flag, and the caller
// decides whether a defaulted result is stored, skipped or merely logged.
package parse

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Date parses a YYYY-MM-DD value. The second result is true when the
// input could not be parsed and the zero time was substituted.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, true
	}
	return t, false
}

// Int parses a base-10 integer, reporting whether zero was substituted.
func Int(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, true
	}
	return n, false
}

// Decimal parses a decimal currency amount, reporting whether the zero
// amount was substituted.
func Decimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}
