package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeRef(t time.Time) *time.Time { return &t }

func TestWeightLossPercentage(t *testing.T) {
	tests := []struct {
		name     string
		original int
		roasted  int
		want     float64
		ok       bool
	}{
		{"typical roast", 250, 200, 20.00, true},
		{"rounding to two decimals", 300, 251, 16.33, true},
		{"full loss", 100, 0, 100.00, true},
		{"light roast", 1000, 850, 15.00, true},
		{"zero original", 0, 10, 0, false},
		{"negative original", -5, 3, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := WeightLossPercentage(tc.original, tc.roasted)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.InDelta(t, tc.want, got, 0.0001)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	r := &Roast{}
	_, ok := r.Duration()
	assert.False(t, ok, "no timestamps")

	r.RoastStartTime = timeRef(start)
	_, ok = r.Duration()
	assert.False(t, ok, "missing end")

	r.RoastEndTime = timeRef(start.Add(12*time.Minute + 34*time.Second))
	got, ok := r.Duration()
	require.True(t, ok)
	assert.Equal(t, 754, got)

	r.RoastEndTime = timeRef(start.Add(-1 * time.Minute))
	_, ok = r.Duration()
	assert.False(t, ok, "end before start must not yield a negative duration")
}

func TestTimeAfterFirstCrack(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r := &Roast{
		RoastStartTime: timeRef(start),
		RoastEndTime:   timeRef(start.Add(754 * time.Second)),
	}

	_, ok := r.TimeAfterFirstCrack()
	assert.False(t, ok, "no timings")

	r.KeyTimings = []TimingEvent{
		{EventName: "Yellowing", TimeSeconds: 120},
		{EventName: "First Crack Start", TimeSeconds: 300},
	}
	got, ok := r.TimeAfterFirstCrack()
	require.True(t, ok)
	assert.Equal(t, 454, got)

	// The same event logged again later wins.
	r.KeyTimings = append(r.KeyTimings, TimingEvent{EventName: "First Crack Start (rolling)", TimeSeconds: 420})
	got, ok = r.TimeAfterFirstCrack()
	require.True(t, ok)
	assert.Equal(t, 334, got)

	r.KeyTimings = []TimingEvent{{EventName: "First Crack Start", TimeSeconds: 0}}
	_, ok = r.TimeAfterFirstCrack()
	assert.False(t, ok, "zero-second first crack is treated as unset")
}

func TestRoastState(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	r := &Roast{}
	assert.Equal(t, RoastStateDraft, r.State())
	assert.False(t, r.CanEnd())

	r.RoastStartTime = timeRef(start)
	assert.Equal(t, RoastStateInProgress, r.State())
	assert.True(t, r.CanEnd())

	r.RoastEndTime = timeRef(start.Add(10 * time.Minute))
	assert.Equal(t, RoastStateCompleted, r.State())
	assert.True(t, r.CanEnd())

	r.Archived = true
	assert.Equal(t, RoastStateArchived, r.State())
	assert.False(t, r.CanEnd())
}
