package models

// RoastState is the explicit lifecycle state of a roast. It is derived
// from the archived flag and timestamp presence in exactly one place so
// every caller agrees on the transition rules.
type RoastState string

const (
	RoastStateDraft      RoastState = "draft"
	RoastStateInProgress RoastState = "in_progress"
	RoastStateCompleted  RoastState = "completed"
	RoastStateArchived   RoastState = "archived"
)

// State derives the lifecycle state of the roast.
func (r *Roast) State() RoastState {
	switch {
	case r.Archived:
		return RoastStateArchived
	case r.RoastEndTime != nil:
		return RoastStateCompleted
	case r.RoastStartTime != nil:
		return RoastStateInProgress
	default:
		return RoastStateDraft
	}
}

// CanEnd reports whether the roast may receive an end timestamp. Ending
// a draft would produce an end time before any start time, so that
// transition is rejected instead of silently recorded.
func (r *Roast) CanEnd() bool {
	s := r.State()
	return s == RoastStateInProgress || s == RoastStateCompleted
}
