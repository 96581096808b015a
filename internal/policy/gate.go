// Package policy is the single source of truth for the duration ceiling.
// Every enforcement point (search filtering, single-video verification,
// manual duration edits, library writes) goes through Check so the
// threshold cannot drift between entry paths.
package policy

import "github.com/habitloop/curator/internal/domain"

// MaxDurationSeconds is the hard ceiling: 480 seconds / 8 minutes.
const MaxDurationSeconds = 480

// Decision is a self-describing pass/fail against the ceiling.
type Decision struct {
	Pass       bool    `json:"pass"`
	Seconds    int     `json:"seconds"`
	Minutes    float64 `json:"minutes"`
	MaxSeconds int     `json:"maxSeconds"`
}

// Check applies the ceiling to a resolved duration. Exactly
// MaxDurationSeconds passes; one second over fails.
func Check(d domain.ResolvedDuration) Decision {
	return Decision{
		Pass:       d.Seconds <= MaxDurationSeconds,
		Seconds:    d.Seconds,
		Minutes:    d.Minutes,
		MaxSeconds: MaxDurationSeconds,
	}
}

// CheckMinutes applies the ceiling to a whole-minute duration, the form a
// user can edit on a pending or saved library item.
func CheckMinutes(minutes int) Decision {
	return Check(domain.NewResolvedDuration(minutes * 60))
}

// Violation returns the decision as a PolicyViolationError, or nil when
// it passed.
func (d Decision) Violation() error {
	if d.Pass {
		return nil
	}
	return &domain.PolicyViolationError{
		Seconds:    d.Seconds,
		Minutes:    d.Minutes,
		MaxSeconds: d.MaxSeconds,
	}
}
