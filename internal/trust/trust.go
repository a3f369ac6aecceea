// Package trust derives reputation adjustments from cancellation timing.
// The function here is pure; applying the result to a user row happens in
// the same database transaction as the match transition that triggered it.
package trust

import "time"

const (
	penaltyLate     = 0.3 // cancelled under 24h before departure
	penaltyMid      = 0.1 // cancelled 24-48h before departure
	lateWindowHours = 24
	midWindowHours  = 48
)

// CancellationPenalty returns the trust-score deduction for cancelling a
// confirmed seat the given number of hours before departure. Departures
// already in the past count as late cancellations.
func CancellationPenalty(hoursUntilDeparture float64) float64 {
	switch {
	case hoursUntilDeparture < lateWindowHours:
		return penaltyLate
	case hoursUntilDeparture < midWindowHours:
		return penaltyMid
	default:
		return 0
	}
}

// HoursUntil is the fractional number of hours from now until t.
func HoursUntil(t time.Time, now time.Time) float64 {
	return t.Sub(now).Hours()
}
