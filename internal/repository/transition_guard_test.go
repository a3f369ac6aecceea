package repository

import (
	"context"
	"testing"

	"github.com/example/tripmatch/internal/models"
	"github.com/stretchr/testify/assert"
)

// The guards consult the model transition tables before touching the
// database, so an edge the tables don't allow fails up front. A nil DB
// proves no SQL runs on the rejection path.

func TestTransitionIf_RejectsEdgesOutsideTable(t *testing.T) {
	r := NewMatchRepository(nil)

	illegal := []struct {
		from, to models.MatchStatus
	}{
		{models.MatchPending, models.MatchCancelled},
		{models.MatchAccepted, models.MatchPending},
		{models.MatchAccepted, models.MatchRejected},
		{models.MatchRejected, models.MatchAccepted},
		{models.MatchCancelled, models.MatchAccepted},
		{models.MatchCancelled, models.MatchPending},
	}
	for _, tc := range illegal {
		ok, err := r.TransitionIf(context.Background(), nil, 1, tc.from, tc.to, nil)
		assert.False(t, ok, "%s -> %s", tc.from, tc.to)
		assert.Error(t, err, "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateStatusIf_RejectsEdgesOutsideTable(t *testing.T) {
	r := NewTripRepository(nil)

	illegal := []struct {
		from, to models.TripStatus
	}{
		{models.TripOpen, models.TripCompleted},
		{models.TripInProgress, models.TripOpen},
		{models.TripCompleted, models.TripOpen},
		{models.TripCompleted, models.TripInProgress},
		{models.TripCancelled, models.TripOpen},
	}
	for _, tc := range illegal {
		ok, err := r.UpdateStatusIf(context.Background(), nil, 1, tc.from, tc.to)
		assert.False(t, ok, "%s -> %s", tc.from, tc.to)
		assert.Error(t, err, "%s -> %s", tc.from, tc.to)
	}
}
