//go:build integration

package integration

import (
	"log/slog"
	"testing"
	"time"

	"github.com/example/tripmatch/internal/events"
	"github.com/example/tripmatch/internal/fanout"
	"github.com/example/tripmatch/internal/models"
	"github.com/example/tripmatch/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFanout() *fanout.Consumer {
	chatRepo := repository.NewChatRoomRepository(testDB)
	return fanout.NewConsumer(testDB, chatRepo, slog.Default())
}

// Test: a match offer event notifies the candidate and provisions the
// chat room if the synchronous path missed it
func TestFanout_MatchOffer(t *testing.T) {
	cleanTables()
	c := newFanout()

	ev := events.Event{
		Type:       events.MatchOffer,
		TripID:     1,
		MatchID:    7,
		ActorID:    "creator-1",
		TargetID:   "user-a",
		OccurredAt: time.Now(),
	}
	require.NoError(t, c.Handle(t.Context(), ev))

	var n models.Notification
	require.NoError(t, testDB.Where("user_id = ?", "user-a").First(&n).Error)
	assert.Equal(t, models.NotifyMatchOffer, n.Type)
	assert.Equal(t, "It's a Match!", n.Title)
	require.NotNil(t, n.MatchID)
	assert.Equal(t, uint(7), *n.MatchID)

	var rooms int64
	testDB.Model(&models.ChatRoom{}).Where("trip_id = ?", uint(1)).Count(&rooms)
	assert.Equal(t, int64(1), rooms)

	// Redelivery stays idempotent on the room.
	require.NoError(t, c.Handle(t.Context(), ev))
	testDB.Model(&models.ChatRoom{}).Where("trip_id = ?", uint(1)).Count(&rooms)
	assert.Equal(t, int64(1), rooms)
}

// Test: super swipes get the louder title
func TestFanout_SuperSwipeTitle(t *testing.T) {
	cleanTables()
	c := newFanout()

	require.NoError(t, c.Handle(t.Context(), events.Event{
		Type:       events.SwipeReceived,
		TripID:     1,
		ActorID:    "user-a",
		TargetID:   "creator-1",
		Direction:  string(models.SwipeSuper),
		OccurredAt: time.Now(),
	}))

	var n models.Notification
	require.NoError(t, testDB.Where("user_id = ?", "creator-1").First(&n).Error)
	assert.Equal(t, "New Super Like!", n.Title)
}

// Test: trip cancellation fans out to every affected participant
func TestFanout_TripCancelledBroadcast(t *testing.T) {
	cleanTables()
	c := newFanout()

	require.NoError(t, c.Handle(t.Context(), events.Event{
		Type:       events.TripCancelled,
		TripID:     1,
		ActorID:    "creator-1",
		TargetIDs:  []string{"user-a", "user-b", "user-c"},
		Reason:     "vehicle trouble",
		OccurredAt: time.Now(),
	}))

	var count int64
	testDB.Model(&models.Notification{}).Where("type = ?", models.NotifyTripCancelled).Count(&count)
	assert.Equal(t, int64(3), count)
}

// Test: completion sends review reminders, unknown types are dropped
func TestFanout_CompletionAndUnknown(t *testing.T) {
	cleanTables()
	c := newFanout()

	require.NoError(t, c.Handle(t.Context(), events.Event{
		Type:       events.TripCompleted,
		TripID:     1,
		ActorID:    "creator-1",
		TargetIDs:  []string{"creator-1", "user-a"},
		OccurredAt: time.Now(),
	}))

	var count int64
	testDB.Model(&models.Notification{}).Where("type = ?", models.NotifyReviewReminder).Count(&count)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, c.Handle(t.Context(), events.Event{Type: "bogus.type"}))
	testDB.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(2), count, "unknown types write nothing")
}
