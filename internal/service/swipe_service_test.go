package service

import (
	"context"
	"testing"
	"time"

	"github.com/example/tripmatch/internal/events"
	"github.com/example/tripmatch/internal/geo"
	"github.com/example/tripmatch/internal/models"
	"github.com/example/tripmatch/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mocks ---

type mockSwipeRepo struct {
	createFn func(ctx context.Context, swipe *models.Swipe) error
}

func (m *mockSwipeRepo) Create(ctx context.Context, swipe *models.Swipe) error {
	return m.createFn(ctx, swipe)
}
func (m *mockSwipeRepo) FindByTripAndUser(ctx context.Context, tripID uint, userID string) (*models.Swipe, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSwipeRepo) ListByTrip(ctx context.Context, tripID uint, f repository.SwipeFilter) ([]models.Swipe, int64, error) {
	return nil, 0, nil
}
func (m *mockSwipeRepo) ListByUser(ctx context.Context, userID string, f repository.SwipeFilter) ([]models.Swipe, int64, error) {
	return nil, 0, nil
}

type mockTripRepo struct {
	findByIDFn  func(ctx context.Context, id uint) (*models.Trip, error)
	incremented []uint
}

func (m *mockTripRepo) Create(ctx context.Context, trip *models.Trip) error { return nil }
func (m *mockTripRepo) FindByID(ctx context.Context, id uint) (*models.Trip, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockTripRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Trip, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockTripRepo) TryReserve(ctx context.Context, tx *gorm.DB, tripID uint, seats int) (bool, error) {
	return false, nil
}
func (m *mockTripRepo) Release(ctx context.Context, tx *gorm.DB, tripID uint, seats int) error {
	return nil
}
func (m *mockTripRepo) UpdateStatusIf(ctx context.Context, tx *gorm.DB, tripID uint, from, to models.TripStatus) (bool, error) {
	return false, nil
}
func (m *mockTripRepo) CancelAndRestoreSeats(ctx context.Context, tx *gorm.DB, tripID uint) (bool, error) {
	return false, nil
}
func (m *mockTripRepo) IncrementSwipeCount(ctx context.Context, tripID uint) error {
	m.incremented = append(m.incremented, tripID)
	return nil
}
func (m *mockTripRepo) SearchNearby(ctx context.Context, b geo.Bounds, excludeUser string, limit, offset int) ([]models.Trip, error) {
	return nil, nil
}
func (m *mockTripRepo) GetDB() *gorm.DB { return nil }

type mockUserRepo struct {
	blocked bool
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, nil
}
func (m *mockUserRepo) ApplyCancellation(ctx context.Context, tx *gorm.DB, userID string, penalty float64) error {
	return nil
}
func (m *mockUserRepo) IncrementTripsCompleted(ctx context.Context, tx *gorm.DB, userIDs []string) error {
	return nil
}
func (m *mockUserRepo) EitherBlocked(ctx context.Context, userA, userB string) (bool, error) {
	return m.blocked, nil
}

type recordingEmitter struct {
	emitted []events.Event
}

func (e *recordingEmitter) Emit(ev events.Event) {
	e.emitted = append(e.emitted, ev)
}

func openTrip(creator string, seats int) *models.Trip {
	return &models.Trip{
		ID:             1,
		CreatedBy:      creator,
		Type:           models.TripCabPool,
		Status:         models.TripOpen,
		DepartureAt:    time.Now().Add(48 * time.Hour),
		TotalSeats:     seats,
		AvailableSeats: seats,
	}
}

// --- Tests ---

func TestRecordSwipe_Right_EmitsAndCounts(t *testing.T) {
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) {
			return openTrip("creator-1", 3), nil
		},
	}
	swipes := &mockSwipeRepo{
		createFn: func(ctx context.Context, swipe *models.Swipe) error {
			swipe.ID = 10
			return nil
		},
	}
	emitter := &recordingEmitter{}

	svc := NewSwipeService(swipes, trips, &mockUserRepo{}, emitter)
	swipe, trip, err := svc.RecordSwipe(context.Background(), 1, "user-2", models.SwipeRight, nil)

	assert.NoError(t, err)
	assert.Equal(t, uint(10), swipe.ID)
	assert.Equal(t, 3, trip.AvailableSeats)
	assert.Equal(t, []uint{1}, trips.incremented)
	assert.Len(t, emitter.emitted, 1)
	assert.Equal(t, events.SwipeReceived, emitter.emitted[0].Type)
	assert.Equal(t, "creator-1", emitter.emitted[0].TargetID)
}

func TestRecordSwipe_Left_NoEventNoCounter(t *testing.T) {
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) {
			return openTrip("creator-1", 3), nil
		},
	}
	swipes := &mockSwipeRepo{
		createFn: func(ctx context.Context, swipe *models.Swipe) error { return nil },
	}
	emitter := &recordingEmitter{}

	svc := NewSwipeService(swipes, trips, &mockUserRepo{}, emitter)
	intro := "ignored for left swipes"
	swipe, _, err := svc.RecordSwipe(context.Background(), 1, "user-2", models.SwipeLeft, &intro)

	assert.NoError(t, err)
	assert.Nil(t, swipe.IntroMessage)
	assert.Empty(t, trips.incremented)
	assert.Empty(t, emitter.emitted)
}

func TestRecordSwipe_Left_AllowedAtZeroSeats(t *testing.T) {
	trip := openTrip("creator-1", 3)
	trip.AvailableSeats = 0
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) { return trip, nil },
	}
	swipes := &mockSwipeRepo{
		createFn: func(ctx context.Context, swipe *models.Swipe) error { return nil },
	}

	svc := NewSwipeService(swipes, trips, &mockUserRepo{}, nil)
	_, _, err := svc.RecordSwipe(context.Background(), 1, "user-2", models.SwipeLeft, nil)

	assert.NoError(t, err)
}

func TestRecordSwipe_Right_RejectedAtZeroSeats(t *testing.T) {
	trip := openTrip("creator-1", 3)
	trip.AvailableSeats = 0
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) { return trip, nil },
	}

	svc := NewSwipeService(&mockSwipeRepo{}, trips, &mockUserRepo{}, nil)
	_, _, err := svc.RecordSwipe(context.Background(), 1, "user-2", models.SwipeRight, nil)

	assert.ErrorIs(t, err, ErrNoSeatsAvailable)
}

func TestRecordSwipe_OwnTrip(t *testing.T) {
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) {
			return openTrip("user-2", 3), nil
		},
	}

	svc := NewSwipeService(&mockSwipeRepo{}, trips, &mockUserRepo{}, nil)
	_, _, err := svc.RecordSwipe(context.Background(), 1, "user-2", models.SwipeRight, nil)

	assert.ErrorIs(t, err, ErrOwnTrip)
}

func TestRecordSwipe_Blocked(t *testing.T) {
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) {
			return openTrip("creator-1", 3), nil
		},
	}

	svc := NewSwipeService(&mockSwipeRepo{}, trips, &mockUserRepo{blocked: true}, nil)
	_, _, err := svc.RecordSwipe(context.Background(), 1, "user-2", models.SwipeRight, nil)

	assert.ErrorIs(t, err, ErrBlocked)
}

func TestRecordSwipe_TripNotOpen(t *testing.T) {
	trip := openTrip("creator-1", 3)
	trip.Status = models.TripInProgress
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) { return trip, nil },
	}

	svc := NewSwipeService(&mockSwipeRepo{}, trips, &mockUserRepo{}, nil)
	_, _, err := svc.RecordSwipe(context.Background(), 1, "user-2", models.SwipeSuper, nil)

	assert.ErrorIs(t, err, ErrTripNotOpen)
}

func TestRecordSwipe_Duplicate(t *testing.T) {
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) {
			return openTrip("creator-1", 3), nil
		},
	}
	swipes := &mockSwipeRepo{
		createFn: func(ctx context.Context, swipe *models.Swipe) error {
			return gorm.ErrDuplicatedKey
		},
	}

	svc := NewSwipeService(swipes, trips, &mockUserRepo{}, nil)
	_, _, err := svc.RecordSwipe(context.Background(), 1, "user-2", models.SwipeRight, nil)

	assert.ErrorIs(t, err, ErrAlreadySwiped)
}

func TestRecordSwipe_InvalidDirection(t *testing.T) {
	svc := NewSwipeService(nil, nil, nil, nil)
	_, _, err := svc.RecordSwipe(context.Background(), 1, "user-2", "sideways", nil)

	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestGetSwipesOnTrip_OwnerOnly(t *testing.T) {
	trips := &mockTripRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Trip, error) {
			return openTrip("creator-1", 3), nil
		},
	}

	svc := NewSwipeService(&mockSwipeRepo{}, trips, &mockUserRepo{}, nil)
	_, _, err := svc.GetSwipesOnTrip(context.Background(), "user-2", 1, repository.SwipeFilter{})

	assert.ErrorIs(t, err, ErrNotTripOwner)
}
