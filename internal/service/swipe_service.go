package service

import (
	"context"
	"errors"
	"time"

	"github.com/example/tripmatch/internal/events"
	"github.com/example/tripmatch/internal/models"
	"github.com/example/tripmatch/internal/observability"
	"github.com/example/tripmatch/internal/repository"
	"gorm.io/gorm"
)

type SwipeService interface {
	RecordSwipe(ctx context.Context, tripID uint, userID string, direction models.SwipeDirection, intro *string) (*models.Swipe, *models.Trip, error)
	GetSwipesOnTrip(ctx context.Context, callerID string, tripID uint, f repository.SwipeFilter) ([]models.Swipe, int64, error)
	GetMySwipes(ctx context.Context, userID string, f repository.SwipeFilter) ([]models.Swipe, int64, error)
}

type swipeService struct {
	swipeRepo repository.SwipeRepository
	tripRepo  repository.TripRepository
	userRepo  repository.UserRepository
	emitter   events.Emitter
}

func NewSwipeService(swipeRepo repository.SwipeRepository, tripRepo repository.TripRepository, userRepo repository.UserRepository, emitter events.Emitter) SwipeService {
	return &swipeService{
		swipeRepo: swipeRepo,
		tripRepo:  tripRepo,
		userRepo:  userRepo,
		emitter:   emitter,
	}
}

// RecordSwipe appends a one-shot interest expression. Uniqueness per
// (trip, candidate) is enforced by the database index, so two concurrent
// first swipes cannot both land.
func (s *swipeService) RecordSwipe(ctx context.Context, tripID uint, userID string, direction models.SwipeDirection, intro *string) (*models.Swipe, *models.Trip, error) {
	if !direction.Valid() {
		return nil, nil, ErrInvalidDirection
	}

	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, nil, ErrTripNotFound
	}

	if trip.CreatedBy == userID {
		return nil, nil, ErrOwnTrip
	}

	blocked, err := s.userRepo.EitherBlocked(ctx, trip.CreatedBy, userID)
	if err != nil {
		return nil, nil, err
	}
	if blocked {
		return nil, nil, ErrBlocked
	}

	if trip.Status != models.TripOpen {
		return nil, nil, ErrTripNotOpen
	}

	// Left swipes carry no reservation semantics; only positive
	// directions need capacity.
	if direction.Positive() && trip.AvailableSeats <= 0 {
		return nil, nil, ErrNoSeatsAvailable
	}

	swipe := &models.Swipe{
		TripID:    tripID,
		UserID:    userID,
		Direction: direction,
	}
	if direction != models.SwipeLeft {
		swipe.IntroMessage = intro
	}

	if err := s.swipeRepo.Create(ctx, swipe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrAlreadySwiped
		}
		return nil, nil, err
	}

	observability.SwipesTotal.WithLabelValues(string(direction)).Inc()

	if direction.Positive() {
		// Display-only counter; a lost increment is harmless.
		_ = s.tripRepo.IncrementSwipeCount(ctx, tripID)

		if s.emitter != nil {
			s.emitter.Emit(events.Event{
				Type:       events.SwipeReceived,
				TripID:     tripID,
				ActorID:    userID,
				TargetID:   trip.CreatedBy,
				Direction:  string(direction),
				OccurredAt: time.Now(),
			})
		}
	}

	return swipe, trip, nil
}

func (s *swipeService) GetSwipesOnTrip(ctx context.Context, callerID string, tripID uint, f repository.SwipeFilter) ([]models.Swipe, int64, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, 0, ErrTripNotFound
	}
	if trip.CreatedBy != callerID {
		return nil, 0, ErrNotTripOwner
	}
	return s.swipeRepo.ListByTrip(ctx, tripID, f)
}

func (s *swipeService) GetMySwipes(ctx context.Context, userID string, f repository.SwipeFilter) ([]models.Swipe, int64, error) {
	return s.swipeRepo.ListByUser(ctx, userID, f)
}
