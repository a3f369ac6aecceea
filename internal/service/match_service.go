package service

import (
	"context"
	"errors"
	"time"

	"github.com/example/tripmatch/internal/cache"
	"github.com/example/tripmatch/internal/events"
	"github.com/example/tripmatch/internal/models"
	"github.com/example/tripmatch/internal/observability"
	"github.com/example/tripmatch/internal/repository"
	"github.com/example/tripmatch/internal/trust"
	"gorm.io/gorm"
)

// OfferResult is the creator's counter-swipe outcome. Matched is false for
// a left response; the rejection is still persisted so the candidate is
// never offered the same trip twice.
type OfferResult struct {
	Matched    bool
	Match      *models.Match
	ChatRoomID uint
}

type MatchService interface {
	CreateMatchOffer(ctx context.Context, creatorID string, tripID uint, candidateID string, direction models.SwipeDirection) (*OfferResult, error)
	AcceptMatch(ctx context.Context, userID string, matchID uint, seatsRequested int) (*models.Match, error)
	RejectMatch(ctx context.Context, userID string, matchID uint, reason *string) error
	CancelMatch(ctx context.Context, userID string, matchID uint, reason *string) (*models.Match, error)
	GetMyMatches(ctx context.Context, userID string, f repository.MatchFilter) ([]models.Match, int64, error)
	GetMatchDetails(ctx context.Context, userID string, matchID uint) (*models.Match, *models.ChatRoom, error)
	GetPendingCount(ctx context.Context, userID string) (int64, error)
}

type matchService struct {
	matchRepo repository.MatchRepository
	tripRepo  repository.TripRepository
	swipeRepo repository.SwipeRepository
	userRepo  repository.UserRepository
	chatRepo  repository.ChatRoomRepository
	pending   *cache.PendingCounts
	emitter   events.Emitter
}

func NewMatchService(
	matchRepo repository.MatchRepository,
	tripRepo repository.TripRepository,
	swipeRepo repository.SwipeRepository,
	userRepo repository.UserRepository,
	chatRepo repository.ChatRoomRepository,
	pending *cache.PendingCounts,
	emitter events.Emitter,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		tripRepo:  tripRepo,
		swipeRepo: swipeRepo,
		userRepo:  userRepo,
		chatRepo:  chatRepo,
		pending:   pending,
		emitter:   emitter,
	}
}

// CreateMatchOffer is the trip creator's response to a candidate's swipe.
func (s *matchService) CreateMatchOffer(ctx context.Context, creatorID string, tripID uint, candidateID string, direction models.SwipeDirection) (*OfferResult, error) {
	if direction != models.SwipeLeft && direction != models.SwipeRight {
		return nil, ErrInvalidDirection
	}

	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, ErrTripNotFound
	}
	if trip.CreatedBy != creatorID {
		return nil, ErrNotTripOwner
	}

	swipe, err := s.swipeRepo.FindByTripAndUser(ctx, tripID, candidateID)
	if err != nil || !swipe.Direction.Positive() {
		return nil, ErrNoInterest
	}

	if _, err := s.matchRepo.FindByTripAndUser(ctx, tripID, candidateID); err == nil {
		return nil, ErrMatchExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()

	if direction == models.SwipeLeft {
		// Durable negative response: a rejected match row blocks any
		// future offer for this (trip, candidate) pair.
		match := &models.Match{
			TripID:        tripID,
			TripCreatorID: creatorID,
			MatchedUserID: candidateID,
			Status:        models.MatchRejected,
			MatchedAt:     now,
			RejectedAt:    &now,
		}
		if err := s.matchRepo.Create(ctx, nil, match); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrMatchExists
			}
			return nil, err
		}
		return &OfferResult{Matched: false, Match: match}, nil
	}

	if trip.AvailableSeats <= 0 {
		return nil, ErrNoSeatsAvailable
	}

	match := &models.Match{
		TripID:         tripID,
		TripCreatorID:  creatorID,
		MatchedUserID:  candidateID,
		Status:         models.MatchPending,
		SeatsRequested: 1,
		FareShare:      trip.FarePerSeat,
		MatchedAt:      now,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMatchExists
		}
		return nil, err
	}

	room, err := s.chatRepo.GetOrCreate(ctx, tripID)
	if err != nil {
		return nil, err
	}

	observability.MatchOffersTotal.Inc()
	s.pending.Invalidate(ctx, candidateID)

	if s.emitter != nil {
		s.emitter.Emit(events.Event{
			Type:       events.MatchOffer,
			TripID:     tripID,
			MatchID:    match.ID,
			ActorID:    creatorID,
			TargetID:   candidateID,
			OccurredAt: now,
		})
	}

	return &OfferResult{Matched: true, Match: match, ChatRoomID: room.ID}, nil
}

// AcceptMatch is the capacity-critical path. The seat decrement and the
// pending→accepted transition are both conditional updates committed in a
// single transaction: they land together or not at all, and concurrent
// accepts on the same trip serialize on the trip row.
func (s *matchService) AcceptMatch(ctx context.Context, userID string, matchID uint, seatsRequested int) (*models.Match, error) {
	if seatsRequested < 1 || seatsRequested > 8 {
		return nil, ErrInvalidSeats
	}

	match, err := s.matchRepo.FindByID(ctx, matchID)
	if err != nil {
		return nil, ErrMatchNotFound
	}
	if match.MatchedUserID != userID {
		return nil, ErrNotMatchParticipant
	}
	if match.Status != models.MatchPending {
		return nil, ErrMatchNotPending
	}
	if match.Trip == nil || match.Trip.Status != models.TripOpen {
		return nil, ErrTripNotOpen
	}

	var fareShare *float64
	if match.Trip.FarePerSeat != nil {
		f := *match.Trip.FarePerSeat * float64(seatsRequested)
		fareShare = &f
	}

	now := time.Now()

	err = s.matchRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reserved, err := s.tripRepo.TryReserve(ctx, tx, match.TripID, seatsRequested)
		if err != nil {
			return err
		}
		if !reserved {
			// Distinguish a closed trip from exhausted capacity for
			// the caller's retry decision.
			trip, err := s.tripRepo.FindByIDForUpdate(ctx, tx, match.TripID)
			if err != nil {
				return ErrTripNotFound
			}
			if trip.Status != models.TripOpen {
				return ErrTripNotOpen
			}
			observability.SeatConflictsTotal.Inc()
			return &InsufficientSeatsError{Available: trip.AvailableSeats}
		}

		ok, err := s.matchRepo.TransitionIf(ctx, tx, matchID, models.MatchPending, models.MatchAccepted, map[string]any{
			"seats_requested": seatsRequested,
			"seats_confirmed": seatsRequested,
			"fare_share":      fareShare,
			"accepted_at":     now,
		})
		if err != nil {
			return err
		}
		if !ok {
			// A concurrent transition won; roll the reservation back
			// with the transaction.
			return ErrMatchNotPending
		}

		// The trip row is locked by our reservation until commit, so
		// this read is stable.
		trip, err := s.tripRepo.FindByIDForUpdate(ctx, tx, match.TripID)
		if err != nil {
			return err
		}
		if trip.AvailableSeats == 0 {
			if _, err := s.tripRepo.UpdateStatusIf(ctx, tx, match.TripID, models.TripOpen, models.TripInProgress); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.MatchAcceptsTotal.Inc()
	s.pending.Invalidate(ctx, userID)

	if s.emitter != nil {
		s.emitter.Emit(events.Event{
			Type:       events.MatchAccepted,
			TripID:     match.TripID,
			MatchID:    matchID,
			ActorID:    userID,
			TargetID:   match.TripCreatorID,
			Seats:      seatsRequested,
			OccurredAt: now,
		})
	}

	return s.matchRepo.FindByID(ctx, matchID)
}

// RejectMatch declines a pending offer. No capacity or trust side effects,
// and deliberately no notification to the creator.
func (s *matchService) RejectMatch(ctx context.Context, userID string, matchID uint, reason *string) error {
	match, err := s.matchRepo.FindByID(ctx, matchID)
	if err != nil {
		return ErrMatchNotFound
	}
	if match.MatchedUserID != userID {
		return ErrNotMatchParticipant
	}

	ok, err := s.matchRepo.TransitionIf(ctx, nil, matchID, models.MatchPending, models.MatchRejected, map[string]any{
		"rejected_at":         time.Now(),
		"cancellation_reason": reason,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrMatchNotPending
	}

	s.pending.Invalidate(ctx, userID)
	return nil
}

// CancelMatch withdraws an accepted seat. Seats go back to the trip, the
// trust penalty for the cancellation window is burned in, and all of it
// commits atomically with the accepted→cancelled transition. The guarded
// transition makes the penalty exactly-once: a second cancel finds no
// accepted row and mutates nothing.
func (s *matchService) CancelMatch(ctx context.Context, userID string, matchID uint, reason *string) (*models.Match, error) {
	match, err := s.matchRepo.FindByID(ctx, matchID)
	if err != nil {
		return nil, ErrMatchNotFound
	}
	if match.MatchedUserID != userID {
		return nil, ErrNotMatchParticipant
	}
	if match.Status != models.MatchAccepted {
		return nil, ErrMatchNotAccepted
	}

	now := time.Now()
	penalty := trust.CancellationPenalty(trust.HoursUntil(match.Trip.DepartureAt, now))

	err = s.matchRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.matchRepo.TransitionIf(ctx, tx, matchID, models.MatchAccepted, models.MatchCancelled, map[string]any{
			"cancelled_at":        now,
			"cancellation_reason": reason,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrMatchNotAccepted
		}

		// SeatsConfirmed is immutable once accepted, and the guarded
		// transition above means exactly one cancel releases it.
		if err := s.tripRepo.Release(ctx, tx, match.TripID, match.SeatsConfirmed); err != nil {
			return err
		}

		return s.userRepo.ApplyCancellation(ctx, tx, userID, penalty)
	})
	if err != nil {
		return nil, err
	}

	observability.MatchCancelsTotal.Inc()

	if s.emitter != nil {
		e := events.Event{
			Type:       events.MatchCancelled,
			TripID:     match.TripID,
			MatchID:    matchID,
			ActorID:    userID,
			TargetID:   match.TripCreatorID,
			Seats:      match.SeatsConfirmed,
			OccurredAt: now,
		}
		if reason != nil {
			e.Reason = *reason
		}
		s.emitter.Emit(e)
	}

	return s.matchRepo.FindByID(ctx, matchID)
}

func (s *matchService) GetMyMatches(ctx context.Context, userID string, f repository.MatchFilter) ([]models.Match, int64, error) {
	return s.matchRepo.ListByUser(ctx, userID, f)
}

func (s *matchService) GetMatchDetails(ctx context.Context, userID string, matchID uint) (*models.Match, *models.ChatRoom, error) {
	match, err := s.matchRepo.FindByID(ctx, matchID)
	if err != nil {
		return nil, nil, ErrMatchNotFound
	}
	if match.MatchedUserID != userID && match.TripCreatorID != userID {
		return nil, nil, ErrNotMatchParticipant
	}

	room, err := s.chatRepo.FindByTripID(ctx, match.TripID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	return match, room, nil
}

func (s *matchService) GetPendingCount(ctx context.Context, userID string) (int64, error) {
	if n, ok := s.pending.Get(ctx, userID); ok {
		return n, nil
	}
	n, err := s.matchRepo.CountPendingForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.pending.Set(ctx, userID, n)
	return n, nil
}
