package service

import (
	"context"
	"sort"
	"time"

	"github.com/example/tripmatch/internal/events"
	"github.com/example/tripmatch/internal/geo"
	"github.com/example/tripmatch/internal/models"
	"github.com/example/tripmatch/internal/repository"
	"github.com/example/tripmatch/internal/trust"
	"gorm.io/gorm"
)

// TripWithDistance decorates a search hit with the haversine distance
// from the query point.
type TripWithDistance struct {
	models.Trip
	DistanceKm float64 `json:"distance_km"`
}

type TripService interface {
	CreateTrip(ctx context.Context, trip *models.Trip, estimatedFare *float64) error
	GetTrip(ctx context.Context, id uint) (*models.Trip, error)
	NearbyTrips(ctx context.Context, userID string, lat, lng, radiusKm float64, page, limit int) ([]TripWithDistance, error)
	StartTrip(ctx context.Context, userID string, tripID uint) (*models.Trip, error)
	CompleteTrip(ctx context.Context, userID string, tripID uint) (*models.Trip, error)
	CancelTrip(ctx context.Context, userID string, tripID uint, reason *string) error
}

type tripService struct {
	tripRepo  repository.TripRepository
	matchRepo repository.MatchRepository
	userRepo  repository.UserRepository
	emitter   events.Emitter
}

func NewTripService(tripRepo repository.TripRepository, matchRepo repository.MatchRepository, userRepo repository.UserRepository, emitter events.Emitter) TripService {
	return &tripService{
		tripRepo:  tripRepo,
		matchRepo: matchRepo,
		userRepo:  userRepo,
		emitter:   emitter,
	}
}

func (s *tripService) CreateTrip(ctx context.Context, trip *models.Trip, estimatedFare *float64) error {
	if trip.TotalSeats < 1 || trip.TotalSeats > 8 {
		return ErrInvalidSeats
	}

	trip.Status = models.TripOpen
	trip.AvailableSeats = trip.TotalSeats

	// Cab pools split the estimated fare across all seats; companionship
	// trips have no fare at all.
	if trip.Type == models.TripCabPool && estimatedFare != nil && trip.FarePerSeat == nil {
		perSeat := *estimatedFare / float64(trip.TotalSeats)
		trip.FarePerSeat = &perSeat
	}

	return s.tripRepo.Create(ctx, trip)
}

func (s *tripService) GetTrip(ctx context.Context, id uint) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// NearbyTrips does a bounding-box prefilter in SQL, then exact haversine
// distances and sorting in memory.
func (s *tripService) NearbyTrips(ctx context.Context, userID string, lat, lng, radiusKm float64, page, limit int) ([]TripWithDistance, error) {
	bounds := geo.BoundingBox(lat, lng, radiusKm)
	trips, err := s.tripRepo.SearchNearby(ctx, bounds, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	out := make([]TripWithDistance, 0, len(trips))
	for _, t := range trips {
		d := geo.HaversineKm(lat, lng, t.OriginLat, t.OriginLng)
		if d > radiusKm {
			continue
		}
		out = append(out, TripWithDistance{Trip: t, DistanceKm: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

// StartTrip moves an open trip to in_progress. The creator or any
// accepted participant can flip it.
func (s *tripService) StartTrip(ctx context.Context, userID string, tripID uint) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, ErrTripNotFound
	}

	if trip.CreatedBy != userID {
		accepted, err := s.matchRepo.ListAcceptedByTrip(ctx, tripID)
		if err != nil {
			return nil, err
		}
		participant := false
		for _, m := range accepted {
			if m.MatchedUserID == userID {
				participant = true
				break
			}
		}
		if !participant {
			return nil, ErrNotTripOwner
		}
	}

	ok, err := s.tripRepo.UpdateStatusIf(ctx, s.tripRepo.GetDB(), tripID, models.TripOpen, models.TripInProgress)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTripNotOpen
	}
	return s.tripRepo.FindByID(ctx, tripID)
}

// CompleteTrip closes out an in-progress trip and credits everyone's
// completed-trips counter in the same transaction.
func (s *tripService) CompleteTrip(ctx context.Context, userID string, tripID uint) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, ErrTripNotFound
	}
	if trip.CreatedBy != userID {
		return nil, ErrNotTripOwner
	}

	accepted, err := s.matchRepo.ListAcceptedByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	participants := make([]string, 0, len(accepted)+1)
	participants = append(participants, userID)
	for _, m := range accepted {
		participants = append(participants, m.MatchedUserID)
	}

	err = s.tripRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.tripRepo.UpdateStatusIf(ctx, tx, tripID, models.TripInProgress, models.TripCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTripNotInProgress
		}
		return s.userRepo.IncrementTripsCompleted(ctx, tx, participants)
	})
	if err != nil {
		return nil, err
	}

	if s.emitter != nil {
		s.emitter.Emit(events.Event{
			Type:       events.TripCompleted,
			TripID:     tripID,
			ActorID:    userID,
			TargetIDs:  participants,
			OccurredAt: time.Now(),
		})
	}

	return s.tripRepo.FindByID(ctx, tripID)
}

// CancelTrip tears down the whole trip: seats restored, every active match
// cancelled, and the creator takes the same time-bucketed trust penalty a
// participant would.
func (s *tripService) CancelTrip(ctx context.Context, userID string, tripID uint, reason *string) error {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return ErrTripNotFound
	}
	if trip.CreatedBy != userID {
		return ErrNotTripOwner
	}
	if trip.Status.Terminal() {
		return ErrTripClosed
	}

	// Collect affected participants before the teardown for the fanout.
	accepted, err := s.matchRepo.ListAcceptedByTrip(ctx, tripID)
	if err != nil {
		return err
	}
	affected := make([]string, 0, len(accepted))
	for _, m := range accepted {
		affected = append(affected, m.MatchedUserID)
	}

	now := time.Now()
	penalty := trust.CancellationPenalty(trust.HoursUntil(trip.DepartureAt, now))

	cancelReason := "Trip cancelled by creator"
	if reason != nil && *reason != "" {
		cancelReason = *reason
	}

	err = s.tripRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.tripRepo.CancelAndRestoreSeats(ctx, tx, tripID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTripClosed
		}
		if _, err := s.matchRepo.CancelActiveForTrip(ctx, tx, tripID, cancelReason); err != nil {
			return err
		}
		return s.userRepo.ApplyCancellation(ctx, tx, userID, penalty)
	})
	if err != nil {
		return err
	}

	if s.emitter != nil {
		s.emitter.Emit(events.Event{
			Type:       events.TripCancelled,
			TripID:     tripID,
			ActorID:    userID,
			TargetIDs:  affected,
			Reason:     cancelReason,
			OccurredAt: now,
		})
	}

	return nil
}
