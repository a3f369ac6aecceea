package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SwipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripmatch", Name: "swipes_total", Help: "Swipes recorded, by direction"},
		[]string{"direction"},
	)
	MatchOffersTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "tripmatch", Name: "match_offers_total", Help: "Pending match offers created"},
	)
	MatchAcceptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "tripmatch", Name: "match_accepts_total", Help: "Matches accepted with seats confirmed"},
	)
	MatchCancelsTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "tripmatch", Name: "match_cancels_total", Help: "Accepted matches cancelled"},
	)
	SeatConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "tripmatch", Name: "seat_conflicts_total", Help: "Accept attempts rejected for insufficient capacity"},
	)
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripmatch", Name: "events_published_total", Help: "Transition events published, by type and outcome"},
		[]string{"type", "outcome"},
	)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripmatch", Name: "http_requests_total", Help: "HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
)
