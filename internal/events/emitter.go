package events

import (
	"log/slog"

	"github.com/example/tripmatch/internal/observability"
)

// publisher is satisfied by pkg/rabbitmq.Publisher.
type publisher interface {
	Publish(routingKey string, payload any) error
}

// AMQPEmitter publishes transition events to the trip-events exchange.
// Publish failures are logged and swallowed: fanout is best-effort and
// must never fail the core operation that emitted the event.
type AMQPEmitter struct {
	pub    publisher
	logger *slog.Logger
}

func NewAMQPEmitter(pub publisher, logger *slog.Logger) *AMQPEmitter {
	return &AMQPEmitter{pub: pub, logger: logger}
}

func (e *AMQPEmitter) Emit(ev Event) {
	if err := e.pub.Publish(string(ev.Type), ev); err != nil {
		observability.EventsPublished.WithLabelValues(string(ev.Type), "error").Inc()
		e.logger.Error("failed to publish transition event",
			"type", ev.Type, "trip_id", ev.TripID, "match_id", ev.MatchID, "error", err)
		return
	}
	observability.EventsPublished.WithLabelValues(string(ev.Type), "ok").Inc()
}
