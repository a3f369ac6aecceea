// Package fanout consumes transition events and materializes their side
// effects: notification rows and chat-room provisioning. It runs behind
// the broker so its failures are isolated from the core transactions.
package fanout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/example/tripmatch/internal/events"
	"github.com/example/tripmatch/internal/models"
	"github.com/example/tripmatch/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

type Consumer struct {
	db       *gorm.DB
	chatRepo repository.ChatRoomRepository
	logger   *slog.Logger
}

func NewConsumer(db *gorm.DB, chatRepo repository.ChatRoomRepository, logger *slog.Logger) *Consumer {
	return &Consumer{db: db, chatRepo: chatRepo, logger: logger}
}

// Start drains deliveries until the channel closes.
func (c *Consumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			c.handleMessage(msg)
		}
		c.logger.Info("fanout channel closed, stopping consumer")
	}()
}

func (c *Consumer) handleMessage(msg amqp.Delivery) {
	var ev events.Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		c.logger.Error("failed to unmarshal event", "error", err)
		msg.Nack(false, false)
		return
	}

	if err := c.Handle(context.Background(), ev); err != nil {
		c.logger.Error("failed to fan out event", "type", ev.Type, "trip_id", ev.TripID, "error", err)
		msg.Nack(false, true) // requeue
		return
	}

	msg.Ack(false)
}

// Handle maps one transition event to its notifications. Rejections are
// absent on purpose: there is no match.rejected event.
func (c *Consumer) Handle(ctx context.Context, ev events.Event) error {
	switch ev.Type {
	case events.SwipeReceived:
		title := "New Interest"
		if ev.Direction == string(models.SwipeSuper) {
			title = "New Super Like!"
		}
		return c.notify(ctx, models.Notification{
			UserID:  ev.TargetID,
			Type:    models.NotifySwipeReceived,
			Title:   title,
			Message: "Someone is interested in your trip!",
			TripID:  &ev.TripID,
		})

	case events.MatchOffer:
		// The match service provisions the room synchronously for its
		// response; this is the idempotent safety net.
		if _, err := c.chatRepo.GetOrCreate(ctx, ev.TripID); err != nil {
			return err
		}
		return c.notify(ctx, models.Notification{
			UserID:  ev.TargetID,
			Type:    models.NotifyMatchOffer,
			Title:   "It's a Match!",
			Message: "The trip creator wants you on board. Confirm your seats!",
			TripID:  &ev.TripID,
			MatchID: &ev.MatchID,
		})

	case events.MatchAccepted:
		return c.notify(ctx, models.Notification{
			UserID:  ev.TargetID,
			Type:    models.NotifyMatchConfirmed,
			Title:   "Match Accepted!",
			Message: fmt.Sprintf("Someone confirmed their participation with %d seat(s)!", ev.Seats),
			TripID:  &ev.TripID,
			MatchID: &ev.MatchID,
		})

	case events.MatchCancelled:
		return c.notify(ctx, models.Notification{
			UserID:  ev.TargetID,
			Type:    models.NotifyMatchCancelled,
			Title:   "Participant Cancelled",
			Message: "A participant cancelled their spot on your trip",
			TripID:  &ev.TripID,
			MatchID: &ev.MatchID,
		})

	case events.TripCancelled:
		for _, uid := range ev.TargetIDs {
			if err := c.notify(ctx, models.Notification{
				UserID:  uid,
				Type:    models.NotifyTripCancelled,
				Title:   "Trip Cancelled",
				Message: "A trip you joined has been cancelled",
				TripID:  &ev.TripID,
			}); err != nil {
				return err
			}
		}
		return nil

	case events.TripCompleted:
		for _, uid := range ev.TargetIDs {
			if err := c.notify(ctx, models.Notification{
				UserID:  uid,
				Type:    models.NotifyReviewReminder,
				Title:   "Leave a Review",
				Message: "Your trip is complete! Leave reviews for your travel companions.",
				TripID:  &ev.TripID,
			}); err != nil {
				return err
			}
		}
		return nil

	default:
		c.logger.Warn("unknown event type", "type", ev.Type)
		return nil
	}
}

func (c *Consumer) notify(ctx context.Context, n models.Notification) error {
	return c.db.WithContext(ctx).Create(&n).Error
}
