package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/masterly-ai/masterly/internal/domain/subscription"
	"github.com/masterly-ai/masterly/internal/shared/constants"
	"github.com/masterly-ai/masterly/internal/shared/goroutine"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// SubscriptionEventHandler is a callback function for handling subscription events
type SubscriptionEventHandler func(ctx context.Context, event subscription.ChangedEvent)

// RedisSubscriptionEventBus publishes local subscription changes over Redis
// Pub/Sub so other instances can drop cached entitlement state.
type RedisSubscriptionEventBus struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

// NewRedisSubscriptionEventBus creates a new Redis-based subscription event bus
func NewRedisSubscriptionEventBus(client *redis.Client, logger logger.Interface) *RedisSubscriptionEventBus {
	return &RedisSubscriptionEventBus{
		client:  client,
		channel: constants.ChannelSubscriptionChange,
		logger:  logger,
	}
}

// PublishChange publishes one subscription change.
func (b *RedisSubscriptionEventBus) PublishChange(ctx context.Context, event *subscription.ChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish subscription change event",
			"subscription_id", event.SubscriptionID,
			"status", event.Status,
			"source", event.Source,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("subscription change event published",
		"subscription_id", event.SubscriptionID,
		"status", event.Status,
		"source", event.Source,
	)
	return nil
}

// Subscribe blocks, calling handler for each change until ctx is done.
func (b *RedisSubscriptionEventBus) Subscribe(ctx context.Context, handler SubscriptionEventHandler) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to subscription change events",
		"channel", b.channel,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("subscription event subscriber stopped",
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("subscription event channel closed")
				return nil
			}

			var event subscription.ChangedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal subscription event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}

			// Handlers run detached from the subscriber's lifecycle.
			goroutine.SafeGo(b.logger, "subscription-change-handler", func() {
				handler(context.Background(), event)
			})
		}
	}
}
