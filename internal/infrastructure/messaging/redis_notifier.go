package messaging

import (
	"context"
	"fmt"

	"auction-marketplace/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// Notification is the payload handed to the notification producer; fan-out is
// pub/sub, there is no routing key
type Notification struct {
	Data []byte
}

// NotificationProducer fans a notification out to all current subscribers
type NotificationProducer interface {
	Publish(ctx context.Context, notification Notification) error
	Close() error
}

// RedisNotifier implements NotificationProducer over Redis pub/sub
type RedisNotifier struct {
	client  *redis.Client
	channel string
	log     logger.Logger
}

func NewRedisNotifier(client *redis.Client, channel string, log logger.Logger) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
		log:     log,
	}
}

func (n *RedisNotifier) Publish(ctx context.Context, notification Notification) error {
	if err := n.client.Publish(ctx, n.channel, notification.Data).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.log.Debug("notification published", "channel", n.channel)
	return nil
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
