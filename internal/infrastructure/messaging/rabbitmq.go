package messaging

import (
	"context"
	"fmt"
	"time"

	"auction-marketplace/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the broker-facing shape handed to the message producer
type Message struct {
	Queue        string
	Exchange     string
	ExchangeKind string
	RouteKey     string
	Data         []byte
}

// MessageProducer publishes routed messages to a broker, at-least-once,
// fire-and-forget from the core's view
type MessageProducer interface {
	Publish(ctx context.Context, message Message) error
	Close() error
}

// RabbitProducer implements MessageProducer over RabbitMQ
type RabbitProducer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     logger.Logger
}

func NewRabbitProducer(url string, log logger.Logger) (*RabbitProducer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &RabbitProducer{
		conn:    conn,
		channel: channel,
		log:     log,
	}, nil
}

// Publish declares the target topology idempotently and publishes the message
func (p *RabbitProducer) Publish(ctx context.Context, message Message) error {
	if message.Exchange != "" {
		if err := p.channel.ExchangeDeclare(message.Exchange, message.ExchangeKind, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", message.Exchange, err)
		}
	}

	if message.Queue != "" {
		if _, err := p.channel.QueueDeclare(message.Queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", message.Queue, err)
		}
		if message.Exchange != "" {
			if err := p.channel.QueueBind(message.Queue, message.RouteKey, message.Exchange, false, nil); err != nil {
				return fmt.Errorf("failed to bind queue %s: %w", message.Queue, err)
			}
		}
	}

	err := p.channel.PublishWithContext(ctx, message.Exchange, message.RouteKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         message.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s/%s: %w", message.Exchange, message.RouteKey, err)
	}

	p.log.Debug("message published", "exchange", message.Exchange, "route_key", message.RouteKey)
	return nil
}

func (p *RabbitProducer) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
