package eventhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/infrastructure/messaging"
	"auction-marketplace/pkg/logger"
)

// AuctionCreatedHandler fans new listings out to subscribers
type AuctionCreatedHandler struct {
	producer messaging.NotificationProducer
	log      logger.Logger
}

func NewAuctionCreatedHandler(producer messaging.NotificationProducer, log logger.Logger) *AuctionCreatedHandler {
	return &AuctionCreatedHandler{producer: producer, log: log}
}

func (h *AuctionCreatedHandler) Handle(ctx context.Context, e event.DomainEvent) error {
	created, ok := e.(*event.AuctionCreated)
	if !ok {
		return fmt.Errorf("unexpected event type for kind %s", e.Kind())
	}

	data, err := json.Marshal(map[string]interface{}{
		"type":           "auction_created",
		"auction_id":     created.AuctionID,
		"title":          created.Title,
		"starting_price": created.StartingPrice,
		"end_time":       created.EndTime,
	})
	if err != nil {
		return fmt.Errorf("failed to build listing notification: %w", err)
	}

	if err := h.producer.Publish(ctx, messaging.Notification{Data: data}); err != nil {
		return err
	}

	h.log.Info("auction created notification sent", "auction_id", created.AuctionID)
	return nil
}
