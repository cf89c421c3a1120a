package eventhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/infrastructure/messaging"
	"auction-marketplace/pkg/logger"
)

const (
	marketplaceExchange = "marketplace"
	notificationsQueue  = "auction.notifications"
)

// BidPlacedHandler forwards accepted bids to the broker so the auction owner
// can be emailed
type BidPlacedHandler struct {
	producer messaging.MessageProducer
	log      logger.Logger
}

func NewBidPlacedHandler(producer messaging.MessageProducer, log logger.Logger) *BidPlacedHandler {
	return &BidPlacedHandler{producer: producer, log: log}
}

func (h *BidPlacedHandler) Handle(ctx context.Context, e event.DomainEvent) error {
	bidPlaced, ok := e.(*event.BidPlaced)
	if !ok {
		return fmt.Errorf("unexpected event type for kind %s", e.Kind())
	}

	data, err := json.Marshal(map[string]interface{}{
		"recipient_member_id": bidPlaced.OwnerMemberID,
		"auction_id":          bidPlaced.AuctionID,
		"bidder_id":           bidPlaced.BidderID,
		"price":               bidPlaced.Price,
		"placed_at":           bidPlaced.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to build bid message: %w", err)
	}

	if err := h.producer.Publish(ctx, messaging.Message{
		Queue:        notificationsQueue,
		Exchange:     marketplaceExchange,
		ExchangeKind: "direct",
		RouteKey:     "bid.placed",
		Data:         data,
	}); err != nil {
		return err
	}

	h.log.Info("bid placed event forwarded",
		"auction_id", bidPlaced.AuctionID,
		"price", bidPlaced.Price)
	return nil
}
