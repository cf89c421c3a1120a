package eventhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/infrastructure/messaging"
	"auction-marketplace/pkg/logger"
)

// MemberRatedHandler forwards new ratings to the broker so the rated member
// can be notified
type MemberRatedHandler struct {
	producer messaging.MessageProducer
	log      logger.Logger
}

func NewMemberRatedHandler(producer messaging.MessageProducer, log logger.Logger) *MemberRatedHandler {
	return &MemberRatedHandler{producer: producer, log: log}
}

func (h *MemberRatedHandler) Handle(ctx context.Context, e event.DomainEvent) error {
	rated, ok := e.(*event.MemberRated)
	if !ok {
		return fmt.Errorf("unexpected event type for kind %s", e.Kind())
	}

	data, err := json.Marshal(map[string]interface{}{
		"recipient_member_id": rated.MemberID,
		"rater_id":            rated.RaterID,
		"stars":               rated.Stars,
		"new_rating":          rated.NewRating,
	})
	if err != nil {
		return fmt.Errorf("failed to build rating message: %w", err)
	}

	if err := h.producer.Publish(ctx, messaging.Message{
		Queue:        notificationsQueue,
		Exchange:     marketplaceExchange,
		ExchangeKind: "direct",
		RouteKey:     "member.rated",
		Data:         data,
	}); err != nil {
		return err
	}

	h.log.Info("member rated event forwarded", "member_id", rated.MemberID)
	return nil
}
