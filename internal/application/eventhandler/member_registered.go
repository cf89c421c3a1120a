package eventhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/infrastructure/messaging"
	"auction-marketplace/pkg/logger"
)

// MemberRegisteredHandler fans a welcome notification out to subscribers
type MemberRegisteredHandler struct {
	producer messaging.NotificationProducer
	log      logger.Logger
}

func NewMemberRegisteredHandler(producer messaging.NotificationProducer, log logger.Logger) *MemberRegisteredHandler {
	return &MemberRegisteredHandler{producer: producer, log: log}
}

func (h *MemberRegisteredHandler) Handle(ctx context.Context, e event.DomainEvent) error {
	registered, ok := e.(*event.MemberRegistered)
	if !ok {
		return fmt.Errorf("unexpected event type for kind %s", e.Kind())
	}

	data, err := json.Marshal(map[string]interface{}{
		"type":       "member_registered",
		"member_id":  registered.MemberID,
		"first_name": registered.FirstName,
		"email":      registered.Email,
	})
	if err != nil {
		return fmt.Errorf("failed to build welcome notification: %w", err)
	}

	if err := h.producer.Publish(ctx, messaging.Notification{Data: data}); err != nil {
		return err
	}

	h.log.Info("member registered notification sent", "member_id", registered.MemberID)
	return nil
}
