package command

import (
	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/domain/repository"
)

// enqueueOutbox turns each produced event into an outbox write intent on the
// same unit of work as the aggregate writes, so both commit together or not
// at all
func enqueueOutbox(uow repository.UnitOfWork, events []event.DomainEvent) error {
	for _, e := range events {
		payload, err := event.Encode(e)
		if err != nil {
			return err
		}
		uow.Outbox().Create(repository.OutboxRecord{
			EventID:   e.EventID(),
			Kind:      e.Kind(),
			Payload:   payload,
			CreatedAt: e.OccurredAt(),
		})
	}
	return nil
}
