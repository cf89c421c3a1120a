package outbox

import (
	"context"
	"fmt"
	"time"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/domain/repository"
	"auction-marketplace/internal/infrastructure/bus"
	"auction-marketplace/pkg/logger"
)

const DefaultPollInterval = 5 * time.Second

// Publisher drains the outbox on a fixed interval: fetch pending events,
// dispatch each through the event bus, and commit the deletions as one batch.
// A failure anywhere in a cycle leaves every event in place, so the whole
// cycle is retried next tick; consumers see at-least-once delivery. The
// design assumes a single running instance; there is no per-event lease.
type Publisher struct {
	uowFactory repository.UnitOfWorkFactory
	bus        bus.EventBus
	interval   time.Duration
	log        logger.Logger
}

func NewPublisher(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, interval time.Duration, log logger.Logger) *Publisher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Publisher{
		uowFactory: uowFactory,
		bus:        eventBus,
		interval:   interval,
		log:        log,
	}
}

// Start blocks until ctx is cancelled, running one cycle per tick. Cycle
// errors are logged and never stop the loop.
func (p *Publisher) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("outbox publisher started", "interval", p.interval)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("outbox publisher stopped")
			return
		case <-ticker.C:
			if err := p.RunCycle(ctx); err != nil {
				p.log.Error("outbox cycle failed", "error", err)
			}
		}
	}
}

// RunCycle drains the currently pending events once. Deletions commit only if
// every event in the batch dispatched successfully.
func (p *Publisher) RunCycle(ctx context.Context) error {
	uow := p.uowFactory.New()
	defer uow.Close(ctx)

	records, err := uow.Outbox().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch pending events: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		evt, err := event.Decode(record.Kind, record.Payload)
		if err != nil {
			uow.Discard()
			return fmt.Errorf("failed to decode event %s: %w", record.EventID, err)
		}

		if err := p.bus.Publish(ctx, evt); err != nil {
			uow.Discard()
			return fmt.Errorf("failed to dispatch event %s (%s): %w", record.EventID, record.Kind, err)
		}

		uow.Outbox().Delete(record.EventID)
	}

	if err := uow.Commit(ctx); err != nil {
		uow.Discard()
		return fmt.Errorf("failed to commit outbox deletions: %w", err)
	}

	p.log.Info("outbox drained", "events", len(records))
	return nil
}
