package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"auction-marketplace/internal/domain/event"
)

// EventBus resolves an event's kind to its registered handlers and invokes
// them in-process
type EventBus interface {
	Publish(ctx context.Context, event event.DomainEvent) error
	Subscribe(kind string, handler EventHandler)
}

// EventHandler handles domain events
type EventHandler interface {
	Handle(ctx context.Context, event event.DomainEvent) error
}

// EventHandlerFunc allows functions to implement EventHandler
type EventHandlerFunc func(ctx context.Context, event event.DomainEvent) error

func (f EventHandlerFunc) Handle(ctx context.Context, event event.DomainEvent) error {
	return f(ctx, event)
}

// InMemoryEventBus implements EventBus with a static kind to handler-list
// registry populated at startup
type InMemoryEventBus struct {
	handlers map[string][]EventHandler
	mutex    sync.RWMutex
}

func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// Publish invokes every handler registered for the event's kind,
// synchronously. All handlers run; their errors are joined.
func (b *InMemoryEventBus) Publish(ctx context.Context, evt event.DomainEvent) error {
	b.mutex.RLock()
	handlers := b.handlers[evt.Kind()]
	b.mutex.RUnlock()

	var errs []error

	for _, handler := range handlers {
		if err := handler.Handle(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("handler error for %s: %w", evt.Kind(), err))
		}
	}

	return errors.Join(errs...)
}

func (b *InMemoryEventBus) Subscribe(kind string, handler EventHandler) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.handlers[kind] = append(b.handlers[kind], handler)
}
