package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/domain/repository"
	"auction-marketplace/internal/infrastructure/bus"
	"auction-marketplace/internal/infrastructure/memory"
	"auction-marketplace/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOutbox(t *testing.T, factory *memory.UnitOfWorkFactory, n int) []string {
	t.Helper()

	uow := factory.New()
	defer uow.Close(context.Background())

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		evt := &event.MemberRegistered{
			ID:        uuid.New().String(),
			MemberID:  uuid.New().String(),
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Timestamp: time.Now().Add(time.Duration(i) * time.Millisecond),
		}
		payload, err := event.Encode(evt)
		require.NoError(t, err)

		uow.Outbox().Create(repository.OutboxRecord{
			EventID:   evt.ID,
			Kind:      evt.Kind(),
			Payload:   payload,
			CreatedAt: evt.OccurredAt(),
		})
		ids = append(ids, evt.ID)
	}
	require.NoError(t, uow.Commit(context.Background()))
	return ids
}

func TestRunCycleDrainsPendingEvents(t *testing.T) {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	seedOutbox(t, factory, 3)

	var delivered []string
	eventBus := bus.NewInMemoryEventBus()
	eventBus.Subscribe(event.KindMemberRegistered, bus.EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		delivered = append(delivered, evt.EventID())
		return nil
	}))

	publisher := NewPublisher(factory, eventBus, time.Minute, logger.NewNop())
	require.NoError(t, publisher.RunCycle(context.Background()))

	assert.Len(t, delivered, 3)
	assert.Equal(t, 0, store.Count(repository.CollectionOutbox))

	// A second cycle finds nothing and delivers nothing
	require.NoError(t, publisher.RunCycle(context.Background()))
	assert.Len(t, delivered, 3)
}

func TestRunCycleKeepsBatchWhenHandlerFails(t *testing.T) {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	seedOutbox(t, factory, 3)

	calls := 0
	eventBus := bus.NewInMemoryEventBus()
	eventBus.Subscribe(event.KindMemberRegistered, bus.EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		calls++
		if calls == 2 {
			return errors.New("broker unavailable")
		}
		return nil
	}))

	publisher := NewPublisher(factory, eventBus, time.Minute, logger.NewNop())
	err := publisher.RunCycle(context.Background())
	require.Error(t, err)

	// No deletions commit, so the whole batch is retried next tick
	assert.Equal(t, 3, store.Count(repository.CollectionOutbox))

	// Once the handler recovers, the retry delivers all three again
	require.NoError(t, publisher.RunCycle(context.Background()))
	assert.Equal(t, 5, calls)
	assert.Equal(t, 0, store.Count(repository.CollectionOutbox))
}

func TestRunCycleKeepsBatchWhenDeleteCommitFails(t *testing.T) {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	seedOutbox(t, factory, 2)

	store.FailOn = func(intent repository.WriteIntent) error {
		if intent.Collection == repository.CollectionOutbox && intent.Op == repository.OpDelete {
			return errors.New("storage unavailable")
		}
		return nil
	}

	eventBus := bus.NewInMemoryEventBus()
	eventBus.Subscribe(event.KindMemberRegistered, bus.EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		return nil
	}))

	publisher := NewPublisher(factory, eventBus, time.Minute, logger.NewNop())
	err := publisher.RunCycle(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, store.Count(repository.CollectionOutbox))
}

func TestRunCycleRejectsUnknownKind(t *testing.T) {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)

	uow := factory.New()
	uow.Outbox().Create(repository.OutboxRecord{
		EventID:   uuid.New().String(),
		Kind:      "auction.exploded",
		Payload:   []byte(`{}`),
		CreatedAt: time.Now(),
	})
	require.NoError(t, uow.Commit(context.Background()))
	uow.Close(context.Background())

	publisher := NewPublisher(factory, bus.NewInMemoryEventBus(), time.Minute, logger.NewNop())
	err := publisher.RunCycle(context.Background())
	require.Error(t, err)

	// The record stays for inspection rather than being dropped
	assert.Equal(t, 1, store.Count(repository.CollectionOutbox))
}

func TestStartStopsOnContextCancel(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	publisher := NewPublisher(factory, bus.NewInMemoryEventBus(), 10*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		publisher.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after cancel")
	}
}
