package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-marketplace/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesHandlersForKind(t *testing.T) {
	eventBus := NewInMemoryEventBus()

	var seen []string
	eventBus.Subscribe(event.KindBidPlaced, EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		seen = append(seen, "first")
		return nil
	}))
	eventBus.Subscribe(event.KindBidPlaced, EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		seen = append(seen, "second")
		return nil
	}))
	eventBus.Subscribe(event.KindMemberRated, EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		seen = append(seen, "wrong kind")
		return nil
	}))

	err := eventBus.Publish(context.Background(), &event.BidPlaced{
		ID:        "evt-1",
		AuctionID: "auc-1",
		BidderID:  "mem-1",
		Price:     150,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestPublishWithoutSubscribersSucceeds(t *testing.T) {
	eventBus := NewInMemoryEventBus()

	err := eventBus.Publish(context.Background(), &event.MemberRated{
		ID:        "evt-1",
		MemberID:  "mem-1",
		RaterID:   "mem-2",
		Stars:     4,
		NewRating: 4,
		Timestamp: time.Now(),
	})
	assert.NoError(t, err)
}

func TestPublishRunsAllHandlersAndJoinsErrors(t *testing.T) {
	eventBus := NewInMemoryEventBus()

	boom := errors.New("boom")
	calls := 0
	eventBus.Subscribe(event.KindBidPlaced, EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		calls++
		return boom
	}))
	eventBus.Subscribe(event.KindBidPlaced, EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		calls++
		return nil
	}))

	err := eventBus.Publish(context.Background(), &event.BidPlaced{
		ID:        "evt-1",
		AuctionID: "auc-1",
		BidderID:  "mem-1",
		Price:     150,
		Timestamp: time.Now(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
