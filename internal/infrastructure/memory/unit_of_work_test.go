package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-marketplace/internal/domain/aggregate"
	"auction-marketplace/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuction(t *testing.T) *aggregate.Auction {
	t.Helper()
	auction, err := aggregate.NewAuction("owner-1", "Clock", "A clock",
		time.Now().Add(time.Hour), time.Now().Add(48*time.Hour), 100, "clock.jpg")
	require.NoError(t, err)
	return auction
}

func TestCommitAppliesIntentsInOrder(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	auction := newTestAuction(t)
	uow.Auctions().Create(auction)
	uow.Outbox().Create(repository.OutboxRecord{EventID: "e1", Kind: "BidPlaced", Payload: []byte(`{}`), CreatedAt: time.Now()})

	require.Equal(t, 2, uow.Pending())
	require.NoError(t, uow.Commit(ctx))
	assert.Equal(t, 0, uow.Pending())

	loaded, err := uow.Auctions().GetByID(ctx, auction.ID())
	require.NoError(t, err)
	assert.Equal(t, auction.ID(), loaded.ID())

	records, err := uow.Outbox().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "e1", records[0].EventID)
}

func TestCommitIsAtomic(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	auction := newTestAuction(t)
	uow.Auctions().Create(auction)

	// Force the second intent to fail
	boom := errors.New("storage failure")
	store.FailOn = func(intent repository.WriteIntent) error {
		if intent.Collection == repository.CollectionOutbox {
			return boom
		}
		return nil
	}
	uow.Outbox().Create(repository.OutboxRecord{EventID: "e1", Kind: "BidPlaced", Payload: []byte(`{}`), CreatedAt: time.Now()})

	err := uow.Commit(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// Neither intent's effect is visible
	_, getErr := uow.Auctions().GetByID(ctx, auction.ID())
	assert.ErrorIs(t, getErr, repository.ErrNotFound)
	assert.Equal(t, 0, store.Count(repository.CollectionOutbox))

	// The queue survives the failed commit until explicitly discarded
	assert.Equal(t, 2, uow.Pending())
	uow.Discard()
	assert.Equal(t, 0, uow.Pending())

	// After discarding, a later commit replays nothing
	store.FailOn = nil
	require.NoError(t, uow.Commit(ctx))
	assert.Equal(t, 0, store.Count(repository.CollectionAuctions))
}

func TestDiscardDropsQueuedIntents(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	uow.Auctions().Create(newTestAuction(t))
	uow.Discard()

	require.NoError(t, uow.Commit(ctx))
	assert.Equal(t, 0, store.Count(repository.CollectionAuctions))
}

func TestReplaceRequiresExistingDocument(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	auction := newTestAuction(t)
	uow.Auctions().Update(auction)

	err := uow.Commit(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	auction := newTestAuction(t)

	uow := NewUnitOfWork(store)
	uow.Auctions().Create(auction)
	require.NoError(t, uow.Commit(ctx))

	again := NewUnitOfWork(store)
	again.Auctions().Create(auction)
	require.Error(t, again.Commit(ctx))
}

func TestReadsSeeOnlyCommittedState(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	auction := newTestAuction(t)
	uow.Auctions().Create(auction)

	// No read-your-own-writes before commit
	_, err := uow.Auctions().GetByID(ctx, auction.ID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetPage(t *testing.T) {
	store := NewStore()
	factory := NewUnitOfWorkFactory(store)
	ctx := context.Background()

	uow := factory.New()
	for i := 0; i < 5; i++ {
		uow.Auctions().Create(newTestAuction(t))
	}
	require.NoError(t, uow.Commit(ctx))

	totalPages, page, err := uow.Auctions().GetPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, totalPages)
	assert.Len(t, page, 2)

	totalPages, page, err = uow.Auctions().GetPage(ctx, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, totalPages)
	assert.Len(t, page, 1)

	_, _, err = uow.Auctions().GetPage(ctx, 0, 2)
	require.Error(t, err)
}
