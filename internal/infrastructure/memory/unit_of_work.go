package memory

import (
	"context"

	"auction-marketplace/internal/domain/repository"
)

// UnitOfWork implements the deferred-write unit of work against an in-memory
// Store, with the same queue and commit semantics as the MongoDB
// implementation
type UnitOfWork struct {
	store   *Store
	intents []repository.WriteIntent

	auctions *AuctionRepository
	members  *MemberRepository
	outbox   *OutboxRepository
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	uow := &UnitOfWork{store: store}
	uow.auctions = &AuctionRepository{store: store, uow: uow}
	uow.members = &MemberRepository{store: store, uow: uow}
	uow.outbox = &OutboxRepository{store: store, uow: uow}
	return uow
}

func (u *UnitOfWork) Auctions() repository.AuctionRepository {
	return u.auctions
}

func (u *UnitOfWork) Members() repository.MemberRepository {
	return u.members
}

func (u *UnitOfWork) Outbox() repository.OutboxRepository {
	return u.outbox
}

func (u *UnitOfWork) Enqueue(intent repository.WriteIntent) {
	u.intents = append(u.intents, intent)
}

func (u *UnitOfWork) Pending() int {
	return len(u.intents)
}

// Commit applies the queued intents in enqueue order, all-or-nothing. On
// failure the queue is kept until Discard, matching the MongoDB
// implementation.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(u.intents) == 0 {
		return nil
	}

	if err := u.store.Apply(u.intents); err != nil {
		return err
	}

	u.intents = nil
	return nil
}

func (u *UnitOfWork) Discard() {
	u.intents = nil
}

func (u *UnitOfWork) Close(ctx context.Context) {}

// UnitOfWorkFactory creates unit of work instances over one shared store
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) New() repository.UnitOfWork {
	return NewUnitOfWork(f.store)
}
