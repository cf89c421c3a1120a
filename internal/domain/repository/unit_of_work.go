package repository

import "context"

// UnitOfWork owns one storage session for the lifetime of one logical
// transaction (one request or one outbox publisher cycle). It holds the
// ordered queue of pending write intents; the queue is populated by the
// repositories it hands out and is cleared either by a successful Commit or by
// an explicit Discard. After a failed Commit the queue is kept so the failure
// is attributable; the caller must Discard before reusing the unit of work,
// otherwise stale intents would replay on a later, unrelated commit.
type UnitOfWork interface {
	Auctions() AuctionRepository
	Members() MemberRepository
	Outbox() OutboxRepository

	// Enqueue appends a write intent to the ordered queue
	Enqueue(intent WriteIntent)

	// Pending reports the number of queued intents
	Pending() int

	// Commit applies every queued intent in enqueue order inside a single
	// storage transaction. Either all intents apply or none do.
	Commit(ctx context.Context) error

	// Discard drops all queued intents without applying them
	Discard()

	// Close releases the storage session; an open transaction is aborted
	Close(ctx context.Context)
}

// UnitOfWorkFactory creates new unit of work instances
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
