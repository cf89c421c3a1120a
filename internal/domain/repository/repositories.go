package repository

import (
	"context"
	"errors"
	"time"

	"auction-marketplace/internal/domain/aggregate"
)

// ErrNotFound is returned by reads when no entity matches
var ErrNotFound = errors.New("entity not found")

// AuctionRepository is the storage gateway for auctions. Reads execute
// immediately and see only committed state; writes enqueue intents on the
// owning unit of work and perform no I/O.
type AuctionRepository interface {
	GetByID(ctx context.Context, id string) (*aggregate.Auction, error)
	GetAll(ctx context.Context) ([]*aggregate.Auction, error)
	GetPage(ctx context.Context, page, size int) (int, []*aggregate.Auction, error)

	Create(auction *aggregate.Auction)
	Update(auction *aggregate.Auction)
	Delete(id string)
}

// MemberRepository is the storage gateway for members, same discipline as
// AuctionRepository.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*aggregate.Member, error)
	GetAll(ctx context.Context) ([]*aggregate.Member, error)
	GetPage(ctx context.Context, page, size int) (int, []*aggregate.Member, error)

	Create(member *aggregate.Member)
	Update(member *aggregate.Member)
	Delete(id string)
}

// OutboxRecord is the persisted shape of a domain event awaiting publication
type OutboxRecord struct {
	EventID   string
	Kind      string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository persists domain events in the same transaction as the
// aggregate writes that produced them and deletes them once published.
type OutboxRepository interface {
	GetAll(ctx context.Context) ([]OutboxRecord, error)

	Create(record OutboxRecord)
	Delete(eventID string)
}
