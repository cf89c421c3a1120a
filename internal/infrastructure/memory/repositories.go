package memory

import (
	"context"
	"fmt"
	"sort"

	"auction-marketplace/internal/domain/aggregate"
	"auction-marketplace/internal/domain/repository"
)

// AuctionRepository is the in-memory deferred-write auction gateway
type AuctionRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *AuctionRepository) GetByID(ctx context.Context, id string) (*aggregate.Auction, error) {
	doc, ok := r.store.Get(repository.CollectionAuctions, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return aggregate.RehydrateAuction(doc.(aggregate.AuctionSnapshot)), nil
}

func (r *AuctionRepository) GetAll(ctx context.Context) ([]*aggregate.Auction, error) {
	snapshots := r.sortedSnapshots()
	auctions := make([]*aggregate.Auction, 0, len(snapshots))
	for _, s := range snapshots {
		auctions = append(auctions, aggregate.RehydrateAuction(s))
	}
	return auctions, nil
}

func (r *AuctionRepository) GetPage(ctx context.Context, page, size int) (int, []*aggregate.Auction, error) {
	if page < 1 || size < 1 {
		return 0, nil, fmt.Errorf("page and size must be positive")
	}

	snapshots := r.sortedSnapshots()
	totalPages := (len(snapshots) + size - 1) / size

	start := (page - 1) * size
	if start >= len(snapshots) {
		return totalPages, nil, nil
	}
	end := start + size
	if end > len(snapshots) {
		end = len(snapshots)
	}

	auctions := make([]*aggregate.Auction, 0, end-start)
	for _, s := range snapshots[start:end] {
		auctions = append(auctions, aggregate.RehydrateAuction(s))
	}
	return totalPages, auctions, nil
}

func (r *AuctionRepository) sortedSnapshots() []aggregate.AuctionSnapshot {
	docs := r.store.List(repository.CollectionAuctions)
	snapshots := make([]aggregate.AuctionSnapshot, 0, len(docs))
	for _, doc := range docs {
		snapshots = append(snapshots, doc.(aggregate.AuctionSnapshot))
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].EndTime.Before(snapshots[j].EndTime)
	})
	return snapshots
}

func (r *AuctionRepository) Create(auction *aggregate.Auction) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionAuctions,
		Op:         repository.OpInsert,
		ID:         auction.ID(),
		Document:   auction.Snapshot(),
	})
}

func (r *AuctionRepository) Update(auction *aggregate.Auction) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionAuctions,
		Op:         repository.OpReplace,
		ID:         auction.ID(),
		Document:   auction.Snapshot(),
	})
}

func (r *AuctionRepository) Delete(id string) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionAuctions,
		Op:         repository.OpDelete,
		ID:         id,
	})
}

// MemberRepository is the in-memory deferred-write member gateway
type MemberRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*aggregate.Member, error) {
	doc, ok := r.store.Get(repository.CollectionMembers, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return aggregate.RehydrateMember(doc.(aggregate.MemberSnapshot)), nil
}

func (r *MemberRepository) GetAll(ctx context.Context) ([]*aggregate.Member, error) {
	snapshots := r.sortedSnapshots()
	members := make([]*aggregate.Member, 0, len(snapshots))
	for _, s := range snapshots {
		members = append(members, aggregate.RehydrateMember(s))
	}
	return members, nil
}

func (r *MemberRepository) GetPage(ctx context.Context, page, size int) (int, []*aggregate.Member, error) {
	if page < 1 || size < 1 {
		return 0, nil, fmt.Errorf("page and size must be positive")
	}

	snapshots := r.sortedSnapshots()
	totalPages := (len(snapshots) + size - 1) / size

	start := (page - 1) * size
	if start >= len(snapshots) {
		return totalPages, nil, nil
	}
	end := start + size
	if end > len(snapshots) {
		end = len(snapshots)
	}

	members := make([]*aggregate.Member, 0, end-start)
	for _, s := range snapshots[start:end] {
		members = append(members, aggregate.RehydrateMember(s))
	}
	return totalPages, members, nil
}

func (r *MemberRepository) sortedSnapshots() []aggregate.MemberSnapshot {
	docs := r.store.List(repository.CollectionMembers)
	snapshots := make([]aggregate.MemberSnapshot, 0, len(docs))
	for _, doc := range docs {
		snapshots = append(snapshots, doc.(aggregate.MemberSnapshot))
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].LastName < snapshots[j].LastName
	})
	return snapshots
}

func (r *MemberRepository) Create(member *aggregate.Member) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionMembers,
		Op:         repository.OpInsert,
		ID:         member.ID(),
		Document:   member.Snapshot(),
	})
}

func (r *MemberRepository) Update(member *aggregate.Member) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionMembers,
		Op:         repository.OpReplace,
		ID:         member.ID(),
		Document:   member.Snapshot(),
	})
}

func (r *MemberRepository) Delete(id string) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionMembers,
		Op:         repository.OpDelete,
		ID:         id,
	})
}

// OutboxRepository is the in-memory outbox gateway
type OutboxRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *OutboxRepository) GetAll(ctx context.Context) ([]repository.OutboxRecord, error) {
	docs := r.store.List(repository.CollectionOutbox)
	records := make([]repository.OutboxRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.(repository.OutboxRecord))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (r *OutboxRepository) Create(record repository.OutboxRecord) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionOutbox,
		Op:         repository.OpInsert,
		ID:         record.EventID,
		Document:   record,
	})
}

func (r *OutboxRepository) Delete(eventID string) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionOutbox,
		Op:         repository.OpDelete,
		ID:         eventID,
	})
}
