package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/domain/repository"
	"auction-marketplace/internal/infrastructure/memory"
	apperrors "auction-marketplace/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*memory.Store, *memory.UnitOfWorkFactory) {
	t.Helper()
	store := memory.NewStore()
	return store, memory.NewUnitOfWorkFactory(store)
}

func registerMember(t *testing.T, factory *memory.UnitOfWorkFactory) string {
	t.Helper()
	id, err := NewRegisterMemberHandler(factory).Handle(context.Background(), &RegisterMember{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+4512345678",
		Street:    "Main St 1",
		Zip:       "8000",
		City:      "Aarhus",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)
	return id
}

func createAuction(t *testing.T, factory *memory.UnitOfWorkFactory, ownerID string, price float64) string {
	t.Helper()
	id, err := NewCreateAuctionHandler(factory).Handle(context.Background(), &CreateAuction{
		OwnerMemberID: ownerID,
		Title:         "Antique clock",
		Description:   "A lovely clock",
		StartTime:     time.Now().Add(time.Hour),
		EndTime:       time.Now().Add(48 * time.Hour),
		StartingPrice: price,
		ImageRef:      "clock.jpg",
	})
	require.NoError(t, err)
	return id
}

func pendingEvents(t *testing.T, factory *memory.UnitOfWorkFactory) []repository.OutboxRecord {
	t.Helper()
	uow := factory.New()
	defer uow.Close(context.Background())
	records, err := uow.Outbox().GetAll(context.Background())
	require.NoError(t, err)
	return records
}

func TestRegisterMemberPersistsOutboxRecordWithAggregate(t *testing.T) {
	store, factory := setup(t)

	id := registerMember(t, factory)

	assert.Equal(t, 1, store.Count(repository.CollectionMembers))

	records := pendingEvents(t, factory)
	require.Len(t, records, 1)
	assert.Equal(t, event.KindMemberRegistered, records[0].Kind)

	decoded, err := event.Decode(records[0].Kind, records[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, id, decoded.(*event.MemberRegistered).MemberID)
}

func TestOutboxWriteFailurePreventsAggregateWrite(t *testing.T) {
	store, factory := setup(t)

	store.FailOn = func(intent repository.WriteIntent) error {
		if intent.Collection == repository.CollectionOutbox {
			return errors.New("outbox unavailable")
		}
		return nil
	}

	_, err := NewRegisterMemberHandler(factory).Handle(context.Background(), &RegisterMember{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+4512345678",
		Street:    "Main St 1",
		Zip:       "8000",
		City:      "Aarhus",
		Email:     "jane@example.com",
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.ApplicationError)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.Status)

	// Neither the member nor the event is observable
	assert.Equal(t, 0, store.Count(repository.CollectionMembers))
	assert.Equal(t, 0, store.Count(repository.CollectionOutbox))
}

func TestPlaceBidEndToEnd(t *testing.T) {
	_, factory := setup(t)
	ctx := context.Background()

	ownerID := registerMember(t, factory)
	auctionID := createAuction(t, factory, ownerID, 100)

	bidder, err := NewRegisterMemberHandler(factory).Handle(ctx, &RegisterMember{
		FirstName: "John",
		LastName:  "Smith",
		Phone:     "+4587654321",
		Street:    "Side St 2",
		Zip:       "8200",
		City:      "Aarhus N",
		Email:     "john@example.com",
	})
	require.NoError(t, err)

	handler := NewPlaceBidHandler(factory)

	bid, err := handler.Handle(ctx, &PlaceBid{AuctionID: auctionID, BidderID: bidder, Price: 150})
	require.NoError(t, err)
	assert.Equal(t, 150.0, bid.Price)

	// The auction, the bidder's mirror and the event all committed together
	uow := factory.New()
	defer uow.Close(ctx)

	auction, err := uow.Auctions().GetByID(ctx, auctionID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, auction.CurrentPrice())
	require.Len(t, auction.Bids(), 1)

	member, err := uow.Members().GetByID(ctx, bidder)
	require.NoError(t, err)
	require.Len(t, member.Bids(), 1)
	assert.Equal(t, auctionID, member.Bids()[0].AuctionID)

	// A lower follow-up bid fails and changes nothing
	_, err = handler.Handle(ctx, &PlaceBid{AuctionID: auctionID, BidderID: bidder, Price: 120})
	require.Error(t, err)
	assert.Equal(t, "must be greater than current price: 150", err.Error())

	auction, err = uow.Auctions().GetByID(ctx, auctionID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, auction.CurrentPrice())
	assert.Len(t, auction.Bids(), 1)
}

func TestPlaceBidUnknownAuction(t *testing.T) {
	_, factory := setup(t)

	bidderID := registerMember(t, factory)

	_, err := NewPlaceBidHandler(factory).Handle(context.Background(), &PlaceBid{
		AuctionID: "missing",
		BidderID:  bidderID,
		Price:     150,
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.ApplicationError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestValidationFailureEnqueuesNothing(t *testing.T) {
	store, factory := setup(t)

	_, err := NewCreateAuctionHandler(factory).Handle(context.Background(), &CreateAuction{
		OwnerMemberID: "owner-1",
		Title:         "",
		Description:   "desc",
		StartTime:     time.Now().Add(time.Hour),
		EndTime:       time.Now().Add(48 * time.Hour),
		StartingPrice: 100,
		ImageRef:      "img",
	})
	require.Error(t, err)

	assert.Equal(t, 0, store.Count(repository.CollectionAuctions))
	assert.Equal(t, 0, store.Count(repository.CollectionOutbox))
}

func TestRateMember(t *testing.T) {
	_, factory := setup(t)
	ctx := context.Background()

	memberID := registerMember(t, factory)
	handler := NewRateMemberHandler(factory)

	require.NoError(t, handler.Handle(ctx, &RateMember{MemberID: memberID, RaterID: "rater-1", Stars: 5}))
	require.NoError(t, handler.Handle(ctx, &RateMember{MemberID: memberID, RaterID: "rater-2", Stars: 4}))

	err := handler.Handle(ctx, &RateMember{MemberID: memberID, RaterID: "rater-3", Stars: 6})
	require.Error(t, err)

	uow := factory.New()
	defer uow.Close(ctx)
	member, err := uow.Members().GetByID(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, 4, member.CurrentRating())
	assert.Len(t, member.Ratings(), 2)

	// One registration event plus two rating events
	records := pendingEvents(t, factory)
	assert.Len(t, records, 3)
}

func TestNoOpMutationLeavesStorageUntouched(t *testing.T) {
	_, factory := setup(t)
	ctx := context.Background()

	memberID := registerMember(t, factory)

	uow := factory.New()
	before, err := uow.Members().GetByID(ctx, memberID)
	require.NoError(t, err)
	uow.Close(ctx)

	err = NewChangeMemberEmailHandler(factory).Handle(ctx, &ChangeMemberEmail{
		MemberID: memberID,
		Email:    "jane@example.com",
	})
	require.Error(t, err)

	uow = factory.New()
	defer uow.Close(ctx)
	after, err := uow.Members().GetByID(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, before.LastModified(), after.LastModified())
}
