package command

import (
	"context"
	"errors"

	"auction-marketplace/internal/domain/aggregate"
	"auction-marketplace/internal/domain/repository"
	apperrors "auction-marketplace/pkg/errors"
)

// CreateAuctionHandler handles auction creation
type CreateAuctionHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewCreateAuctionHandler(uowFactory repository.UnitOfWorkFactory) *CreateAuctionHandler {
	return &CreateAuctionHandler{uowFactory: uowFactory}
}

func (h *CreateAuctionHandler) Handle(ctx context.Context, cmd *CreateAuction) (string, error) {
	uow := h.uowFactory.New()
	defer uow.Close(ctx)

	auction, err := aggregate.NewAuction(cmd.OwnerMemberID, cmd.Title, cmd.Description,
		cmd.StartTime, cmd.EndTime, cmd.StartingPrice, cmd.ImageRef)
	if err != nil {
		return "", err
	}

	uow.Auctions().Create(auction)
	if err := enqueueOutbox(uow, auction.UncommittedEvents()); err != nil {
		uow.Discard()
		return "", apperrors.NewInternalError("failed to record auction events")
	}

	if err := uow.Commit(ctx); err != nil {
		uow.Discard()
		return "", apperrors.NewInternalError("failed to save auction")
	}

	auction.MarkEventsCommitted()
	return auction.ID(), nil
}

// PlaceBidHandler handles bids: the auction accepts the bid, the bidder's
// history mirrors it, and the bid event lands in the outbox, all in one commit
type PlaceBidHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewPlaceBidHandler(uowFactory repository.UnitOfWorkFactory) *PlaceBidHandler {
	return &PlaceBidHandler{uowFactory: uowFactory}
}

func (h *PlaceBidHandler) Handle(ctx context.Context, cmd *PlaceBid) (aggregate.Bid, error) {
	uow := h.uowFactory.New()
	defer uow.Close(ctx)

	auction, err := uow.Auctions().GetByID(ctx, cmd.AuctionID)
	if err != nil {
		return aggregate.Bid{}, readError(err, "auction")
	}

	bidder, err := uow.Members().GetByID(ctx, cmd.BidderID)
	if err != nil {
		return aggregate.Bid{}, readError(err, "member")
	}

	bid, err := auction.PlaceBid(cmd.BidderID, cmd.Price)
	if err != nil {
		return aggregate.Bid{}, err
	}

	if err := bidder.AddBid(bid); err != nil {
		return aggregate.Bid{}, apperrors.NewInternalError("failed to record bid on bidder")
	}

	uow.Auctions().Update(auction)
	uow.Members().Update(bidder)
	if err := enqueueOutbox(uow, auction.UncommittedEvents()); err != nil {
		uow.Discard()
		return aggregate.Bid{}, apperrors.NewInternalError("failed to record bid events")
	}

	if err := uow.Commit(ctx); err != nil {
		uow.Discard()
		return aggregate.Bid{}, apperrors.NewInternalError("failed to save bid")
	}

	auction.MarkEventsCommitted()
	return bid, nil
}

// ChangeAuctionTitleHandler handles title changes
type ChangeAuctionTitleHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewChangeAuctionTitleHandler(uowFactory repository.UnitOfWorkFactory) *ChangeAuctionTitleHandler {
	return &ChangeAuctionTitleHandler{uowFactory: uowFactory}
}

func (h *ChangeAuctionTitleHandler) Handle(ctx context.Context, cmd *ChangeAuctionTitle) error {
	return mutateAuction(ctx, h.uowFactory, cmd.AuctionID, func(a *aggregate.Auction) error {
		return a.ChangeTitle(cmd.Title)
	})
}

// ChangeAuctionDescriptionHandler handles description changes
type ChangeAuctionDescriptionHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewChangeAuctionDescriptionHandler(uowFactory repository.UnitOfWorkFactory) *ChangeAuctionDescriptionHandler {
	return &ChangeAuctionDescriptionHandler{uowFactory: uowFactory}
}

func (h *ChangeAuctionDescriptionHandler) Handle(ctx context.Context, cmd *ChangeAuctionDescription) error {
	return mutateAuction(ctx, h.uowFactory, cmd.AuctionID, func(a *aggregate.Auction) error {
		return a.ChangeDescription(cmd.Description)
	})
}

// ChangeAuctionImageHandler handles image reference changes
type ChangeAuctionImageHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewChangeAuctionImageHandler(uowFactory repository.UnitOfWorkFactory) *ChangeAuctionImageHandler {
	return &ChangeAuctionImageHandler{uowFactory: uowFactory}
}

func (h *ChangeAuctionImageHandler) Handle(ctx context.Context, cmd *ChangeAuctionImage) error {
	return mutateAuction(ctx, h.uowFactory, cmd.AuctionID, func(a *aggregate.Auction) error {
		return a.ChangeImage(cmd.ImageRef)
	})
}

// mutateAuction is the shared read-mutate-commit path for simple auction
// mutations
func mutateAuction(ctx context.Context, factory repository.UnitOfWorkFactory, id string, mutate func(*aggregate.Auction) error) error {
	uow := factory.New()
	defer uow.Close(ctx)

	auction, err := uow.Auctions().GetByID(ctx, id)
	if err != nil {
		return readError(err, "auction")
	}

	if err := mutate(auction); err != nil {
		return err
	}

	uow.Auctions().Update(auction)
	if err := enqueueOutbox(uow, auction.UncommittedEvents()); err != nil {
		uow.Discard()
		return apperrors.NewInternalError("failed to record auction events")
	}

	if err := uow.Commit(ctx); err != nil {
		uow.Discard()
		return apperrors.NewInternalError("failed to save auction")
	}

	auction.MarkEventsCommitted()
	return nil
}

// readError maps a repository read failure to the API error taxonomy
func readError(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError(resource)
	}
	return apperrors.NewInternalError("storage read failed")
}
