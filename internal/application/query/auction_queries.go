package query

import (
	"context"
	"errors"
	"time"

	"auction-marketplace/internal/domain/aggregate"
	"auction-marketplace/internal/domain/repository"
	apperrors "auction-marketplace/pkg/errors"
)

// GetAuction fetches one auction by id
type GetAuction struct {
	AuctionID string
}

// ListAuctions fetches one page of auctions ordered by end time
type ListAuctions struct {
	Page int
	Size int
}

// BidView is the read-side shape of a bid
type BidView struct {
	MemberID  string    `json:"member_id"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// AuctionView is the read-side shape of an auction
type AuctionView struct {
	ID            string    `json:"id"`
	OwnerMemberID string    `json:"owner_member_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	StartingPrice float64   `json:"starting_price"`
	CurrentPrice  float64   `json:"current_price"`
	ImageRef      string    `json:"image_ref"`
	Bids          []BidView `json:"bids"`
	Created       time.Time `json:"created"`
	LastModified  time.Time `json:"last_modified"`
}

// GetAuctionHandler serves single-auction reads
type GetAuctionHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewGetAuctionHandler(uowFactory repository.UnitOfWorkFactory) *GetAuctionHandler {
	return &GetAuctionHandler{uowFactory: uowFactory}
}

func (h *GetAuctionHandler) Handle(ctx context.Context, q GetAuction) (*AuctionView, error) {
	uow := h.uowFactory.New()
	defer uow.Close(ctx)

	auction, err := uow.Auctions().GetByID(ctx, q.AuctionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("auction")
		}
		return nil, apperrors.NewInternalError("storage read failed")
	}

	view := auctionView(auction)
	return &view, nil
}

// ListAuctionsHandler serves paged auction reads
type ListAuctionsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewListAuctionsHandler(uowFactory repository.UnitOfWorkFactory) *ListAuctionsHandler {
	return &ListAuctionsHandler{uowFactory: uowFactory}
}

func (h *ListAuctionsHandler) Handle(ctx context.Context, q ListAuctions) (int, []AuctionView, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}

	uow := h.uowFactory.New()
	defer uow.Close(ctx)

	totalPages, auctions, err := uow.Auctions().GetPage(ctx, q.Page, q.Size)
	if err != nil {
		return 0, nil, apperrors.NewInternalError("storage read failed")
	}

	views := make([]AuctionView, 0, len(auctions))
	for _, auction := range auctions {
		views = append(views, auctionView(auction))
	}
	return totalPages, views, nil
}

func auctionView(auction *aggregate.Auction) AuctionView {
	bids := auction.Bids()
	bidViews := make([]BidView, 0, len(bids))
	for _, b := range bids {
		bidViews = append(bidViews, BidView{
			MemberID:  b.MemberID,
			Price:     b.Price,
			Timestamp: b.Timestamp,
		})
	}
	return AuctionView{
		ID:            auction.ID(),
		OwnerMemberID: auction.OwnerMemberID(),
		Title:         auction.Title(),
		Description:   auction.Description(),
		StartTime:     auction.StartTime(),
		EndTime:       auction.EndTime(),
		StartingPrice: auction.StartingPrice(),
		CurrentPrice:  auction.CurrentPrice(),
		ImageRef:      auction.ImageRef(),
		Bids:          bidViews,
		Created:       auction.Created(),
		LastModified:  auction.LastModified(),
	}
}
