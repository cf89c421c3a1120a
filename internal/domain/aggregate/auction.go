package aggregate

import (
	"fmt"
	"strings"
	"time"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/pkg/errors"

	"github.com/google/uuid"
)

// minimum time between auction creation and its end
const minAuctionDuration = 24 * time.Hour

type Auction struct {
	id            string
	ownerMemberID string
	title         string
	description   string
	startTime     time.Time
	endTime       time.Time
	startingPrice float64
	currentPrice  float64
	imageRef      string
	bids          []Bid
	created       time.Time
	lastModified  time.Time

	uncommittedEvents []event.DomainEvent
}

// NewAuction validates its inputs and either returns a fully built auction or nothing
func NewAuction(ownerMemberID, title, description string, start, end time.Time, startingPrice float64, imageRef string) (*Auction, error) {
	if ownerMemberID == "" {
		return nil, fmt.Errorf("owner member id is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.NewValidationError("title cannot be blank")
	}
	if strings.TrimSpace(description) == "" {
		return nil, errors.NewValidationError("description cannot be blank")
	}
	if strings.TrimSpace(imageRef) == "" {
		return nil, errors.NewValidationError("image reference cannot be blank")
	}
	if startingPrice <= 0 {
		return nil, errors.NewValidationError("starting price must be positive")
	}

	now := time.Now()
	if start.Before(now) {
		return nil, errors.NewValidationError("start time must not be in the past")
	}
	if end.Before(now.Add(minAuctionDuration)) {
		return nil, errors.NewValidationError("end time must be at least one day from now")
	}

	auction := &Auction{
		id:            uuid.New().String(),
		ownerMemberID: ownerMemberID,
		title:         title,
		description:   description,
		startTime:     start,
		endTime:       end,
		startingPrice: startingPrice,
		currentPrice:  startingPrice,
		imageRef:      imageRef,
		created:       now,
		lastModified:  now,
	}

	auction.raiseEvent(&event.AuctionCreated{
		ID:            uuid.New().String(),
		AuctionID:     auction.id,
		OwnerMemberID: ownerMemberID,
		Title:         title,
		StartingPrice: startingPrice,
		EndTime:       end,
		Timestamp:     now,
	})

	return auction, nil
}

// PlaceBid accepts a strictly increasing positive bid and returns it so the
// caller can mirror it into the bidder's own history
func (a *Auction) PlaceBid(bidderID string, price float64) (Bid, error) {
	if bidderID == "" {
		return Bid{}, fmt.Errorf("bidder id is required")
	}
	if price <= 0 {
		return Bid{}, errors.NewValidationError("bid price must be positive")
	}
	if price <= a.currentPrice {
		return Bid{}, errors.NewValidationErrorf("must be greater than current price: %v", a.currentPrice)
	}

	now := time.Now()
	bid := Bid{
		AuctionID: a.id,
		MemberID:  bidderID,
		Price:     price,
		Timestamp: now,
	}

	a.bids = append(a.bids, bid)
	a.currentPrice = price
	a.lastModified = now

	a.raiseEvent(&event.BidPlaced{
		ID:            uuid.New().String(),
		AuctionID:     a.id,
		OwnerMemberID: a.ownerMemberID,
		BidderID:      bidderID,
		Price:         price,
		Timestamp:     now,
	})

	return bid, nil
}

func (a *Auction) ChangeTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewValidationError("title cannot be blank")
	}
	if title == a.title {
		return errors.NewValidationError("new title must differ from the current title")
	}

	a.title = title
	a.lastModified = time.Now()
	return nil
}

func (a *Auction) ChangeDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return errors.NewValidationError("description cannot be blank")
	}
	if description == a.description {
		return errors.NewValidationError("new description must differ from the current description")
	}

	a.description = description
	a.lastModified = time.Now()
	return nil
}

func (a *Auction) ChangeImage(imageRef string) error {
	if strings.TrimSpace(imageRef) == "" {
		return errors.NewValidationError("image reference cannot be blank")
	}
	if imageRef == a.imageRef {
		return errors.NewValidationError("new image reference must differ from the current one")
	}

	a.imageRef = imageRef
	a.lastModified = time.Now()
	return nil
}

func (a *Auction) ID() string            { return a.id }
func (a *Auction) OwnerMemberID() string { return a.ownerMemberID }
func (a *Auction) Title() string         { return a.title }
func (a *Auction) Description() string   { return a.description }
func (a *Auction) StartTime() time.Time  { return a.startTime }
func (a *Auction) EndTime() time.Time    { return a.endTime }
func (a *Auction) StartingPrice() float64 {
	return a.startingPrice
}
func (a *Auction) CurrentPrice() float64 { return a.currentPrice }
func (a *Auction) ImageRef() string      { return a.imageRef }
func (a *Auction) Created() time.Time    { return a.created }
func (a *Auction) LastModified() time.Time {
	return a.lastModified
}

// Bids returns a copy of the append-only bid history
func (a *Auction) Bids() []Bid {
	bids := make([]Bid, len(a.bids))
	copy(bids, a.bids)
	return bids
}

func (a *Auction) UncommittedEvents() []event.DomainEvent {
	return a.uncommittedEvents
}

func (a *Auction) MarkEventsCommitted() {
	a.uncommittedEvents = nil
}

func (a *Auction) raiseEvent(e event.DomainEvent) {
	a.uncommittedEvents = append(a.uncommittedEvents, e)
}

// AuctionSnapshot is the persistence-facing view of an auction
type AuctionSnapshot struct {
	ID            string
	OwnerMemberID string
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	StartingPrice float64
	CurrentPrice  float64
	ImageRef      string
	Bids          []Bid
	Created       time.Time
	LastModified  time.Time
}

// RehydrateAuction rebuilds an auction from persisted state without validation
// or event emission
func RehydrateAuction(s AuctionSnapshot) *Auction {
	return &Auction{
		id:            s.ID,
		ownerMemberID: s.OwnerMemberID,
		title:         s.Title,
		description:   s.Description,
		startTime:     s.StartTime,
		endTime:       s.EndTime,
		startingPrice: s.StartingPrice,
		currentPrice:  s.CurrentPrice,
		imageRef:      s.ImageRef,
		bids:          s.Bids,
		created:       s.Created,
		lastModified:  s.LastModified,
	}
}

func (a *Auction) Snapshot() AuctionSnapshot {
	return AuctionSnapshot{
		ID:            a.id,
		OwnerMemberID: a.ownerMemberID,
		Title:         a.title,
		Description:   a.description,
		StartTime:     a.startTime,
		EndTime:       a.endTime,
		StartingPrice: a.startingPrice,
		CurrentPrice:  a.currentPrice,
		ImageRef:      a.imageRef,
		Bids:          a.Bids(),
		Created:       a.created,
		LastModified:  a.lastModified,
	}
}
