package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event kind discriminators. The set is closed: adding a kind means adding a
// variant here and a case in Decode.
const (
	KindAuctionCreated   = "AuctionCreated"
	KindBidPlaced        = "BidPlaced"
	KindMemberRegistered = "MemberRegistered"
	KindMemberRated      = "MemberRated"
)

// DomainEvent is an immutable record of something that happened to an aggregate
type DomainEvent interface {
	EventID() string
	Kind() string
	OccurredAt() time.Time
}

// AuctionCreated event
type AuctionCreated struct {
	ID            string    `json:"event_id"`
	AuctionID     string    `json:"auction_id"`
	OwnerMemberID string    `json:"owner_member_id"`
	Title         string    `json:"title"`
	StartingPrice float64   `json:"starting_price"`
	EndTime       time.Time `json:"end_time"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *AuctionCreated) EventID() string       { return e.ID }
func (e *AuctionCreated) Kind() string          { return KindAuctionCreated }
func (e *AuctionCreated) OccurredAt() time.Time { return e.Timestamp }

// BidPlaced event
type BidPlaced struct {
	ID            string    `json:"event_id"`
	AuctionID     string    `json:"auction_id"`
	OwnerMemberID string    `json:"owner_member_id"`
	BidderID      string    `json:"bidder_id"`
	Price         float64   `json:"price"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *BidPlaced) EventID() string       { return e.ID }
func (e *BidPlaced) Kind() string          { return KindBidPlaced }
func (e *BidPlaced) OccurredAt() time.Time { return e.Timestamp }

// MemberRegistered event
type MemberRegistered struct {
	ID        string    `json:"event_id"`
	MemberID  string    `json:"member_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *MemberRegistered) EventID() string       { return e.ID }
func (e *MemberRegistered) Kind() string          { return KindMemberRegistered }
func (e *MemberRegistered) OccurredAt() time.Time { return e.Timestamp }

// MemberRated event
type MemberRated struct {
	ID        string    `json:"event_id"`
	MemberID  string    `json:"member_id"`
	RaterID   string    `json:"rater_id"`
	Stars     int       `json:"stars"`
	NewRating int       `json:"new_rating"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *MemberRated) EventID() string       { return e.ID }
func (e *MemberRated) Kind() string          { return KindMemberRated }
func (e *MemberRated) OccurredAt() time.Time { return e.Timestamp }

// Encode serializes an event payload for outbox storage
func Encode(e DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", e.Kind(), err)
	}
	return payload, nil
}

// Decode rebuilds a stored event from its kind discriminator and payload.
// Unknown kinds are an error, never silently dropped.
func Decode(kind string, payload []byte) (DomainEvent, error) {
	var e DomainEvent

	switch kind {
	case KindAuctionCreated:
		e = &AuctionCreated{}
	case KindBidPlaced:
		e = &BidPlaced{}
	case KindMemberRegistered:
		e = &MemberRegistered{}
	case KindMemberRated:
		e = &MemberRated{}
	default:
		return nil, fmt.Errorf("unknown event kind: %s", kind)
	}

	if err := json.Unmarshal(payload, e); err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", kind, err)
	}
	return e, nil
}
