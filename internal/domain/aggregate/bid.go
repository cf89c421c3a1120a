package aggregate

import "time"

// Bid is immutable once appended to an auction's or member's history
type Bid struct {
	AuctionID string
	MemberID  string
	Price     float64
	Timestamp time.Time
}
