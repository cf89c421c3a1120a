package command

import "time"

// ============================================
// Auction commands
// ============================================

// CreateAuction lists a new auction
type CreateAuction struct {
	OwnerMemberID string    `json:"owner_member_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	StartingPrice float64   `json:"starting_price"`
	ImageRef      string    `json:"image_ref"`
}

// PlaceBid places a bid on a running auction
type PlaceBid struct {
	AuctionID string  `json:"auction_id"`
	BidderID  string  `json:"bidder_id"`
	Price     float64 `json:"price"`
}

// ChangeAuctionTitle replaces an auction's title
type ChangeAuctionTitle struct {
	AuctionID string `json:"auction_id"`
	Title     string `json:"title"`
}

// ChangeAuctionDescription replaces an auction's description
type ChangeAuctionDescription struct {
	AuctionID   string `json:"auction_id"`
	Description string `json:"description"`
}

// ChangeAuctionImage replaces an auction's image reference
type ChangeAuctionImage struct {
	AuctionID string `json:"auction_id"`
	ImageRef  string `json:"image_ref"`
}

// ============================================
// Member commands
// ============================================

// RegisterMember registers a new marketplace member
type RegisterMember struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Email     string `json:"email"`
}

// RateMember rates a member with a star value
type RateMember struct {
	MemberID string `json:"member_id"`
	RaterID  string `json:"rater_id"`
	Stars    int    `json:"stars"`
}

// ChangeMemberEmail replaces a member's email
type ChangeMemberEmail struct {
	MemberID string `json:"member_id"`
	Email    string `json:"email"`
}

// ChangeMemberPhone replaces a member's phone
type ChangeMemberPhone struct {
	MemberID string `json:"member_id"`
	Phone    string `json:"phone"`
}

// ChangeMemberName replaces a member's name
type ChangeMemberName struct {
	MemberID  string `json:"member_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ChangeMemberAddress replaces a member's address
type ChangeMemberAddress struct {
	MemberID string `json:"member_id"`
	Street   string `json:"street"`
	Zip      string `json:"zip"`
	City     string `json:"city"`
}
