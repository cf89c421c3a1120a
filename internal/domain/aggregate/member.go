package aggregate

import (
	"fmt"
	"strings"
	"time"

	"auction-marketplace/internal/domain/event"
	"auction-marketplace/pkg/errors"

	"github.com/google/uuid"
)

// Rating stars are inclusive on both ends
const (
	MinRatingStars = 1
	MaxRatingStars = 5
)

// Rating is one member's star rating of another
type Rating struct {
	FromMemberID string
	Stars        int
}

type Member struct {
	id            string
	firstName     string
	lastName      string
	address       Address
	email         Email
	phone         string
	bids          []Bid
	ratings       []Rating
	currentRating int
	created       time.Time
	lastModified  time.Time

	uncommittedEvents []event.DomainEvent
}

// NewMember builds the address and email value objects itself and fails fast
// on any malformed input
func NewMember(firstName, lastName, phone, street, zip, city, email string) (*Member, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, errors.NewValidationError("first name cannot be blank")
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, errors.NewValidationError("last name cannot be blank")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, errors.NewValidationError("phone cannot be blank")
	}

	address, err := NewAddress(street, zip, city)
	if err != nil {
		return nil, err
	}

	emailValue, err := NewEmail(email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	member := &Member{
		id:           uuid.New().String(),
		firstName:    firstName,
		lastName:     lastName,
		address:      address,
		email:        emailValue,
		phone:        phone,
		created:      now,
		lastModified: now,
	}

	member.raiseEvent(&event.MemberRegistered{
		ID:        uuid.New().String(),
		MemberID:  member.id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Timestamp: now,
	})

	return member, nil
}

// Rate appends a star rating and recomputes the current rating as the
// truncated mean of all stored stars
func (m *Member) Rate(raterID string, stars int) error {
	if raterID == "" {
		return fmt.Errorf("rater member id is required")
	}
	if stars < MinRatingStars || stars > MaxRatingStars {
		return errors.NewValidationErrorf("rating must be between %d and %d", MinRatingStars, MaxRatingStars)
	}

	now := time.Now()
	m.ratings = append(m.ratings, Rating{FromMemberID: raterID, Stars: stars})
	m.currentRating = truncatedMean(m.ratings)
	m.lastModified = now

	m.raiseEvent(&event.MemberRated{
		ID:        uuid.New().String(),
		MemberID:  m.id,
		RaterID:   raterID,
		Stars:     stars,
		NewRating: m.currentRating,
		Timestamp: now,
	})

	return nil
}

// AddBid mirrors a bid accepted by an auction into this member's history
func (m *Member) AddBid(bid Bid) error {
	if bid.AuctionID == "" {
		return fmt.Errorf("bid auction id is required")
	}
	if bid.MemberID != m.id {
		return fmt.Errorf("bid belongs to member %s, not %s", bid.MemberID, m.id)
	}

	m.bids = append(m.bids, bid)
	m.lastModified = time.Now()
	return nil
}

func (m *Member) ChangeEmail(email string) error {
	emailValue, err := NewEmail(email)
	if err != nil {
		return err
	}
	if emailValue == m.email {
		return errors.NewValidationError("new email must differ from the current email")
	}

	m.email = emailValue
	m.lastModified = time.Now()
	return nil
}

func (m *Member) ChangePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errors.NewValidationError("phone cannot be blank")
	}
	if phone == m.phone {
		return errors.NewValidationError("new phone must differ from the current phone")
	}

	m.phone = phone
	m.lastModified = time.Now()
	return nil
}

func (m *Member) ChangeName(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return errors.NewValidationError("first name cannot be blank")
	}
	if strings.TrimSpace(lastName) == "" {
		return errors.NewValidationError("last name cannot be blank")
	}
	if firstName == m.firstName && lastName == m.lastName {
		return errors.NewValidationError("new name must differ from the current name")
	}

	m.firstName = firstName
	m.lastName = lastName
	m.lastModified = time.Now()
	return nil
}

func (m *Member) ChangeAddress(street, zip, city string) error {
	address, err := NewAddress(street, zip, city)
	if err != nil {
		return err
	}
	if address == m.address {
		return errors.NewValidationError("new address must differ from the current address")
	}

	m.address = address
	m.lastModified = time.Now()
	return nil
}

func (m *Member) ID() string        { return m.id }
func (m *Member) FirstName() string { return m.firstName }
func (m *Member) LastName() string  { return m.lastName }
func (m *Member) Address() Address  { return m.address }
func (m *Member) Email() Email      { return m.email }
func (m *Member) Phone() string     { return m.phone }
func (m *Member) CurrentRating() int {
	return m.currentRating
}
func (m *Member) Created() time.Time { return m.created }
func (m *Member) LastModified() time.Time {
	return m.lastModified
}

func (m *Member) Bids() []Bid {
	bids := make([]Bid, len(m.bids))
	copy(bids, m.bids)
	return bids
}

func (m *Member) Ratings() []Rating {
	ratings := make([]Rating, len(m.ratings))
	copy(ratings, m.ratings)
	return ratings
}

func (m *Member) UncommittedEvents() []event.DomainEvent {
	return m.uncommittedEvents
}

func (m *Member) MarkEventsCommitted() {
	m.uncommittedEvents = nil
}

func (m *Member) raiseEvent(e event.DomainEvent) {
	m.uncommittedEvents = append(m.uncommittedEvents, e)
}

func truncatedMean(ratings []Rating) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}
	return sum / len(ratings)
}

// MemberSnapshot is the persistence-facing view of a member
type MemberSnapshot struct {
	ID            string
	FirstName     string
	LastName      string
	Address       Address
	Email         string
	Phone         string
	Bids          []Bid
	Ratings       []Rating
	CurrentRating int
	Created       time.Time
	LastModified  time.Time
}

// RehydrateMember rebuilds a member from persisted state without validation
// or event emission
func RehydrateMember(s MemberSnapshot) *Member {
	return &Member{
		id:            s.ID,
		firstName:     s.FirstName,
		lastName:      s.LastName,
		address:       s.Address,
		email:         Email(s.Email),
		phone:         s.Phone,
		bids:          s.Bids,
		ratings:       s.Ratings,
		currentRating: s.CurrentRating,
		created:       s.Created,
		lastModified:  s.LastModified,
	}
}

func (m *Member) Snapshot() MemberSnapshot {
	return MemberSnapshot{
		ID:            m.id,
		FirstName:     m.firstName,
		LastName:      m.lastName,
		Address:       m.address,
		Email:         string(m.email),
		Phone:         m.phone,
		Bids:          m.Bids(),
		Ratings:       m.Ratings(),
		CurrentRating: m.currentRating,
		Created:       m.created,
		LastModified:  m.lastModified,
	}
}
