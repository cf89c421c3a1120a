package query

import (
	"context"
	"errors"
	"time"

	"auction-marketplace/internal/domain/aggregate"
	"auction-marketplace/internal/domain/repository"
	apperrors "auction-marketplace/pkg/errors"
)

// GetMember fetches one member by id
type GetMember struct {
	MemberID string
}

// ListMembers fetches one page of members ordered by last name
type ListMembers struct {
	Page int
	Size int
}

// MemberView is the read-side shape of a member
type MemberView struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Street        string    `json:"street"`
	Zip           string    `json:"zip"`
	City          string    `json:"city"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	CurrentRating int       `json:"current_rating"`
	Bids          []BidView `json:"bids"`
	Created       time.Time `json:"created"`
	LastModified  time.Time `json:"last_modified"`
}

// GetMemberHandler serves single-member reads
type GetMemberHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewGetMemberHandler(uowFactory repository.UnitOfWorkFactory) *GetMemberHandler {
	return &GetMemberHandler{uowFactory: uowFactory}
}

func (h *GetMemberHandler) Handle(ctx context.Context, q GetMember) (*MemberView, error) {
	uow := h.uowFactory.New()
	defer uow.Close(ctx)

	member, err := uow.Members().GetByID(ctx, q.MemberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("member")
		}
		return nil, apperrors.NewInternalError("storage read failed")
	}

	view := memberView(member)
	return &view, nil
}

// ListMembersHandler serves paged member reads
type ListMembersHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewListMembersHandler(uowFactory repository.UnitOfWorkFactory) *ListMembersHandler {
	return &ListMembersHandler{uowFactory: uowFactory}
}

func (h *ListMembersHandler) Handle(ctx context.Context, q ListMembers) (int, []MemberView, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}

	uow := h.uowFactory.New()
	defer uow.Close(ctx)

	totalPages, members, err := uow.Members().GetPage(ctx, q.Page, q.Size)
	if err != nil {
		return 0, nil, apperrors.NewInternalError("storage read failed")
	}

	views := make([]MemberView, 0, len(members))
	for _, member := range members {
		views = append(views, memberView(member))
	}
	return totalPages, views, nil
}

func memberView(member *aggregate.Member) MemberView {
	bids := member.Bids()
	bidViews := make([]BidView, 0, len(bids))
	for _, b := range bids {
		bidViews = append(bidViews, BidView{
			MemberID:  b.MemberID,
			Price:     b.Price,
			Timestamp: b.Timestamp,
		})
	}
	address := member.Address()
	return MemberView{
		ID:            member.ID(),
		FirstName:     member.FirstName(),
		LastName:      member.LastName(),
		Street:        address.Street,
		Zip:           address.Zip,
		City:          address.City,
		Email:         member.Email().String(),
		Phone:         member.Phone(),
		CurrentRating: member.CurrentRating(),
		Bids:          bidViews,
		Created:       member.Created(),
		LastModified:  member.LastModified(),
	}
}
