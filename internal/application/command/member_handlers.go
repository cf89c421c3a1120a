package command

import (
	"context"

	"auction-marketplace/internal/domain/aggregate"
	"auction-marketplace/internal/domain/repository"
	apperrors "auction-marketplace/pkg/errors"
)

// RegisterMemberHandler handles member registration
type RegisterMemberHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewRegisterMemberHandler(uowFactory repository.UnitOfWorkFactory) *RegisterMemberHandler {
	return &RegisterMemberHandler{uowFactory: uowFactory}
}

func (h *RegisterMemberHandler) Handle(ctx context.Context, cmd *RegisterMember) (string, error) {
	uow := h.uowFactory.New()
	defer uow.Close(ctx)

	member, err := aggregate.NewMember(cmd.FirstName, cmd.LastName, cmd.Phone,
		cmd.Street, cmd.Zip, cmd.City, cmd.Email)
	if err != nil {
		return "", err
	}

	uow.Members().Create(member)
	if err := enqueueOutbox(uow, member.UncommittedEvents()); err != nil {
		uow.Discard()
		return "", apperrors.NewInternalError("failed to record member events")
	}

	if err := uow.Commit(ctx); err != nil {
		uow.Discard()
		return "", apperrors.NewInternalError("failed to save member")
	}

	member.MarkEventsCommitted()
	return member.ID(), nil
}

// RateMemberHandler handles star ratings
type RateMemberHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewRateMemberHandler(uowFactory repository.UnitOfWorkFactory) *RateMemberHandler {
	return &RateMemberHandler{uowFactory: uowFactory}
}

func (h *RateMemberHandler) Handle(ctx context.Context, cmd *RateMember) error {
	return mutateMember(ctx, h.uowFactory, cmd.MemberID, func(m *aggregate.Member) error {
		return m.Rate(cmd.RaterID, cmd.Stars)
	})
}

// ChangeMemberEmailHandler handles email changes
type ChangeMemberEmailHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewChangeMemberEmailHandler(uowFactory repository.UnitOfWorkFactory) *ChangeMemberEmailHandler {
	return &ChangeMemberEmailHandler{uowFactory: uowFactory}
}

func (h *ChangeMemberEmailHandler) Handle(ctx context.Context, cmd *ChangeMemberEmail) error {
	return mutateMember(ctx, h.uowFactory, cmd.MemberID, func(m *aggregate.Member) error {
		return m.ChangeEmail(cmd.Email)
	})
}

// ChangeMemberPhoneHandler handles phone changes
type ChangeMemberPhoneHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewChangeMemberPhoneHandler(uowFactory repository.UnitOfWorkFactory) *ChangeMemberPhoneHandler {
	return &ChangeMemberPhoneHandler{uowFactory: uowFactory}
}

func (h *ChangeMemberPhoneHandler) Handle(ctx context.Context, cmd *ChangeMemberPhone) error {
	return mutateMember(ctx, h.uowFactory, cmd.MemberID, func(m *aggregate.Member) error {
		return m.ChangePhone(cmd.Phone)
	})
}

// ChangeMemberNameHandler handles name changes
type ChangeMemberNameHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewChangeMemberNameHandler(uowFactory repository.UnitOfWorkFactory) *ChangeMemberNameHandler {
	return &ChangeMemberNameHandler{uowFactory: uowFactory}
}

func (h *ChangeMemberNameHandler) Handle(ctx context.Context, cmd *ChangeMemberName) error {
	return mutateMember(ctx, h.uowFactory, cmd.MemberID, func(m *aggregate.Member) error {
		return m.ChangeName(cmd.FirstName, cmd.LastName)
	})
}

// ChangeMemberAddressHandler handles address changes
type ChangeMemberAddressHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

func NewChangeMemberAddressHandler(uowFactory repository.UnitOfWorkFactory) *ChangeMemberAddressHandler {
	return &ChangeMemberAddressHandler{uowFactory: uowFactory}
}

func (h *ChangeMemberAddressHandler) Handle(ctx context.Context, cmd *ChangeMemberAddress) error {
	return mutateMember(ctx, h.uowFactory, cmd.MemberID, func(m *aggregate.Member) error {
		return m.ChangeAddress(cmd.Street, cmd.Zip, cmd.City)
	})
}

// mutateMember is the shared read-mutate-commit path for member mutations
func mutateMember(ctx context.Context, factory repository.UnitOfWorkFactory, id string, mutate func(*aggregate.Member) error) error {
	uow := factory.New()
	defer uow.Close(ctx)

	member, err := uow.Members().GetByID(ctx, id)
	if err != nil {
		return readError(err, "member")
	}

	if err := mutate(member); err != nil {
		return err
	}

	uow.Members().Update(member)
	if err := enqueueOutbox(uow, member.UncommittedEvents()); err != nil {
		uow.Discard()
		return apperrors.NewInternalError("failed to record member events")
	}

	if err := uow.Commit(ctx); err != nil {
		uow.Discard()
		return apperrors.NewInternalError("failed to save member")
	}

	member.MarkEventsCommitted()
	return nil
}
