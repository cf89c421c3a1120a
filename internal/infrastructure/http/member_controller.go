package http

import (
	"encoding/json"
	"net/http"

	"auction-marketplace/internal/application/command"
	"auction-marketplace/internal/application/query"
	"auction-marketplace/pkg/errors"
	"auction-marketplace/pkg/middleware"
	"auction-marketplace/pkg/response"

	"github.com/go-chi/chi/v5"
)

// MemberController exposes member commands and queries over HTTP
type MemberController struct {
	registerMember *command.RegisterMemberHandler
	rateMember     *command.RateMemberHandler
	changeEmail    *command.ChangeMemberEmailHandler
	changePhone    *command.ChangeMemberPhoneHandler
	changeName     *command.ChangeMemberNameHandler
	changeAddress  *command.ChangeMemberAddressHandler
	getMember      *query.GetMemberHandler
	listMembers    *query.ListMembersHandler
}

func NewMemberController(
	registerMember *command.RegisterMemberHandler,
	rateMember *command.RateMemberHandler,
	changeEmail *command.ChangeMemberEmailHandler,
	changePhone *command.ChangeMemberPhoneHandler,
	changeName *command.ChangeMemberNameHandler,
	changeAddress *command.ChangeMemberAddressHandler,
	getMember *query.GetMemberHandler,
	listMembers *query.ListMembersHandler,
) *MemberController {
	return &MemberController{
		registerMember: registerMember,
		rateMember:     rateMember,
		changeEmail:    changeEmail,
		changePhone:    changePhone,
		changeName:     changeName,
		changeAddress:  changeAddress,
		getMember:      getMember,
		listMembers:    listMembers,
	}
}

// RegisterRoutes mounts the member routes on the router
func (c *MemberController) RegisterRoutes(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Post("/", c.RegisterMember)
		r.Get("/", c.ListMembers)
		r.Get("/{memberID}", c.GetMember)
		r.Post("/{memberID}/ratings", c.RateMember)
		r.Put("/{memberID}/email", c.ChangeEmail)
		r.Put("/{memberID}/phone", c.ChangePhone)
		r.Put("/{memberID}/name", c.ChangeName)
		r.Put("/{memberID}/address", c.ChangeAddress)
	})
}

// RegisterMember handles POST /members
func (c *MemberController) RegisterMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Street    string `json:"street"`
		Zip       string `json:"zip"`
		City      string `json:"city"`
		Email     string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	id, err := c.registerMember.Handle(r.Context(), &command.RegisterMember{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Street:    req.Street,
		Zip:       req.Zip,
		City:      req.City,
		Email:     req.Email,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]string{"id": id})
}

// RateMember handles POST /members/{memberID}/ratings
func (c *MemberController) RateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RaterID string `json:"rater_id"`
		Stars   int    `json:"stars"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	err := c.rateMember.Handle(r.Context(), &command.RateMember{
		MemberID: chi.URLParam(r, "memberID"),
		RaterID:  req.RaterID,
		Stars:    req.Stars,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, nil)
}

// ChangeEmail handles PUT /members/{memberID}/email
func (c *MemberController) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	err := c.changeEmail.Handle(r.Context(), &command.ChangeMemberEmail{
		MemberID: chi.URLParam(r, "memberID"),
		Email:    req.Email,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, nil)
}

// ChangePhone handles PUT /members/{memberID}/phone
func (c *MemberController) ChangePhone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	err := c.changePhone.Handle(r.Context(), &command.ChangeMemberPhone{
		MemberID: chi.URLParam(r, "memberID"),
		Phone:    req.Phone,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, nil)
}

// ChangeName handles PUT /members/{memberID}/name
func (c *MemberController) ChangeName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	err := c.changeName.Handle(r.Context(), &command.ChangeMemberName{
		MemberID:  chi.URLParam(r, "memberID"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, nil)
}

// ChangeAddress handles PUT /members/{memberID}/address
func (c *MemberController) ChangeAddress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Street string `json:"street"`
		Zip    string `json:"zip"`
		City   string `json:"city"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	err := c.changeAddress.Handle(r.Context(), &command.ChangeMemberAddress{
		MemberID: chi.URLParam(r, "memberID"),
		Street:   req.Street,
		Zip:      req.Zip,
		City:     req.City,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, nil)
}

// GetMember handles GET /members/{memberID}
func (c *MemberController) GetMember(w http.ResponseWriter, r *http.Request) {
	view, err := c.getMember.Handle(r.Context(), query.GetMember{
		MemberID: chi.URLParam(r, "memberID"),
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, view)
}

// ListMembers handles GET /members
func (c *MemberController) ListMembers(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)

	totalPages, views, err := c.listMembers.Handle(r.Context(), query.ListMembers{
		Page: page,
		Size: size,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccessWithMeta(w, r, views, &response.Meta{
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	})
}
