package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"auction-marketplace/internal/application/command"
	"auction-marketplace/internal/application/query"
	"auction-marketplace/pkg/errors"
	"auction-marketplace/pkg/middleware"
	"auction-marketplace/pkg/response"

	"github.com/go-chi/chi/v5"
)

// AuctionController exposes auction commands and queries over HTTP
type AuctionController struct {
	createAuction     *command.CreateAuctionHandler
	placeBid          *command.PlaceBidHandler
	changeTitle       *command.ChangeAuctionTitleHandler
	changeDescription *command.ChangeAuctionDescriptionHandler
	changeImage       *command.ChangeAuctionImageHandler
	getAuction        *query.GetAuctionHandler
	listAuctions      *query.ListAuctionsHandler
}

func NewAuctionController(
	createAuction *command.CreateAuctionHandler,
	placeBid *command.PlaceBidHandler,
	changeTitle *command.ChangeAuctionTitleHandler,
	changeDescription *command.ChangeAuctionDescriptionHandler,
	changeImage *command.ChangeAuctionImageHandler,
	getAuction *query.GetAuctionHandler,
	listAuctions *query.ListAuctionsHandler,
) *AuctionController {
	return &AuctionController{
		createAuction:     createAuction,
		placeBid:          placeBid,
		changeTitle:       changeTitle,
		changeDescription: changeDescription,
		changeImage:       changeImage,
		getAuction:        getAuction,
		listAuctions:      listAuctions,
	}
}

// RegisterRoutes mounts the auction routes on the router
func (c *AuctionController) RegisterRoutes(r chi.Router) {
	r.Route("/auctions", func(r chi.Router) {
		r.Post("/", c.CreateAuction)
		r.Get("/", c.ListAuctions)
		r.Get("/{auctionID}", c.GetAuction)
		r.Post("/{auctionID}/bids", c.PlaceBid)
		r.Put("/{auctionID}/title", c.ChangeTitle)
		r.Put("/{auctionID}/description", c.ChangeDescription)
		r.Put("/{auctionID}/image", c.ChangeImage)
	})
}

// CreateAuction handles POST /auctions
func (c *AuctionController) CreateAuction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerMemberID string    `json:"owner_member_id"`
		Title         string    `json:"title"`
		Description   string    `json:"description"`
		StartTime     time.Time `json:"start_time"`
		EndTime       time.Time `json:"end_time"`
		StartingPrice float64   `json:"starting_price"`
		ImageRef      string    `json:"image_ref"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	id, err := c.createAuction.Handle(r.Context(), &command.CreateAuction{
		OwnerMemberID: req.OwnerMemberID,
		Title:         req.Title,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		StartingPrice: req.StartingPrice,
		ImageRef:      req.ImageRef,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]string{"id": id})
}

// PlaceBid handles POST /auctions/{auctionID}/bids
func (c *AuctionController) PlaceBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BidderID string  `json:"bidder_id"`
		Price    float64 `json:"price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	bid, err := c.placeBid.Handle(r.Context(), &command.PlaceBid{
		AuctionID: chi.URLParam(r, "auctionID"),
		BidderID:  req.BidderID,
		Price:     req.Price,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]interface{}{
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.MemberID,
		"price":      bid.Price,
		"timestamp":  bid.Timestamp,
	})
}

// ChangeTitle handles PUT /auctions/{auctionID}/title
func (c *AuctionController) ChangeTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	err := c.changeTitle.Handle(r.Context(), &command.ChangeAuctionTitle{
		AuctionID: chi.URLParam(r, "auctionID"),
		Title:     req.Title,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, nil)
}

// ChangeDescription handles PUT /auctions/{auctionID}/description
func (c *AuctionController) ChangeDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	err := c.changeDescription.Handle(r.Context(), &command.ChangeAuctionDescription{
		AuctionID:   chi.URLParam(r, "auctionID"),
		Description: req.Description,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, nil)
}

// ChangeImage handles PUT /auctions/{auctionID}/image
func (c *AuctionController) ChangeImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageRef string `json:"image_ref"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	err := c.changeImage.Handle(r.Context(), &command.ChangeAuctionImage{
		AuctionID: chi.URLParam(r, "auctionID"),
		ImageRef:  req.ImageRef,
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, nil)
}

// GetAuction handles GET /auctions/{auctionID}
func (c *AuctionController) GetAuction(w http.ResponseWriter, r *http.Request) {
	view, err := c.getAuction.Handle(r.Context(), query.GetAuction{
		AuctionID: chi.URLParam(r, "auctionID"),
	})
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, view)
}

// ListAuctions handles GET /auctions
func (c *AuctionController) ListAuctions(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)

	totalPages, views, err := c.listAuctions.Handle(r.Context(), query.ListAuctions{
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

func pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size < 1 {
		size = 10
	}
	return page, size
}
