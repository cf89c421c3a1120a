package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-marketplace/internal/domain/aggregate"
	"auction-marketplace/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bidDocument struct {
	AuctionID string    `bson:"auction_id"`
	MemberID  string    `bson:"member_id"`
	Price     float64   `bson:"price"`
	Timestamp time.Time `bson:"timestamp"`
}

type auctionDocument struct {
	ID            string        `bson:"_id"`
	OwnerMemberID string        `bson:"owner_member_id"`
	Title         string        `bson:"title"`
	Description   string        `bson:"description"`
	StartTime     time.Time     `bson:"start_time"`
	EndTime       time.Time     `bson:"end_time"`
	StartingPrice float64       `bson:"starting_price"`
	CurrentPrice  float64       `bson:"current_price"`
	ImageRef      string        `bson:"image_ref"`
	Bids          []bidDocument `bson:"bids"`
	Created       time.Time     `bson:"created"`
	LastModified  time.Time     `bson:"last_modified"`
}

// AuctionRepository is the deferred-write auction gateway. Reads go straight
// to the collection; writes enqueue intents on the owning unit of work.
type AuctionRepository struct {
	collection *mongo.Collection
	uow        *UnitOfWork
}

func NewAuctionRepository(database *mongo.Database, uow *UnitOfWork) *AuctionRepository {
	return &AuctionRepository{
		collection: database.Collection(repository.CollectionAuctions),
		uow:        uow,
	}
}

func (r *AuctionRepository) GetByID(ctx context.Context, id string) (*aggregate.Auction, error) {
	var doc auctionDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get auction by id: %w", err)
	}

	return auctionFromDocument(doc), nil
}

func (r *AuctionRepository) GetAll(ctx context.Context) ([]*aggregate.Auction, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "end_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auctionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode auctions: %w", err)
	}

	auctions := make([]*aggregate.Auction, 0, len(docs))
	for _, doc := range docs {
		auctions = append(auctions, auctionFromDocument(doc))
	}
	return auctions, nil
}

// GetPage returns one page of auctions ordered by end time, plus the total
// page count
func (r *AuctionRepository) GetPage(ctx context.Context, page, size int) (int, []*aggregate.Auction, error) {
	if page < 1 || size < 1 {
		return 0, nil, fmt.Errorf("page and size must be positive")
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count auctions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "end_time", Value: 1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auctionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return 0, nil, fmt.Errorf("failed to decode auctions: %w", err)
	}

	auctions := make([]*aggregate.Auction, 0, len(docs))
	for _, doc := range docs {
		auctions = append(auctions, auctionFromDocument(doc))
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return totalPages, auctions, nil
}

func (r *AuctionRepository) Create(auction *aggregate.Auction) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionAuctions,
		Op:         repository.OpInsert,
		ID:         auction.ID(),
		Document:   auctionToDocument(auction),
	})
}

func (r *AuctionRepository) Update(auction *aggregate.Auction) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionAuctions,
		Op:         repository.OpReplace,
		ID:         auction.ID(),
		Document:   auctionToDocument(auction),
	})
}

func (r *AuctionRepository) Delete(id string) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionAuctions,
		Op:         repository.OpDelete,
		ID:         id,
	})
}

func auctionToDocument(auction *aggregate.Auction) auctionDocument {
	s := auction.Snapshot()
	bids := make([]bidDocument, 0, len(s.Bids))
	for _, b := range s.Bids {
		bids = append(bids, bidDocument(b))
	}
	return auctionDocument{
		ID:            s.ID,
		OwnerMemberID: s.OwnerMemberID,
		Title:         s.Title,
		Description:   s.Description,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		StartingPrice: s.StartingPrice,
		CurrentPrice:  s.CurrentPrice,
		ImageRef:      s.ImageRef,
		Bids:          bids,
		Created:       s.Created,
		LastModified:  s.LastModified,
	}
}

func auctionFromDocument(doc auctionDocument) *aggregate.Auction {
	bids := make([]aggregate.Bid, 0, len(doc.Bids))
	for _, b := range doc.Bids {
		bids = append(bids, aggregate.Bid(b))
	}
	return aggregate.RehydrateAuction(aggregate.AuctionSnapshot{
		ID:            doc.ID,
		OwnerMemberID: doc.OwnerMemberID,
		Title:         doc.Title,
		Description:   doc.Description,
		StartTime:     doc.StartTime,
		EndTime:       doc.EndTime,
		StartingPrice: doc.StartingPrice,
		CurrentPrice:  doc.CurrentPrice,
		ImageRef:      doc.ImageRef,
		Bids:          bids,
		Created:       doc.Created,
		LastModified:  doc.LastModified,
	})
}
