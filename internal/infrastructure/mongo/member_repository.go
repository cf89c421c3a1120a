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

type addressDocument struct {
	Street string `bson:"street"`
	Zip    string `bson:"zip"`
	City   string `bson:"city"`
}

type ratingDocument struct {
	FromMemberID string `bson:"from_member_id"`
	Stars        int    `bson:"stars"`
}

type memberDocument struct {
	ID            string           `bson:"_id"`
	FirstName     string           `bson:"first_name"`
	LastName      string           `bson:"last_name"`
	Address       addressDocument  `bson:"address"`
	Email         string           `bson:"email"`
	Phone         string           `bson:"phone"`
	Bids          []bidDocument    `bson:"bids"`
	Ratings       []ratingDocument `bson:"ratings"`
	CurrentRating int              `bson:"current_rating"`
	Created       time.Time        `bson:"created"`
	LastModified  time.Time        `bson:"last_modified"`
}

// MemberRepository is the deferred-write member gateway
type MemberRepository struct {
	collection *mongo.Collection
	uow        *UnitOfWork
}

func NewMemberRepository(database *mongo.Database, uow *UnitOfWork) *MemberRepository {
	return &MemberRepository{
		collection: database.Collection(repository.CollectionMembers),
		uow:        uow,
	}
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*aggregate.Member, error) {
	var doc memberDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member by id: %w", err)
	}

	return memberFromDocument(doc), nil
}

func (r *MemberRepository) GetAll(ctx context.Context) ([]*aggregate.Member, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []memberDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}

	members := make([]*aggregate.Member, 0, len(docs))
	for _, doc := range docs {
		members = append(members, memberFromDocument(doc))
	}
	return members, nil
}

// GetPage returns one page of members ordered by last name, plus the total
// page count
func (r *MemberRepository) GetPage(ctx context.Context, page, size int) (int, []*aggregate.Member, error) {
	if page < 1 || size < 1 {
		return 0, nil, fmt.Errorf("page and size must be positive")
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count members: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_name", Value: 1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []memberDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return 0, nil, fmt.Errorf("failed to decode members: %w", err)
	}

	members := make([]*aggregate.Member, 0, len(docs))
	for _, doc := range docs {
		members = append(members, memberFromDocument(doc))
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return totalPages, members, nil
}

func (r *MemberRepository) Create(member *aggregate.Member) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionMembers,
		Op:         repository.OpInsert,
		ID:         member.ID(),
		Document:   memberToDocument(member),
	})
}

func (r *MemberRepository) Update(member *aggregate.Member) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionMembers,
		Op:         repository.OpReplace,
		ID:         member.ID(),
		Document:   memberToDocument(member),
	})
}

func (r *MemberRepository) Delete(id string) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionMembers,
		Op:         repository.OpDelete,
		ID:         id,
	})
}

func memberToDocument(member *aggregate.Member) memberDocument {
	s := member.Snapshot()
	bids := make([]bidDocument, 0, len(s.Bids))
	for _, b := range s.Bids {
		bids = append(bids, bidDocument(b))
	}
	ratings := make([]ratingDocument, 0, len(s.Ratings))
	for _, rating := range s.Ratings {
		ratings = append(ratings, ratingDocument(rating))
	}
	return memberDocument{
		ID:            s.ID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Address:       addressDocument(s.Address),
		Email:         s.Email,
		Phone:         s.Phone,
		Bids:          bids,
		Ratings:       ratings,
		CurrentRating: s.CurrentRating,
		Created:       s.Created,
		LastModified:  s.LastModified,
	}
}

func memberFromDocument(doc memberDocument) *aggregate.Member {
	bids := make([]aggregate.Bid, 0, len(doc.Bids))
	for _, b := range doc.Bids {
		bids = append(bids, aggregate.Bid(b))
	}
	ratings := make([]aggregate.Rating, 0, len(doc.Ratings))
	for _, rating := range doc.Ratings {
		ratings = append(ratings, aggregate.Rating(rating))
	}
	return aggregate.RehydrateMember(aggregate.MemberSnapshot{
		ID:            doc.ID,
		FirstName:     doc.FirstName,
		LastName:      doc.LastName,
		Address:       aggregate.Address(doc.Address),
		Email:         doc.Email,
		Phone:         doc.Phone,
		Bids:          bids,
		Ratings:       ratings,
		CurrentRating: doc.CurrentRating,
		Created:       doc.Created,
		LastModified:  doc.LastModified,
	})
}
