package mongo

import (
	"context"
	"fmt"

	"auction-marketplace/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UnitOfWork implements the deferred-write unit of work over MongoDB. Writes
// are queued as intents and applied in enqueue order inside one multi-document
// transaction on Commit.
type UnitOfWork struct {
	client   *mongo.Client
	database *mongo.Database
	intents  []repository.WriteIntent

	auctions *AuctionRepository
	members  *MemberRepository
	outbox   *OutboxRepository
}

func NewUnitOfWork(client *mongo.Client, database *mongo.Database) *UnitOfWork {
	uow := &UnitOfWork{
		client:   client,
		database: database,
	}
	uow.auctions = NewAuctionRepository(database, uow)
	uow.members = NewMemberRepository(database, uow)
	uow.outbox = NewOutboxRepository(database, uow)
	return uow
}

func (u *UnitOfWork) Auctions() repository.AuctionRepository {
	return u.auctions
}

func (u *UnitOfWork) Members() repository.MemberRepository {
	return u.members
}

func (u *UnitOfWork) Outbox() repository.OutboxRepository {
	return u.outbox
}

func (u *UnitOfWork) Enqueue(intent repository.WriteIntent) {
	u.intents = append(u.intents, intent)
}

func (u *UnitOfWork) Pending() int {
	return len(u.intents)
}

// Commit applies every queued intent in enqueue order inside one session
// transaction. On failure the transaction aborts and the queue is kept; the
// caller must Discard before reusing this unit of work.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if len(u.intents) == 0 {
		return nil
	}

	session, err := u.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, intent := range u.intents {
			if err := u.apply(sc, intent); err != nil {
				return nil, fmt.Errorf("failed to apply %s on %s[%s]: %w",
					intent.Op, intent.Collection, intent.ID, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	u.intents = nil
	return nil
}

// Discard drops all queued intents without applying them
func (u *UnitOfWork) Discard() {
	u.intents = nil
}

func (u *UnitOfWork) Close(ctx context.Context) {
	// Sessions are scoped to Commit; nothing to release between commits.
}

func (u *UnitOfWork) apply(sc mongo.SessionContext, intent repository.WriteIntent) error {
	collection := u.database.Collection(intent.Collection)

	switch intent.Op {
	case repository.OpInsert:
		_, err := collection.InsertOne(sc, intent.Document)
		return err
	case repository.OpReplace:
		result, err := collection.ReplaceOne(sc, bson.M{"_id": intent.ID}, intent.Document)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return repository.ErrNotFound
		}
		return nil
	case repository.OpDelete:
		_, err := collection.DeleteOne(sc, bson.M{"_id": intent.ID})
		return err
	default:
		return fmt.Errorf("unsupported write op: %d", intent.Op)
	}
}

// UnitOfWorkFactory creates MongoDB unit of work instances
type UnitOfWorkFactory struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewUnitOfWorkFactory(client *mongo.Client, database *mongo.Database) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		client:   client,
		database: database,
	}
}

func (f *UnitOfWorkFactory) New() repository.UnitOfWork {
	return NewUnitOfWork(f.client, f.database)
}
