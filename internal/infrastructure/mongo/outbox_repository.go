package mongo

import (
	"context"
	"fmt"
	"time"

	"auction-marketplace/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type outboxDocument struct {
	ID        string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	Payload   []byte    `bson:"payload"`
	CreatedAt time.Time `bson:"created_at"`
}

// OutboxRepository persists pending domain events alongside aggregate writes
type OutboxRepository struct {
	collection *mongo.Collection
	uow        *UnitOfWork
}

func NewOutboxRepository(database *mongo.Database, uow *UnitOfWork) *OutboxRepository {
	return &OutboxRepository{
		collection: database.Collection(repository.CollectionOutbox),
		uow:        uow,
	}
}

// GetAll fetches every pending event in storage-default order; no global
// ordering is promised
func (r *OutboxRepository) GetAll(ctx context.Context) ([]repository.OutboxRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []outboxDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode outbox events: %w", err)
	}

	records := make([]repository.OutboxRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, repository.OutboxRecord{
			EventID:   doc.ID,
			Kind:      doc.Kind,
			Payload:   doc.Payload,
			CreatedAt: doc.CreatedAt,
		})
	}
	return records, nil
}

func (r *OutboxRepository) Create(record repository.OutboxRecord) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionOutbox,
		Op:         repository.OpInsert,
		ID:         record.EventID,
		Document: outboxDocument{
			ID:        record.EventID,
			Kind:      record.Kind,
			Payload:   record.Payload,
			CreatedAt: record.CreatedAt,
		},
	})
}

func (r *OutboxRepository) Delete(eventID string) {
	r.uow.Enqueue(repository.WriteIntent{
		Collection: repository.CollectionOutbox,
		Op:         repository.OpDelete,
		ID:         eventID,
	})
}
