package memory

import (
	"fmt"
	"sync"

	"auction-marketplace/internal/domain/repository"
)

// Store is an in-memory document store keyed by collection and id. It applies
// write-intent batches all-or-nothing, mirroring the transactional semantics
// of the MongoDB implementation.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]interface{}

	// FailOn, when set, is consulted before each intent applies; returning an
	// error aborts the whole batch. Used to force commit failures in tests.
	FailOn func(intent repository.WriteIntent) error
}

func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]interface{}),
	}
}

// Apply applies the intents in order against a staged copy and swaps it in
// only if every intent succeeds
func (s *Store) Apply(intents []repository.WriteIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[string]map[string]interface{}, len(s.data))
	for name, docs := range s.data {
		stagedDocs := make(map[string]interface{}, len(docs))
		for id, doc := range docs {
			stagedDocs[id] = doc
		}
		staged[name] = stagedDocs
	}

	for _, intent := range intents {
		if s.FailOn != nil {
			if err := s.FailOn(intent); err != nil {
				return fmt.Errorf("failed to apply %s on %s[%s]: %w",
					intent.Op, intent.Collection, intent.ID, err)
			}
		}
		if err := applyIntent(staged, intent); err != nil {
			return fmt.Errorf("failed to apply %s on %s[%s]: %w",
				intent.Op, intent.Collection, intent.ID, err)
		}
	}

	s.data = staged
	return nil
}

func applyIntent(staged map[string]map[string]interface{}, intent repository.WriteIntent) error {
	docs, ok := staged[intent.Collection]
	if !ok {
		docs = make(map[string]interface{})
		staged[intent.Collection] = docs
	}

	switch intent.Op {
	case repository.OpInsert:
		if _, exists := docs[intent.ID]; exists {
			return fmt.Errorf("duplicate id %s", intent.ID)
		}
		docs[intent.ID] = intent.Document
	case repository.OpReplace:
		if _, exists := docs[intent.ID]; !exists {
			return repository.ErrNotFound
		}
		docs[intent.ID] = intent.Document
	case repository.OpDelete:
		delete(docs, intent.ID)
	default:
		return fmt.Errorf("unsupported write op: %d", intent.Op)
	}
	return nil
}

// Get returns the committed document under collection/id, if any
func (s *Store) Get(collection, id string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[collection][id]
	return doc, ok
}

// List returns all committed documents in a collection
func (s *Store) List(collection string) []interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]interface{}, 0, len(s.data[collection]))
	for _, doc := range s.data[collection] {
		docs = append(docs, doc)
	}
	return docs
}

// Count returns the number of committed documents in a collection
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data[collection])
}
