package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/todosync/internal/common"
	"github.com/dmitrijs2005/todosync/internal/server/models"
)

type docKey struct {
	collection string
	id         string
}

// MemoryRepository keeps documents in process memory. Fields are stored
// JSON-encoded so callers never share maps with the store and values come
// back with the same types PostgreSQL would return.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[docKey]memoryDoc
}

type memoryDoc struct {
	ownerID   string
	fields    []byte
	updatedAt time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: map[docKey]memoryDoc{}}
}

func (r *MemoryRepository) Upsert(_ context.Context, doc *models.Document) error {
	fields, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidFields, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := docKey{doc.Collection, doc.ID}
	if existing, ok := r.docs[k]; ok && existing.ownerID != doc.OwnerID {
		return common.ErrPermissionDenied
	}
	r.docs[k] = memoryDoc{ownerID: doc.OwnerID, fields: fields, updatedAt: time.Now()}
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, collection, id string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[docKey{collection, id}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d.toModel(collection, id)
}

func (r *MemoryRepository) Query(_ context.Context, collection, ownerID, field, value string) ([]*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Document
	for k, d := range r.docs {
		if k.collection != collection || d.ownerID != ownerID {
			continue
		}
		doc, err := d.toModel(k.collection, k.id)
		if err != nil {
			return nil, err
		}
		if field != "" {
			if v, ok := doc.Fields[field].(string); !ok || v != value {
				continue
			}
		}
		result = append(result, doc)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.Before(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *MemoryRepository) Delete(_ context.Context, collection, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := docKey{collection, id}
	if d, ok := r.docs[k]; ok && d.ownerID == ownerID {
		delete(r.docs, k)
	}
	return nil
}

func (d memoryDoc) toModel(collection, id string) (*models.Document, error) {
	doc := &models.Document{Collection: collection, ID: id, OwnerID: d.ownerID, UpdatedAt: d.updatedAt}
	if err := json.Unmarshal(d.fields, &doc.Fields); err != nil {
		return nil, fmt.Errorf("document %s/%s: %w", collection, id, err)
	}
	return doc, nil
}
