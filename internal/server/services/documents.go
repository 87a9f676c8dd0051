package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todosync/internal/common"
	"github.com/dmitrijs2005/todosync/internal/server/models"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DocumentService scopes every document operation to its owner. Writes
// replace whole documents; the last write wins.
type DocumentService struct {
	repomanager repomanager.RepositoryManager
}

func NewDocumentService(m repomanager.RepositoryManager) *DocumentService {
	return &DocumentService{repomanager: m}
}

// Query returns ownerID's documents in collection whose field equals value.
func (s *DocumentService) Query(ctx context.Context, ownerID, collection, field, value string) ([]*models.Document, error) {
	if collection == "" {
		return nil, common.ErrInvalidCollection
	}
	return s.repomanager.Documents().Query(ctx, collection, ownerID, field, value)
}

// Upsert stores fields under id, assigning a new id when id is empty, and
// returns the id used. An owner field naming another user is refused.
func (s *DocumentService) Upsert(ctx context.Context, ownerID, collection, id string, fields map[string]any) (string, error) {
	if collection == "" {
		return "", common.ErrInvalidCollection
	}
	if v, ok := fields[common.OwnerField]; ok && v != ownerID {
		return "", common.ErrPermissionDenied
	}
	if id == "" {
		id = uuid.NewString()
	}
	if fields == nil {
		fields = map[string]any{}
	}

	doc := &models.Document{Collection: collection, ID: id, OwnerID: ownerID, Fields: fields}
	if err := s.repomanager.Documents().Upsert(ctx, doc); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes the document. Deleting an absent document succeeds;
// deleting somebody else's does not.
func (s *DocumentService) Delete(ctx context.Context, ownerID, collection, id string) error {
	if collection == "" {
		return common.ErrInvalidCollection
	}
	return s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		doc, err := repos.Documents().Get(ctx, collection, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil
			}
			return fmt.Errorf("find document: %w", err)
		}
		if doc.OwnerID != ownerID {
			return common.ErrPermissionDenied
		}
		return repos.Documents().Delete(ctx, collection, id, ownerID)
	})
}
