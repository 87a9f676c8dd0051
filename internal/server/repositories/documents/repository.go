// Package documents stores JSON documents grouped in collections. Every
// document has one owner; writes by anyone else are refused.
package documents

import (
	"context"

	"github.com/dmitrijs2005/todosync/internal/server/models"
)

type Repository interface {
	// Upsert creates the document or replaces its fields wholesale. When
	// the existing row belongs to another owner nothing is written and
	// common.ErrPermissionDenied is returned.
	Upsert(ctx context.Context, doc *models.Document) error

	// Get returns common.ErrorNotFound for unknown documents.
	Get(ctx context.Context, collection, id string) (*models.Document, error)

	// Query returns ownerID's documents in collection whose top-level
	// field equals value. An empty field matches every document.
	Query(ctx context.Context, collection, ownerID, field, value string) ([]*models.Document, error)

	// Delete removes ownerID's document. Absent documents are not an error.
	Delete(ctx context.Context, collection, id, ownerID string) error
}
