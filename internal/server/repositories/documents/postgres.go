package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todosync/internal/common"
	"github.com/dmitrijs2005/todosync/internal/dbx"
	"github.com/dmitrijs2005/todosync/internal/server/models"
)

// PostgresRepository keeps documents in a JSONB column over dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, doc *models.Document) error {
	fields, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidFields, err)
	}

	query := `
		INSERT INTO documents (collection, id, owner_id, fields, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, now())
		ON CONFLICT (collection, id)
		DO UPDATE SET
			fields = EXCLUDED.fields,
			updated_at = EXCLUDED.updated_at
			WHERE documents.owner_id = EXCLUDED.owner_id
	`
	res, err := r.db.ExecContext(ctx, query, doc.Collection, doc.ID, doc.OwnerID, string(fields))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrPermissionDenied
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	query := `
		SELECT collection, id, owner_id, fields, updated_at FROM documents
		WHERE collection = $1 AND id = $2
	`
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) Query(ctx context.Context, collection, ownerID, field, value string) ([]*models.Document, error) {
	query := `
		SELECT collection, id, owner_id, fields, updated_at FROM documents
		WHERE collection = $1 AND owner_id = $2 AND ($3 = '' OR fields ->> $3 = $4)
		ORDER BY updated_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, collection, ownerID, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, collection, id, ownerID string) error {
	query := `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2 AND owner_id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, collection, id, ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*models.Document, error) {
	doc := &models.Document{}
	var raw []byte
	if err := s.Scan(&doc.Collection, &doc.ID, &doc.OwnerID, &raw, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &doc.Fields); err != nil {
		return nil, fmt.Errorf("document %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return doc, nil
}
