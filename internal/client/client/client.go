package client

import (
	"context"
)

// Identity is the remote account returned by identity operations.
type Identity struct {
	UID         string
	DisplayName *string
	Email       *string
}

// Document is a stored document: its id plus its top-level fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// AuthClient is the remote auth service.
type AuthClient interface {
	CreateIdentity(ctx context.Context, email, password string) (*Identity, error)
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	SetDisplayName(ctx context.Context, identity *Identity, name string) error
	SignOut(ctx context.Context) error
}

// DocumentStore is the remote document store. Upsert replaces the whole
// document and returns its id, assigned by the server when id is empty.
// Delete of an absent id succeeds.
type DocumentStore interface {
	Query(ctx context.Context, collection, field, value string) ([]Document, error)
	Upsert(ctx context.Context, collection, id string, fields map[string]any) (string, error)
	Delete(ctx context.Context, collection, id string) error
}

// Client is everything the CLI needs from one backend connection.
type Client interface {
	AuthClient
	DocumentStore
	Ping(ctx context.Context) error
	Close() error
}
