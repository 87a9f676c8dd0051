package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todosync/internal/client/client"
	"github.com/google/uuid"
)

// fakeAuth is an in-memory client.AuthClient with error injection.
type fakeAuth struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount // by email
	session  bool

	CreateErr      error
	AuthErr        error
	DisplayNameErr error
	SignOutErr     error
	// EmptyUID makes Authenticate answer with an identity lacking an id.
	EmptyUID bool

	SignOutCalls int
}

func (f *fakeAuth) hasSession() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

type fakeAccount struct {
	uid         string
	password    string
	displayName *string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{accounts: map[string]*fakeAccount{}}
}

func (f *fakeAuth) CreateIdentity(_ context.Context, email, password string) (*client.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	if _, ok := f.accounts[email]; ok {
		return nil, client.ErrEmailInUse
	}
	acc := &fakeAccount{uid: uuid.NewString(), password: password}
	f.accounts[email] = acc
	f.session = true
	e := email
	return &client.Identity{UID: acc.uid, Email: &e}, nil
}

func (f *fakeAuth) Authenticate(_ context.Context, email, password string) (*client.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AuthErr != nil {
		f.session = false
		return nil, f.AuthErr
	}
	acc, ok := f.accounts[email]
	if !ok || acc.password != password {
		f.session = false
		return nil, client.ErrUnauthorized
	}
	f.session = true
	e := email
	id := &client.Identity{UID: acc.uid, DisplayName: acc.displayName, Email: &e}
	if f.EmptyUID {
		id.UID = ""
	}
	return id, nil
}

func (f *fakeAuth) SetDisplayName(_ context.Context, identity *client.Identity, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DisplayNameErr != nil {
		return f.DisplayNameErr
	}
	for _, acc := range f.accounts {
		if acc.uid == identity.UID {
			n := name
			acc.displayName = &n
			identity.DisplayName = &n
			return nil
		}
	}
	return client.ErrUnauthorized
}

// SignOut counts remote calls only; without a session it fails locally.
func (f *fakeAuth) SignOut(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.session {
		return client.ErrNoSession
	}
	f.SignOutCalls++
	f.session = false
	return f.SignOutErr
}

// fakeStore is an in-memory client.DocumentStore keyed by collection and id.
type fakeStore struct {
	mu   sync.Mutex
	docs map[string]map[string]map[string]any

	QueryErr  error
	UpsertErr error
	DeleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]map[string]map[string]any{}}
}

func (f *fakeStore) Query(_ context.Context, collection, field, value string) ([]client.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	var out []client.Document
	for id, fields := range f.docs[collection] {
		if v, ok := fields[field].(string); ok && v == value {
			out = append(out, client.Document{ID: id, Fields: fields})
		}
	}
	return out, nil
}

func (f *fakeStore) Upsert(_ context.Context, collection, id string, fields map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpsertErr != nil {
		return "", f.UpsertErr
	}
	if id == "" {
		id = uuid.NewString()
	}
	if f.docs[collection] == nil {
		f.docs[collection] = map[string]map[string]any{}
	}
	f.docs[collection][id] = fields
	return id, nil
}

func (f *fakeStore) Delete(_ context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.docs[collection], id)
	return nil
}
