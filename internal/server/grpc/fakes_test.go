package grpc

import (
	"context"

	"github.com/dmitrijs2005/todosync/internal/server/models"
	"github.com/dmitrijs2005/todosync/internal/server/services"
)

type fakeUsers struct {
	authResp *services.AuthResult
	authErr  error

	renamed     *models.User
	renameErr   error
	renameCalls [][3]string

	signOutErr error
	signedOut  []string

	session    *services.SessionInfo
	resolveErr error
}

func (f *fakeUsers) CreateIdentity(context.Context, string, string) (*services.AuthResult, error) {
	return f.authResp, f.authErr
}

func (f *fakeUsers) Authenticate(context.Context, string, string) (*services.AuthResult, error) {
	return f.authResp, f.authErr
}

func (f *fakeUsers) SetDisplayName(_ context.Context, callerID, uid, name string) (*models.User, error) {
	f.renameCalls = append(f.renameCalls, [3]string{callerID, uid, name})
	return f.renamed, f.renameErr
}

func (f *fakeUsers) SignOut(_ context.Context, sessionID string) error {
	f.signedOut = append(f.signedOut, sessionID)
	return f.signOutErr
}

func (f *fakeUsers) ResolveSession(context.Context, string) (*services.SessionInfo, error) {
	return f.session, f.resolveErr
}

type fakeDocs struct {
	docs     []*models.Document
	queryErr error

	upsertID  string
	upsertErr error

	deleteErr error

	lastOwner  string
	lastFields map[string]any
}

func (f *fakeDocs) Query(_ context.Context, ownerID, _, _, _ string) ([]*models.Document, error) {
	f.lastOwner = ownerID
	return f.docs, f.queryErr
}

func (f *fakeDocs) Upsert(_ context.Context, ownerID, _, _ string, fields map[string]any) (string, error) {
	f.lastOwner = ownerID
	f.lastFields = fields
	return f.upsertID, f.upsertErr
}

func (f *fakeDocs) Delete(_ context.Context, ownerID, _, _ string) error {
	f.lastOwner = ownerID
	return f.deleteErr
}

type fakeHealth struct{ err error }

func (f fakeHealth) Ping(context.Context) error { return f.err }
