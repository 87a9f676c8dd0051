package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/documents"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagerWithMock(t *testing.T) (*PostgresRepositoryManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newPostgresRepositoryManager(db), mock
}

func TestPostgresRepositoryManager_Implements(t *testing.T) {
	var _ RepositoryManager = (*PostgresRepositoryManager)(nil)
	var _ RepositoryManager = (*MemoryRepositoryManager)(nil)
}

func TestNewPostgresRepositoryManager_OpensLazily(t *testing.T) {
	m, err := NewPostgresRepositoryManager("postgres://u:p@127.0.0.1:1/db?sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, m.Close())
}

func TestFactories_ReturnPostgresRepos(t *testing.T) {
	m, _ := newManagerWithMock(t)

	assert.IsType(t, &users.PostgresRepository{}, m.Users())
	assert.IsType(t, &sessions.PostgresRepository{}, m.Sessions())
	assert.IsType(t, &documents.PostgresRepository{}, m.Documents())
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	m := newPostgresRepositoryManager(db)

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("down"))

	require.NoError(t, m.Ping(context.Background()))
	require.EqualError(t, m.Ping(context.Background()), "down")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	m, mock := newManagerWithMock(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := m.WithTx(context.Background(), func(ctx context.Context, repos Repositories) error {
		called = true
		assert.IsType(t, &users.PostgresRepository{}, repos.Users())
		assert.IsType(t, &sessions.PostgresRepository{}, repos.Sessions())
		assert.IsType(t, &documents.PostgresRepository{}, repos.Documents())
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	m, mock := newManagerWithMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := m.WithTx(context.Background(), func(context.Context, Repositories) error { return boom })
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations(t *testing.T) {
	m, _ := newManagerWithMock(t)

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	require.NoError(t, m.RunMigrations(context.Background()))

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	require.EqualError(t, m.RunMigrations(context.Background()), "migration error: boom")
}
