package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/todosync/internal/client/client"
	"github.com/dmitrijs2005/todosync/internal/client/config"
	"github.com/dmitrijs2005/todosync/internal/client/models"
	"github.com/dmitrijs2005/todosync/internal/client/viewstore"
	"github.com/dmitrijs2005/todosync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	user        *models.User
	registerErr error

	regArgs    []string
	loginArgs  []string
	resumed    bool
	logoutCall int
}

func (f *fakeSession) Register(_ context.Context, username, email, password string) (*models.User, error) {
	f.regArgs = []string{username, email, password}
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.user, nil
}

func (f *fakeSession) Login(_ context.Context, email, password string) *models.User {
	f.loginArgs = []string{email, password}
	return f.user
}

func (f *fakeSession) ResumeFromCache(context.Context) *models.User {
	f.resumed = true
	return f.user
}

func (f *fakeSession) Logout(context.Context) { f.logoutCall++ }

// memSource is an in-memory viewstore.ListSource.
type memSource struct {
	mu      sync.Mutex
	lists   []models.TodoList
	nextID  int
	fetched int

	fetchErr error
	saveErr  error

	fetchedFor []string
	savedFor   []string
}

func (m *memSource) FetchLists(_ context.Context, user *models.User) ([]models.TodoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched++
	m.fetchedFor = append(m.fetchedFor, user.ID)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return append([]models.TodoList(nil), m.lists...), nil
}

func (m *memSource) SaveList(_ context.Context, user *models.User, list models.TodoList) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedFor = append(m.savedFor, user.ID)
	if m.saveErr != nil {
		return "", m.saveErr
	}
	if list.ID == "" {
		m.nextID++
		list.ID = "L" + string(rune('0'+m.nextID))
	}
	for i := range m.lists {
		if m.lists[i].ID == list.ID {
			m.lists[i] = list
			return list.ID, nil
		}
	}
	m.lists = append(m.lists, list)
	return list.ID, nil
}

func (m *memSource) DeleteList(_ context.Context, list models.TodoList) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lists {
		if m.lists[i].ID == list.ID {
			m.lists = append(m.lists[:i], m.lists[i+1:]...)
			break
		}
	}
	return nil
}

func alice() *models.User {
	name, email := "alice", "a@x.com"
	return &models.User{ID: "u-1", Username: &name, Email: &email}
}

func bob() *models.User {
	name, email := "bob", "b@x.com"
	return &models.User{ID: "u-2", Username: &name, Email: &email}
}

func newTestApp(t *testing.T, session *fakeSession, src *memSource) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := &config.Config{RequestTimeout: time.Second}
	a := newApp(cfg, session, viewstore.NewHomeStore(src), logging.Nop{}, bufio.NewReader(strings.NewReader("")), out)
	return a, out
}

func stubInputs(t *testing.T, answers []string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestRegister_SignsInAndLoadsHome(t *testing.T) {
	session := &fakeSession{user: alice()}
	src := &memSource{lists: []models.TodoList{{ID: "L1", Label: "Groceries"}}}
	a, out := newTestApp(t, session, src)
	stubInputs(t, []string{"alice", "a@x.com"}, "pw123456")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, []string{"alice", "a@x.com", "pw123456"}, session.regArgs)
	assert.True(t, a.isLoggedIn())
	assert.True(t, a.home.Get().Initialized)
	assert.Contains(t, out.String(), "Welcome, alice!")
	assert.Equal(t, "(alice online)", a.getStatus())
}

func TestRegister_FailureIsShown(t *testing.T) {
	session := &fakeSession{registerErr: client.ErrEmailInUse}
	a, out := newTestApp(t, session, &memSource{})
	stubInputs(t, []string{"alice", "a@x.com"}, "pw123456")

	require.ErrorIs(t, a.Register(context.Background()), client.ErrEmailInUse)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "email already in use")
}

func TestLogin_Failure(t *testing.T) {
	session := &fakeSession{}
	a, out := newTestApp(t, session, &memSource{})
	stubInputs(t, []string{"a@x.com"}, "wrong")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, []string{"a@x.com", "wrong"}, session.loginArgs)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Login failed")
}

func TestLogin_SwitchingUsersReloadsHome(t *testing.T) {
	session := &fakeSession{user: alice()}
	src := &memSource{lists: []models.TodoList{{ID: "L1", Label: "Groceries"}}}
	a, out := newTestApp(t, session, src)
	ctx := context.Background()

	stubInputs(t, []string{"a@x.com"}, "pw123456")
	require.NoError(t, a.Login(ctx))
	require.Equal(t, "u-1", a.home.Get().User.ID)

	session.user = bob()
	stubInputs(t, []string{"b@x.com"}, "pw654321")
	require.NoError(t, a.Login(ctx))

	st := a.home.Get()
	require.True(t, st.Initialized)
	assert.Equal(t, "u-2", st.User.ID)
	assert.Equal(t, []string{"u-1", "u-2"}, src.fetchedFor)
	assert.Equal(t, "(bob online)", a.getStatus())

	require.NoError(t, a.NewList(ctx, []string{"Chores"}))
	assert.Equal(t, []string{"u-2"}, src.savedFor)
	assert.Contains(t, out.String(), "Logged in as bob")
}

func TestLogout_ResetsHome(t *testing.T) {
	session := &fakeSession{user: alice()}
	a, _ := newTestApp(t, session, &memSource{})
	stubInputs(t, []string{"a@x.com"}, "pw123456")

	require.NoError(t, a.Login(context.Background()))
	require.True(t, a.home.Get().Initialized)

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, 1, session.logoutCall)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, viewstore.HomeState{}, a.home.Get())
}

func TestResume(t *testing.T) {
	session := &fakeSession{user: alice()}
	a, out := newTestApp(t, session, &memSource{})

	a.resume(context.Background())

	assert.True(t, session.resumed)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome back, alice")

	session2 := &fakeSession{}
	b, _ := newTestApp(t, session2, &memSource{})
	b.resume(context.Background())
	assert.False(t, b.isLoggedIn())
}

func TestListCommands(t *testing.T) {
	session := &fakeSession{user: alice()}
	src := &memSource{}
	a, out := newTestApp(t, session, src)
	ctx := context.Background()
	a.signedIn(ctx, session.user)

	require.NoError(t, a.Lists(ctx))
	assert.Contains(t, out.String(), "No lists yet")

	require.NoError(t, a.NewList(ctx, []string{"Groceries"}))
	require.NoError(t, a.AddTodo(ctx, []string{"1", "oat", "milk"}))
	require.NoError(t, a.ToggleTodo(ctx, []string{"L1", "1"}))
	require.NoError(t, a.Rename(ctx, []string{"1", "Weekend", "shop"}))

	require.Len(t, src.lists, 1)
	assert.Equal(t, "Weekend shop", src.lists[0].Label)
	assert.Equal(t, []models.Todo{{todoText: "oat milk", todoDone: true}}, src.lists[0].Todos)

	out.Reset()
	require.NoError(t, a.Lists(ctx))
	assert.Equal(t, "1. Weekend shop [L1]\n     1) [x] oat milk\n", out.String())

	require.NoError(t, a.RemoveList(ctx, []string{"1"}))
	assert.Empty(t, src.lists)
	assert.Empty(t, a.home.Get().Lists)

	require.ErrorIs(t, a.RemoveList(ctx, []string{"1"}), errNoSuchList)
}

func TestListCommands_ErrorsAreActionable(t *testing.T) {
	session := &fakeSession{user: alice()}
	src := &memSource{fetchErr: client.ErrUnavailable}
	a, out := newTestApp(t, session, src)
	ctx := context.Background()

	a.signedIn(ctx, session.user)
	assert.Contains(t, out.String(), "Could not load lists")
	assert.Contains(t, out.String(), "try again later")
	assert.False(t, a.home.Get().Initialized)

	// the next "lists" retries the load
	src.fetchErr = nil
	require.NoError(t, a.Lists(ctx))
	assert.Equal(t, 2, src.fetched)
	assert.True(t, a.home.Get().Initialized)

	out.Reset()
	src.saveErr = errors.New("boom")
	require.Error(t, a.NewList(ctx, []string{"x"}))
	assert.Contains(t, out.String(), "Could not create list: boom (please retry)")
}

func TestToggleTodo_BadIndex(t *testing.T) {
	session := &fakeSession{user: alice()}
	src := &memSource{lists: []models.TodoList{{ID: "L1", Label: "a", Todos: []models.Todo{}}}}
	a, out := newTestApp(t, session, src)
	a.signedIn(context.Background(), session.user)

	require.Error(t, a.ToggleTodo(context.Background(), []string{"1", "3"}))
	assert.Contains(t, out.String(), `No to-do "3"`)
}
