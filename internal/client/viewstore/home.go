package viewstore

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/todosync/internal/client/models"
)

var ErrNotInitialized = errors.New("home store is not initialized")

// ListSource is the remote side of the home screen.
type ListSource interface {
	FetchLists(ctx context.Context, user *models.User) ([]models.TodoList, error)
	SaveList(ctx context.Context, user *models.User, list models.TodoList) (string, error)
	DeleteList(ctx context.Context, list models.TodoList) error
}

// HomeState is what the home screen renders.
type HomeState struct {
	User        *models.User
	Lists       []models.TodoList
	Initialized bool
}

// HomeStore owns the list of to-do lists shown after sign-in. Init loads
// them once per user; further loads for the same user need an explicit
// Reset first.
type HomeStore struct {
	*Store[HomeState]
	source ListSource
	initMu sync.Mutex
}

func NewHomeStore(source ListSource) *HomeStore {
	return &HomeStore{Store: NewStore(HomeState{}), source: source}
}

// Init loads user's lists. Calling it again for the user the store already
// holds is a no-op; a different user replaces the state. On error the store
// is left uninitialized.
func (h *HomeStore) Init(ctx context.Context, user *models.User) error {
	h.initMu.Lock()
	defer h.initMu.Unlock()

	state := h.Get()
	if state.Initialized && sameUser(state.User, user) {
		return nil
	}
	if state.Initialized {
		h.Set(HomeState{})
	}

	lists, err := h.source.FetchLists(ctx, user)
	if err != nil {
		return err
	}

	h.Set(HomeState{User: user, Lists: lists, Initialized: true})
	return nil
}

// Reset drops all state, typically on sign-out.
func (h *HomeStore) Reset() {
	h.Set(HomeState{})
}

// Save writes list remotely, then shows it locally. The saved copy carries
// the id assigned by the store.
func (h *HomeStore) Save(ctx context.Context, list models.TodoList) (models.TodoList, error) {
	state := h.Get()
	if !state.Initialized {
		return models.TodoList{}, ErrNotInitialized
	}

	id, err := h.source.SaveList(ctx, state.User, list)
	if err != nil {
		return models.TodoList{}, err
	}
	list.ID = id

	h.Update(func(s HomeState) HomeState {
		lists := slices.Clone(s.Lists)
		if i := indexOf(lists, id); i >= 0 {
			lists[i] = list
		} else {
			lists = append(lists, list)
		}
		s.Lists = lists
		return s
	})
	return list, nil
}

// Delete removes list remotely, then locally.
func (h *HomeStore) Delete(ctx context.Context, list models.TodoList) error {
	if !h.Get().Initialized {
		return ErrNotInitialized
	}

	if err := h.source.DeleteList(ctx, list); err != nil {
		return err
	}

	h.Update(func(s HomeState) HomeState {
		s.Lists = slices.DeleteFunc(slices.Clone(s.Lists), func(l models.TodoList) bool {
			return l.ID == list.ID
		})
		return s
	})
	return nil
}

// Find returns the list with the given id.
func (h *HomeStore) Find(id string) (models.TodoList, bool) {
	lists := h.Get().Lists
	if i := indexOf(lists, id); i >= 0 {
		return lists[i], true
	}
	return models.TodoList{}, false
}

func sameUser(a, b *models.User) bool {
	return a != nil && b != nil && a.ID == b.ID
}

func indexOf(lists []models.TodoList, id string) int {
	return slices.IndexFunc(lists, func(l models.TodoList) bool { return l.ID == id })
}
