package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todosync/internal/client/client"
	"github.com/dmitrijs2005/todosync/internal/client/models"
	"github.com/dmitrijs2005/todosync/internal/common"
)

// ListSynchronizer reads and writes a user's to-do lists. Errors from the
// store are returned to the caller wrapped, never swallowed.
type ListSynchronizer struct {
	store client.DocumentStore
}

func NewListSynchronizer(store client.DocumentStore) *ListSynchronizer {
	return &ListSynchronizer{store: store}
}

// FetchLists returns every list owned by user, in backend order.
func (l *ListSynchronizer) FetchLists(ctx context.Context, user *models.User) ([]models.TodoList, error) {
	if user == nil {
		return nil, client.ErrNoSession
	}

	docs, err := l.store.Query(ctx, common.TodoListsCollection, models.FieldUser, user.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch lists: %w", err)
	}

	lists := make([]models.TodoList, 0, len(docs))
	for _, d := range docs {
		list, err := models.TodoListFromFields(d.ID, d.Fields)
		if err != nil {
			return nil, fmt.Errorf("fetch lists: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// SaveList replaces the whole document for list. An empty list.ID lets the
// store assign one; the effective id is returned.
func (l *ListSynchronizer) SaveList(ctx context.Context, user *models.User, list models.TodoList) (string, error) {
	if user == nil {
		return "", client.ErrNoSession
	}

	id, err := l.store.Upsert(ctx, common.TodoListsCollection, list.ID, list.ToFields(user.ID))
	if err != nil {
		return "", fmt.Errorf("save list %q: %w", list.ID, err)
	}
	if id == "" {
		id = list.ID
	}
	return id, nil
}

// DeleteList removes the list. Deleting a list that no longer exists
// succeeds.
func (l *ListSynchronizer) DeleteList(ctx context.Context, list models.TodoList) error {
	if err := l.store.Delete(ctx, common.TodoListsCollection, list.ID); err != nil {
		return fmt.Errorf("delete list %q: %w", list.ID, err)
	}
	return nil
}
