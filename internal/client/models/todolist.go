package models

import (
	"fmt"

	"github.com/dmitrijs2005/todosync/internal/common"
)

// Document field names of a stored to-do list.
const (
	FieldLabel = "label"
	FieldUser  = common.OwnerField
	FieldTodos = "todos"
)

// Todo is a single item of a list. Its shape belongs to the caller; the sync
// layer passes it through untouched.
type Todo map[string]any

// TodoList is a user's to-do list. ID is the remote document id; it stays
// empty until the list has been saved once.
type TodoList struct {
	ID    string
	Label string
	Todos []Todo
}

// ToFields builds the full document written for the list, owned by ownerID.
func (l TodoList) ToFields(ownerID string) map[string]any {
	todos := make([]any, 0, len(l.Todos))
	for _, t := range l.Todos {
		todos = append(todos, map[string]any(t))
	}
	return map[string]any{
		FieldLabel: l.Label,
		FieldUser:  ownerID,
		FieldTodos: todos,
	}
}

// TodoListFromFields maps a stored document back to a TodoList. Missing
// label or todos yield zero values; a mistyped field is an error.
func TodoListFromFields(id string, fields map[string]any) (TodoList, error) {
	list := TodoList{ID: id, Todos: []Todo{}}

	if raw, ok := fields[FieldLabel]; ok && raw != nil {
		label, ok := raw.(string)
		if !ok {
			return TodoList{}, fmt.Errorf("document %s: label is %T, want string", id, raw)
		}
		list.Label = label
	}

	raw, ok := fields[FieldTodos]
	if !ok || raw == nil {
		return list, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return TodoList{}, fmt.Errorf("document %s: todos is %T, want array", id, raw)
	}
	for n, item := range items {
		todo, ok := item.(map[string]any)
		if !ok {
			return TodoList{}, fmt.Errorf("document %s: todos[%d] is %T, want object", id, n, item)
		}
		list.Todos = append(list.Todos, Todo(todo))
	}
	return list, nil
}
