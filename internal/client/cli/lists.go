package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/todosync/internal/client/client"
	"github.com/dmitrijs2005/todosync/internal/client/models"
)

// Keys of a to-do item created from the CLI.
const (
	todoText = "text"
	todoDone = "done"
)

var errNoSuchList = errors.New("no such list")

// Lists prints the lists of the current user. If the home screen failed to
// load earlier, it retries the load first.
func (a *App) Lists(ctx context.Context) error {
	if !a.home.Get().Initialized {
		rctx, cancel := a.withTimeout(ctx)
		defer cancel()
		if err := a.home.Init(rctx, a.login.Get()); err != nil {
			a.printListError("load lists", err)
			return err
		}
	}

	lists := a.home.Get().Lists
	if len(lists) == 0 {
		fmt.Fprintln(a.out, "No lists yet. Create one with: newlist <label>")
		return nil
	}
	for i, l := range lists {
		fmt.Fprintf(a.out, "%d. %s [%s]\n", i+1, l.Label, l.ID)
		for j, t := range l.Todos {
			mark := " "
			if done, _ := t[todoDone].(bool); done {
				mark = "x"
			}
			fmt.Fprintf(a.out, "     %d) [%s] %v\n", j+1, mark, t[todoText])
		}
	}
	return nil
}

func (a *App) NewList(ctx context.Context, args []string) error {
	label := strings.Join(args, " ")
	if label == "" {
		fmt.Fprintln(a.out, "Usage: newlist <label>")
		return nil
	}
	return a.save(ctx, "create list", models.TodoList{Label: label, Todos: []models.Todo{}})
}

func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: rename <list> <label>")
		return nil
	}
	list, err := a.resolveList(args[0])
	if err != nil {
		return err
	}
	list.Label = strings.Join(args[1:], " ")
	return a.save(ctx, "rename list", list)
}

func (a *App) AddTodo(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: add <list> <text>")
		return nil
	}
	list, err := a.resolveList(args[0])
	if err != nil {
		return err
	}
	todos := append(cloneTodos(list.Todos), models.Todo{todoText: strings.Join(args[1:], " "), todoDone: false})
	list.Todos = todos
	return a.save(ctx, "add to-do", list)
}

func (a *App) ToggleTodo(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: done <list> <n>")
		return nil
	}
	list, err := a.resolveList(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > len(list.Todos) {
		fmt.Fprintf(a.out, "No to-do %q in %q\n", args[1], list.Label)
		return fmt.Errorf("bad to-do index %q", args[1])
	}

	todos := cloneTodos(list.Todos)
	done, _ := todos[n-1][todoDone].(bool)
	todos[n-1][todoDone] = !done
	list.Todos = todos
	return a.save(ctx, "update to-do", list)
}

func (a *App) RemoveList(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: rmlist <list>")
		return nil
	}
	list, err := a.resolveList(args[0])
	if err != nil {
		return err
	}

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if err := a.home.Delete(rctx, list); err != nil {
		a.printListError("delete list", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q\n", list.Label)
	return nil
}

func (a *App) save(ctx context.Context, action string, list models.TodoList) error {
	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	saved, err := a.home.Save(rctx, list)
	if err != nil {
		a.printListError(action, err)
		return err
	}
	fmt.Fprintf(a.out, "Saved %q [%s]\n", saved.Label, saved.ID)
	return nil
}

// resolveList accepts a 1-based position from "lists" or a list id.
func (a *App) resolveList(ref string) (models.TodoList, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		lists := a.home.Get().Lists
		if n >= 1 && n <= len(lists) {
			return lists[n-1], nil
		}
	}
	if list, ok := a.home.Find(ref); ok {
		return list, nil
	}
	fmt.Fprintf(a.out, "No list %q. Type 'lists' to see them.\n", ref)
	return models.TodoList{}, errNoSuchList
}

// printListError tells the user a list command did not happen and what to
// do about it.
func (a *App) printListError(action string, err error) {
	a.logger.Warn(context.Background(), "list operation failed", "action", action, "error", err)

	var hint string
	switch {
	case errors.Is(err, client.ErrUnavailable):
		hint = "server unreachable, try again later"
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrNoSession):
		hint = "session expired, please log in again"
	case errors.Is(err, client.ErrPermissionDenied):
		hint = "you do not have access to this list"
	default:
		hint = "please retry"
	}
	fmt.Fprintf(a.out, "Could not %s: %v (%s)\n", action, err, hint)
}

func cloneTodos(todos []models.Todo) []models.Todo {
	out := make([]models.Todo, 0, len(todos)+1)
	for _, t := range todos {
		out = append(out, maps.Clone(t))
	}
	return out
}
