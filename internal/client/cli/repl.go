package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Lists(ctx context.Context) error
	NewList(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	AddTodo(ctx context.Context, args []string) error
	ToggleTodo(ctx context.Context, args []string) error
	RemoveList(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit", or ctx being done.
//
//	Not logged in:
//	  - help                      show available commands
//	  - register                  create an account
//	  - login                     authenticate
//	  - exit | quit               leave the program
//
//	Logged in:
//	  - (l)ists                   show lists (reloads after a failed load)
//	  - newlist <label>           create a list
//	  - rename <list> <label>     rename a list
//	  - add <list> <text>         add a to-do
//	  - done <list> <n>           toggle to-do n
//	  - rmlist <list>             delete a list
//	  - logout                    sign out
//
// <list> is the number shown by "lists" or the list id. Handlers report
// their own errors; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("todo %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if requiresLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ists, newlist, rename, add, done, rmlist, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "lists":
			_ = a.Lists(ctx)

		case "newlist":
			_ = a.NewList(ctx, args)

		case "rename":
			_ = a.Rename(ctx, args)

		case "add":
			_ = a.AddTodo(ctx, args)

		case "done":
			_ = a.ToggleTodo(ctx, args)

		case "rmlist":
			_ = a.RemoveList(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "l", "lists", "newlist", "rename", "add", "done", "rmlist", "logout":
		return true
	}
	return false
}
