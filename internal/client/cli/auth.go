package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todosync/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a display name, email and password and creates the
// account. Identity errors (email taken, weak password) are shown as is.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.session.Register(rctx, username, email, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	a.signedIn(ctx, user)
	return nil
}

// Login prompts for credentials. A failed login only says so; the reason
// is not exposed.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user := a.session.Login(rctx, email, string(password))
	if user == nil {
		a.login.Set(nil)
		fmt.Fprintln(a.out, "Login failed: wrong email or password, or server unreachable")
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", user.DisplayName())
	a.signedIn(ctx, user)
	return nil
}

// Logout signs out and clears the cached credentials, even when the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	a.session.Logout(rctx)
	a.login.Set(nil)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
