// Package cli provides the interactive todosync command-line client.
//
// It wires configuration, the local credential cache, the remote client,
// the session manager and the view stores behind a small REPL. On start
// the previous session is resumed from the cache when possible; a
// background watcher reports whether the server is reachable.
//
// Commands:
//   - register / login / logout
//   - lists, newlist, rename, add, done, rmlist
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
