// Package client talks to the todosync backend.
//
// # Overview
//
// Two transport-agnostic contracts describe what the session and list layers
// consume from the remote side:
//  1. AuthClient: create an identity, authenticate, set the display name and
//     sign out.
//  2. DocumentStore: query, upsert and delete schemaless documents.
//
// GRPCClient implements both over a single gRPC connection. It keeps the
// live session as an oauth2.Token, attaches it as a bearer token to every
// call, and maps gRPC status codes to the sentinel errors in errors.go.
//
// # Error Handling
//
// Callers match conditions with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrPermissionDenied, ErrEmailInUse, ErrInvalidArgument, ErrNoSession.
//
// Operations accept a context.Context; no timeout is applied here beyond what
// the caller's context or the transport enforces.
package client
