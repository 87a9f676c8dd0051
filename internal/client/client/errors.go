package client

import "errors"

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrEmailInUse       = errors.New("email already in use")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNoSession        = errors.New("no active session")
)
