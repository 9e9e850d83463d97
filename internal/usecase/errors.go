package usecase

import "github.com/cockroachdb/errors"

var (
	// ErrTransport marks network failures and responses that could not be decoded.
	ErrTransport = errors.New("transport failure")
	// ErrService marks responses where the roster API reported an error itself.
	ErrService = errors.New("service error")
	// ErrRender marks data that cannot be turned into player nodes.
	ErrRender = errors.New("render failure")

	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
