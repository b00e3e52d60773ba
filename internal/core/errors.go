package core

import "errors"

var (
	// ErrStorage marks failures of the persistence layer.
	ErrStorage = errors.New("storage error")
	// ErrGateway marks failures of the remote generation call.
	ErrGateway = errors.New("gateway error")
	// ErrValidation marks malformed input.
	ErrValidation = errors.New("validation error")
)
