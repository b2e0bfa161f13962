package param

import "errors"

var (
	// ErrUnknownKind indicates a parameter name that matches no kind.
	ErrUnknownKind = errors.New("param: unknown parameter kind")
)
