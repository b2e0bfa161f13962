package automation

import "errors"

var (
	// ErrUnknownOp indicates a script step with an unsupported op.
	ErrUnknownOp = errors.New("automation: unknown op")

	// ErrExpectation indicates an expect step whose value did not match.
	ErrExpectation = errors.New("automation: expectation failed")
)
