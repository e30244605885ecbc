package interview

import "errors"

var (
	// ErrNotFound signals that a candidate, session or meeting does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals an attempt to reuse a single-attempt session.
	ErrConflict = errors.New("session already completed")

	// ErrInvalidState signals a round-transition precondition violation.
	ErrInvalidState = errors.New("invalid state")

	// ErrUpstream signals that the LLM returned an error or unusable content
	// where the content was essential.
	ErrUpstream = errors.New("upstream failure")
)
