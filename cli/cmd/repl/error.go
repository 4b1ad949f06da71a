package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoAssign    = errors.New("argument assignment unsupported")
)
