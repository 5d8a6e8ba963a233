package core

import (
	"errors"
)

var (
	// ErrInvalidArgument is returned when a descriptor or option fails validation at construction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAttributeNotFound is returned when a named vertex attribute does not exist in a program.
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrResourceExhausted is returned when the driver runs out of memory for a buffer store.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInvalidState is returned when the driver binding state forbids the operation.
	ErrInvalidState = errors.New("invalid state")
)
