package abibin

import "errors"

var (
	// ErrNotFound is returned when neither the overrides nor the builtin
	// source know the requested ABI or BIN.
	ErrNotFound = errors.New("contract metadata not found")
	// ErrAlreadyExists is returned when an ABI or BIN is registered twice for
	// the same contract name.
	ErrAlreadyExists = errors.New("contract metadata already exists")
	// ErrInvalidArgument is returned for registration input of the wrong type
	// or shape.
	ErrInvalidArgument = errors.New("invalid argument")
)
