package service

import "errors"

// Sentinel errors for the client-error taxonomy. Services wrap them with
// context; handlers map them to HTTP statuses with errors.Is. All of them
// are raised before any persistent write, so a failed operation never
// leaves partial state behind.
var (
	// ErrNotFound: a referenced user, connection or moment does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the caller is not authorized for the target.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput: a malformed status, slot or field value.
	ErrInvalidInput = errors.New("invalid input")
)
