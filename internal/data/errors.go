package data

import (
	"errors"
	"fmt"
)

var (
	// ErrPageNotFound is returned when a page id does not resolve.
	ErrPageNotFound = errors.New("page not found")
	// ErrMissingReference is matched by every *MissingReferenceError.
	ErrMissingReference = errors.New("missing reference")
)

// DeserializationError reports a persisted blob that could not be decoded.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("failed to decode stored value %q: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// WriteError reports a failed write to the key-value store. The in-memory
// state stays authoritative when this happens.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write stored value %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// MissingReferenceError reports a tab or section id that no longer exists.
type MissingReferenceError struct {
	Kind string // "tab" or "section"
	ID   string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s %q no longer exists", e.Kind, e.ID)
}

func (e *MissingReferenceError) Unwrap() error { return ErrMissingReference }
