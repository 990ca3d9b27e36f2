// Package store implements the document store every widget persists to:
// collections of small records with owner-scoped, ordered queries and
// push-based live subscriptions. Writes go straight through; the view
// layer is expected to update only when the subscription echoes the
// change back.
package store

import (
	"errors"
	"fmt"
)

// ErrNotFound marks writes that matched no record (wrong id, or a record
// owned by someone else).
var ErrNotFound = errors.New("record not found")

// ValidationError is a local input failure. The write is never attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// WriteError is a rejected mutation. State is left untouched; there is no
// retry and no queued replay.
type WriteError struct {
	Op         string
	Collection string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError is a failed query or snapshot refresh.
type ReadError struct {
	Collection string
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Collection, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// PermissionError covers requests made without a usable identity.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string { return e.Reason }
