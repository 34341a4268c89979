package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound means the identifier names no document. Callers branch on it
// to show a not-found state rather than a transport error.
var ErrNotFound = errors.New("record not found")

// FetchError wraps a transport or auth failure while reading the store.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch from store: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError wraps a create or delete failure. Writes are never retried
// automatically; the caller surfaces the error and keeps its draft.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to %s record: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
