// Package errs holds the error kinds raised while editing recorder settings.
package errs

import (
	"fmt"
)

// SelectorError is returned when a field selector cannot be mapped onto the
// serialized form of the object it was resolved against.
type SelectorError struct {
	Type   string
	Reason string
}

// Error implements the error interface.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("cannot resolve field selector on %s: %s", e.Type, e.Reason)
}

// InvalidSlotError is returned for an input slot index outside the input sequence.
type InvalidSlotError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("input slot %d out of range (have %d)", e.Index, e.Len)
}

// PersistenceError wraps a failure reported by the persisted-object store.
//
// After one of these the in-memory editing state may disagree with the store,
// so the editing session should be reloaded.
type PersistenceError struct {
	Op   string
	Name string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s failed for %q: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying store error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a *PersistenceError, passing nil through.
func Persistence(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Name: name, Err: err}
}
