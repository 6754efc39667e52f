// Package property binds typed field selectors on settings objects to handles
// into a serialized JSON copy of those objects.
//
// Edits go through handles into the document; Apply copies the document back
// into the target and reports whether anything changed since the last Update.
package property

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// buffer is the serialized backing store shared by a document and its handles.
type buffer struct {
	data []byte
}

// Document is the serialized form of one settings object.
type Document[T any] struct {
	target   *T
	buf      *buffer
	snapshot []byte
}

// NewDocument serializes target into a new document.
func NewDocument[T any](target *T) (*Document[T], error) {
	if target == nil {
		return nil, fmt.Errorf("cannot build document for nil %T", target)
	}
	d := &Document[T]{
		target: target,
		buf:    new(buffer),
	}
	if err := d.Update(); err != nil {
		return nil, err
	}
	return d, nil
}

// Target returns the object the document was built from.
func (d *Document[T]) Target() *T {
	return d.target
}

// Update refreshes the document from the target and takes a change-detection snapshot.
func (d *Document[T]) Update() error {
	data, err := json.Marshal(d.target)
	if err != nil {
		return fmt.Errorf("failed to serialize %T: %w", d.target, err)
	}
	d.buf.data = data
	d.snapshot = bytes.Clone(data)
	return nil
}

// Modified reports whether the document differs from the last snapshot.
func (d *Document[T]) Modified() bool {
	return !bytes.Equal(d.snapshot, d.buf.data)
}

// Apply writes the document back into the target.
//
// Returns true if the document changed since the last Update.
func (d *Document[T]) Apply() (changed bool, err error) {
	if !d.Modified() {
		return false, nil
	}
	if err := json.Unmarshal(d.buf.data, d.target); err != nil {
		return false, fmt.Errorf("failed to apply edits to %T: %w", d.target, err)
	}
	d.snapshot = bytes.Clone(d.buf.data)
	return true, nil
}

// Bytes returns a copy of the current serialized form.
func (d *Document[T]) Bytes() []byte {
	return bytes.Clone(d.buf.data)
}
