package editor

import (
	"framerec/internal/property"
)

// Widgets draws the controls of one inspection pass.
//
// Every call takes the indent level it is drawn at and returns the value the
// operator left in the control.
type Widgets interface {
	// Foldout draws a section header and returns its new expansion state.
	Foldout(indent int, label string, open bool) bool
	// Field draws a labelled control for f and returns the edited value.
	Field(indent int, f property.Field, label string) (any, error)
	// Toggle draws a checkbox.
	Toggle(indent int, label string, value bool) bool
	// Choice draws a popup over options and returns the selected index.
	Choice(indent int, label string, current int, options []string) int
	// TextField draws a free text input.
	TextField(indent int, label, value string) string
	// FolderPicker offers a directory chooser, returning current if cancelled.
	FolderPicker(indent int, title, current string) string
	// Label draws static text.
	Label(indent int, text string)
}

// field draws f through w and writes the result back.
func field(w Widgets, indent int, f property.Field, label string) error {
	v, err := w.Field(indent, f, label)
	if err != nil {
		return err
	}
	return f.Put(v)
}

// toggle draws a checkbox bound to h.
func toggle(w Widgets, indent int, h *property.Handle[bool], label string) error {
	return h.Set(w.Toggle(indent, label, h.Value()))
}
