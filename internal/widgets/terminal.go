// Package widgets draws editor controls as indented terminal lines.
package widgets

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"framerec/internal/domain/consts"
	"framerec/internal/property"

	"github.com/spf13/cast"
)

const indentWidth = 2

// Terminal prints every control it is asked to draw and answers it from a
// script, leaving unscripted controls at their current value.
type Terminal struct {
	out     io.Writer
	script  *Script
	noColor bool
	errs    []error
}

// NewTerminal returns a terminal printing to out. A nil script draws read-only.
func NewTerminal(out io.Writer, script *Script, noColor bool) *Terminal {
	return &Terminal{
		out:     out,
		script:  script,
		noColor: noColor,
	}
}

// Err returns every scripted answer that could not be applied.
func (t *Terminal) Err() error {
	return errors.Join(t.errs...)
}

// Foldout prints a section header. A scripted answer opens or closes it.
func (t *Terminal) Foldout(indent int, label string, open bool) bool {
	if v, ok := t.script.answer(label); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			t.fail(label, v, err)
		} else {
			open = b
		}
	}

	marker := "v"
	if !open {
		marker = ">"
	}
	t.line(indent, t.color(consts.ColorCyan, marker+" "+label))
	return open
}

// Field prints the field's value, parsing a scripted answer into a new one.
func (t *Terminal) Field(indent int, f property.Field, label string) (any, error) {
	cur := f.Get()
	v, ok := t.script.answer(label)
	if !ok {
		t.line(indent, fmt.Sprintf("%s: %v", label, cur))
		return cur, nil
	}

	next, err := f.Parse(v)
	if err != nil {
		return nil, err
	}
	t.changed(indent, label, cur, next)
	return next, nil
}

// Toggle prints a checkbox.
func (t *Terminal) Toggle(indent int, label string, value bool) bool {
	if v, ok := t.script.answer(label); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			t.fail(label, v, err)
		} else if b != value {
			t.changed(indent, label, value, b)
			return b
		}
	}
	t.line(indent, fmt.Sprintf("%s: %t", label, value))
	return value
}

// Choice prints the options. A scripted answer is an option name or index.
func (t *Terminal) Choice(indent int, label string, current int, options []string) int {
	if v, ok := t.script.answer(label); ok {
		if i := choose(v, options); i >= 0 {
			if i != current {
				t.changed(indent, label, option(options, current), options[i])
			}
			current = i
		} else {
			t.fail(label, v, fmt.Errorf("want one of %s", strings.Join(options, ", ")))
		}
	}
	t.line(indent, fmt.Sprintf("%s: %s (%s)", label, option(options, current), strings.Join(options, " | ")))
	return current
}

// TextField prints a text value.
func (t *Terminal) TextField(indent int, label, value string) string {
	if v, ok := t.script.answer(label); ok && v != value {
		t.changed(indent, label, value, v)
		return v
	}
	t.line(indent, fmt.Sprintf("%s: %s", label, value))
	return value
}

// FolderPicker returns a scripted directory for title, or current.
func (t *Terminal) FolderPicker(indent int, title, current string) string {
	v, ok := t.script.answer(title)
	if !ok || v == current {
		return current
	}
	t.changed(indent, title, current, v)
	return v
}

// Label prints text.
func (t *Terminal) Label(indent int, text string) {
	t.line(indent, text)
}

// ******************************** Private ********************************

func (t *Terminal) line(indent int, s string) {
	fmt.Fprintf(t.out, "%s%s\n", strings.Repeat(" ", indent*indentWidth), s)
}

func (t *Terminal) changed(indent int, label string, from, to any) {
	t.line(indent, fmt.Sprintf("%s: %v -> %s", label, from, t.color(consts.ColorGreen, fmt.Sprint(to))))
}

func (t *Terminal) fail(label, value string, err error) {
	t.errs = append(t.errs, fmt.Errorf("invalid value %q for %q: %w", value, label, err))
}

func (t *Terminal) color(c, s string) string {
	if t.noColor {
		return s
	}
	return c + s + consts.ColorReset
}

// choose resolves an option name (case-insensitive) or index.
func choose(v string, options []string) int {
	for i, o := range options {
		if strings.EqualFold(o, v) {
			return i
		}
	}
	if i, err := cast.ToIntE(v); err == nil && i >= 0 && i < len(options) {
		return i
	}
	return -1
}

func option(options []string, i int) string {
	if i < 0 || i >= len(options) {
		return "?"
	}
	return options[i]
}
