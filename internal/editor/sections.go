package editor

import (
	"fmt"
)

// Section identifies one foldout group of a recorder editor.
type Section int

const (
	SectionInput Section = iota
	SectionOutput
	SectionEncoding
	SectionTime
	SectionBounds
	sectionCount
)

var sectionLabels = [sectionCount]string{
	SectionInput:    "Input(s)",
	SectionOutput:   "Output(s)",
	SectionEncoding: "Encoding",
	SectionTime:     "Time",
	SectionBounds:   "Bounds / Limits",
}

// String returns the section header label.
func (s Section) String() string {
	if s < 0 || s >= sectionCount {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionLabels[s]
}

// SectionFunc renders the body of a section at the given indent.
type SectionFunc func(w Widgets, indent int) error

// Routines holds the body routine of each section.
//
// A nil routine hides the section, header included.
type Routines [sectionCount]SectionFunc

// Sections is the expansion state of one editing session's foldouts.
type Sections struct {
	open [sectionCount]bool
}

// NewSections returns every section expanded.
func NewSections() Sections {
	var s Sections
	for i := range s.open {
		s.open[i] = true
	}
	return s
}

// Expanded reports whether sec is expanded.
func (s *Sections) Expanded(sec Section) bool {
	if sec < 0 || sec >= sectionCount {
		return false
	}
	return s.open[sec]
}

// Set expands or collapses sec.
func (s *Sections) Set(sec Section, open bool) {
	if sec < 0 || sec >= sectionCount {
		return
	}
	s.open[sec] = open
}

// render draws each section in order, running the routine of every expanded one.
//
// Bounds is skipped entirely unless showBounds is set.
func (s *Sections) render(w Widgets, indent int, routines *Routines, showBounds bool) error {
	for sec := SectionInput; sec < sectionCount; sec++ {
		fn := routines[sec]
		if fn == nil || (sec == SectionBounds && !showBounds) {
			continue
		}

		s.open[sec] = w.Foldout(indent, sec.String(), s.open[sec])
		if !s.open[sec] {
			continue
		}
		if err := fn(w, indent+1); err != nil {
			return fmt.Errorf("%s: %w", sec, err)
		}
	}
	return nil
}
