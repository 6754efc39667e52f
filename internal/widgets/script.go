package widgets

import (
	"fmt"
	"slices"
	"strings"
)

// Script holds operator answers keyed by control label.
type Script struct {
	answers map[string]string
	used    map[string]bool
}

// ParseScript parses "Label=value" assignments. Labels are matched
// case-insensitively; a later assignment to the same label wins.
func ParseScript(assignments []string) (*Script, error) {
	s := &Script{
		answers: make(map[string]string, len(assignments)),
		used:    make(map[string]bool, len(assignments)),
	}
	for _, a := range assignments {
		label, value, ok := strings.Cut(a, "=")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			return nil, fmt.Errorf("invalid assignment %q, want Label=value", a)
		}
		s.answers[strings.ToLower(label)] = strings.TrimSpace(value)
	}
	return s, nil
}

// answer returns the scripted value for label and marks it used.
func (s *Script) answer(label string) (string, bool) {
	if s == nil {
		return "", false
	}
	key := strings.ToLower(label)
	v, ok := s.answers[key]
	if ok {
		s.used[key] = true
	}
	return v, ok
}

// Unused returns the labels that no drawn control consumed, sorted.
func (s *Script) Unused() []string {
	if s == nil {
		return nil
	}
	var out []string
	for k := range s.answers {
		if !s.used[k] {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
