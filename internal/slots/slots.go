// Package slots manages the ordered input sub-settings attached to a recorder.
//
// Each slot of the recorder's input sequence references one persisted child by
// identity name. Children are created, swapped and destroyed only through a
// Manager, so no child is ever left attached without a slot referencing it.
package slots

import (
	"errors"
	"fmt"
	"slices"

	"framerec/internal/contracts"
	"framerec/internal/domain/errs"
	"framerec/internal/models"
	"framerec/internal/property"
	"framerec/internal/utils/logging"

	"github.com/google/uuid"
)

// Defaults builds the default input set for a settings root.
type Defaults interface {
	DefaultInputs() []*models.InputSettings
}

// DefaultsFunc adapts a plain function to Defaults.
type DefaultsFunc func() []*models.InputSettings

// DefaultInputs calls f.
func (f DefaultsFunc) DefaultInputs() []*models.InputSettings {
	return f()
}

// Manager owns the input children of one recorder during an editing session.
type Manager struct {
	store  contracts.InputStore
	parent *models.Recorder
	refs   *property.Handle[[]string]
	live   map[string]*models.InputSettings
}

// New loads the recorder's attached inputs and returns a manager writing slot
// references through refs.
func New(store contracts.InputStore, parent *models.Recorder, refs *property.Handle[[]string]) (*Manager, error) {
	children, err := store.GetInputs(parent.ID)
	if err != nil {
		return nil, errs.Persistence("load inputs", parent.Name, err)
	}

	live := make(map[string]*models.InputSettings, len(children))
	for _, c := range children {
		live[c.Name] = c
	}

	m := &Manager{
		store:  store,
		parent: parent,
		refs:   refs,
		live:   live,
	}

	for i, name := range refs.Value() {
		if _, ok := live[name]; !ok {
			logging.W("Recorder %q slot %d references input %q, which is not attached", parent.Name, i, name)
		}
	}
	return m, nil
}

// Len returns the number of slots.
func (m *Manager) Len() int {
	return len(m.refs.Value())
}

// At returns the input occupying slot i.
func (m *Manager) At(i int) (*models.InputSettings, error) {
	refs := m.refs.Value()
	if i < 0 || i >= len(refs) {
		return nil, &errs.InvalidSlotError{Index: i, Len: len(refs)}
	}
	in, ok := m.live[refs[i]]
	if !ok {
		return nil, fmt.Errorf("input %q in slot %d is not attached to recorder %q", refs[i], i, m.parent.Name)
	}
	return in, nil
}

// Append gives in a fresh identity, persists it as a child of the recorder and
// adds it as the last slot.
func (m *Manager) Append(in *models.InputSettings) error {
	if err := m.attach(in); err != nil {
		return err
	}

	refs := append(m.refs.Value(), in.Name)
	if err := m.refs.Set(refs); err != nil {
		return m.rollback(in, err)
	}

	m.live[in.Name] = in
	logging.D(1, "Appended %v input %q to recorder %q at slot %d", in.Kind, in.Name, m.parent.Name, len(refs)-1)
	return nil
}

// Replace swaps the input in slot i for in.
//
// The new input is attached and the previous occupant detached and disposed
// before the slot reference changes. The new reference is encoded before
// disposal, so once the old input is gone the slot update cannot fail. If
// disposal fails the new input is detached again, leaving the slot as it was.
func (m *Manager) Replace(i int, in *models.InputSettings) error {
	refs := m.refs.Value()
	if i < 0 || i >= len(refs) {
		return &errs.InvalidSlotError{Index: i, Len: len(refs)}
	}
	oldName := refs[i]
	old := m.live[oldName]

	if err := m.attach(in); err != nil {
		return err
	}

	refs = slices.Clone(refs)
	refs[i] = in.Name
	commit, err := m.refs.Stage(refs)
	if err != nil {
		return m.rollback(in, err)
	}

	if old != nil {
		if err := m.store.DetachAndDispose(old); err != nil {
			return m.rollback(in, errs.Persistence("dispose", old.Name, err))
		}
		delete(m.live, old.Name)
	}
	commit()

	m.live[in.Name] = in
	if old != nil {
		logging.D(1, "Replaced %v input %q with %v input %q in slot %d of recorder %q",
			old.Kind, old.Name, in.Kind, in.Name, i, m.parent.Name)
	}
	return nil
}

// EnsureDefaults fills an empty input sequence from the root's default set.
//
// A non-empty sequence is left untouched.
func (m *Manager) EnsureDefaults(root Defaults) error {
	if m.Len() > 0 {
		return nil
	}
	for _, in := range root.DefaultInputs() {
		if err := m.Append(in); err != nil {
			return fmt.Errorf("failed to add default inputs to recorder %q: %w", m.parent.Name, err)
		}
	}
	return nil
}

// ******************************** Private ********************************

// attach names in and persists it under the recorder. On failure in keeps
// its previous name.
func (m *Manager) attach(in *models.InputSettings) error {
	if in == nil {
		return errors.New("cannot attach a nil input")
	}
	if in.Attached() {
		return fmt.Errorf("input %q is already attached to recorder %d", in.Name, in.RecorderID)
	}
	prev := in.Name
	in.Name = uuid.NewString()
	if err := m.store.AttachInput(m.parent, in); err != nil {
		name := in.Name
		in.Name = prev
		return errs.Persistence("attach", name, err)
	}
	return nil
}

// rollback disposes a just-attached input after a later step failed.
func (m *Manager) rollback(in *models.InputSettings, cause error) error {
	if err := m.store.DetachAndDispose(in); err != nil {
		return errors.Join(cause, errs.Persistence("rollback", in.Name, err))
	}
	return cause
}
