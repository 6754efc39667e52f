package editor

import (
	"fmt"
	"slices"
	"sync"

	"framerec/internal/contracts"
	"framerec/internal/domain/enums"
	"framerec/internal/models"

	"golang.org/x/text/cases"
)

// Factory builds the editor for one recorder.
type Factory func(store contracts.Store, rec *models.Recorder) (Inspector, error)

type registration struct {
	category string
	factory  Factory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[enums.RecorderKind]registration)
)

// Register maps a recorder kind to its editor, listed under category.
//
// Registering the same kind twice panics.
func Register(kind enums.RecorderKind, category string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if f == nil {
		panic("editor: Register factory is nil")
	}
	if _, dup := registry[kind]; dup {
		panic(fmt.Sprintf("editor: Register called twice for %v", kind))
	}
	registry[kind] = registration{category: category, factory: f}
}

// Category returns the category a recorder kind's editor is listed under.
func Category(kind enums.RecorderKind) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	r, ok := registry[kind]
	return r.category, ok
}

// Kinds returns the recorder kinds listed under category, compared case-insensitively.
func Kinds(category string) []enums.RecorderKind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	fold := cases.Fold()
	want := fold.String(category)
	var kinds []enums.RecorderKind
	for k, r := range registry {
		if fold.String(r.category) == want {
			kinds = append(kinds, k)
		}
	}
	slices.Sort(kinds)
	return kinds
}

// Open builds and enables the editor for rec.
func Open(store contracts.Store, rec *models.Recorder) (Inspector, error) {
	registryMu.RLock()
	r, ok := registry[rec.Kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no editor registered for %v recorders", rec.Kind)
	}

	ed, err := r.factory(store, rec)
	if err != nil {
		return nil, err
	}
	ed.Awake()
	if err := ed.OnEnable(); err != nil {
		return nil, err
	}
	return ed, nil
}
