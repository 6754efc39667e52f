// Package models holds structs for modelling data, e.g. recorder settings, input settings, etc.
package models

import (
	"fmt"
	"time"

	"framerec/internal/domain/enums"
)

// Recorder is the persisted asset for one recording session configuration.
//
// Settings holds the concrete settings root; its input sequence references
// InputSettings children persisted alongside it.
type Recorder struct {
	ID        int64              `db:"id"`
	Name      string             `db:"name"`
	Kind      enums.RecorderKind `db:"kind"`
	Settings  Settings           `db:"settings"`
	CreatedAt time.Time          `db:"created_at"`
	UpdatedAt time.Time          `db:"updated_at"`
}

// Settings is implemented by every concrete settings root.
type Settings interface {
	// Base returns the settings shared by every recorder kind.
	Base() *RecorderSettings
	// Kind returns the recorder kind tag.
	Kind() enums.RecorderKind
	// DefaultInputs builds one fresh input per required input role.
	DefaultInputs() []*InputSettings
	// Validate reports the first setting that would stop a capture.
	Validate() error
}

// settingsFactories constructs a default settings root per recorder kind.
var settingsFactories = map[enums.RecorderKind]func() Settings{
	enums.RecorderImage: func() Settings { return NewImageRecorderSettings() },
}

// NewSettings returns default settings for a recorder kind.
func NewSettings(kind enums.RecorderKind) (Settings, error) {
	f, ok := settingsFactories[kind]
	if !ok {
		return nil, fmt.Errorf("no settings registered for recorder kind %v", kind)
	}
	return f(), nil
}

// NewRecorder returns an unsaved recorder asset of the given kind.
func NewRecorder(name string, kind enums.RecorderKind) (*Recorder, error) {
	s, err := NewSettings(kind)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		Name:     name,
		Kind:     kind,
		Settings: s,
	}, nil
}

// IsValid reports whether the recorder settings can be handed to a capture.
func (r *Recorder) IsValid() bool {
	return r.Settings != nil && r.Settings.Validate() == nil
}
