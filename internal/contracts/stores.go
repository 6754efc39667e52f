// Package contracts defines interfaces that decouple the editing layer from storage implementations.
package contracts

import (
	"database/sql"
	"time"

	"framerec/internal/models"
)

// Store allows access to the main store repo methods.
type Store interface {
	RecorderStore() RecorderStore
	InputStore() InputStore
}

// RecorderStore allows access to recorder asset repo methods.
type RecorderStore interface {
	GetDB() *sql.DB

	// Add operations.
	AddRecorder(r *models.Recorder) (int64, error)

	// Update operations.
	SaveRecorder(r *models.Recorder) error

	// Delete operations.
	DeleteRecorder(name string) error

	// 'Get' operations.
	GetRecorder(name string) (r *models.Recorder, hasRows bool, err error)
	ListRecorders(since time.Time) ([]*models.Recorder, error)
}

// InputStore persists input sub-settings as children of a recorder asset.
type InputStore interface {
	// AttachInput registers in as a persisted child of parent.
	AttachInput(parent *models.Recorder, in *models.InputSettings) error
	// DetachAndDispose removes in from its parent and deletes it.
	DetachAndDispose(in *models.InputSettings) error
	// SaveInput writes the current state of an attached input.
	SaveInput(in *models.InputSettings) error
	// GetInputs enumerates every child currently attached to a recorder.
	GetInputs(recorderID int64) ([]*models.InputSettings, error)
}
