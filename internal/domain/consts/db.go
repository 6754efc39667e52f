// Package consts holds various global, unchanging values.
package consts

// Tables
const (
	DBRecorders      = "recorders"
	DBRecorderInputs = "recorder_inputs"
)

// Recorder
const (
	QRecID        = "id"
	QRecName      = "name"
	QRecKind      = "kind"
	QRecSettings  = "settings"
	QRecCreatedAt = "created_at"
	QRecUpdatedAt = "updated_at"
)

// Recorder inputs
const (
	QInputName       = "name"
	QInputRecorderID = "recorder_id"
	QInputKind       = "kind"
	QInputSettings   = "settings"
	QInputCreatedAt  = "created_at"
	QInputUpdatedAt  = "updated_at"
)
