package repo

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"framerec/internal/domain/consts"
	"framerec/internal/models"
	"framerec/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// InputStore persists input sub-settings as children of recorder assets.
type InputStore struct {
	DB *sql.DB
}

// GetInputStore returns an input store instance with injected database.
func GetInputStore(db *sql.DB) *InputStore {
	return &InputStore{
		DB: db,
	}
}

// AttachInput inserts in as a child of parent.
func (is *InputStore) AttachInput(parent *models.Recorder, in *models.InputSettings) error {
	switch {
	case parent == nil || parent.ID == 0:
		return errors.New("cannot attach input to a recorder that has not been added")
	case in.Name == "":
		return errors.New("cannot attach an input without an identity name")
	case in.Attached():
		return fmt.Errorf("input %q is already attached to recorder ID %d", in.Name, in.RecorderID)
	}

	settingsJSON, kind, err := marshalInput(in)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := squirrel.
		Insert(consts.DBRecorderInputs).
		Columns(
			consts.QInputName,
			consts.QInputRecorderID,
			consts.QInputKind,
			consts.QInputSettings,
			consts.QInputCreatedAt,
			consts.QInputUpdatedAt,
		).
		Values(
			in.Name,
			parent.ID,
			kind,
			string(settingsJSON),
			now,
			now,
		).
		RunWith(is.DB)
	logSQL(query)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to attach input %q to recorder %q: %w", in.Name, parent.Name, err)
	}

	in.RecorderID = parent.ID
	in.CreatedAt = now
	in.UpdatedAt = now

	logging.D(1, "Attached %v input %q to recorder %q", in.Kind, in.Name, parent.Name)
	return nil
}

// DetachAndDispose deletes the input row and clears its owner.
func (is *InputStore) DetachAndDispose(in *models.InputSettings) error {
	if in.Name == "" {
		return errors.New("cannot dispose an input without an identity name")
	}

	query := squirrel.
		Delete(consts.DBRecorderInputs).
		Where(squirrel.Eq{consts.QInputName: in.Name}).
		RunWith(is.DB)
	logSQL(query)

	res, err := query.Exec()
	if err != nil {
		return fmt.Errorf("failed to dispose input %q: %w", in.Name, err)
	}
	if err := checkOneRow(res, fmt.Sprintf("input %q", in.Name)); err != nil {
		return err
	}

	logging.D(1, "Disposed %v input %q (was owned by recorder ID %d)", in.Kind, in.Name, in.RecorderID)
	in.RecorderID = 0
	return nil
}

// SaveInput writes the current settings of an attached input.
func (is *InputStore) SaveInput(in *models.InputSettings) error {
	if !in.Attached() {
		return fmt.Errorf("input %q is not attached to a recorder", in.Name)
	}

	settingsJSON, kind, err := marshalInput(in)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := squirrel.
		Update(consts.DBRecorderInputs).
		Set(consts.QInputKind, kind).
		Set(consts.QInputSettings, string(settingsJSON)).
		Set(consts.QInputUpdatedAt, now).
		Where(squirrel.Eq{consts.QInputName: in.Name}).
		RunWith(is.DB)
	logSQL(query)

	res, err := query.Exec()
	if err != nil {
		return fmt.Errorf("failed to save input %q: %w", in.Name, err)
	}
	if err := checkOneRow(res, fmt.Sprintf("input %q", in.Name)); err != nil {
		return err
	}

	in.UpdatedAt = now
	logging.D(1, "Saved input %q: %s", in.Name, settingsJSON)
	return nil
}

// GetInputs returns every input attached to the recorder.
func (is *InputStore) GetInputs(recorderID int64) ([]*models.InputSettings, error) {
	query := squirrel.
		Select(
			consts.QInputName,
			consts.QInputRecorderID,
			consts.QInputKind,
			consts.QInputSettings,
			consts.QInputCreatedAt,
			consts.QInputUpdatedAt,
		).
		From(consts.DBRecorderInputs).
		Where(squirrel.Eq{consts.QInputRecorderID: recorderID}).
		OrderBy(consts.QInputCreatedAt, consts.QInputName).
		RunWith(is.DB)
	logSQL(query)

	rows, err := query.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query inputs for recorder ID %d: %w", recorderID, err)
	}
	defer rows.Close()

	var inputs []*models.InputSettings
	for rows.Next() {
		var (
			in           models.InputSettings
			kind         string
			settingsJSON string
		)
		if err := rows.Scan(&in.Name, &in.RecorderID, &kind, &settingsJSON, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan input: %w", err)
		}
		if err := json.Unmarshal([]byte(settingsJSON), &in); err != nil {
			return nil, fmt.Errorf("failed to unmarshal input %q: %w", in.Name, err)
		}
		if got := in.Kind.String(); got != kind {
			return nil, fmt.Errorf("input %q is stored as %s but decodes as %s", in.Name, kind, got)
		}
		inputs = append(inputs, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating inputs: %w", err)
	}
	return inputs, nil
}

// ******************************** Private ********************************

// marshalInput returns the settings JSON and kind name of an input.
func marshalInput(in *models.InputSettings) (settingsJSON []byte, kind string, err error) {
	kindText, err := in.Kind.MarshalText()
	if err != nil {
		return nil, "", fmt.Errorf("input %q: %w", in.Name, err)
	}
	settingsJSON, err = json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal input %q: %w", in.Name, err)
	}
	return settingsJSON, string(kindText), nil
}
