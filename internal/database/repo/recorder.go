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

// RecorderStore persists recorder assets.
type RecorderStore struct {
	DB *sql.DB
}

// GetRecorderStore returns a recorder store instance with injected database.
func GetRecorderStore(db *sql.DB) *RecorderStore {
	return &RecorderStore{
		DB: db,
	}
}

// GetDB returns the database.
func (rs *RecorderStore) GetDB() *sql.DB {
	return rs.DB
}

// AddRecorder inserts a new recorder asset and sets its ID.
func (rs *RecorderStore) AddRecorder(r *models.Recorder) (int64, error) {
	switch {
	case r.Name == "":
		return 0, errors.New("must enter a name for the recorder")
	case r.Settings == nil:
		return 0, fmt.Errorf("recorder %q has no settings", r.Name)
	}

	if rs.recorderExists(r.Name) {
		return 0, fmt.Errorf("recorder with name %q already exists", r.Name)
	}

	settingsJSON, kind, err := marshalSettings(r)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	query := squirrel.
		Insert(consts.DBRecorders).
		Columns(
			consts.QRecName,
			consts.QRecKind,
			consts.QRecSettings,
			consts.QRecCreatedAt,
			consts.QRecUpdatedAt,
		).
		Values(
			r.Name,
			kind,
			string(settingsJSON),
			now,
			now,
		).
		RunWith(rs.DB)
	logSQL(query)

	result, err := query.Exec()
	if err != nil {
		return 0, fmt.Errorf("failed to insert recorder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now

	logging.S(0, "Added recorder %q (ID: %d, kind: %v)", r.Name, id, r.Kind)
	return id, nil
}

// SaveRecorder writes the recorder's current settings.
func (rs *RecorderStore) SaveRecorder(r *models.Recorder) error {
	if r.ID == 0 {
		return fmt.Errorf("recorder %q has not been added", r.Name)
	}

	settingsJSON, _, err := marshalSettings(r)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := squirrel.
		Update(consts.DBRecorders).
		Set(consts.QRecSettings, string(settingsJSON)).
		Set(consts.QRecUpdatedAt, now).
		Where(squirrel.Eq{consts.QRecID: r.ID}).
		RunWith(rs.DB)
	logSQL(query)

	res, err := query.Exec()
	if err != nil {
		return fmt.Errorf("failed to save recorder %q: %w", r.Name, err)
	}
	if err := checkOneRow(res, fmt.Sprintf("recorder ID %d", r.ID)); err != nil {
		return err
	}

	r.UpdatedAt = now
	logging.D(1, "Saved recorder %q: %s", r.Name, settingsJSON)
	return nil
}

// DeleteRecorder deletes a recorder and, through the foreign key, its inputs.
func (rs *RecorderStore) DeleteRecorder(name string) error {
	if name == "" {
		return errors.New("please provide the name of the recorder to delete")
	}

	query := squirrel.
		Delete(consts.DBRecorders).
		Where(squirrel.Eq{consts.QRecName: name}).
		RunWith(rs.DB)
	logSQL(query)

	res, err := query.Exec()
	if err != nil {
		return fmt.Errorf("failed to delete recorder: %w", err)
	}
	if err := checkOneRow(res, fmt.Sprintf("recorder %q", name)); err != nil {
		return err
	}

	logging.S(0, "Deleted recorder %q", name)
	return nil
}

// GetRecorder loads a recorder by name.
func (rs *RecorderStore) GetRecorder(name string) (r *models.Recorder, hasRows bool, err error) {
	query := squirrel.
		Select(
			consts.QRecID,
			consts.QRecName,
			consts.QRecKind,
			consts.QRecSettings,
			consts.QRecCreatedAt,
			consts.QRecUpdatedAt,
		).
		From(consts.DBRecorders).
		Where(squirrel.Eq{consts.QRecName: name}).
		RunWith(rs.DB)
	logSQL(query)

	r, err = scanRecorder(query.QueryRow())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load recorder %q: %w", name, err)
	}
	return r, true, nil
}

// ListRecorders returns every recorder updated at or after since, oldest first.
//
// A zero since returns all recorders.
func (rs *RecorderStore) ListRecorders(since time.Time) ([]*models.Recorder, error) {
	query := squirrel.
		Select(
			consts.QRecID,
			consts.QRecName,
			consts.QRecKind,
			consts.QRecSettings,
			consts.QRecCreatedAt,
			consts.QRecUpdatedAt,
		).
		From(consts.DBRecorders).
		OrderBy(consts.QRecUpdatedAt, consts.QRecName)

	if !since.IsZero() {
		query = query.Where(squirrel.GtOrEq{consts.QRecUpdatedAt: since.UTC()})
	}
	logSQL(query)

	rows, err := query.RunWith(rs.DB).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list recorders: %w", err)
	}
	defer rows.Close()

	var recorders []*models.Recorder
	for rows.Next() {
		r, err := scanRecorder(rows)
		if err != nil {
			return nil, err
		}
		recorders = append(recorders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating recorders: %w", err)
	}
	return recorders, nil
}

// ******************************** Private ********************************

// recorderExists returns true if a recorder with this name is stored.
func (rs *RecorderStore) recorderExists(name string) bool {
	var count int
	query := squirrel.
		Select("COUNT(1)").
		From(consts.DBRecorders).
		Where(squirrel.Eq{consts.QRecName: name}).
		RunWith(rs.DB)

	if err := query.QueryRow().Scan(&count); err != nil {
		logging.E("Failed to check if recorder %q exists: %v", name, err)
		return false
	}
	return count > 0
}

// marshalSettings returns the settings JSON and kind name of a recorder.
func marshalSettings(r *models.Recorder) (settingsJSON []byte, kind string, err error) {
	if r.Settings.Kind() != r.Kind {
		return nil, "", fmt.Errorf("recorder %q is %v but holds %v settings", r.Name, r.Kind, r.Settings.Kind())
	}
	settingsJSON, err = json.Marshal(r.Settings)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal settings for recorder %q: %w", r.Name, err)
	}
	kindText, err := r.Kind.MarshalText()
	if err != nil {
		return nil, "", err
	}
	return settingsJSON, string(kindText), nil
}

// scanRecorder scans one recorder row and decodes its settings by kind.
func scanRecorder(row squirrel.RowScanner) (*models.Recorder, error) {
	var (
		r            models.Recorder
		kind         string
		settingsJSON string
	)
	if err := row.Scan(&r.ID, &r.Name, &kind, &settingsJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}

	if err := r.Kind.UnmarshalText([]byte(kind)); err != nil {
		return nil, fmt.Errorf("recorder %q: %w", r.Name, err)
	}
	settings, err := models.NewSettings(r.Kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(settingsJSON), settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings for recorder %q: %w", r.Name, err)
	}
	r.Settings = settings
	return &r, nil
}
