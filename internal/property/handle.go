package property

import (
	"encoding"
	"encoding/json"
	"fmt"

	"framerec/internal/utils/logging"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Field is the untyped view of a handle, as seen by widget renderers.
type Field interface {
	// Path returns the field's location in the serialized document.
	Path() string
	// Get returns the current value.
	Get() any
	// Parse converts operator text into a value of the field's type.
	Parse(s string) (any, error)
	// Put stores a value of the field's type.
	Put(v any) error
}

// Handle reads and writes one field of a document's serialized form.
type Handle[V any] struct {
	buf  *buffer
	path string
}

// Path returns the field's location in the serialized document.
func (h *Handle[V]) Path() string {
	return h.path
}

// Value returns the field's current value, or the zero value if it is absent.
func (h *Handle[V]) Value() V {
	var v V
	res := gjson.GetBytes(h.buf.data, h.path)
	if !res.Exists() {
		return v
	}
	if err := json.Unmarshal([]byte(res.Raw), &v); err != nil {
		logging.E("Property %q holds %s, not a %T: %v", h.path, res.Raw, v, err)
		var zero V
		return zero
	}
	return v
}

// Set stores v into the document.
func (h *Handle[V]) Set(v V) error {
	commit, err := h.Stage(v)
	if err != nil {
		return err
	}
	commit()
	return nil
}

// Stage encodes v into a new revision of the document without storing it.
// The returned commit makes the revision current and cannot fail.
func (h *Handle[V]) Stage(v V) (commit func(), err error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize value for %q: %w", h.path, err)
	}
	data, err := sjson.SetRawBytes(h.buf.data, h.path, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", h.path, err)
	}
	return func() { h.buf.data = data }, nil
}

// Get returns the current value as an interface.
func (h *Handle[V]) Get() any {
	return h.Value()
}

// Put stores v, which must have the field's type.
func (h *Handle[V]) Put(v any) error {
	tv, ok := v.(V)
	if !ok {
		var want V
		return fmt.Errorf("property %q takes %T, got %T", h.path, want, v)
	}
	return h.Set(tv)
}

// Parse converts operator text into a value of the field's type.
func (h *Handle[V]) Parse(s string) (any, error) {
	var v V
	var err error

	switch p := any(&v).(type) {
	case encoding.TextUnmarshaler:
		err = p.UnmarshalText([]byte(s))
	case *string:
		*p = s
	case *bool:
		*p, err = cast.ToBoolE(s)
	case *int:
		*p, err = cast.ToIntE(s)
	case *float64:
		*p, err = cast.ToFloat64E(s)
	case *[]string:
		*p, err = cast.ToStringSliceE(s)
	default:
		err = json.Unmarshal([]byte(s), &v)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid value %q for %q: %w", s, h.path, err)
	}
	return v, nil
}
