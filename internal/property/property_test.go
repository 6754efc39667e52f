package property_test

import (
	"errors"
	"testing"

	"framerec/internal/domain/enums"
	"framerec/internal/domain/errs"
	"framerec/internal/models"
	"framerec/internal/property"
)

var (
	selStartFrame = property.Select(func(s *models.RecorderSettings) *int { return &s.StartFrame })
	selInputs     = property.Select(func(s *models.RecorderSettings) *[]string { return &s.Inputs })
	selMode       = property.Select(func(s *models.RecorderSettings) *enums.DurationMode { return &s.DurationMode })
	selImageBase  = property.Select(func(s *models.ImageRecorderSettings) *models.RecorderSettings { return &s.RecorderSettings })
	selFileName   = property.Select(func(s *models.ImageRecorderSettings) *string { return &s.BaseFileName })
	selFlip       = property.Select(func(in *models.InputSettings) *bool { return &in.CBRenderTexture.FlipVertical })
)

func TestFind_SameSelectorObservesSameWrite(t *testing.T) {
	s := models.DefaultRecorderSettings()
	doc, err := property.NewDocument(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := property.Find(property.NewCache(), doc, selStartFrame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := property.Find(property.NewCache(), doc, selStartFrame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := first.Set(42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := second.Value(); got != 42 {
		t.Fatalf("expected second handle to read 42, got %d", got)
	}
	if first.Path() != second.Path() {
		t.Fatalf("expected identical paths, got %q and %q", first.Path(), second.Path())
	}
}

func TestFind_CachesPerDocumentAndSelector(t *testing.T) {
	s := models.DefaultRecorderSettings()
	doc, err := property.NewDocument(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := property.NewCache()

	a, err := property.Find(c, doc, selStartFrame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := property.Find(c, doc, selStartFrame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("expected cached handle to be reused")
	}

	other := models.DefaultRecorderSettings()
	otherDoc, err := property.NewDocument(&other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := property.Find(c, otherDoc, selStartFrame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 cached handles, got %d", c.Len())
	}

	c.Forget(otherDoc)
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached handle after forgetting a document, got %d", c.Len())
	}
	if again, _ := property.Find(c, doc, selStartFrame); again != a {
		t.Fatalf("expected handles of other documents to survive")
	}

	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after reset, got %d", c.Len())
	}
}

func TestResolve_Paths(t *testing.T) {
	img := models.NewImageRecorderSettings()
	imgDoc, err := property.NewDocument(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start, err := property.Resolve(imgDoc, property.Via(selImageBase, selStartFrame))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Path() != "start_frame" {
		t.Fatalf("expected embedded field to flatten to %q, got %q", "start_frame", start.Path())
	}

	name, err := property.Resolve(imgDoc, selFileName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name.Path() != "base_file_name" {
		t.Fatalf("expected %q, got %q", "base_file_name", name.Path())
	}

	in := models.NewCBRenderTextureInput()
	inDoc, err := property.NewDocument(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flip, err := property.Resolve(inDoc, selFlip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flip.Path() != "cb_render_texture.flip_vertical" {
		t.Fatalf("expected nested path, got %q", flip.Path())
	}
}

func TestResolve_SelectorErrors(t *testing.T) {
	stray := 7
	tests := []struct {
		name string
		sel  *property.Selector[models.InputSettings, bool]
	}{
		{
			name: "nil payload",
			sel:  property.Select(func(in *models.InputSettings) *bool { return &in.RenderTexture.FlipVertical }),
		},
		{
			name: "returns nil",
			sel:  property.Select(func(in *models.InputSettings) *bool { return nil }),
		},
		{
			name: "field of another object",
			sel: property.Select(func(in *models.InputSettings) *bool {
				b := stray > 0
				return &b
			}),
		},
	}

	in := models.NewCBRenderTextureInput()
	doc, err := property.NewDocument(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := property.Resolve(doc, tt.sel)
			var selErr *errs.SelectorError
			if !errors.As(err, &selErr) {
				t.Fatalf("expected SelectorError, got %v", err)
			}
		})
	}

	// Fields excluded from serialization have no backing slot.
	recID := property.Select(func(in *models.InputSettings) *int64 { return &in.RecorderID })
	if _, err := property.Resolve(doc, recID); err == nil {
		t.Fatalf("expected error for unserialized field, got nil")
	}

	// The embedded base itself is flattened and has no path of its own.
	img := models.NewImageRecorderSettings()
	imgDoc, err := property.NewDocument(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := property.Resolve(imgDoc, selImageBase); err == nil {
		t.Fatalf("expected error for flattened embedded struct, got nil")
	}
}

func TestDocument_ApplyReportsChanges(t *testing.T) {
	s := models.DefaultRecorderSettings()
	doc, err := property.NewDocument(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changed, err := doc.Apply()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatalf("expected no change without edits")
	}

	mode, err := property.Resolve(doc, selMode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inputs, err := property.Resolve(doc, selInputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mode.Set(enums.DurationTimeInterval); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inputs.Set(append(inputs.Value(), "a", "b")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.DurationMode != enums.DurationManual {
		t.Fatalf("expected target untouched before apply, got %v", s.DurationMode)
	}

	changed, err = doc.Apply()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatalf("expected change to be reported")
	}
	if s.DurationMode != enums.DurationTimeInterval {
		t.Fatalf("expected %v, got %v", enums.DurationTimeInterval, s.DurationMode)
	}
	if len(s.Inputs) != 2 || s.Inputs[0] != "a" || s.Inputs[1] != "b" {
		t.Fatalf("expected inputs [a b], got %v", s.Inputs)
	}

	// Writing the same value back is not a change.
	if err := mode.Set(enums.DurationTimeInterval); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Modified() {
		t.Fatalf("expected rewrite of identical value to leave the document unmodified")
	}
}

func TestHandle_ParseAndPut(t *testing.T) {
	s := models.DefaultRecorderSettings()
	doc, err := property.NewDocument(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mode, err := property.Resolve(doc, selMode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start, err := property.Resolve(doc, selStartFrame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := mode.Parse("singleframe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mode.Put(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode.Value() != enums.DurationSingleFrame {
		t.Fatalf("expected %v, got %v", enums.DurationSingleFrame, mode.Value())
	}

	if _, err := start.Parse("twelve"); err == nil {
		t.Fatalf("expected parse error for non-numeric frame")
	}
	if err := start.Put("12"); err == nil {
		t.Fatalf("expected type error putting a string into an int field")
	}
	v, err = start.Parse("12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := start.Put(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Value() != 12 {
		t.Fatalf("expected 12, got %d", start.Value())
	}
}

func TestHandle_StageDefersWrite(t *testing.T) {
	s := models.DefaultRecorderSettings()
	doc, err := property.NewDocument(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, err := property.Resolve(doc, selInputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	commit, err := h.Stage([]string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := h.Value(); len(got) != 0 {
		t.Fatalf("expected staged write to stay hidden, got %v", got)
	}

	commit()
	if got := h.Value(); len(got) != 2 || got[1] != "b" {
		t.Fatalf("expected [a b] after commit, got %v", got)
	}
}
