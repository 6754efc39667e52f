package editor

import (
	"database/sql"
	"errors"
	"slices"
	"testing"
	"time"

	"framerec/internal/contracts"
	"framerec/internal/domain/enums"
	"framerec/internal/domain/errs"
	"framerec/internal/models"
	"framerec/internal/property"
)

// scriptWidgets answers controls from maps and records every call.
type scriptWidgets struct {
	fields   map[string]string
	toggles  map[string]bool
	choices  map[string]int
	foldouts map[string]bool
	calls    []string
}

func (s *scriptWidgets) Foldout(indent int, label string, open bool) bool {
	s.calls = append(s.calls, "foldout:"+label)
	if v, ok := s.foldouts[label]; ok {
		return v
	}
	return open
}

func (s *scriptWidgets) Field(indent int, f property.Field, label string) (any, error) {
	s.calls = append(s.calls, "field:"+label)
	if text, ok := s.fields[label]; ok {
		return f.Parse(text)
	}
	return f.Get(), nil
}

func (s *scriptWidgets) Toggle(indent int, label string, value bool) bool {
	s.calls = append(s.calls, "toggle:"+label)
	if v, ok := s.toggles[label]; ok {
		return v
	}
	return value
}

func (s *scriptWidgets) Choice(indent int, label string, current int, options []string) int {
	s.calls = append(s.calls, "choice:"+label)
	if v, ok := s.choices[label]; ok {
		return v
	}
	return current
}

func (s *scriptWidgets) TextField(indent int, label, value string) string {
	s.calls = append(s.calls, "text:"+label)
	return value
}

func (s *scriptWidgets) FolderPicker(indent int, title, current string) string {
	s.calls = append(s.calls, "folder:"+title)
	return current
}

func (s *scriptWidgets) Label(indent int, text string) {
	s.calls = append(s.calls, "label:"+text)
}

// called reports whether any call matched entry.
func (s *scriptWidgets) called(entry string) bool {
	return slices.Contains(s.calls, entry)
}

// headers returns the section headers drawn, in order.
func (s *scriptWidgets) headers() []string {
	var out []string
	for _, c := range s.calls {
		if len(c) > 8 && c[:8] == "foldout:" {
			out = append(out, c[8:])
		}
	}
	return out
}

type fakeRecorders struct {
	saves   int
	saveErr error
}

func (f *fakeRecorders) GetDB() *sql.DB                                      { return nil }
func (f *fakeRecorders) AddRecorder(r *models.Recorder) (int64, error)       { return r.ID, nil }
func (f *fakeRecorders) DeleteRecorder(name string) error                    { return nil }
func (f *fakeRecorders) ListRecorders(time.Time) ([]*models.Recorder, error) { return nil, nil }

func (f *fakeRecorders) GetRecorder(string) (*models.Recorder, bool, error) {
	return nil, false, nil
}

func (f *fakeRecorders) SaveRecorder(r *models.Recorder) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	return nil
}

type fakeInputs struct {
	children map[string]*models.InputSettings
	saves    int
}

func (f *fakeInputs) AttachInput(parent *models.Recorder, in *models.InputSettings) error {
	in.RecorderID = parent.ID
	f.children[in.Name] = in
	return nil
}

func (f *fakeInputs) DetachAndDispose(in *models.InputSettings) error {
	if _, ok := f.children[in.Name]; !ok {
		return errors.New("not attached")
	}
	delete(f.children, in.Name)
	in.RecorderID = 0
	return nil
}

func (f *fakeInputs) SaveInput(in *models.InputSettings) error {
	f.saves++
	return nil
}

func (f *fakeInputs) GetInputs(recorderID int64) ([]*models.InputSettings, error) {
	var out []*models.InputSettings
	for _, c := range f.children {
		if c.RecorderID == recorderID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeStore struct {
	recs *fakeRecorders
	ins  *fakeInputs
}

func (s *fakeStore) RecorderStore() contracts.RecorderStore { return s.recs }
func (s *fakeStore) InputStore() contracts.InputStore       { return s.ins }

func newFakeStore() *fakeStore {
	return &fakeStore{
		recs: &fakeRecorders{},
		ins:  &fakeInputs{children: make(map[string]*models.InputSettings)},
	}
}

// openImage opens an image recorder editor after letting setup adjust the settings.
func openImage(t *testing.T, store *fakeStore, setup func(s *models.ImageRecorderSettings)) (Inspector, *models.ImageRecorderSettings) {
	t.Helper()

	rec, err := models.NewRecorder("cam", enums.RecorderImage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec.ID = 1
	settings := rec.Settings.(*models.ImageRecorderSettings)
	if setup != nil {
		setup(settings)
	}

	ed, err := Open(store, rec)
	if err != nil {
		t.Fatalf("failed to open editor: %v", err)
	}
	t.Cleanup(ed.OnDisable)
	return ed, settings
}

// inspect runs one pass and fails the test on error.
func inspect(t *testing.T, ed Inspector, w *scriptWidgets) bool {
	t.Helper()

	changed, err := ed.Inspect(w)
	if err != nil {
		t.Fatalf("unexpected inspection error: %v", err)
	}
	return changed
}

func TestInspect_SingleFrameMirrorsEndFrame(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		edit       string
		want       int
	}{
		{name: "edit start", start: 5, end: 5, edit: "7", want: 7},
		{name: "stale end", start: 3, end: 100, edit: "3", want: 3},
		{name: "back to zero", start: 12, end: 12, edit: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, s := openImage(t, newFakeStore(), func(s *models.ImageRecorderSettings) {
				s.DurationMode = enums.DurationSingleFrame
				s.StartFrame = tt.start
				s.EndFrame = tt.end
			})

			w := &scriptWidgets{fields: map[string]string{"Frame #": tt.edit}}
			inspect(t, ed, w)

			if s.StartFrame != tt.want || s.EndFrame != tt.want {
				t.Fatalf("expected start and end %d, got %d and %d", tt.want, s.StartFrame, s.EndFrame)
			}
			if w.called("field:Last frame") {
				t.Fatalf("single frame mode should not draw the last frame field")
			}
		})
	}
}

func TestInspect_FrameIntervalDoesNotMirror(t *testing.T) {
	ed, s := openImage(t, newFakeStore(), func(s *models.ImageRecorderSettings) {
		s.DurationMode = enums.DurationFrameInterval
		s.StartFrame = 10
		s.EndFrame = 50
	})

	inspect(t, ed, &scriptWidgets{fields: map[string]string{"First frame": "20"}})

	if s.StartFrame != 20 || s.EndFrame != 50 {
		t.Fatalf("expected 20/50, got %d/%d", s.StartFrame, s.EndFrame)
	}
}

func TestInspect_TimeIntervalFields(t *testing.T) {
	ed, s := openImage(t, newFakeStore(), func(s *models.ImageRecorderSettings) {
		s.DurationMode = enums.DurationTimeInterval
	})

	inspect(t, ed, &scriptWidgets{fields: map[string]string{"Start (sec)": "1.5", "End (sec)": "4"}})

	if s.StartTime != 1.5 || s.EndTime != 4 {
		t.Fatalf("expected interval [1.5, 4], got [%v, %v]", s.StartTime, s.EndTime)
	}
}

func TestInspect_FoldoutToggleLeavesSettingsAlone(t *testing.T) {
	store := newFakeStore()
	ed, s := openImage(t, store, nil)

	// The first pass seeds the default input.
	if !inspect(t, ed, &scriptWidgets{}) {
		t.Fatalf("expected seeding default inputs to count as a change")
	}
	before := *s
	saves := store.recs.saves

	w := &scriptWidgets{foldouts: map[string]bool{"Time": false, "Output(s)": false}}
	if inspect(t, ed, w) {
		t.Fatalf("expected collapsing sections to change nothing")
	}
	if store.recs.saves != saves {
		t.Fatalf("expected no save, got %d", store.recs.saves-saves)
	}
	if s.FrameRate != before.FrameRate || !slices.Equal(s.Inputs, before.Inputs) {
		t.Fatalf("settings changed: %+v", s)
	}
	if ed.Sections().Expanded(SectionTime) || ed.Sections().Expanded(SectionOutput) {
		t.Fatalf("expected Time and Output(s) to be collapsed")
	}
	if !ed.Sections().Expanded(SectionInput) {
		t.Fatalf("expected Input(s) to stay expanded")
	}
	if w.called("field:Frame rate mode") || w.called("field:Output format") {
		t.Fatalf("collapsed sections should not render their fields")
	}
}

func TestInspect_SectionHeaders(t *testing.T) {
	ed, _ := openImage(t, newFakeStore(), nil)

	w := &scriptWidgets{}
	inspect(t, ed, w)
	want := []string{"Input(s)", "Output(s)", "Time", "Bounds / Limits"}
	if got := w.headers(); !slices.Equal(got, want) {
		t.Fatalf("expected headers %v, got %v", want, got)
	}

	ed.SetShowBounds(false)
	w = &scriptWidgets{}
	inspect(t, ed, w)
	if got := w.headers(); !slices.Equal(got, want[:3]) {
		t.Fatalf("expected headers %v without bounds, got %v", want[:3], got)
	}
	if w.called("field:Recording Duration") {
		t.Fatalf("bounds fields drawn with bounds hidden")
	}
}

func TestInspect_VerboseToggleIsLast(t *testing.T) {
	ed, s := openImage(t, newFakeStore(), nil)

	w := &scriptWidgets{toggles: map[string]bool{"Verbose logging": true}}
	inspect(t, ed, w)

	if last := w.calls[len(w.calls)-1]; last != "toggle:Verbose logging" {
		t.Fatalf("expected verbose toggle last, got %q", last)
	}
	if !s.Verbose {
		t.Fatalf("expected verbose logging to be enabled")
	}
}

func TestInspect_FrameRateLabels(t *testing.T) {
	ed, s := openImage(t, newFakeStore(), nil)

	w := &scriptWidgets{}
	inspect(t, ed, w)
	if !w.called("field:Target fps") || !w.called("toggle:Sync. framerate") {
		t.Fatalf("constant mode should draw target fps and sync toggle, got %v", w.calls)
	}

	w = &scriptWidgets{fields: map[string]string{"Frame rate mode": "variable", "Max fps": "60"}}
	inspect(t, ed, w)
	if s.FrameRateMode != enums.FrameRateVariable || s.FrameRate != 60 {
		t.Fatalf("expected variable 60 fps, got %v %v", s.FrameRateMode, s.FrameRate)
	}
	if w.called("toggle:Sync. framerate") {
		t.Fatalf("variable mode should not draw the sync toggle")
	}
}

func TestInspect_CaptureMethodSwap(t *testing.T) {
	store := newFakeStore()
	ed, s := openImage(t, store, nil)

	inspect(t, ed, &scriptWidgets{})
	if len(s.Inputs) != 1 {
		t.Fatalf("expected one default input, got %v", s.Inputs)
	}
	first := s.Inputs[0]
	if in := store.ins.children[first]; in == nil || in.Kind != enums.InputCBRenderTexture {
		t.Fatalf("expected default command buffered input, got %+v", in)
	}

	w := &scriptWidgets{choices: map[string]int{"Image Generator": 1}}
	if !inspect(t, ed, w) {
		t.Fatalf("expected swapping the capture method to be a change")
	}
	if len(s.Inputs) != 1 || s.Inputs[0] == first {
		t.Fatalf("expected slot 0 to hold a new identity, got %v", s.Inputs)
	}
	if _, ok := store.ins.children[first]; ok {
		t.Fatalf("expected %q to be disposed", first)
	}
	if in := store.ins.children[s.Inputs[0]]; in == nil || in.Kind != enums.InputAdamBeauty {
		t.Fatalf("expected offscreen input in slot 0, got %+v", in)
	}
	if !w.called("field:Super sampling") {
		t.Fatalf("expected the new input's fields to be drawn in the same pass")
	}

	inspect(t, ed, &scriptWidgets{choices: map[string]int{"Image Generator": 0}})
	in := store.ins.children[s.Inputs[0]]
	if in == nil || in.Kind != enums.InputCBRenderTexture || !in.CBRenderTexture.FlipVertical {
		t.Fatalf("expected flipped command buffered input, got %+v", in)
	}
	if len(store.ins.children) != 1 {
		t.Fatalf("expected exactly one attached input, got %d", len(store.ins.children))
	}
}

func TestInspect_CaptureMethodSwapReleasesHandles(t *testing.T) {
	store := newFakeStore()
	ed, _ := openImage(t, store, nil)
	cache := ed.(*ImageEditor).Cache()

	inspect(t, ed, &scriptWidgets{})
	want := cache.Len()

	for i := range 6 {
		inspect(t, ed, &scriptWidgets{choices: map[string]int{"Image Generator": (i + 1) % 2}})
	}
	if got := cache.Len(); got != want {
		t.Fatalf("expected %d cached handles after swaps, got %d", want, got)
	}
	if len(store.ins.children) != 1 {
		t.Fatalf("expected exactly one attached input, got %d", len(store.ins.children))
	}
}

func TestInspect_NestedInputEditsAreSaved(t *testing.T) {
	store := newFakeStore()
	ed, s := openImage(t, store, nil)
	inspect(t, ed, &scriptWidgets{})

	w := &scriptWidgets{fields: map[string]string{"Output width": "1280", "Source": "TaggedCamera", "Tag": "hero"}}
	if !inspect(t, ed, w) {
		t.Fatalf("expected input edits to count as a change")
	}
	in := store.ins.children[s.Inputs[0]]
	if in.CBRenderTexture.OutputWidth != 1280 || in.CBRenderTexture.CameraTag != "hero" {
		t.Fatalf("input edits not applied: %+v", in.CBRenderTexture)
	}
	if store.ins.saves != 1 {
		t.Fatalf("expected 1 input save, got %d", store.ins.saves)
	}
}

func TestInspect_SaveFailureIsPersistenceError(t *testing.T) {
	store := newFakeStore()
	store.recs.saveErr = errors.New("disk full")
	ed, _ := openImage(t, store, nil)

	changed, err := ed.Inspect(&scriptWidgets{})
	var persistErr *errs.PersistenceError
	if !errors.As(err, &persistErr) || persistErr.Op != "save" {
		t.Fatalf("expected save PersistenceError, got %v", err)
	}
	if !changed {
		t.Fatalf("expected the pass to report its change")
	}
}

func TestInspect_RequiresEnable(t *testing.T) {
	ed, _ := openImage(t, newFakeStore(), nil)
	ed.OnDisable()

	if _, err := ed.Inspect(&scriptWidgets{}); err == nil {
		t.Fatalf("expected error inspecting a disabled editor")
	}
	if err := ed.OnEnable(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ed.Inspect(&scriptWidgets{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	if kinds := Kinds("VIDEO"); !slices.Contains(kinds, enums.RecorderImage) {
		t.Fatalf("expected image recorders under Video, got %v", kinds)
	}
	if kinds := Kinds("audio"); len(kinds) != 0 {
		t.Fatalf("expected no kinds under audio, got %v", kinds)
	}
	if c, ok := Category(enums.RecorderImage); !ok || c != "Video" {
		t.Fatalf("expected category Video, got %q", c)
	}

	rec := &models.Recorder{Name: "odd", Kind: enums.RecorderKind(99)}
	if _, err := Open(newFakeStore(), rec); err == nil {
		t.Fatalf("expected error opening an unregistered kind")
	}
}

func TestNew_AcceptsMatchingSettings(t *testing.T) {
	rec, err := models.NewRecorder("cam", enums.RecorderImage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base := property.Select(func(s *models.ImageRecorderSettings) *models.RecorderSettings { return &s.RecorderSettings })
	e, err := New(newFakeStore(), rec, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Recorder() != rec {
		t.Fatalf("expected editor over %q", rec.Name)
	}
}

func TestNew_RejectsMismatchedSettings(t *testing.T) {
	rec := &models.Recorder{Name: "bare", Kind: enums.RecorderImage, Settings: &models.ImageRecorderSettings{}}
	if _, err := New(newFakeStore(), rec, property.Select(func(s *models.RecorderSettings) *models.RecorderSettings { return s })); err == nil {
		t.Fatalf("expected error for settings of the wrong type")
	}
}
