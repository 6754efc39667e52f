// Package editor presents a recorder's settings as an editable form.
//
// An Editor resolves its field handles once per session, renders the Input,
// Output, Encoding, Time and Bounds sections in that order and commits the
// pass's edits to the store in one batch.
package editor

import (
	"errors"
	"fmt"

	"framerec/internal/contracts"
	"framerec/internal/domain/enums"
	"framerec/internal/domain/errs"
	"framerec/internal/models"
	"framerec/internal/property"
	"framerec/internal/slots"
	"framerec/internal/utils/logging"
)

// Inspector is an open editing session over one recorder.
type Inspector interface {
	// Awake runs once, when the editor is created.
	Awake()
	// OnEnable resolves the session's field handles.
	OnEnable() error
	// OnDisable releases the session's handles and nested editors.
	OnDisable()
	// Inspect runs one inspection pass and reports whether anything changed.
	Inspect(w Widgets) (changed bool, err error)
	// IsValid reports whether the settings can be handed to a capture.
	IsValid() bool
	// Recorder returns the recorder being edited.
	Recorder() *models.Recorder
	// Sections returns the session's expansion state.
	Sections() *Sections
	// ShowBounds reports whether the Bounds section is drawn.
	ShowBounds() bool
	// SetShowBounds enables or disables the Bounds section.
	SetShowBounds(show bool)
}

// Shared-settings selectors, declared once so cached handles are reused.
var (
	selInputs        = property.Select(func(s *models.RecorderSettings) *[]string { return &s.Inputs })
	selVerbose       = property.Select(func(s *models.RecorderSettings) *bool { return &s.Verbose })
	selFrameRateMode = property.Select(func(s *models.RecorderSettings) *enums.FrameRateMode { return &s.FrameRateMode })
	selFrameRate     = property.Select(func(s *models.RecorderSettings) *float64 { return &s.FrameRate })
	selDurationMode  = property.Select(func(s *models.RecorderSettings) *enums.DurationMode { return &s.DurationMode })
	selStartFrame    = property.Select(func(s *models.RecorderSettings) *int { return &s.StartFrame })
	selEndFrame      = property.Select(func(s *models.RecorderSettings) *int { return &s.EndFrame })
	selStartTime     = property.Select(func(s *models.RecorderSettings) *float64 { return &s.StartTime })
	selEndTime       = property.Select(func(s *models.RecorderSettings) *float64 { return &s.EndTime })
	selSynchRate     = property.Select(func(s *models.RecorderSettings) *bool { return &s.SynchFrameRate })
	selNthFrame      = property.Select(func(s *models.RecorderSettings) *int { return &s.CaptureEveryNthFrame })
)

// baseSelectors are the shared-settings selectors reached through a concrete root.
type baseSelectors[T any] struct {
	inputs        *property.Selector[T, []string]
	verbose       *property.Selector[T, bool]
	frameRateMode *property.Selector[T, enums.FrameRateMode]
	frameRate     *property.Selector[T, float64]
	durationMode  *property.Selector[T, enums.DurationMode]
	startFrame    *property.Selector[T, int]
	endFrame      *property.Selector[T, int]
	startTime     *property.Selector[T, float64]
	endTime       *property.Selector[T, float64]
	synchRate     *property.Selector[T, bool]
	nthFrame      *property.Selector[T, int]
}

func composeBase[T any](base *property.Selector[T, models.RecorderSettings]) baseSelectors[T] {
	return baseSelectors[T]{
		inputs:        property.Via(base, selInputs),
		verbose:       property.Via(base, selVerbose),
		frameRateMode: property.Via(base, selFrameRateMode),
		frameRate:     property.Via(base, selFrameRate),
		durationMode:  property.Via(base, selDurationMode),
		startFrame:    property.Via(base, selStartFrame),
		endFrame:      property.Via(base, selEndFrame),
		startTime:     property.Via(base, selStartTime),
		endTime:       property.Via(base, selEndTime),
		synchRate:     property.Via(base, selSynchRate),
		nthFrame:      property.Via(base, selNthFrame),
	}
}

// baseHandles are the resolved shared-settings handles of one session.
type baseHandles struct {
	inputs        *property.Handle[[]string]
	verbose       *property.Handle[bool]
	frameRateMode *property.Handle[enums.FrameRateMode]
	frameRate     *property.Handle[float64]
	durationMode  *property.Handle[enums.DurationMode]
	startFrame    *property.Handle[int]
	endFrame      *property.Handle[int]
	startTime     *property.Handle[float64]
	endTime       *property.Handle[float64]
	synchRate     *property.Handle[bool]
	nthFrame      *property.Handle[int]
}

// Editor is the editing session shared by every recorder kind.
//
// T is the concrete settings root. Specializations embed an Editor and
// replace entries of Routines, calling the exported base routines where they
// extend rather than replace a section.
type Editor[T any] struct {
	Routines Routines
	Extra    SectionFunc // Runs after Bounds, before the verbose toggle

	store    contracts.Store
	rec      *models.Recorder
	target   *T
	sels     baseSelectors[T]
	doc      *property.Document[T]
	cache    *property.Cache
	h        *baseHandles
	slots    *slots.Manager
	inputs   map[string]*inputEditor
	sections Sections

	showBounds   bool
	childChanged bool
}

// New returns an editor over rec, whose settings must be a *T. base selects
// the shared settings embedded in T.
func New[T any](store contracts.Store, rec *models.Recorder, base *property.Selector[T, models.RecorderSettings]) (*Editor[T], error) {
	if rec == nil {
		return nil, errors.New("no recorder to edit")
	}
	target, ok := any(rec.Settings).(*T)
	if !ok {
		var want *T
		return nil, fmt.Errorf("recorder %q holds %T settings, editor expects %T", rec.Name, rec.Settings, want)
	}

	e := &Editor[T]{
		store:      store,
		rec:        rec,
		target:     target,
		sels:       composeBase(base),
		cache:      property.NewCache(),
		inputs:     make(map[string]*inputEditor),
		sections:   NewSections(),
		showBounds: true,
	}
	e.Routines = Routines{
		SectionInput:    e.InputGui,
		SectionOutput:   e.OutputGui,
		SectionEncoding: e.EncodingGui,
		SectionTime:     e.TimeGui,
		SectionBounds:   e.BoundsGui,
	}
	return e, nil
}

// Awake logs the editor's creation.
func (e *Editor[T]) Awake() {
	logging.D(1, "Created %v editor for recorder %q", e.rec.Kind, e.rec.Name)
}

// OnEnable builds the session document and resolves the shared-settings handles.
func (e *Editor[T]) OnEnable() (err error) {
	if e.doc == nil {
		if e.doc, err = property.NewDocument(e.target); err != nil {
			return err
		}
	}

	h := &baseHandles{
		inputs:        bind(&err, e.cache, e.doc, e.sels.inputs),
		verbose:       bind(&err, e.cache, e.doc, e.sels.verbose),
		frameRateMode: bind(&err, e.cache, e.doc, e.sels.frameRateMode),
		frameRate:     bind(&err, e.cache, e.doc, e.sels.frameRate),
		durationMode:  bind(&err, e.cache, e.doc, e.sels.durationMode),
		startFrame:    bind(&err, e.cache, e.doc, e.sels.startFrame),
		endFrame:      bind(&err, e.cache, e.doc, e.sels.endFrame),
		startTime:     bind(&err, e.cache, e.doc, e.sels.startTime),
		endTime:       bind(&err, e.cache, e.doc, e.sels.endTime),
		synchRate:     bind(&err, e.cache, e.doc, e.sels.synchRate),
		nthFrame:      bind(&err, e.cache, e.doc, e.sels.nthFrame),
	}
	if err != nil {
		return fmt.Errorf("recorder %q: %w", e.rec.Name, err)
	}

	m, err := slots.New(e.store.InputStore(), e.rec, h.inputs)
	if err != nil {
		return err
	}

	e.h = h
	e.slots = m
	logging.D(2, "Resolved %d handles for recorder %q", e.cache.Len(), e.rec.Name)
	return nil
}

// OnDisable drops the session's cached handles and nested editors.
func (e *Editor[T]) OnDisable() {
	e.cache.Reset()
	clear(e.inputs)
	e.h = nil
	e.slots = nil
	e.doc = nil
}

// Recorder returns the recorder being edited.
func (e *Editor[T]) Recorder() *models.Recorder {
	return e.rec
}

// Sections returns the session's expansion state.
func (e *Editor[T]) Sections() *Sections {
	return &e.sections
}

// ShowBounds reports whether the Bounds section is drawn.
func (e *Editor[T]) ShowBounds() bool {
	return e.showBounds
}

// SetShowBounds enables or disables the Bounds section.
func (e *Editor[T]) SetShowBounds(show bool) {
	e.showBounds = show
}

// IsValid reports whether the recorder's settings are usable for a capture.
func (e *Editor[T]) IsValid() bool {
	return e.rec.IsValid()
}

// Slots returns the session's input slot manager.
func (e *Editor[T]) Slots() *slots.Manager {
	return e.slots
}

// Cache returns the session's handle cache.
func (e *Editor[T]) Cache() *property.Cache {
	return e.cache
}

// Document returns the session's serialized settings.
func (e *Editor[T]) Document() *property.Document[T] {
	return e.doc
}

// Inspect runs one pass: refresh, render every section, then commit.
//
// Edits already written into the document are committed even when a section
// fails, since slot changes are persisted as they happen.
func (e *Editor[T]) Inspect(w Widgets) (changed bool, err error) {
	if e.h == nil {
		return false, fmt.Errorf("editor for recorder %q is not enabled", e.rec.Name)
	}
	if err := e.doc.Update(); err != nil {
		return false, err
	}
	e.childChanged = false

	renderErr := e.sections.render(w, 0, &e.Routines, e.showBounds)
	if renderErr == nil && e.Extra != nil {
		renderErr = e.Extra(w, 0)
	}
	if renderErr == nil {
		renderErr = toggle(w, 0, e.h.verbose, "Verbose logging")
	}

	changed, err = e.commit()
	return changed || e.childChanged, errors.Join(renderErr, err)
}

// InputGui fills an empty input sequence with defaults, then renders each
// slot through the nested editor for its variant.
func (e *Editor[T]) InputGui(w Widgets, indent int) error {
	if err := e.slots.EnsureDefaults(e.rec.Settings); err != nil {
		return err
	}

	n := e.slots.Len()
	seen := make(map[string]struct{}, n)
	for i := range n {
		in, err := e.slots.At(i)
		if err != nil {
			return err
		}
		seen[in.Name] = struct{}{}

		childIndent := indent
		if n > 1 {
			w.Label(indent, fmt.Sprintf("Input %d", i+1))
			childIndent++
		}

		ie, err := e.inputEditor(in)
		if err != nil {
			return err
		}
		changed, err := ie.inspect(w, childIndent)
		if err != nil {
			return err
		}
		e.childChanged = e.childChanged || changed
	}

	for name, ie := range e.inputs {
		if _, ok := seen[name]; !ok {
			e.dropInputEditor(name, ie)
		}
	}
	return nil
}

// OutputGui renders the capture stride.
func (e *Editor[T]) OutputGui(w Widgets, indent int) error {
	return field(w, indent, e.h.nthFrame, "Every n'th frame")
}

// EncodingGui renders nothing; the header alone is shown.
func (e *Editor[T]) EncodingGui(w Widgets, indent int) error {
	return nil
}

// TimeGui renders the frame rate settings.
func (e *Editor[T]) TimeGui(w Widgets, indent int) error {
	if err := field(w, indent, e.h.frameRateMode, "Frame rate mode"); err != nil {
		return err
	}

	constant := e.h.frameRateMode.Value() == enums.FrameRateConstant
	label := "Max fps"
	if constant {
		label = "Target fps"
	}
	if err := field(w, indent, e.h.frameRate, label); err != nil {
		return err
	}

	if constant {
		return toggle(w, indent, e.h.synchRate, "Sync. framerate")
	}
	return nil
}

// BoundsGui renders the duration mode and the limits it uses.
//
// In single frame mode the end frame always follows the start frame.
func (e *Editor[T]) BoundsGui(w Widgets, indent int) error {
	if err := field(w, indent, e.h.durationMode, "Recording Duration"); err != nil {
		return err
	}

	indent++
	switch e.h.durationMode.Value() {
	case enums.DurationManual:
	case enums.DurationSingleFrame:
		if err := field(w, indent, e.h.startFrame, "Frame #"); err != nil {
			return err
		}
		return e.h.endFrame.Set(e.h.startFrame.Value())
	case enums.DurationFrameInterval:
		if err := field(w, indent, e.h.startFrame, "First frame"); err != nil {
			return err
		}
		return field(w, indent, e.h.endFrame, "Last frame")
	case enums.DurationTimeInterval:
		if err := field(w, indent, e.h.startTime, "Start (sec)"); err != nil {
			return err
		}
		return field(w, indent, e.h.endTime, "End (sec)")
	}
	return nil
}

// ******************************** Private ********************************

// commit applies the document to the settings and saves the recorder if it changed.
func (e *Editor[T]) commit() (changed bool, err error) {
	changed, err = e.doc.Apply()
	if err != nil || !changed {
		return false, err
	}
	if err := e.store.RecorderStore().SaveRecorder(e.rec); err != nil {
		return true, errs.Persistence("save", e.rec.Name, err)
	}
	logging.D(1, "Committed edits to recorder %q", e.rec.Name)
	return true, nil
}

// inputEditor returns the nested editor for in, building it on first use.
func (e *Editor[T]) inputEditor(in *models.InputSettings) (*inputEditor, error) {
	if ie, ok := e.inputs[in.Name]; ok {
		if ie.in == in {
			return ie, nil
		}
		e.dropInputEditor(in.Name, ie)
	}
	ie, err := newInputEditor(e.store.InputStore(), e.cache, in)
	if err != nil {
		return nil, err
	}
	e.inputs[in.Name] = ie
	return ie, nil
}

// dropInputEditor discards a nested editor and the handles it resolved.
func (e *Editor[T]) dropInputEditor(name string, ie *inputEditor) {
	e.cache.Forget(ie.doc)
	delete(e.inputs, name)
}

// bind resolves sel through the cache unless an earlier bind failed.
func bind[T any, V any](err *error, c *property.Cache, doc *property.Document[T], sel *property.Selector[T, V]) *property.Handle[V] {
	if *err != nil {
		return nil
	}
	h, e := property.Find(c, doc, sel)
	if e != nil {
		*err = e
	}
	return h
}
