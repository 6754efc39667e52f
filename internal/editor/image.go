package editor

import (
	"fmt"
	"slices"

	"framerec/internal/contracts"
	"framerec/internal/domain/enums"
	"framerec/internal/models"
	"framerec/internal/property"
	"framerec/internal/utils/logging"
)

func init() {
	Register(enums.RecorderImage, "Video", NewImageEditor)
}

var (
	selImageBase       = property.Select(func(s *models.ImageRecorderSettings) *models.RecorderSettings { return &s.RecorderSettings })
	selOutputFormat    = property.Select(func(s *models.ImageRecorderSettings) *enums.ImageFormat { return &s.OutputFormat })
	selDestination     = property.Select(func(s *models.ImageRecorderSettings) *string { return &s.DestinationPath })
	selBaseFileName    = property.Select(func(s *models.ImageRecorderSettings) *string { return &s.BaseFileName })
	captureMethods     = []enums.InputKind{enums.InputCBRenderTexture, enums.InputAdamBeauty, enums.InputRenderTexture}
	captureMethodNames = []string{"Command Buffered Camera", "Offscreen rendering", "Render Texture"}
)

// ImageEditor edits image sequence recorders.
//
// It offers a capture method choice over the first input slot and hides the
// Encoding section.
type ImageEditor struct {
	*Editor[models.ImageRecorderSettings]

	outputFormat *property.Handle[enums.ImageFormat]
	destination  *property.Handle[string]
	baseFileName *property.Handle[string]
}

// NewImageEditor returns an editor over an image recorder.
func NewImageEditor(store contracts.Store, rec *models.Recorder) (Inspector, error) {
	base, err := New(store, rec, selImageBase)
	if err != nil {
		return nil, err
	}

	e := &ImageEditor{Editor: base}
	e.Routines[SectionInput] = e.InputGui
	e.Routines[SectionOutput] = e.OutputGui
	e.Routines[SectionEncoding] = nil
	return e, nil
}

// OnEnable resolves the shared handles, then the image output handles.
func (e *ImageEditor) OnEnable() (err error) {
	if err := e.Editor.OnEnable(); err != nil {
		return err
	}

	c, doc := e.Cache(), e.Document()
	e.outputFormat = bind(&err, c, doc, selOutputFormat)
	e.destination = bind(&err, c, doc, selDestination)
	e.baseFileName = bind(&err, c, doc, selBaseFileName)
	return err
}

// InputGui offers the capture method choice, swapping the first input when it
// changes, then renders the inputs.
func (e *ImageEditor) InputGui(w Widgets, indent int) error {
	m := e.Slots()
	if err := m.EnsureDefaults(e.Recorder().Settings); err != nil {
		return err
	}

	current, err := m.At(0)
	if err != nil {
		return err
	}
	index := max(slices.Index(captureMethods, current.Kind), 0)

	chosen := w.Choice(indent, "Image Generator", index, captureMethodNames)
	if chosen != index && chosen >= 0 && chosen < len(captureMethods) {
		in, err := models.NewInput(captureMethods[chosen])
		if err != nil {
			return err
		}
		if in.CBRenderTexture != nil {
			in.CBRenderTexture.FlipVertical = true
		}
		if err := m.Replace(0, in); err != nil {
			return fmt.Errorf("failed to change capture method to %v: %w", in.Kind, err)
		}
		logging.I("Recorder %q now captures with %s", e.Recorder().Name, captureMethodNames[chosen])
	}

	return e.Editor.InputGui(w, indent)
}

// OutputGui renders the image format, destination and file name before the
// capture stride.
func (e *ImageEditor) OutputGui(w Widgets, indent int) error {
	if err := field(w, indent, e.outputFormat, "Output format"); err != nil {
		return err
	}

	dir := w.TextField(indent, "Directory", e.destination.Value())
	dir = w.FolderPicker(indent, "Select output location", dir)
	if err := e.destination.Set(dir); err != nil {
		return err
	}

	if err := field(w, indent, e.baseFileName, "File name"); err != nil {
		return err
	}
	return e.Editor.OutputGui(w, indent)
}
