package editor

import (
	"fmt"

	"framerec/internal/contracts"
	"framerec/internal/domain/enums"
	"framerec/internal/domain/errs"
	"framerec/internal/models"
	"framerec/internal/property"
)

// Input variant selectors.
var (
	selCBSource       = property.Select(func(in *models.InputSettings) *enums.ImageSource { return &in.CBRenderTexture.Source })
	selCBCameraTag    = property.Select(func(in *models.InputSettings) *string { return &in.CBRenderTexture.CameraTag })
	selCBOutputWidth  = property.Select(func(in *models.InputSettings) *int { return &in.CBRenderTexture.OutputWidth })
	selCBOutputHeight = property.Select(func(in *models.InputSettings) *int { return &in.CBRenderTexture.OutputHeight })
	selCBFlip         = property.Select(func(in *models.InputSettings) *bool { return &in.CBRenderTexture.FlipVertical })

	selABSource        = property.Select(func(in *models.InputSettings) *enums.ImageSource { return &in.AdamBeauty.Source })
	selABCameraTag     = property.Select(func(in *models.InputSettings) *string { return &in.AdamBeauty.CameraTag })
	selABSuperSampling = property.Select(func(in *models.InputSettings) *enums.SuperSampling { return &in.AdamBeauty.SuperSampling })
	selABRenderWidth   = property.Select(func(in *models.InputSettings) *int { return &in.AdamBeauty.RenderWidth })
	selABRenderHeight  = property.Select(func(in *models.InputSettings) *int { return &in.AdamBeauty.RenderHeight })

	selRTSource = property.Select(func(in *models.InputSettings) *string { return &in.RenderTexture.SourceTexture })
	selRTFlip   = property.Select(func(in *models.InputSettings) *bool { return &in.RenderTexture.FlipVertical })
)

// inputGuiFactory resolves a variant's handles and returns its render routine.
type inputGuiFactory func(c *property.Cache, doc *property.Document[models.InputSettings]) (SectionFunc, error)

var inputGuis = map[enums.InputKind]inputGuiFactory{
	enums.InputCBRenderTexture: cbRenderTextureGui,
	enums.InputAdamBeauty:      adamBeautyGui,
	enums.InputRenderTexture:   renderTextureGui,
}

// inputEditor edits one input child in its own document.
type inputEditor struct {
	in     *models.InputSettings
	doc    *property.Document[models.InputSettings]
	store  contracts.InputStore
	render SectionFunc
}

func newInputEditor(store contracts.InputStore, c *property.Cache, in *models.InputSettings) (*inputEditor, error) {
	factory, ok := inputGuis[in.Kind]
	if !ok {
		return nil, fmt.Errorf("no editor registered for %v inputs", in.Kind)
	}
	doc, err := property.NewDocument(in)
	if err != nil {
		return nil, err
	}
	render, err := factory(c, doc)
	if err != nil {
		return nil, fmt.Errorf("input %q: %w", in.Name, err)
	}
	return &inputEditor{
		in:     in,
		doc:    doc,
		store:  store,
		render: render,
	}, nil
}

// inspect renders the input and saves it if the operator changed anything.
func (ie *inputEditor) inspect(w Widgets, indent int) (changed bool, err error) {
	if err := ie.doc.Update(); err != nil {
		return false, err
	}
	if err := ie.render(w, indent); err != nil {
		return false, err
	}

	changed, err = ie.doc.Apply()
	if err != nil || !changed {
		return false, err
	}
	if err := ie.store.SaveInput(ie.in); err != nil {
		return true, errs.Persistence("save", ie.in.Name, err)
	}
	return true, nil
}

func cbRenderTextureGui(c *property.Cache, doc *property.Document[models.InputSettings]) (SectionFunc, error) {
	var err error
	source := bind(&err, c, doc, selCBSource)
	tag := bind(&err, c, doc, selCBCameraTag)
	width := bind(&err, c, doc, selCBOutputWidth)
	height := bind(&err, c, doc, selCBOutputHeight)
	flip := bind(&err, c, doc, selCBFlip)
	if err != nil {
		return nil, err
	}

	return func(w Widgets, indent int) error {
		if err := cameraGui(w, indent, source, tag); err != nil {
			return err
		}
		if err := field(w, indent, width, "Output width"); err != nil {
			return err
		}
		if err := field(w, indent, height, "Output height"); err != nil {
			return err
		}
		return toggle(w, indent, flip, "Flip image vertically")
	}, nil
}

func adamBeautyGui(c *property.Cache, doc *property.Document[models.InputSettings]) (SectionFunc, error) {
	var err error
	source := bind(&err, c, doc, selABSource)
	tag := bind(&err, c, doc, selABCameraTag)
	ss := bind(&err, c, doc, selABSuperSampling)
	width := bind(&err, c, doc, selABRenderWidth)
	height := bind(&err, c, doc, selABRenderHeight)
	if err != nil {
		return nil, err
	}

	return func(w Widgets, indent int) error {
		if err := cameraGui(w, indent, source, tag); err != nil {
			return err
		}
		if err := field(w, indent, ss, "Super sampling"); err != nil {
			return err
		}
		if err := field(w, indent, width, "Rendering width"); err != nil {
			return err
		}
		return field(w, indent, height, "Rendering height")
	}, nil
}

func renderTextureGui(c *property.Cache, doc *property.Document[models.InputSettings]) (SectionFunc, error) {
	var err error
	source := bind(&err, c, doc, selRTSource)
	flip := bind(&err, c, doc, selRTFlip)
	if err != nil {
		return nil, err
	}

	return func(w Widgets, indent int) error {
		if err := field(w, indent, source, "Source texture"); err != nil {
			return err
		}
		return toggle(w, indent, flip, "Flip image vertically")
	}, nil
}

// cameraGui renders the camera source, and the tag when the source is a tagged camera.
func cameraGui(w Widgets, indent int, source *property.Handle[enums.ImageSource], tag *property.Handle[string]) error {
	if err := field(w, indent, source, "Source"); err != nil {
		return err
	}
	if source.Value() != enums.SourceTaggedCamera {
		return nil
	}
	return field(w, indent+1, tag, "Tag")
}
