package models

import (
	"fmt"
	"time"

	"framerec/internal/domain/enums"
)

// InputSettings describes one capture-input method attached to a recorder.
//
// Kind tags the variant; exactly the payload matching Kind is non-nil.
type InputSettings struct {
	Name       string          `json:"name" db:"name"`
	Kind       enums.InputKind `json:"kind" db:"kind"`
	RecorderID int64           `json:"-" db:"recorder_id"`
	CreatedAt  time.Time       `json:"-" db:"created_at"`
	UpdatedAt  time.Time       `json:"-" db:"updated_at"`

	CBRenderTexture *CBRenderTextureInput `json:"cb_render_texture,omitempty"`
	AdamBeauty      *AdamBeautyInput      `json:"adam_beauty,omitempty"`
	RenderTexture   *RenderTextureInput   `json:"render_texture,omitempty"`
}

// CBRenderTextureInput captures a camera through a command buffer.
type CBRenderTextureInput struct {
	Source       enums.ImageSource `json:"source"`
	CameraTag    string            `json:"camera_tag"`
	OutputWidth  int               `json:"output_width"`
	OutputHeight int               `json:"output_height"`
	FlipVertical bool              `json:"flip_vertical"`
}

// AdamBeautyInput renders offscreen with super-sampling before downscaling.
type AdamBeautyInput struct {
	Source        enums.ImageSource   `json:"source"`
	CameraTag     string              `json:"camera_tag"`
	SuperSampling enums.SuperSampling `json:"super_sampling"`
	RenderWidth   int                 `json:"render_width"`
	RenderHeight  int                 `json:"render_height"`
}

// RenderTextureInput reads frames from an existing render texture asset.
type RenderTextureInput struct {
	SourceTexture string `json:"source_texture"`
	FlipVertical  bool   `json:"flip_vertical"`
}

// inputFactories constructs a default instance per input variant.
var inputFactories = map[enums.InputKind]func() *InputSettings{
	enums.InputCBRenderTexture: NewCBRenderTextureInput,
	enums.InputAdamBeauty:      NewAdamBeautyInput,
	enums.InputRenderTexture:   NewRenderTextureInput,
}

// NewInput returns a default, unnamed input of the given variant.
func NewInput(kind enums.InputKind) (*InputSettings, error) {
	f, ok := inputFactories[kind]
	if !ok {
		return nil, fmt.Errorf("no input variant registered for kind %v", kind)
	}
	return f(), nil
}

// NewCBRenderTextureInput returns a command-buffered camera input.
func NewCBRenderTextureInput() *InputSettings {
	return &InputSettings{
		Kind: enums.InputCBRenderTexture,
		CBRenderTexture: &CBRenderTextureInput{
			Source:       enums.SourceMainCamera,
			OutputWidth:  1920,
			OutputHeight: 1080,
		},
	}
}

// NewAdamBeautyInput returns an offscreen beauty-pass input.
func NewAdamBeautyInput() *InputSettings {
	return &InputSettings{
		Kind: enums.InputAdamBeauty,
		AdamBeauty: &AdamBeautyInput{
			Source:        enums.SourceMainCamera,
			SuperSampling: enums.SuperSamplingX1,
			RenderWidth:   1920,
			RenderHeight:  1080,
		},
	}
}

// NewRenderTextureInput returns a render texture input with no source set.
func NewRenderTextureInput() *InputSettings {
	return &InputSettings{
		Kind:          enums.InputRenderTexture,
		RenderTexture: &RenderTextureInput{},
	}
}

// Attached reports whether the input is currently owned by a persisted recorder.
func (in *InputSettings) Attached() bool {
	return in.RecorderID != 0
}
