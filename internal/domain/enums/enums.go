// Package enums holds the enumerated setting values used by recorder settings.
//
// Every enum marshals to and from its display name, so persisted settings stay
// readable and operator input can be matched by name.
package enums

import (
	"fmt"
	"strings"
)

// FrameRateMode selects whether the recorder holds a fixed rate or caps it.
type FrameRateMode int

const (
	FrameRateConstant FrameRateMode = iota
	FrameRateVariable
)

var frameRateModeNames = []string{"Constant", "Variable"}

// DurationMode selects which part of playback is recorded.
type DurationMode int

const (
	DurationManual DurationMode = iota
	DurationSingleFrame
	DurationFrameInterval
	DurationTimeInterval
)

var durationModeNames = []string{"Manual", "SingleFrame", "FrameInterval", "TimeInterval"}

// ImageFormat is the file format written by image recorders.
type ImageFormat int

const (
	ImagePNG ImageFormat = iota
	ImageJPEG
	ImageEXR
)

var imageFormatNames = []string{"PNG", "JPEG", "EXR"}

// ImageSource is the render source a camera-driven input captures from.
type ImageSource int

const (
	SourceGameDisplay ImageSource = iota
	SourceMainCamera
	SourceTaggedCamera
)

var imageSourceNames = []string{"GameDisplay", "MainCamera", "TaggedCamera"}

// SuperSampling is the sample count used by the beauty-pass input.
type SuperSampling int

const (
	SuperSamplingX1 SuperSampling = iota
	SuperSamplingX2
	SuperSamplingX4
	SuperSamplingX8
	SuperSamplingX16
)

var superSamplingNames = []string{"x1", "x2", "x4", "x8", "x16"}

// InputKind tags the concrete variant of an input sub-settings object.
type InputKind int

const (
	InputCBRenderTexture InputKind = iota
	InputAdamBeauty
	InputRenderTexture
)

var inputKindNames = []string{"CBRenderTexture", "AdamBeauty", "RenderTexture"}

// RecorderKind tags the concrete settings-root type of a recorder asset.
type RecorderKind int

const (
	RecorderImage RecorderKind = iota
)

var recorderKindNames = []string{"image"}

func (m FrameRateMode) String() string { return name(frameRateModeNames, int(m)) }
func (m DurationMode) String() string  { return name(durationModeNames, int(m)) }
func (f ImageFormat) String() string   { return name(imageFormatNames, int(f)) }
func (s ImageSource) String() string   { return name(imageSourceNames, int(s)) }
func (s SuperSampling) String() string { return name(superSamplingNames, int(s)) }
func (k InputKind) String() string     { return name(inputKindNames, int(k)) }
func (k RecorderKind) String() string  { return name(recorderKindNames, int(k)) }

// Names returns the display names of all values, in value order.
func (FrameRateMode) Names() []string { return frameRateModeNames }
func (DurationMode) Names() []string  { return durationModeNames }
func (ImageFormat) Names() []string   { return imageFormatNames }
func (ImageSource) Names() []string   { return imageSourceNames }
func (SuperSampling) Names() []string { return superSamplingNames }
func (InputKind) Names() []string     { return inputKindNames }
func (RecorderKind) Names() []string  { return recorderKindNames }

func (m FrameRateMode) MarshalText() ([]byte, error) { return marshal(frameRateModeNames, int(m)) }
func (m DurationMode) MarshalText() ([]byte, error)  { return marshal(durationModeNames, int(m)) }
func (f ImageFormat) MarshalText() ([]byte, error)   { return marshal(imageFormatNames, int(f)) }
func (s ImageSource) MarshalText() ([]byte, error)   { return marshal(imageSourceNames, int(s)) }
func (s SuperSampling) MarshalText() ([]byte, error) { return marshal(superSamplingNames, int(s)) }
func (k InputKind) MarshalText() ([]byte, error)     { return marshal(inputKindNames, int(k)) }
func (k RecorderKind) MarshalText() ([]byte, error)  { return marshal(recorderKindNames, int(k)) }

func (m *FrameRateMode) UnmarshalText(b []byte) error { return unmarshal(frameRateModeNames, b, m) }
func (m *DurationMode) UnmarshalText(b []byte) error  { return unmarshal(durationModeNames, b, m) }
func (f *ImageFormat) UnmarshalText(b []byte) error   { return unmarshal(imageFormatNames, b, f) }
func (s *ImageSource) UnmarshalText(b []byte) error   { return unmarshal(imageSourceNames, b, s) }
func (s *SuperSampling) UnmarshalText(b []byte) error { return unmarshal(superSamplingNames, b, s) }
func (k *InputKind) UnmarshalText(b []byte) error     { return unmarshal(inputKindNames, b, k) }
func (k *RecorderKind) UnmarshalText(b []byte) error  { return unmarshal(recorderKindNames, b, k) }

// ParseRecorderKind parses a recorder kind name, ignoring case.
func ParseRecorderKind(s string) (RecorderKind, error) {
	var k RecorderKind
	err := k.UnmarshalText([]byte(s))
	return k, err
}

// ******************************** Private ********************************

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("Unknown(%d)", i)
	}
	return names[i]
}

func marshal(names []string, i int) ([]byte, error) {
	if i < 0 || i >= len(names) {
		return nil, fmt.Errorf("enum value %d out of range", i)
	}
	return []byte(names[i]), nil
}

func unmarshal[E ~int](names []string, b []byte, dst *E) error {
	s := strings.TrimSpace(string(b))
	for i, n := range names {
		if strings.EqualFold(n, s) {
			*dst = E(i)
			return nil
		}
	}
	return fmt.Errorf("invalid value %q (want one of %s)", s, strings.Join(names, ", "))
}
