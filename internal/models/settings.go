package models

import (
	"errors"
	"fmt"

	"framerec/internal/domain/enums"
)

// RecorderSettings is the settings root shared by every recorder kind.
type RecorderSettings struct {
	Verbose              bool                `json:"verbose"`
	FrameRateMode        enums.FrameRateMode `json:"frame_rate_mode"`
	FrameRate            float64             `json:"frame_rate"`
	DurationMode         enums.DurationMode  `json:"duration_mode"`
	StartFrame           int                 `json:"start_frame"`
	EndFrame             int                 `json:"end_frame"`
	StartTime            float64             `json:"start_time"`
	EndTime              float64             `json:"end_time"`
	SynchFrameRate       bool                `json:"synch_frame_rate"`
	CaptureEveryNthFrame int                 `json:"capture_every_nth_frame"`
	Inputs               []string            `json:"inputs"` // Input identity names, in slot order
}

// DefaultRecorderSettings returns the base settings a new recorder starts from.
func DefaultRecorderSettings() RecorderSettings {
	return RecorderSettings{
		FrameRateMode:        enums.FrameRateConstant,
		FrameRate:            30,
		DurationMode:         enums.DurationManual,
		StartFrame:           0,
		EndFrame:             1000,
		StartTime:            0,
		EndTime:              1,
		SynchFrameRate:       true,
		CaptureEveryNthFrame: 1,
	}
}

// Base returns the receiver.
func (s *RecorderSettings) Base() *RecorderSettings {
	return s
}

// Validate checks the timing and bounds settings.
func (s *RecorderSettings) Validate() error {
	switch {
	case s.FrameRate <= 0:
		return fmt.Errorf("frame rate must be above zero, got %v", s.FrameRate)
	case s.CaptureEveryNthFrame < 1:
		return fmt.Errorf("capture stride must be at least 1, got %d", s.CaptureEveryNthFrame)
	case s.StartFrame < 0:
		return fmt.Errorf("start frame must not be negative, got %d", s.StartFrame)
	}

	switch s.DurationMode {
	case enums.DurationSingleFrame:
		if s.EndFrame != s.StartFrame {
			return fmt.Errorf("single frame recording has end frame %d != start frame %d", s.EndFrame, s.StartFrame)
		}
	case enums.DurationFrameInterval:
		if s.EndFrame < s.StartFrame {
			return fmt.Errorf("last frame %d is before first frame %d", s.EndFrame, s.StartFrame)
		}
	case enums.DurationTimeInterval:
		if s.StartTime < 0 || s.EndTime < s.StartTime {
			return fmt.Errorf("invalid time interval [%v, %v]", s.StartTime, s.EndTime)
		}
	}
	return nil
}

// ImageRecorderSettings records each captured frame as an image file.
type ImageRecorderSettings struct {
	RecorderSettings
	OutputFormat    enums.ImageFormat `json:"output_format"`
	DestinationPath string            `json:"destination_path"`
	BaseFileName    string            `json:"base_file_name"`
}

// NewImageRecorderSettings returns image recorder settings with defaults filled in.
func NewImageRecorderSettings() *ImageRecorderSettings {
	return &ImageRecorderSettings{
		RecorderSettings: DefaultRecorderSettings(),
		OutputFormat:     enums.ImagePNG,
		DestinationPath:  "Recorder",
		BaseFileName:     "image_",
	}
}

// Kind returns enums.RecorderImage.
func (s *ImageRecorderSettings) Kind() enums.RecorderKind {
	return enums.RecorderImage
}

// DefaultInputs returns a single command-buffered camera input, flipped for file output.
func (s *ImageRecorderSettings) DefaultInputs() []*InputSettings {
	in := NewCBRenderTextureInput()
	in.CBRenderTexture.FlipVertical = true
	return []*InputSettings{in}
}

// Validate checks the base settings and the output location.
func (s *ImageRecorderSettings) Validate() error {
	if err := s.RecorderSettings.Validate(); err != nil {
		return err
	}
	switch {
	case s.DestinationPath == "":
		return errors.New("destination directory is empty")
	case s.BaseFileName == "":
		return errors.New("base file name is empty")
	}
	return nil
}
