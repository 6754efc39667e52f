package widgets

import (
	"bytes"
	"strings"
	"testing"

	"framerec/internal/domain/enums"
	"framerec/internal/models"
	"framerec/internal/property"
)

var (
	selFrameRate = property.Select(func(s *models.RecorderSettings) *float64 { return &s.FrameRate })
	selDuration  = property.Select(func(s *models.RecorderSettings) *enums.DurationMode { return &s.DurationMode })
)

func newSettingsDoc(t *testing.T) *property.Document[models.RecorderSettings] {
	t.Helper()

	s := models.DefaultRecorderSettings()
	doc, err := property.NewDocument(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		wantErr bool
	}{
		{name: "valid", in: []string{"Target fps=24", " File name = shot_ "}},
		{name: "value with equals", in: []string{"Directory=a=b"}},
		{name: "missing equals", in: []string{"Target fps"}, wantErr: true},
		{name: "empty label", in: []string{"=3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}

	s, _ := ParseScript([]string{" File name = shot_ ", "Directory=a=b"})
	if v, ok := s.answer("file NAME"); !ok || v != "shot_" {
		t.Fatalf("expected trimmed case-insensitive answer, got %q", v)
	}
	if got := s.Unused(); len(got) != 1 || got[0] != "directory" {
		t.Fatalf("expected [directory] unused, got %v", got)
	}
}

func TestTerminal_FieldParsesAnswers(t *testing.T) {
	doc := newSettingsDoc(t)
	fps, err := property.Resolve(doc, selFrameRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dur, err := property.Resolve(doc, selDuration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	script, _ := ParseScript([]string{"Target fps=24", "Recording Duration=singleframe"})
	var out bytes.Buffer
	term := NewTerminal(&out, script, true)

	v, err := term.Field(1, fps, "Target fps")
	if err != nil || v != 24.0 {
		t.Fatalf("expected 24, got %v (err %v)", v, err)
	}
	v, err = term.Field(1, dur, "Recording Duration")
	if err != nil || v != enums.DurationSingleFrame {
		t.Fatalf("expected SingleFrame, got %v (err %v)", v, err)
	}
	if !strings.Contains(out.String(), "  Target fps: 30 -> 24") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	bad, _ := ParseScript([]string{"Target fps=fast"})
	if _, err := NewTerminal(&out, bad, true).Field(0, fps, "Target fps"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTerminal_ReadOnly(t *testing.T) {
	doc := newSettingsDoc(t)
	fps, _ := property.Resolve(doc, selFrameRate)

	var out bytes.Buffer
	term := NewTerminal(&out, nil, true)

	if !term.Foldout(0, "Time", true) {
		t.Fatalf("expected foldout to stay open")
	}
	if v, _ := term.Field(1, fps, "Target fps"); v != 30.0 {
		t.Fatalf("expected current value, got %v", v)
	}
	if term.Toggle(1, "Sync. framerate", true) != true {
		t.Fatalf("expected toggle unchanged")
	}
	if got := term.FolderPicker(1, "Select output location", "Recorder"); got != "Recorder" {
		t.Fatalf("expected current folder, got %q", got)
	}

	want := "v Time\n  Target fps: 30\n  Sync. framerate: true\n"
	if out.String() != want {
		t.Fatalf("expected output %q, got %q", want, out.String())
	}
}

func TestTerminal_ChoiceAndToggle(t *testing.T) {
	options := []string{"Command Buffered Camera", "Offscreen rendering", "Render Texture"}
	tests := []struct {
		name   string
		answer string
		want   int
		fails  bool
	}{
		{name: "by name", answer: "offscreen RENDERING", want: 1},
		{name: "by index", answer: "2", want: 2},
		{name: "unknown", answer: "webcam", want: 0, fails: true},
		{name: "out of range", answer: "3", want: 0, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, _ := ParseScript([]string{"Image Generator=" + tt.answer})
			term := NewTerminal(&bytes.Buffer{}, script, true)

			if got := term.Choice(0, "Image Generator", 0, options); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
			if (term.Err() != nil) != tt.fails {
				t.Fatalf("expected failure=%v, got %v", tt.fails, term.Err())
			}
		})
	}

	script, _ := ParseScript([]string{"Verbose logging=yes", "Time=false"})
	term := NewTerminal(&bytes.Buffer{}, script, true)
	if term.Toggle(0, "Verbose logging", false) {
		t.Fatalf("expected unparseable toggle answer to keep the value")
	}
	if term.Foldout(0, "Time", true) {
		t.Fatalf("expected scripted foldout to close")
	}
	if term.Err() == nil {
		t.Fatalf("expected an error for the toggle answer")
	}
}
