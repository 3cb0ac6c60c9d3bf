package scene

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec()

	if spec.Window.Title != "Desktop Parallax Box (Final Version)" {
		t.Errorf("Expected window title 'Desktop Parallax Box (Final Version)', got %q", spec.Window.Title)
	}
	if spec.Window.Hint != "[Left Click] to Reset" {
		t.Errorf("Unexpected hint %q", spec.Window.Hint)
	}
	if spec.Window.Background.RGBA() != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected black background, got %v", spec.Window.Background)
	}
	if spec.Box.Scale != 6 || spec.Box.Distance != 3 {
		t.Errorf("Expected 6x6 walls at distance 3, got scale=%v distance=%v", spec.Box.Scale, spec.Box.Distance)
	}
	if spec.Camera.Z != -8 || spec.Camera.FOV != 40 {
		t.Errorf("Expected camera z=-8 fov=40, got z=%v fov=%v", spec.Camera.Z, spec.Camera.FOV)
	}
	if spec.Figure.Torso != "body" || len(spec.Figure.Parts) != 6 {
		t.Errorf("Expected six parts with torso 'body', got %d parts torso %q", len(spec.Figure.Parts), spec.Figure.Torso)
	}

	walls := map[string]color.RGBA{
		WallBack:    {0xff, 0, 0, 0xff},
		WallLeft:    {0, 0xff, 0, 0xff},
		WallRight:   {0, 0, 0xff, 0xff},
		WallCeiling: {0xff, 0xff, 0, 0xff},
		WallFloor:   {0x80, 0x80, 0x80, 0xff},
	}
	for name, want := range walls {
		got, ok := spec.Box.Walls[name]
		if !ok {
			t.Errorf("Missing wall %q", name)
			continue
		}
		if got.RGBA() != want {
			t.Errorf("Wall %q: got %v, want %v", name, got.RGBA(), want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"red", color.RGBA{255, 0, 0, 255}, false},
		{"Lime", color.RGBA{0, 255, 0, 255}, false},
		{"#007fff", color.RGBA{0, 0x7f, 0xff, 255}, false},
		{"#40404080", color.RGBA{0x40, 0x40, 0x40, 0x80}, false},
		{" white ", color.RGBA{255, 255, 255, 255}, false},
		{"#fff", color.RGBA{}, true},
		{"#gg0000", color.RGBA{}, true},
		{"not-a-color", color.RGBA{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseSpec_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s string) string
		wantMsg string
	}{
		{"zero fov", func(s string) string { return strings.Replace(s, "fov: 40", "fov: 0", 1) }, "fov"},
		{"camera inside box", func(s string) string { return strings.Replace(s, "z: -8", "z: 0", 1) }, "camera must sit"},
		{"missing torso", func(s string) string { return strings.Replace(s, "torso: body", "torso: tail", 1) }, "torso"},
		{"unknown wall", func(s string) string { return strings.Replace(s, "back: red", "front: red", 1) }, "unknown wall"},
		{"zero size", func(s string) string { return strings.Replace(s, "size: [0.35, 0.35, 0.35]", "size: [0, 0.35, 0.35]", 1) }, "size"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSpec([]byte(tc.mutate(string(defaultSpec))))
			if !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("Expected ErrInvalidSpec, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("Expected error to mention %q, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestParseSpec_BadColor(t *testing.T) {
	data := strings.Replace(string(defaultSpec), "back: red", "back: \"#12\"", 1)
	if _, err := ParseSpec([]byte(data)); err == nil {
		t.Error("Expected error for malformed color")
	}
}

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec("")
	if err != nil {
		t.Fatalf("Expected embedded spec for empty path, got %v", err)
	}
	if spec.Window.Title == "" {
		t.Error("Expected embedded spec to have a title")
	}

	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := strings.Replace(string(defaultSpec), "back: red", "back: purple", 1)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err = LoadSpec(path)
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if spec.Box.Walls[WallBack].RGBA() != (color.RGBA{0x80, 0, 0x80, 0xff}) {
		t.Errorf("Expected purple back wall, got %v", spec.Box.Walls[WallBack])
	}
}

func TestLoadSpec_Missing(t *testing.T) {
	_, err := LoadSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
