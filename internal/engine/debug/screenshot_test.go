package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedScreenshots(dir string) *Screenshots {
	s := NewScreenshots(dir, "boxfold")
	s.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 30, 0, 250e6, time.UTC)
	}
	return s
}

func TestFilename(t *testing.T) {
	s := fixedScreenshots("shots")
	want := filepath.Join("shots", "boxfold_2024-05-01_12-30-00.250_p0.42.png")
	if got := s.Filename(0.4213); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestSaveFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := fixedScreenshots(dir)

	// Two rows, bottom-up: red bottom row, blue top row.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	name, err := s.Save(pixels, 2, 2, 1)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(name, dir) {
		t.Errorf("saved to %q, want inside %q", name, dir)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Errorf("top-left = %v, want blue", img.At(0, 0))
	}
	if r, _, b, _ := img.At(1, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom-right = %v, want red", img.At(1, 1))
	}
}

func TestSaveRejectsBadFrames(t *testing.T) {
	s := fixedScreenshots(t.TempDir())

	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"short", make([]byte, 12), 2, 2},
		{"empty", nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Save(tt.pixels, tt.width, tt.height, 0); err == nil {
				t.Error("Save() succeeded, want error")
			}
		})
	}
}
