package framebuffer

import "testing"

func TestAtLeastOne(t *testing.T) {
	tests := []struct {
		w, h         int32
		wantW, wantH int32
	}{
		{1280, 720, 1280, 720},
		{0, 720, 1, 720},
		{-5, 0, 1, 1},
	}
	for _, tt := range tests {
		w, h := atLeastOne(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("atLeastOne(%d, %d) = %d, %d, want %d, %d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}
