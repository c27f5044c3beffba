package window

import "testing"

func TestCappedViewport(t *testing.T) {
	tests := []struct {
		name         string
		winW, winH   int
		drawW, drawH int
		maxRatio     float32
		wantW, wantH int
	}{
		{"standard display", 1280, 720, 1280, 720, 2, 1280, 720},
		{"retina within cap", 1280, 720, 2560, 1440, 2, 2560, 1440},
		{"3x display capped", 1000, 600, 3000, 1800, 2, 2000, 1200},
		{"uncapped", 1000, 600, 3000, 1800, 0, 3000, 1800},
		{"minimized", 0, 0, 0, 0, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := CappedViewport(tt.winW, tt.winH, tt.drawW, tt.drawH, tt.maxRatio)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("CappedViewport() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
