package colors

import "testing"

func TestRGB8(t *testing.T) {
	tests := []struct {
		c       Color
		r, g, b int32
	}{
		{White, 255, 255, 255},
		{Black, 0, 0, 0},
		{Color{0.5, 2, -1, 1}, 128, 255, 0},
	}
	for _, tt := range tests {
		r, g, b := tt.c.RGB8()
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("%v.RGB8() = %d,%d,%d, want %d,%d,%d", tt.c, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestOver(t *testing.T) {
	got := White.WithAlpha(0.5).Over(Black)
	if got != (Color{0.5, 0.5, 0.5, 1}) {
		t.Errorf("Over = %v", got)
	}
}
