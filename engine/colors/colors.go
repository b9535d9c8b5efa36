package colors

// Color is linear RGBA in [0,1].
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{0.86, 0.20, 0.18, 1}
	Green    = Color{0.30, 0.69, 0.31, 1}
	Blue     = Color{0.13, 0.47, 0.85, 1}
	Black    = Color{0, 0, 0, 1}
	Yellow   = Color{0.98, 0.80, 0.18, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Over composites c over bg and returns an opaque colour.
func (c Color) Over(bg Color) Color {
	a := c[3]
	return Color{
		c[0]*a + bg[0]*(1-a),
		c[1]*a + bg[1]*(1-a),
		c[2]*a + bg[2]*(1-a),
		1,
	}
}

// RGB8 returns the colour channels scaled to 0..255, ignoring alpha.
func (c Color) RGB8() (r, g, b int32) {
	to8 := func(v float32) int32 { return int32(min(max(v, 0), 1)*255 + 0.5) }
	return to8(c[0]), to8(c[1]), to8(c[2])
}
