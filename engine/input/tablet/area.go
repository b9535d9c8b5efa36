package tablet

import (
	"math"

	"github.com/hubastard/groveinput/engine/input"
)

// Area is a rotated rectangle. Position is its centre.
type Area struct {
	Position input.Vec2
	Size     input.Vec2
	// Rotation in degrees, clockwise.
	Rotation float32
}

// Normalize maps p into the area's unit square, (0,0) being the top-left
// corner. Points outside the area fall outside [0,1].
func (a Area) Normalize(p input.Vec2) input.Vec2 {
	if a.Size.X == 0 || a.Size.Y == 0 {
		return input.Vec2{}
	}
	d := p.Sub(a.Position)
	s, c := math.Sincos(float64(a.Rotation) * math.Pi / 180)
	x := float64(d.X)*c + float64(d.Y)*s
	y := -float64(d.X)*s + float64(d.Y)*c
	return input.Vec2{
		X: float32(x)/a.Size.X + 0.5,
		Y: float32(y)/a.Size.Y + 0.5,
	}
}

// Denormalize is the inverse of Normalize for an unrotated area.
func (a Area) Denormalize(n input.Vec2) input.Vec2 {
	return input.Vec2{
		X: a.Position.X + (n.X-0.5)*a.Size.X,
		Y: a.Position.Y + (n.Y-0.5)*a.Size.Y,
	}
}

// Map converts a digitizer position into output coordinates. Points outside
// the input area are clamped to its edge.
func Map(in, out Area, p input.Vec2) input.Vec2 {
	n := in.Normalize(p)
	n.X = clamp01(n.X)
	n.Y = clamp01(n.Y)
	return out.Denormalize(n)
}

// OutputArea places an output rectangle inside a window. size is the
// fraction of the window covered and position the normalized placement of
// the remaining margin; {0.5, 0.5} centres it.
func OutputArea(window, position, size input.Vec2) Area {
	w, h := window.X, window.Y
	return Area{
		Position: input.Vec2{
			X: w/2 + (1-size.X)*(position.X-0.5)*w,
			Y: h/2 + (1-size.Y)*(position.Y-0.5)*h,
		},
		Size: input.Vec2{X: w * size.X, Y: h * size.Y},
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
