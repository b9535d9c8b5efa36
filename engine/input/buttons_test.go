package input

import (
	"math/rand"
	"slices"
	"testing"
)

func buttonsOf[T Key | MouseButton](bs ...T) *ButtonStates[T] {
	s := &ButtonStates[T]{}
	for _, b := range bs {
		s.SetPressed(b, true)
	}
	return s
}

func TestButtonStates_SetPressed(t *testing.T) {
	var s ButtonStates[Key]

	if !s.SetPressed(KeyB, true) {
		t.Error("first press should change the set")
	}
	if s.SetPressed(KeyB, true) {
		t.Error("second press should be a no-op")
	}
	s.SetPressed(KeyA, true)
	if got := s.Values(); !slices.Equal(got, []Key{KeyA, KeyB}) {
		t.Errorf("Values() = %v, want [A B]", got)
	}
	if !s.SetPressed(KeyA, false) {
		t.Error("release should change the set")
	}
	if s.SetPressed(KeyA, false) {
		t.Error("releasing a released key should be a no-op")
	}
	if s.IsPressed(KeyA) || !s.IsPressed(KeyB) {
		t.Errorf("state = %s, want {B}", s.String())
	}
}

func TestButtonStates_NilIsEmpty(t *testing.T) {
	var s *ButtonStates[MouseButton]
	if s.IsPressed(MouseLeft) {
		t.Error("nil set reports a pressed button")
	}
	if s.Len() != 0 || s.Values() != nil {
		t.Error("nil set is not empty")
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur []Key
		pressed   []Key
		released  []Key
	}{
		{"both empty", nil, nil, nil, nil},
		{"press", nil, []Key{KeyB, KeyA}, []Key{KeyA, KeyB}, nil},
		{"release", []Key{KeySpace}, nil, nil, []Key{KeySpace}},
		{"mixed", []Key{KeyA, KeyC, KeyE}, []Key{KeyB, KeyC, KeyD}, []Key{KeyB, KeyD}, []Key{KeyA, KeyE}},
		{"equal", []Key{KeyA, KeyZ}, []Key{KeyZ, KeyA}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Diff(buttonsOf(tt.prev...), buttonsOf(tt.cur...))
			if !slices.Equal(d.Pressed, tt.pressed) {
				t.Errorf("Pressed = %v, want %v", d.Pressed, tt.pressed)
			}
			if !slices.Equal(d.Released, tt.released) {
				t.Errorf("Released = %v, want %v", d.Released, tt.released)
			}
		})
	}
}

func TestDiff_NilSides(t *testing.T) {
	cur := buttonsOf(MouseLeft, MouseRight)
	d := Diff(nil, cur)
	if !slices.Equal(d.Pressed, []MouseButton{MouseLeft, MouseRight}) || len(d.Released) != 0 {
		t.Errorf("Diff(nil, cur) = %+v", d)
	}
	d = Diff(cur, nil)
	if !slices.Equal(d.Released, []MouseButton{MouseLeft, MouseRight}) || len(d.Pressed) != 0 {
		t.Errorf("Diff(cur, nil) = %+v", d)
	}
}

// Diff must satisfy current = (previous ∪ Pressed) \ Released with disjoint
// sides for arbitrary sets.
func TestDiff_SetLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a, b := &ButtonStates[Key]{}, &ButtonStates[Key]{}
		for k := KeyA; k <= KeyZ; k++ {
			a.SetPressed(k, rng.Intn(2) == 0)
			b.SetPressed(k, rng.Intn(2) == 0)
		}
		d := Diff(a, b)

		for _, k := range d.Pressed {
			if a.IsPressed(k) || !b.IsPressed(k) {
				t.Fatalf("pressed %v not in B\\A", k)
			}
			if slices.Contains(d.Released, k) {
				t.Fatalf("%v both pressed and released", k)
			}
		}
		for _, k := range d.Released {
			if !a.IsPressed(k) || b.IsPressed(k) {
				t.Fatalf("released %v not in A\\B", k)
			}
		}

		applied := a.Clone()
		for _, k := range d.Pressed {
			applied.SetPressed(k, true)
		}
		for _, k := range d.Released {
			applied.SetPressed(k, false)
		}
		if !slices.Equal(applied.Values(), b.Values()) {
			t.Fatalf("applying diff gave %v, want %v", applied.Values(), b.Values())
		}
		if !slices.IsSorted(d.Pressed) || !slices.IsSorted(d.Released) {
			t.Fatal("diff is not in ascending order")
		}
	}
}

func TestTouchDiff(t *testing.T) {
	prev, cur := &TouchState{}, &TouchState{}
	prev.Active.SetPressed(0, true)
	prev.Positions[0] = Vec2{X: 1, Y: 1}
	prev.Active.SetPressed(1, true)
	prev.Positions[1] = Vec2{X: 2, Y: 2}

	cur.Active.SetPressed(1, true)
	cur.Positions[1] = Vec2{X: 3, Y: 3}
	cur.Active.SetPressed(2, true)
	cur.Positions[2] = Vec2{X: 4, Y: 4}

	activated, deactivated := TouchDiff(prev, cur)
	if want := []Touch{{0, Vec2{X: 1, Y: 1}}}; !slices.Equal(deactivated, want) {
		t.Errorf("deactivated = %v, want %v", deactivated, want)
	}
	if want := []Touch{{1, Vec2{X: 3, Y: 3}}, {2, Vec2{X: 4, Y: 4}}}; !slices.Equal(activated, want) {
		t.Errorf("activated = %v, want %v", activated, want)
	}

	activated, deactivated = TouchDiff(cur, cur)
	if len(activated) != 0 || len(deactivated) != 0 {
		t.Errorf("TouchDiff(x, x) = %v, %v, want nothing", activated, deactivated)
	}
}

func TestInputState_CloneIsIndependent(t *testing.T) {
	s := NewInputState()
	s.Keyboard.Keys.SetPressed(KeyA, true)
	s.Midi.Keys.SetPressed(60, true)
	s.Midi.Velocities[60] = 100

	c := s.Clone()
	c.Keyboard.Keys.SetPressed(KeyB, true)
	c.Midi.Velocities[60] = 1

	if s.Keyboard.Keys.IsPressed(KeyB) {
		t.Error("clone shares keyboard state")
	}
	if s.Midi.Velocities[60] != 100 {
		t.Error("clone shares MIDI velocities")
	}
}
