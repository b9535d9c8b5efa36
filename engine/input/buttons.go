package input

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ButtonStates is the set of currently pressed buttons of one kind. Values
// are kept sorted so enumeration order is deterministic.
//
// The zero value is an empty set ready to use.
type ButtonStates[T cmp.Ordered] struct {
	pressed []T
}

// IsPressed reports whether b is in the set.
func (s *ButtonStates[T]) IsPressed(b T) bool {
	if s == nil {
		return false
	}
	_, ok := slices.BinarySearch(s.pressed, b)
	return ok
}

// SetPressed adds or removes b. It reports whether the set changed.
func (s *ButtonStates[T]) SetPressed(b T, pressed bool) bool {
	i, ok := slices.BinarySearch(s.pressed, b)
	switch {
	case pressed && !ok:
		s.pressed = slices.Insert(s.pressed, i, b)
		return true
	case !pressed && ok:
		s.pressed = slices.Delete(s.pressed, i, i+1)
		return true
	}
	return false
}

// HasAnyButtonPressed reports whether the set is non-empty.
func (s *ButtonStates[T]) HasAnyButtonPressed() bool { return s.Len() > 0 }

func (s *ButtonStates[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pressed)
}

// Values returns the pressed buttons in ascending order.
func (s *ButtonStates[T]) Values() []T {
	if s == nil {
		return nil
	}
	return slices.Clone(s.pressed)
}

func (s *ButtonStates[T]) Clear() { s.pressed = s.pressed[:0] }

func (s *ButtonStates[T]) Clone() ButtonStates[T] {
	if s == nil {
		return ButtonStates[T]{}
	}
	return ButtonStates[T]{pressed: slices.Clone(s.pressed)}
}

func (s *ButtonStates[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, b := range s.Values() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, b)
	}
	sb.WriteByte('}')
	return sb.String()
}

// ButtonDiff is the difference between two snapshots of a button set.
type ButtonDiff[T cmp.Ordered] struct {
	Pressed  []T // in current but not previous
	Released []T // in previous but not current
}

func (d ButtonDiff[T]) Empty() bool { return len(d.Pressed) == 0 && len(d.Released) == 0 }

// Diff computes which buttons must be pressed and released to turn previous
// into current. Both sides are ascending. A nil set is empty.
func Diff[T cmp.Ordered](previous, current *ButtonStates[T]) ButtonDiff[T] {
	var prev, cur []T
	if previous != nil {
		prev = previous.pressed
	}
	if current != nil {
		cur = current.pressed
	}

	var d ButtonDiff[T]
	i, j := 0, 0
	for i < len(prev) && j < len(cur) {
		switch c := cmp.Compare(prev[i], cur[j]); {
		case c == 0:
			i++
			j++
		case c < 0:
			d.Released = append(d.Released, prev[i])
			i++
		default:
			d.Pressed = append(d.Pressed, cur[j])
			j++
		}
	}
	d.Released = append(d.Released, prev[i:]...)
	d.Pressed = append(d.Pressed, cur[j:]...)
	return d
}

// ButtonEntry is one button transition inside a batched command.
type ButtonEntry[T cmp.Ordered] struct {
	Button  T
	Pressed bool
}
