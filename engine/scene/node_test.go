package scene

import (
	"slices"
	"testing"
)

type node struct {
	*Base
	name     string
	attached int
	detached int
	updates  *[]string
	onAttach func()
	// stop makes the node a leaf for positional traversal.
	stop bool
}

func newNode(name string, x, y, w, h float32) *node {
	n := &node{name: name}
	n.Base = NewBase(n)
	n.HandlePositional = true
	n.HandleNonPositional = true
	n.SetBounds(x, y, w, h)
	return n
}

func (n *node) Attached() {
	n.attached++
	if n.onAttach != nil {
		n.onAttach()
	}
}
func (n *node) Detached() { n.detached++ }

func (n *node) Update() {
	if n.updates != nil {
		*n.updates = append(*n.updates, n.name)
	}
}

func (n *node) BuildPositionalQueue(pos Vec2, queue []Drawable) ([]Drawable, bool) {
	queue, recurse := n.Base.BuildPositionalQueue(pos, queue)
	return queue, recurse && !n.stop
}

func names(q []Drawable) []string {
	var out []string
	for _, d := range q {
		out = append(out, d.(*node).name)
	}
	return out
}

func TestAddRemove(t *testing.T) {
	a, b, c := newNode("a", 0, 0, 1, 1), newNode("b", 0, 0, 1, 1), newNode("c", 0, 0, 1, 1)
	a.Add(c)
	b.Add(c)

	if c.Parent() != b || len(a.Children()) != 0 {
		t.Fatalf("re-adding did not move c: parent %v, a.children %d", c.Parent(), len(a.Children()))
	}
	if c.attached != 2 || c.detached != 1 {
		t.Errorf("attached %d detached %d, want 2 and 1", c.attached, c.detached)
	}
	if !b.Remove(c) || c.IsAttached() || c.detached != 2 {
		t.Error("Remove did not detach c")
	}
	if b.Remove(c) {
		t.Error("second Remove reported success")
	}
}

func TestPositionalQueue(t *testing.T) {
	root := newNode("root", 0, 0, 100, 100)
	back := newNode("back", 0, 0, 50, 50)
	front := newNode("front", 10, 10, 20, 20)
	inner := newNode("inner", 10, 10, 5, 5)
	other := newNode("other", 60, 60, 10, 10)
	front.Add(inner)
	root.Add(back, front, other)

	tests := []struct {
		name string
		pos  Vec2
		want []string
	}{
		{"stacked", Vec2{12, 12}, []string{"inner", "front", "back"}},
		{"back only", Vec2{40, 40}, []string{"back"}},
		{"other", Vec2{65, 65}, []string{"other"}},
		{"nothing", Vec2{90, 10}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(PositionalQueue(root, tt.pos, nil))
			if !slices.Equal(got, tt.want) {
				t.Errorf("PositionalQueue(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}

	front.stop = true
	if got := names(PositionalQueue(root, Vec2{12, 12}, nil)); !slices.Equal(got, []string{"front", "back"}) {
		t.Errorf("with front blocking = %v", got)
	}
	front.stop = false
	front.PropagatePositional = false
	if got := names(PositionalQueue(root, Vec2{12, 12}, nil)); !slices.Equal(got, []string{"back"}) {
		t.Errorf("with front not propagating = %v", got)
	}
}

func TestNonPositionalQueue(t *testing.T) {
	root := newNode("root", 0, 0, 0, 0)
	a, b, c := newNode("a", 0, 0, 0, 0), newNode("b", 0, 0, 0, 0), newNode("c", 0, 0, 0, 0)
	a.Add(b)
	root.Add(a, c)

	// Prefix of an existing queue must be left alone.
	prefix := []Drawable{root}
	got := NonPositionalQueue(root, true, prefix)
	if want := []string{"root", "c", "b", "a"}; !slices.Equal(names(got), want) {
		t.Errorf("NonPositionalQueue = %v, want %v", names(got), want)
	}

	a.HandleNonPositional = false
	a.PropagateNonPositional = false
	if got := names(NonPositionalQueue(root, true, nil)); !slices.Equal(got, []string{"c"}) {
		t.Errorf("with a blocked = %v", got)
	}
}

func TestFindAncestor(t *testing.T) {
	a, b, c := newNode("a", 0, 0, 0, 0), newNode("b", 0, 0, 0, 0), newNode("c", 0, 0, 0, 0)
	a.Add(b)
	b.Add(c)

	got := FindAncestor(c, func(d Drawable) bool { return d.(*node).name == "a" })
	if got != a {
		t.Errorf("FindAncestor = %v, want a", got)
	}
	if FindAncestor(c, func(d Drawable) bool { return d == c }) != nil {
		t.Error("FindAncestor matched the drawable itself")
	}
}

func TestUpdateSubTree(t *testing.T) {
	var order []string
	a, b, c := newNode("a", 0, 0, 0, 0), newNode("b", 0, 0, 0, 0), newNode("c", 0, 0, 0, 0)
	for _, n := range []*node{a, b, c} {
		n.updates = &order
	}
	a.Add(b, c)

	UpdateSubTree(a)
	if want := []string{"a", "b", "c"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestAttachReachesDescendants(t *testing.T) {
	root, box, leaf := newNode("root", 0, 0, 0, 0), newNode("box", 0, 0, 0, 0), newNode("leaf", 0, 0, 0, 0)
	box.Add(leaf)
	leaf.attached = 0

	var parentOnAttach Drawable
	leaf.onAttach = func() { parentOnAttach = FindAncestor(leaf, func(d Drawable) bool { return d == root }) }
	root.Add(box)

	if leaf.attached != 1 {
		t.Fatalf("leaf attached %d times, want 1", leaf.attached)
	}
	if parentOnAttach != root {
		t.Error("leaf was notified before its chain reached root")
	}

	root.Remove(box)
	if leaf.detached != 1 || box.detached != 1 {
		t.Errorf("detached box %d leaf %d, want 1 and 1", box.detached, leaf.detached)
	}
}
