package scene

// Vec2 is a point or extent in screen space.
type Vec2 struct{ X, Y float32 }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Drawable is a node of the retained scene graph. Types get the default
// behaviour by embedding a *Base initialised with NewBase(owner).
type Drawable interface {
	Node() *Base

	// BuildPositionalQueue appends the drawables interested in positional
	// input at pos. It reports whether traversal should recurse into the
	// drawable's children.
	BuildPositionalQueue(pos Vec2, queue []Drawable) ([]Drawable, bool)

	// BuildNonPositionalQueue appends the drawables interested in
	// non-positional input. When allowBlocking is false, subtrees that
	// normally block traversal must still be visited.
	BuildNonPositionalQueue(queue []Drawable, allowBlocking bool) ([]Drawable, bool)
}

// Updater is implemented by drawables that do per-frame work.
type Updater interface {
	Update()
}

// Attacher is notified when the drawable, or any of its ancestors, enters or
// leaves a parent. Ancestors are notified before their descendants.
type Attacher interface {
	Attached()
	Detached()
}

type Base struct {
	owner    Drawable
	parent   Drawable
	children []Drawable
	position Vec2
	size     Vec2

	// PropagatePositional gates traversal of positional queues into this subtree.
	PropagatePositional bool
	// PropagateNonPositional gates traversal of non-positional queues into this subtree.
	PropagateNonPositional bool
	// HandlePositional adds the node to positional queues when the point is inside it.
	HandlePositional bool
	// HandleNonPositional adds the node to non-positional queues.
	HandleNonPositional bool
}

func NewBase(owner Drawable) *Base {
	return &Base{
		owner:                  owner,
		PropagatePositional:    true,
		PropagateNonPositional: true,
	}
}

func (n *Base) Node() *Base          { return n }
func (n *Base) Owner() Drawable      { return n.owner }
func (n *Base) Parent() Drawable     { return n.parent }
func (n *Base) Children() []Drawable { return n.children }
func (n *Base) Pos() Vec2            { return n.position }
func (n *Base) Size() Vec2           { return n.size }
func (n *Base) SetPos(x, y float32)  { n.position = Vec2{x, y} }
func (n *Base) SetSize(w, h float32) { n.size = Vec2{w, h} }
func (n *Base) IsAttached() bool     { return n.parent != nil }
func (n *Base) SetBounds(x, y, w, h float32) {
	n.SetPos(x, y)
	n.SetSize(w, h)
}

// Contains reports whether the screen-space point lies within the node.
func (n *Base) Contains(p Vec2) bool {
	return p.X >= n.position.X && p.X < n.position.X+n.size.X &&
		p.Y >= n.position.Y && p.Y < n.position.Y+n.size.Y
}

// Add appends children, detaching them from any previous parent first.
func (n *Base) Add(kids ...Drawable) {
	for _, k := range kids {
		kn := k.Node()
		if kn.parent != nil {
			kn.parent.Node().Remove(k)
		}
		kn.parent = n.owner
		n.children = append(n.children, k)
		notifyAttached(k)
	}
}

// Remove detaches a direct child. It reports whether the child was found.
func (n *Base) Remove(child Drawable) bool {
	for i, c := range n.children {
		if c != child {
			continue
		}
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		child.Node().parent = nil
		notifyDetached(child)
		return true
	}
	return false
}

// notifyAttached walks the subtree of d, parents first, so that a
// descendant resolving its ancestors sees the new chain.
func notifyAttached(d Drawable) {
	if a, ok := d.(Attacher); ok {
		a.Attached()
	}
	// Callbacks may change the tree; walk a snapshot.
	for _, c := range append([]Drawable(nil), d.Node().children...) {
		notifyAttached(c)
	}
}

func notifyDetached(d Drawable) {
	if a, ok := d.(Attacher); ok {
		a.Detached()
	}
	// Callbacks may change the tree; walk a snapshot.
	for _, c := range append([]Drawable(nil), d.Node().children...) {
		notifyDetached(c)
	}
}

func (n *Base) BuildPositionalQueue(pos Vec2, queue []Drawable) ([]Drawable, bool) {
	if !n.PropagatePositional {
		return queue, false
	}
	if n.HandlePositional && n.Contains(pos) {
		queue = append(queue, n.owner)
	}
	return queue, true
}

func (n *Base) BuildNonPositionalQueue(queue []Drawable, allowBlocking bool) ([]Drawable, bool) {
	if !n.PropagateNonPositional {
		return queue, false
	}
	if n.HandleNonPositional {
		queue = append(queue, n.owner)
	}
	return queue, true
}

// FindAncestor walks the parent chain of d and returns the first ancestor
// accepted by match, or nil.
func FindAncestor(d Drawable, match func(Drawable) bool) Drawable {
	for p := d.Node().parent; p != nil; p = p.Node().parent {
		if match(p) {
			return p
		}
	}
	return nil
}

// UpdateSubTree runs Update on d and then on its descendants, parents first.
func UpdateSubTree(d Drawable) {
	if u, ok := d.(Updater); ok {
		u.Update()
	}
	// Children may be mutated by Update; iterate over a snapshot.
	kids := append([]Drawable(nil), d.Node().children...)
	for _, c := range kids {
		UpdateSubTree(c)
	}
}
