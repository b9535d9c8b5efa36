package scene

// PositionalQueue collects the positional input queue of the children of
// root at pos. The result is ordered front-most first: later children are
// drawn on top of earlier ones and descendants on top of their parents.
func PositionalQueue(root Drawable, pos Vec2, queue []Drawable) []Drawable {
	start := len(queue)
	for _, c := range root.Node().children {
		queue = positional(c, pos, queue)
	}
	reverse(queue[start:])
	return queue
}

// NonPositionalQueue collects the non-positional input queue of the children
// of root, front-most first.
func NonPositionalQueue(root Drawable, allowBlocking bool, queue []Drawable) []Drawable {
	start := len(queue)
	for _, c := range root.Node().children {
		queue = nonPositional(c, allowBlocking, queue)
	}
	reverse(queue[start:])
	return queue
}

// WalkPositional visits d and, unless d stops it, its subtree. Drawables that
// override BuildPositionalQueue use it to forward into their children.
func WalkPositional(d Drawable, pos Vec2, queue []Drawable) []Drawable {
	return positional(d, pos, queue)
}

// WalkNonPositional is the non-positional counterpart of WalkPositional.
func WalkNonPositional(d Drawable, allowBlocking bool, queue []Drawable) []Drawable {
	return nonPositional(d, allowBlocking, queue)
}

func positional(d Drawable, pos Vec2, queue []Drawable) []Drawable {
	queue, recurse := d.BuildPositionalQueue(pos, queue)
	if !recurse {
		return queue
	}
	for _, c := range d.Node().children {
		queue = positional(c, pos, queue)
	}
	return queue
}

func nonPositional(d Drawable, allowBlocking bool, queue []Drawable) []Drawable {
	queue, recurse := d.BuildNonPositionalQueue(queue, allowBlocking)
	if !recurse {
		return queue
	}
	for _, c := range d.Node().children {
		queue = nonPositional(c, allowBlocking, queue)
	}
	return queue
}

func reverse(s []Drawable) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
