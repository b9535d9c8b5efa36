// Package bindable provides observable value cells used to drive
// configuration such as adapter settings and the pass-through toggle.
//
// A Bindable notifies its subscribers synchronously on the goroutine that
// changed it. Two bindables can be bound to each other; a change to either
// is mirrored to the other. Equal values never notify, which also stops
// mirrored updates from bouncing back.
package bindable

import "sync"

// ValueChanged describes a change of value.
type ValueChanged[T comparable] struct {
	Old T
	New T
}

// Subscription is returned by OnChange and removes the observer.
type Subscription struct {
	unsubscribe func()
}

func (s Subscription) Unsubscribe() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

type observer[T comparable] struct {
	id uint64
	fn func(ValueChanged[T])
}

type Bindable[T comparable] struct {
	mu        sync.Mutex
	value     T
	def       T
	observers []observer[T]
	nextID    uint64
	bindings  []*Bindable[T]
}

// New returns a bindable holding def as both its value and its default.
func New[T comparable](def T) *Bindable[T] {
	return &Bindable[T]{value: def, def: def}
}

func (b *Bindable[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

func (b *Bindable[T]) Default() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.def
}

// SetDefault changes the default without touching the current value.
func (b *Bindable[T]) SetDefault(def T) {
	b.mu.Lock()
	b.def = def
	b.mu.Unlock()
}

func (b *Bindable[T]) IsDefault() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value == b.def
}

// ResetToDefault sets the value to the default.
func (b *Bindable[T]) ResetToDefault() { b.Set(b.Default()) }

// Set changes the value and notifies observers and bound bindables. Setting
// the current value is a no-op.
func (b *Bindable[T]) Set(v T) {
	b.mu.Lock()
	if b.value == v {
		b.mu.Unlock()
		return
	}
	ev := ValueChanged[T]{Old: b.value, New: v}
	b.value = v
	obs := append([]observer[T](nil), b.observers...)
	bound := append([]*Bindable[T](nil), b.bindings...)
	b.mu.Unlock()

	for _, o := range obs {
		o.fn(ev)
	}
	for _, other := range bound {
		other.Set(v)
	}
}

// OnChange registers fn. With runOnceImmediately, fn is also called right
// away with the current value as both Old and New.
func (b *Bindable[T]) OnChange(fn func(ValueChanged[T]), runOnceImmediately bool) Subscription {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.observers = append(b.observers, observer[T]{id: id, fn: fn})
	cur := b.value
	b.mu.Unlock()

	if runOnceImmediately {
		fn(ValueChanged[T]{Old: cur, New: cur})
	}
	return Subscription{unsubscribe: func() { b.removeObserver(id) }}
}

func (b *Bindable[T]) removeObserver(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.observers {
		if o.id == id {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// BindTo binds b and target both ways. b takes target's value and default.
func (b *Bindable[T]) BindTo(target *Bindable[T]) {
	if target == b {
		return
	}
	b.SetDefault(target.Default())
	b.Set(target.Value())

	b.mu.Lock()
	b.bindings = append(b.bindings, target)
	b.mu.Unlock()

	target.mu.Lock()
	target.bindings = append(target.bindings, b)
	target.mu.Unlock()
}

// UnbindFrom removes a binding created by BindTo on either side.
func (b *Bindable[T]) UnbindFrom(target *Bindable[T]) {
	b.removeBinding(target)
	target.removeBinding(b)
}

// UnbindAll removes every observer and binding of b.
func (b *Bindable[T]) UnbindAll() {
	b.mu.Lock()
	bound := b.bindings
	b.bindings = nil
	b.observers = nil
	b.mu.Unlock()
	for _, other := range bound {
		other.removeBinding(b)
	}
}

func (b *Bindable[T]) removeBinding(target *Bindable[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.bindings {
		if o == target {
			b.bindings = append(b.bindings[:i], b.bindings[i+1:]...)
			return
		}
	}
}
