// Package stats holds process-wide counters. Global counters live for the
// lifetime of the process and are keyed by the producer that registered
// them; frame counters are reset by the frame loop once per frame.
package stats

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

// -------- global counters --------

// Counter is a named monotonically increasing value.
type Counter struct {
	group string
	name  string
	v     atomic.Uint64
}

func (c *Counter) Group() string  { return c.group }
func (c *Counter) Name() string   { return c.name }
func (c *Counter) Value() uint64  { return c.v.Load() }
func (c *Counter) Increment()     { c.v.Add(1) }
func (c *Counter) Add(n uint64)   { c.v.Add(n) }
func (c *Counter) String() string { return fmt.Sprintf("%s/%s=%d", c.group, c.name, c.Value()) }

type counterKey struct{ group, name string }

var registry struct {
	mu       sync.Mutex
	counters map[counterKey]*Counter
}

// Get returns the counter registered under group and name, creating it on
// first use. Repeated calls return the same counter.
func Get(group, name string) *Counter {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.counters == nil {
		registry.counters = make(map[counterKey]*Counter)
	}
	k := counterKey{group, name}
	c, ok := registry.counters[k]
	if !ok {
		c = &Counter{group: group, name: name}
		registry.counters[k] = c
	}
	return c
}

// GroupFor derives a group name from the type of producer.
func GroupFor(producer any) string {
	t := reflect.TypeOf(producer)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	return t.String()
}

// Sample is a point-in-time copy of one counter.
type Sample struct {
	Group string
	Name  string
	Value uint64
}

// Snapshot returns every registered counter ordered by group then name.
func Snapshot() []Sample {
	registry.mu.Lock()
	out := make([]Sample, 0, len(registry.counters))
	for _, c := range registry.counters {
		out = append(out, Sample{c.group, c.name, c.Value()})
	}
	registry.mu.Unlock()
	slices.SortFunc(out, func(a, b Sample) int {
		return cmp.Or(cmp.Compare(a.Group, b.Group), cmp.Compare(a.Name, b.Name))
	})
	return out
}

// -------- frame counters --------

// CounterType is a per-frame counter.
type CounterType int

const (
	Commands CounterType = iota
	DroppedCommands
	Events
	MouseEvents
	KeyEvents
	TouchEvents
	JoystickEvents
	MidiEvents
	TabletEvents
	numCounterTypes
)

var counterNames = [numCounterTypes]string{
	Commands:        "commands",
	DroppedCommands: "dropped",
	Events:          "events",
	MouseEvents:     "mouse",
	KeyEvents:       "keys",
	TouchEvents:     "touch",
	JoystickEvents:  "joystick",
	MidiEvents:      "midi",
	TabletEvents:    "tablet",
}

func (t CounterType) String() string {
	if t < 0 || t >= numCounterTypes {
		return fmt.Sprintf("CounterType(%d)", int(t))
	}
	return counterNames[t]
}

var frame [numCounterTypes]atomic.Int64

// Increment bumps a frame counter. Safe from any goroutine.
func Increment(t CounterType) {
	if t >= 0 && t < numCounterTypes {
		frame[t].Add(1)
	}
}

// Frame is a copy of the frame counters.
type Frame [numCounterTypes]int64

func (f Frame) Get(t CounterType) int64 { return f[t] }

// EndFrame returns the counters accumulated since the previous call and
// resets them.
func EndFrame() Frame {
	var f Frame
	for i := range frame {
		f[i] = frame[i].Swap(0)
	}
	return f
}
