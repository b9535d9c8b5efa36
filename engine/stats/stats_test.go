package stats

import (
	"sync"
	"testing"
)

type producer struct{}

func TestGet_ReturnsSameCounter(t *testing.T) {
	a := Get("test", "same")
	b := Get("test", "same")
	if a != b {
		t.Fatal("Get returned different counters for the same key")
	}
	a.Increment()
	a.Add(2)
	if got := b.Value(); got != 3 {
		t.Errorf("Value() = %d, want 3", got)
	}
	if got, want := a.String(), "test/same=3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGroupFor(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{producer{}, "stats.producer"},
		{&producer{}, "stats.producer"},
		{nil, "unknown"},
	}
	for _, tt := range tests {
		if got := GroupFor(tt.in); got != tt.want {
			t.Errorf("GroupFor(%T) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSnapshot_Sorted(t *testing.T) {
	Get("zz-snapshot", "b").Increment()
	Get("zz-snapshot", "a").Increment()

	var got []string
	for _, s := range Snapshot() {
		if s.Group == "zz-snapshot" {
			got = append(got, s.Name)
		}
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("snapshot names = %v, want [a b]", got)
	}
}

func TestEndFrame_Resets(t *testing.T) {
	EndFrame()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				Increment(Commands)
			}
		}()
	}
	wg.Wait()
	Increment(numCounterTypes)

	f := EndFrame()
	if got := f.Get(Commands); got != 1000 {
		t.Errorf("commands = %d, want 1000", got)
	}
	if got := EndFrame().Get(Commands); got != 0 {
		t.Errorf("commands after reset = %d, want 0", got)
	}
}

func TestCounterType_String(t *testing.T) {
	if got := DroppedCommands.String(); got != "dropped" {
		t.Errorf("String() = %q", got)
	}
	if got := CounterType(99).String(); got != "CounterType(99)" {
		t.Errorf("String() = %q", got)
	}
}
