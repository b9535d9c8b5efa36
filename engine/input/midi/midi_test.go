package midi

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hubastard/groveinput/engine/input"
)

func TestParser(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []input.MidiKeyInput
	}{
		{
			name: "note on and off",
			in:   []byte{0x90, 60, 100, 0x80, 60, 64},
			want: []input.MidiKeyInput{{Key: 60, Velocity: 100, Pressed: true}, {Key: 60, Velocity: 64}},
		},
		{
			name: "running status with zero velocity release",
			in:   []byte{0x91, 60, 100, 62, 90, 60, 0},
			want: []input.MidiKeyInput{{Key: 60, Velocity: 100, Pressed: true}, {Key: 62, Velocity: 90, Pressed: true}, {Key: 60}},
		},
		{
			name: "realtime inside a message",
			in:   []byte{0x90, 60, 0xf8, 100},
			want: []input.MidiKeyInput{{Key: 60, Velocity: 100, Pressed: true}},
		},
		{
			name: "sysex and other channel messages skipped",
			in:   []byte{0xf0, 0x7e, 60, 0xf7, 0xc0, 5, 0xb0, 7, 127, 0x90, 61, 1},
			want: []input.MidiKeyInput{{Key: 61, Velocity: 1, Pressed: true}},
		},
		{
			name: "data without status ignored",
			in:   []byte{60, 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Parser
			var got []input.MidiKeyInput
			p.Feed(tt.in, func(c input.MidiKeyInput) { got = append(got, c) })
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

type sink struct {
	mu   sync.Mutex
	cmds []input.Command
}

func (s *sink) Enqueue(c input.Command) {
	s.mu.Lock()
	s.cmds = append(s.cmds, c)
	s.mu.Unlock()
}

func (s *sink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cmds)
}

func TestHandler_ReadsUntilDisabled(t *testing.T) {
	r, w := io.Pipe()
	h := New(func() (io.ReadCloser, error) { return r, nil }, nil)
	s := &sink{}
	if err := h.Initialize(s); err != nil {
		t.Fatal(err)
	}
	if !h.IsActive() {
		t.Fatal("handler inactive after initialize")
	}

	if _, err := w.Write([]byte{0x90, 64, 80}); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no command received")
		}
		time.Sleep(5 * time.Millisecond)
	}

	h.Enabled().Set(false)
	if h.IsActive() {
		t.Error("still active after disabling")
	}
	if _, err := w.Write([]byte{0x80, 64, 0}); err == nil {
		t.Error("port still read after disabling")
	}
	if err := h.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestHandler_NoDevice(t *testing.T) {
	h := New(func() (io.ReadCloser, error) { return nil, ErrNoDevice }, nil)
	err := h.Initialize(&sink{})
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("Initialize() = %v, want ErrNoDevice", err)
	}
	if h.IsActive() {
		t.Error("active without a device")
	}
	h.Close()
}

func TestHandler_LogsFailedEnable(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := New(func() (io.ReadCloser, error) { return nil, ErrNoDevice }, log)
	h.Enabled().Set(false)
	if err := h.Initialize(&sink{}); err != nil {
		t.Fatalf("Initialize() while disabled = %v", err)
	}
	defer h.Close()

	h.Enabled().Set(true)
	if h.IsActive() {
		t.Error("active without a device")
	}
	if out := buf.String(); !strings.Contains(out, "midi port failed to open") || !strings.Contains(out, ErrNoDevice.Error()) {
		t.Errorf("log = %q, want the open failure", out)
	}
}
