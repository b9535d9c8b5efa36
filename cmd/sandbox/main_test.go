package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/hubastard/groveinput/engine/input"
)

type missingDevice struct {
	input.DeviceBase
	name string
}

func (d *missingDevice) Description() string         { return d.name }
func (d *missingDevice) Initialize(input.Sink) error { return errors.New("not plugged in") }
func (d *missingDevice) IsActive() bool              { return false }
func (d *missingDevice) Close() error                { return nil }

func TestAddOptional(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	root := input.NewManager(input.WithLogger(log))

	a := &missingDevice{DeviceBase: input.NewDeviceBase(true), name: "pedal"}
	b := &missingDevice{DeviceBase: input.NewDeviceBase(true), name: "wheel"}
	addOptional(root, log, a, b)

	if got := len(root.Devices()); got != 2 {
		t.Errorf("registered %d devices, want 2", got)
	}
	out := buf.String()
	for _, name := range []string{"pedal", "wheel"} {
		if !strings.Contains(out, "continuing without device") || !strings.Contains(out, name) {
			t.Errorf("log does not mention %s: %q", name, out)
		}
	}
}
