// Package midi reads note input from a raw MIDI device.
package midi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hubastard/groveinput/engine/bindable"
	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/stats"
)

// ErrNoDevice is returned when no raw MIDI device can be opened.
var ErrNoDevice = errors.New("midi: no device found")

// OpenFunc opens the byte stream of a MIDI input port.
type OpenFunc func() (io.ReadCloser, error)

// OpenRawDevice opens the first ALSA raw MIDI device.
func OpenRawDevice() (io.ReadCloser, error) {
	paths, _ := filepath.Glob("/dev/snd/midiC*D*")
	for _, p := range paths {
		f, err := os.Open(p)
		if err == nil {
			return f, nil
		}
	}
	return nil, ErrNoDevice
}

type Handler struct {
	input.DeviceBase

	open OpenFunc
	log  *slog.Logger

	mu     sync.Mutex
	sink   input.Sink
	port   io.ReadCloser
	group  *errgroup.Group
	enable bindable.Subscription
}

func New(open OpenFunc, log *slog.Logger) *Handler {
	if open == nil {
		open = OpenRawDevice
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{DeviceBase: input.NewDeviceBase(true), open: open, log: log}
}

func (h *Handler) Description() string { return "MIDI" }

func (h *Handler) IsActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.port != nil
}

// Initialize opens the port when enabled. A missing device is reported but
// the handler stays registered so it can be enabled later.
func (h *Handler) Initialize(sink input.Sink) error {
	h.mu.Lock()
	h.sink = sink
	h.mu.Unlock()

	// The first start reports to the caller, later ones to the log.
	var (
		initErr error
		initial = true
	)
	h.enable = h.Enabled().OnChange(func(c bindable.ValueChanged[bool]) {
		if !c.New {
			if err := h.stop(); err != nil {
				h.log.Warn("midi port close failed", "err", err)
			}
			return
		}
		err := h.start()
		switch {
		case err == nil:
		case initial:
			initErr = err
		default:
			h.log.Warn("midi port failed to open", "err", err)
		}
	}, true)
	initial = false
	return initErr
}

func (h *Handler) start() error {
	port, err := h.open()
	if err != nil {
		return fmt.Errorf("midi: open: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.port != nil {
		port.Close()
		return nil
	}
	h.port = port
	h.group = &errgroup.Group{}
	sink := h.sink
	h.group.Go(func() error { return h.read(port, sink) })
	return nil
}

func (h *Handler) read(r io.Reader, sink input.Sink) error {
	var (
		p   Parser
		buf = make([]byte, 256)
	)
	for {
		n, err := r.Read(buf)
		p.Feed(buf[:n], func(c input.MidiKeyInput) {
			sink.Enqueue(c)
			stats.Increment(stats.MidiEvents)
		})
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed) {
			return nil
		}
		if err != nil {
			h.log.Warn("midi read failed", "err", err)
			return err
		}
	}
}

// stop closes the port, which ends the reader, and waits for it.
func (h *Handler) stop() error {
	h.mu.Lock()
	port, g := h.port, h.group
	h.port, h.group = nil, nil
	h.mu.Unlock()
	if port == nil {
		return nil
	}
	err := port.Close()
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	return err
}

func (h *Handler) Close() error {
	h.enable.Unsubscribe()
	return h.stop()
}
