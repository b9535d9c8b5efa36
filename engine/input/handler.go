package input

import (
	"errors"

	"github.com/hubastard/groveinput/engine/bindable"
)

// ErrInactive is returned by adapters that cannot reach their device.
var ErrInactive = errors.New("input: device handler inactive")

// Sink accepts commands. Enqueue is safe to call from any goroutine.
type Sink interface {
	Enqueue(c Command)
}

// DeviceHandler is a device adapter: it turns hardware callbacks into
// commands pushed to a Sink. It must never touch an InputState directly.
type DeviceHandler interface {
	Description() string

	// Initialize binds the handler to sink. A returned error leaves the
	// handler inactive; it does not affect other handlers.
	Initialize(sink Sink) error

	// IsActive reports whether the handler currently produces input.
	IsActive() bool

	// Enabled toggles the handler. Disabling must stop further commands
	// before native resources are released.
	Enabled() *bindable.Bindable[bool]

	Close() error
}

// DeviceBase carries the state shared by device handlers.
type DeviceBase struct {
	enabled *bindable.Bindable[bool]
}

func NewDeviceBase(enabled bool) DeviceBase {
	return DeviceBase{enabled: bindable.New(enabled)}
}

func (d *DeviceBase) Enabled() *bindable.Bindable[bool] { return d.enabled }
