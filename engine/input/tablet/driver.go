package tablet

import (
	"errors"

	"github.com/hubastard/groveinput/engine/input"
)

// ErrNoTablet is returned by a driver that cannot find any tablet.
var ErrNoTablet = errors.New("tablet: no tablet found")

// Device describes a detected tablet.
type Device struct {
	Name string
	// Digitizer is the size of the sensing surface in millimetres.
	Digitizer input.Vec2
}

// Info is the tablet exposed to the rest of the program. The zero value
// means no tablet.
type Info struct {
	Name string
	Size input.Vec2
}

// Report is a single device report.
type Report interface{ isReport() }

// PenReport is the state of the pen after a report.
type PenReport struct {
	// Position on the digitizer in millimetres.
	Position input.Vec2
	// Pressure in [0,1].
	Pressure float32
	Buttons  []bool
}

// AuxReport carries the express keys of the tablet body.
type AuxReport struct {
	Buttons []bool
}

func (PenReport) isReport() {}
func (AuxReport) isReport() {}

// Listener receives driver callbacks. Calls arrive on driver goroutines.
type Listener interface {
	TabletsChanged(devices []Device)
	DeviceReported(r Report)
}

// Driver detects tablets and streams their reports to a Listener.
type Driver interface {
	// Start detects tablets and begins reporting. It returns ErrNoTablet
	// when nothing usable is found.
	Start(l Listener) error
	Close() error
}
