package tablet

import (
	"encoding/binary"

	"github.com/hubastard/groveinput/engine/input"
)

// Linux input event types and codes read by the evdev driver.
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport = 0x00

	absX        = 0x00
	absY        = 0x01
	absPressure = 0x18

	btn0        = 0x100
	btnToolPen  = 0x140
	btnStylus3  = 0x149
	btnTouch    = 0x14a
	btnStylus   = 0x14b
	btnStylus2  = 0x14c
	auxKeyCount = 10
)

// penButtonCodes lists the barrel buttons in pen button order.
var penButtonCodes = [...]uint16{btnStylus, btnStylus2, btnStylus3}

type absRange struct {
	min, max   int32
	resolution int32
}

// mm converts a raw axis value to millimetres. Without a resolution the
// value is normalized to [0,1] instead.
func (r absRange) mm(v int32) float32 {
	if r.resolution > 0 {
		return float32(v-r.min) / float32(r.resolution)
	}
	return r.unit(v)
}

func (r absRange) unit(v int32) float32 {
	if r.max <= r.min {
		return 0
	}
	return float32(v-r.min) / float32(r.max-r.min)
}

// eventReader splits a byte stream into input_event records of size bytes:
// a struct timeval followed by type, code and value.
type eventReader struct {
	buf  []byte
	size int
}

func (p *eventReader) feed(chunk []byte, fn func(typ, code uint16, value int32)) {
	p.buf = append(p.buf, chunk...)
	for p.size != 0 && len(p.buf) >= p.size {
		ev := p.buf[:p.size]
		p.buf = p.buf[p.size:]
		off := p.size - 8
		fn(binary.LittleEndian.Uint16(ev[off:off+2]),
			binary.LittleEndian.Uint16(ev[off+2:off+4]),
			int32(binary.LittleEndian.Uint32(ev[off+4:off+8])))
	}
}

// reportBuilder accumulates evdev events into reports, emitted on
// SYN_REPORT.
type reportBuilder struct {
	x, y, pressure absRange

	raw        [3]int32
	pen        [len(penButtonCodes)]bool
	aux        [auxKeyCount]bool
	auxChanged bool
	penSeen    bool
}

func (b *reportBuilder) event(typ, code uint16, value int32, emit func(Report)) {
	switch typ {
	case evAbs:
		switch code {
		case absX:
			b.raw[0] = value
		case absY:
			b.raw[1] = value
		case absPressure:
			b.raw[2] = value
		default:
			return
		}
		b.penSeen = true
	case evKey:
		if code >= btn0 && code < btn0+auxKeyCount {
			b.aux[code-btn0] = value != 0
			b.auxChanged = true
			return
		}
		for i, c := range penButtonCodes {
			if c == code {
				b.pen[i] = value != 0
				b.penSeen = true
			}
		}
	case evSyn:
		if code != synReport {
			return
		}
		if b.penSeen {
			emit(PenReport{
				Position: input.Vec2{X: b.x.mm(b.raw[0]), Y: b.y.mm(b.raw[1])},
				Pressure: b.pressure.unit(b.raw[2]),
				Buttons:  append([]bool(nil), b.pen[:]...),
			})
			b.penSeen = false
		}
		if b.auxChanged {
			emit(AuxReport{Buttons: append([]bool(nil), b.aux[:]...)})
			b.auxChanged = false
		}
	}
}
