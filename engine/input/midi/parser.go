package midi

import "github.com/hubastard/groveinput/engine/input"

const (
	statusNoteOff  = 0x80
	statusNoteOn   = 0x90
	statusSysEx    = 0xf0
	statusSysExEnd = 0xf7
	statusRealtime = 0xf8
)

// Parser decodes a raw MIDI byte stream into key commands. Note on with
// velocity zero is a release. Running status is honoured; realtime bytes
// may appear anywhere and are skipped.
type Parser struct {
	status byte
	data   [2]byte
	n      int
	sysex  bool
}

// Feed consumes b and calls emit for every complete note message.
func (p *Parser) Feed(b []byte, emit func(input.MidiKeyInput)) {
	for _, c := range b {
		p.feedByte(c, emit)
	}
}

func (p *Parser) feedByte(c byte, emit func(input.MidiKeyInput)) {
	switch {
	case c >= statusRealtime:
		return
	case c == statusSysEx:
		p.sysex = true
		p.status = 0
		return
	case c == statusSysExEnd:
		p.sysex = false
		return
	case c&0x80 != 0:
		p.sysex = false
		p.n = 0
		if c > statusSysEx {
			// System common messages cancel running status.
			p.status = 0
			return
		}
		p.status = c
		return
	case p.sysex || p.status == 0:
		return
	}

	p.data[p.n] = c
	p.n++
	if p.n < dataLen(p.status) {
		return
	}
	p.n = 0

	switch p.status & 0xf0 {
	case statusNoteOn:
		emit(input.MidiKeyInput{Key: input.MidiKey(p.data[0]), Velocity: p.data[1], Pressed: p.data[1] > 0})
	case statusNoteOff:
		emit(input.MidiKeyInput{Key: input.MidiKey(p.data[0]), Velocity: p.data[1], Pressed: false})
	}
}

func dataLen(status byte) int {
	switch status & 0xf0 {
	case 0xc0, 0xd0:
		return 1
	}
	return 2
}
