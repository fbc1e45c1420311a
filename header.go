package arena

import "encoding/binary"

// HeaderSize is the number of bytes every region header occupies in the arena.
const HeaderSize = 16

// noLink marks the absence of a previous or next header.
const noLink = ^uint32(0)

// regionState tags a region as free or handed out to a caller.
type regionState uint32

const (
	regionFree  regionState = 0
	regionInUse regionState = 1
)

func (s regionState) String() string {
	switch s {
	case regionFree:
		return "free"
	case regionInUse:
		return "in-use"
	default:
		return "invalid"
	}
}

// header describes one region of the arena. It lives at the front of the
// region it describes and links to its neighbours by arena offset.
//
// Layout (little-endian):
//
//	[0:4]   state
//	[4:8]   payload size
//	[8:12]  offset of previous header, noLink for the first
//	[12:16] offset of next header, noLink for the last
type header struct {
	state regionState
	size  uint32
	prev  uint32
	next  uint32
}

func (h header) free() bool { return h.state == regionFree }

func decodeHeader(b []byte) header {
	_ = b[HeaderSize-1]
	return header{
		state: regionState(binary.LittleEndian.Uint32(b[0:4])),
		size:  binary.LittleEndian.Uint32(b[4:8]),
		prev:  binary.LittleEndian.Uint32(b[8:12]),
		next:  binary.LittleEndian.Uint32(b[12:16]),
	}
}

func encodeHeader(b []byte, h header) {
	_ = b[HeaderSize-1]
	binary.LittleEndian.PutUint32(b[0:4], uint32(h.state))
	binary.LittleEndian.PutUint32(b[4:8], h.size)
	binary.LittleEndian.PutUint32(b[8:12], h.prev)
	binary.LittleEndian.PutUint32(b[12:16], h.next)
}

// load reads the header stored at off.
func (m *Manager) load(off uint32) header {
	return decodeHeader(m.buf[off : off+HeaderSize])
}

// store writes h in place at off.
func (m *Manager) store(off uint32, h header) {
	encodeHeader(m.buf[off:off+HeaderSize], h)
}

// setPrev rewrites only the back link of the header at off.
func (m *Manager) setPrev(off, prev uint32) {
	binary.LittleEndian.PutUint32(m.buf[off+8:off+12], prev)
}
