package arena

import (
	"fmt"
	"iter"
)

// FreeBytes returns the payload bytes currently available across all free
// regions. Header overhead of free regions is not counted.
// Returns 0 once the manager has been released.
func (m *Manager) FreeBytes() int {
	if m.buf == nil {
		return 0
	}
	return int(m.freeBytes)
}

// TotalBytes returns the capacity of the buffer fixed at construction.
// Returns 0 once the manager has been released.
func (m *Manager) TotalBytes() int {
	if m.buf == nil {
		return 0
	}
	return int(m.total)
}

// Block describes one region of the arena as seen by Blocks.
type Block struct {
	Offset int  // Offset of the region's header from the start of the buffer
	Size   int  // Payload bytes, excluding the header
	InUse  bool // Whether the region is currently handed out
}

// Blocks yields every region in address order, starting at offset 0.
// The manager must not be mutated while iterating.
func (m *Manager) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		if m.buf == nil {
			return
		}
		for off := uint32(0); off != noLink; {
			h := m.load(off)
			if !yield(Block{Offset: int(off), Size: int(h.size), InUse: !h.free()}) {
				return
			}
			off = h.next
		}
	}
}

// Validate walks the header chain and checks that the regions tile the
// buffer exactly, that back links mirror forward links, that no two
// neighbours are both free and that the free byte count matches the free
// regions. It returns an error wrapping ErrCorrupt on the first violation.
func (m *Manager) Validate() error {
	m.panicIfReleased()

	var (
		free     uint64
		prev     = noLink
		prevFree bool
		off      uint32
		regions  int
	)
	for {
		if uint64(off)+HeaderSize > uint64(m.total) {
			return fmt.Errorf("%w: header at %d overruns buffer of %d bytes", ErrCorrupt, off, m.total)
		}
		h := m.load(off)
		if h.state != regionFree && h.state != regionInUse {
			return fmt.Errorf("%w: header at %d has state %d", ErrCorrupt, off, uint32(h.state))
		}
		if h.prev != prev {
			return fmt.Errorf("%w: header at %d links back to %d, want %d", ErrCorrupt, off, h.prev, prev)
		}
		end := uint64(off) + HeaderSize + uint64(h.size)
		if end > uint64(m.total) {
			return fmt.Errorf("%w: region at %d ends at %d past buffer of %d bytes", ErrCorrupt, off, end, m.total)
		}
		if h.free() {
			if prevFree {
				return fmt.Errorf("%w: free regions at %d and %d are adjacent", ErrCorrupt, prev, off)
			}
			free += uint64(h.size)
		}
		regions++

		if h.next == noLink {
			if end != uint64(m.total) {
				return fmt.Errorf("%w: last region at %d ends at %d, want %d", ErrCorrupt, off, end, m.total)
			}
			break
		}
		if uint64(h.next) != end {
			return fmt.Errorf("%w: header at %d links to %d, want %d", ErrCorrupt, off, h.next, end)
		}
		prev, prevFree, off = off, h.free(), h.next
	}

	if free != uint64(m.freeBytes) {
		return fmt.Errorf("%w: free regions hold %d bytes across %d regions, counter says %d",
			ErrCorrupt, free, regions, m.freeBytes)
	}
	return nil
}
