package arena

import "unsafe"

// Allocate returns a payload slice of exactly n bytes carved out of the first
// free region (lowest address first) that can hold n bytes plus a trailing
// header for the remainder. It returns nil if n <= 0 or no region is large
// enough.
//
// The returned slice has cap == len so appends never spill into the next
// header. It stays valid until it is passed to Deallocate or the manager is
// released.
func (m *Manager) Allocate(n int) []byte {
	m.panicIfReleased()
	if n <= 0 {
		return nil
	}
	// No single free region can be larger than the free byte total.
	if uint64(n)+HeaderSize > uint64(m.freeBytes) {
		m.logger.Debug("arena allocation failed", "requested", n, "free_bytes", m.freeBytes)
		return nil
	}
	want := uint32(n)

	off := uint32(0)
	var h header
	for off != noLink {
		h = m.load(off)
		// The remainder always gets its own header, even with zero payload.
		if h.free() && h.size >= want+HeaderSize {
			break
		}
		off = h.next
	}
	if off == noLink {
		m.logger.Debug("arena allocation failed", "requested", n, "free_bytes", m.freeBytes)
		return nil
	}

	tail := off + HeaderSize + want
	m.store(tail, header{
		state: regionFree,
		size:  h.size - want - HeaderSize,
		prev:  off,
		next:  h.next,
	})
	if h.next != noLink {
		m.setPrev(h.next, tail)
	}

	h.next = tail
	h.size = want
	h.state = regionInUse
	m.store(off, h)

	m.freeBytes -= want + HeaderSize

	start := off + HeaderSize
	payload := m.buf[start : start+want : start+want]
	m.trashing.poison(TrashOnAlloc, payload)
	return payload
}

// Deallocate returns a slice obtained from Allocate to the free pool and
// merges it with free neighbours on either side.
//
// Nil slices, slices that do not start at a payload boundary of this arena,
// and slices whose region is already free are ignored.
func (m *Manager) Deallocate(p []byte) {
	if cap(p) == 0 {
		return
	}
	off, ok := m.payloadOffset(p)
	if !ok {
		m.logger.Debug("arena deallocation ignored", "reason", "out of range")
		return
	}
	hdr, ok := m.findInUse(off)
	if !ok {
		return
	}
	m.release(hdr)
}

// payloadOffset maps p to an offset inside the buffer. It rejects slices that
// start outside the buffer or inside the first header.
func (m *Manager) payloadOffset(p []byte) (uint32, bool) {
	if m.buf == nil || cap(p) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(m.buf)))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	if addr < base || addr >= base+uintptr(len(m.buf)) {
		return 0, false
	}
	off := uint32(addr - base)
	if off < HeaderSize {
		return 0, false
	}
	return off, true
}

// findInUse walks the chain for the in-use header whose payload starts at
// payload and returns the header offset.
func (m *Manager) findInUse(payload uint32) (uint32, bool) {
	for off := uint32(0); off != noLink; {
		if payload < off {
			m.logger.Debug("arena deallocation ignored", "reason", "not a region boundary", "offset", payload)
			return 0, false
		}
		h := m.load(off)
		if off+HeaderSize == payload {
			if !h.free() {
				return off, true
			}
			m.logger.Debug("arena deallocation ignored", "reason", "region not in use", "offset", payload)
			return 0, false
		}
		off = h.next
	}
	m.logger.Debug("arena deallocation ignored", "reason", "not a region boundary", "offset", payload)
	return 0, false
}

// release frees the in-use region at off, absorbing a free predecessor and a
// free successor, and writes the merged header in place.
func (m *Manager) release(off uint32) {
	h := m.load(off)

	start := off
	size := h.size
	prev := h.prev
	next := h.next

	m.freeBytes += h.size

	if prev != noLink {
		if ph := m.load(prev); ph.free() {
			start = prev
			size += ph.size + HeaderSize
			prev = ph.prev
			m.freeBytes += HeaderSize
		}
	}

	if next != noLink {
		if nh := m.load(next); nh.free() {
			size += nh.size + HeaderSize
			next = nh.next
			m.freeBytes += HeaderSize
		}
		if next != noLink {
			m.setPrev(next, start)
		}
	}

	m.store(start, header{state: regionFree, size: size, prev: prev, next: next})

	payload := start + HeaderSize
	m.trashing.poison(TrashOnFree, m.buf[payload:payload+size])
}
