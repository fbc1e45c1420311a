// Package arena implements a fixed-capacity, first-fit block allocator over
// a single contiguous buffer.
//
// # Overview
//
// A Manager acquires one buffer at construction and never grows it. Every
// region of the buffer starts with a 16-byte header that records whether the
// region is in use, how many payload bytes follow, and the offsets of the
// neighbouring headers. The headers form a doubly linked list in address
// order that covers the buffer with no gaps and no overlaps.
//
//   - Allocate scans from the lowest address for the first free region that
//     can hold the request plus a header for the remainder, and splits it.
//   - Deallocate marks the region free and merges it with a free neighbour
//     on either side, so no two adjacent regions are ever both free.
//   - Dump renders the raw buffer, headers included, as a hex/ASCII table.
//
// # Basic Usage
//
//	m, err := arena.New(4096, arena.TrashNone)
//	if err != nil {
//		return err
//	}
//	defer m.Release()
//
//	buf := m.Allocate(128)
//	if buf == nil {
//		// arena exhausted
//	}
//	copy(buf, data)
//	m.Deallocate(buf)
//
// # Trashing
//
// Trashing flags poison memory with a fixed byte so that reads of
// uninitialized, freshly allocated or freshly freed memory stand out in a
// dump:
//
//	TrashOnInit   0xCD  whole buffer at construction
//	TrashOnAlloc  0xAA  payload returned by Allocate
//	TrashOnFree   0xDD  payload of the merged free region
//
// # Invalid Frees
//
// Deallocate never fails. Nil slices, slices from other memory, slices that
// point into the middle of a region and slices that were already freed are
// ignored. This also hides double frees; attach a logger with WithLogger to
// see them as debug records.
//
// # Zero-payload Regions
//
// When a request exactly matches a free region minus one header, the split
// still happens and leaves a free region with zero payload bytes behind.
// Such regions are kept and merge normally when a neighbour is freed.
//
// # Thread Safety
//
// Manager is not goroutine-safe. Callers must serialize access.
package arena
