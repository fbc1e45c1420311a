package arena

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
)

var (
	// ErrArenaTooSmall is returned when the requested capacity cannot hold
	// a single header plus at least one payload byte.
	ErrArenaTooSmall = errors.New("arena: capacity too small for a header")
	// ErrArenaTooLarge is returned when the requested capacity does not fit
	// in the 32-bit offsets used by headers.
	ErrArenaTooLarge = errors.New("arena: capacity exceeds 32-bit offsets")
	// ErrMmapUnsupported is returned for BackingMmap on platforms without mmap.
	ErrMmapUnsupported = errors.New("arena: mmap backing not supported on this platform")
	// ErrCorrupt is returned by Validate when the header chain is inconsistent.
	ErrCorrupt = errors.New("arena: corrupt header chain")
)

// MaxTotalBytes is the largest capacity New accepts.
const MaxTotalBytes = math.MaxUint32 - 1

// Backing selects where the arena buffer comes from.
type Backing uint8

const (
	// BackingHeap allocates the buffer with make.
	BackingHeap Backing = iota
	// BackingMmap maps private anonymous memory outside the Go heap.
	BackingMmap
)

func (b Backing) String() string {
	switch b {
	case BackingHeap:
		return "heap"
	case BackingMmap:
		return "mmap"
	default:
		return fmt.Sprintf("Backing(%d)", uint8(b))
	}
}

type config struct {
	logger  *slog.Logger
	backing Backing
}

// Option is a configuration option for Manager.
type Option func(*config)

// WithLogger sets the logger used for debug records. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBacking selects the buffer source. Defaults to BackingHeap.
func WithBacking(b Backing) Option {
	return func(c *config) {
		c.backing = b
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// Manager owns one fixed buffer and serves Allocate/Deallocate requests from
// it. Every region in the buffer starts with a header; headers form a doubly
// linked list in address order that covers the buffer without gaps.
//
// Manager is not goroutine-safe.
type Manager struct {
	buf       []byte
	total     uint32
	freeBytes uint32
	trashing  Trashing
	backing   Backing
	logger    *slog.Logger
}

// New creates a Manager over a buffer of totalBytes bytes and formats the
// whole buffer as a single free region.
func New(totalBytes int, trashing Trashing, opts ...Option) (*Manager, error) {
	if totalBytes <= HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrArenaTooSmall, totalBytes, HeaderSize)
	}
	if uint64(totalBytes) > MaxTotalBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrArenaTooLarge, totalBytes)
	}

	cfg := config{logger: discardLogger(), backing: BackingHeap}
	for _, opt := range opts {
		opt(&cfg)
	}

	var buf []byte
	switch cfg.backing {
	case BackingHeap:
		buf = make([]byte, totalBytes)
	case BackingMmap:
		b, err := mapAnon(totalBytes)
		if err != nil {
			return nil, fmt.Errorf("arena: map %d bytes: %w", totalBytes, err)
		}
		buf = b
	default:
		return nil, fmt.Errorf("arena: unknown backing %v", cfg.backing)
	}

	m := &Manager{
		buf:       buf,
		total:     uint32(totalBytes),
		freeBytes: uint32(totalBytes) - HeaderSize,
		trashing:  trashing,
		backing:   cfg.backing,
		logger:    cfg.logger,
	}

	m.trashing.poison(TrashOnInit, m.buf)
	m.store(0, header{state: regionFree, size: m.freeBytes, prev: noLink, next: noLink})

	m.logger.Debug("arena created",
		"total_bytes", totalBytes,
		"free_bytes", m.freeBytes,
		"backing", m.backing.String(),
		"trashing", m.trashing.String(),
	)
	return m, nil
}

// Trashing returns the poisoning policy the manager was created with.
func (m *Manager) Trashing() Trashing {
	return m.trashing
}

// Release returns the buffer to its source and makes the manager unusable.
// Slices handed out by Allocate must not be used afterwards. Calling Release
// more than once is a no-op.
func (m *Manager) Release() error {
	if m.buf == nil {
		return nil
	}
	buf := m.buf
	m.buf = nil
	m.freeBytes = 0
	m.logger.Debug("arena released", "total_bytes", m.total, "backing", m.backing.String())
	if m.backing == BackingMmap {
		if err := unmap(buf); err != nil {
			return fmt.Errorf("arena: unmap: %w", err)
		}
	}
	return nil
}

// panicIfReleased panics if the manager has been released.
func (m *Manager) panicIfReleased() {
	if m.buf == nil {
		panic("arena: use after Release()")
	}
}
