package arena_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arena "github.com/pavanmanishd/blockarena"
)

// TestEdgeCases exercises the public surface only.
func TestEdgeCases(t *testing.T) {
	t.Run("SmallestArena", func(t *testing.T) {
		m, err := arena.New(arena.HeaderSize+1, arena.TrashAll)
		require.NoError(t, err)
		defer m.Release()

		// One payload byte is free but nothing fits next to a trailing header.
		assert.Equal(t, 1, m.FreeBytes())
		assert.Nil(t, m.Allocate(1))
	})

	t.Run("TwoHeaderArena", func(t *testing.T) {
		m, err := arena.New(2*arena.HeaderSize, arena.TrashNone)
		require.NoError(t, err)
		defer m.Release()

		assert.Nil(t, m.Allocate(1))
		assert.Equal(t, arena.HeaderSize, m.FreeBytes())
	})

	t.Run("HugeRequest", func(t *testing.T) {
		m, err := arena.New(1024, arena.TrashNone)
		require.NoError(t, err)
		defer m.Release()

		assert.Nil(t, m.Allocate(int(^uint(0)>>1)))
		assert.Nil(t, m.Allocate(arena.MaxTotalBytes/2))
		assert.Equal(t, 1024-arena.HeaderSize, m.FreeBytes())
	})

	t.Run("FillUntilExhausted", func(t *testing.T) {
		const total = 1024
		m, err := arena.New(total, arena.TrashNone)
		require.NoError(t, err)
		defer m.Release()

		var live [][]byte
		for {
			p := m.Allocate(8)
			if p == nil {
				break
			}
			live = append(live, p)
		}
		// Each allocation costs its payload plus one header.
		assert.Len(t, live, (total-arena.HeaderSize)/(8+arena.HeaderSize))
		assert.Less(t, m.FreeBytes(), 8+arena.HeaderSize)
		require.NoError(t, m.Validate())

		// Free every other one: nothing merges.
		for i := 0; i < len(live); i += 2 {
			m.Deallocate(live[i])
		}
		require.NoError(t, m.Validate())
		assert.Nil(t, m.Allocate(9))

		for i := 1; i < len(live); i += 2 {
			m.Deallocate(live[i])
		}
		blocks := slices.Collect(m.Blocks())
		assert.Equal(t, []arena.Block{{Offset: 0, Size: total - arena.HeaderSize}}, blocks)
	})

	t.Run("ReverseOrderFree", func(t *testing.T) {
		m, err := arena.New(512, arena.TrashAll)
		require.NoError(t, err)
		defer m.Release()

		var live [][]byte
		for _, n := range []int{1, 2, 3, 50, 17, 9} {
			p := m.Allocate(n)
			require.NotNil(t, p)
			live = append(live, p)
		}
		for i := len(live) - 1; i >= 0; i-- {
			m.Deallocate(live[i])
			require.NoError(t, m.Validate())
		}
		assert.Equal(t, 512-arena.HeaderSize, m.FreeBytes())
	})

	t.Run("WritesStayInsidePayload", func(t *testing.T) {
		m, err := arena.New(256, arena.TrashNone)
		require.NoError(t, err)
		defer m.Release()

		a := m.Allocate(16)
		b := m.Allocate(16)
		require.NotNil(t, a)
		require.NotNil(t, b)

		for i := range a {
			a[i] = 0xEE
		}
		for i := range b {
			b[i] = 0x11
		}
		require.NoError(t, m.Validate())
		assert.Equal(t, byte(0xEE), a[15])
		assert.Equal(t, byte(0x11), b[0])
	})

	t.Run("SubSliceOfPayload", func(t *testing.T) {
		m, err := arena.New(256, arena.TrashNone)
		require.NoError(t, err)
		defer m.Release()

		p := m.Allocate(32)
		require.NotNil(t, p)
		free := m.FreeBytes()

		m.Deallocate(p[8:16])
		assert.Equal(t, free, m.FreeBytes())

		// A prefix re-slice still starts at the payload boundary.
		m.Deallocate(p[:4])
		assert.Equal(t, 256-arena.HeaderSize, m.FreeBytes())
	})
}
