package arena

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unsafe"
)

// DefaultBytesPerRow is the row width Dump uses when given a non-positive width.
const DefaultBytesPerRow = 16

// Dump renders the raw buffer as a hex/ASCII table followed by the free and
// total byte counts. It does not interpret headers.
//
// Each row looks like:
//
//	0xc000012000:  00:00:00:00:30:00:00:00:FF:FF:FF:FF:FF:FF:FF:FF  ....0...........
func (m *Manager) Dump(bytesPerRow int) string {
	var sb strings.Builder
	_ = m.DumpTo(&sb, bytesPerRow)
	return sb.String()
}

// DumpTo writes the same rendering as Dump to w.
func (m *Manager) DumpTo(w io.Writer, bytesPerRow int) error {
	m.panicIfReleased()
	if bytesPerRow <= 0 {
		bytesPerRow = DefaultBytesPerRow
	}

	bw := bufio.NewWriter(w)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(m.buf)))

	for rowStart := 0; rowStart < len(m.buf); rowStart += bytesPerRow {
		row := m.buf[rowStart:min(rowStart+bytesPerRow, len(m.buf))]

		fmt.Fprintf(bw, "%#x:  ", base+uintptr(rowStart))
		for i, c := range row {
			if i > 0 {
				bw.WriteByte(':')
			}
			fmt.Fprintf(bw, "%02X", c)
		}
		bw.WriteString("  ")
		for _, c := range row {
			if c >= 0x20 && c <= 0x7E {
				bw.WriteByte(c)
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}

	fmt.Fprintf(bw, "Free bytes: %d\n", m.freeBytes)
	fmt.Fprintf(bw, "Total bytes: %d\n", m.total)
	return bw.Flush()
}
