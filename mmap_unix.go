//go:build unix

package arena

import "golang.org/x/sys/unix"

// mapAnon reserves size bytes of private anonymous memory outside the Go heap.
func mapAnon(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}
