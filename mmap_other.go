//go:build !unix

package arena

func mapAnon(size int) ([]byte, error) {
	return nil, ErrMmapUnsupported
}

func unmap(data []byte) error {
	return nil
}
