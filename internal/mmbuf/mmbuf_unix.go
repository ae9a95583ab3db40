//go:build unix

package mmbuf

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc reserves a page-aligned anonymous mapping of at least size bytes and
// returns it together with a release function.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmbuf: invalid buffer size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, fmt.Errorf("mmbuf: mmap of %d bytes: %w", size, err)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-release as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}
