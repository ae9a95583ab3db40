//go:build !unix

// Package mmbuf provides platform-specific helpers for reserving page-aligned
// arena buffers outside the Go heap.
package mmbuf

import "fmt"

// Alloc falls back to a Go-heap buffer when mmap is not available.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmbuf: invalid buffer size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
