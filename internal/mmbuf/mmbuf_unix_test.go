//go:build unix

package mmbuf

import (
	"os"
	"testing"
)

func TestAllocUnix(t *testing.T) {
	data, release, err := Alloc(1 << 16)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(data) != 1<<16 {
		t.Fatalf("len mismatch: got %d want %d", len(data), 1<<16)
	}
	pageSize := os.Getpagesize()
	for i := 0; i < len(data); i += pageSize {
		data[i] = 0xA5 // every page must be writable
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("double release: %v", err)
	}
}

func TestAllocRejectsBadSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, _, err := Alloc(n); err == nil {
			t.Fatalf("Alloc(%d): expected error", n)
		}
	}
}
