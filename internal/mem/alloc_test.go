package mem

import (
	"testing"
	"unsafe"
)

func TestAllocAligned(t *testing.T) {
	t.Run("alignment", func(t *testing.T) {
		sizes := []int{1, 3, 17, 64, 100, 4096, 65537}
		for _, size := range sizes {
			buf := AllocAligned(size)
			if len(buf) != size {
				t.Fatalf("size=%d: expected len=%d, got %d", size, size, len(buf))
			}
			if cap(buf) != size {
				t.Errorf("size=%d: expected cap=%d, got %d", size, size, cap(buf))
			}

			ptr := uintptr(unsafe.Pointer(&buf[0]))
			if ptr%Alignment != 0 {
				t.Errorf("size=%d ptr=%x not aligned to %d", size, ptr, Alignment)
			}
		}
	})

	t.Run("zero size", func(t *testing.T) {
		if buf := AllocAligned(0); buf != nil {
			t.Errorf("expected nil for zero size, got len=%d", len(buf))
		}
		if buf := AllocAligned(-1); buf != nil {
			t.Errorf("expected nil for negative size, got len=%d", len(buf))
		}
	})

	t.Run("writable", func(t *testing.T) {
		buf := AllocAligned(128)
		for i := range buf {
			buf[i] = byte(i)
		}
		for i := range buf {
			if buf[i] != byte(i) {
				t.Fatalf("byte %d clobbered", i)
			}
		}
	})
}
