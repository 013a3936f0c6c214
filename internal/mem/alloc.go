// Package mem provides aligned memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment guaranteed for every block returned by
// AllocAligned. Sixteen bytes matches the alignment general-purpose
// allocators hand out for their standard size bins, so downstream word-wise
// scans never straddle an allocation boundary.
const Alignment = 16

// AllocAligned allocates a byte slice of the given size whose first element
// sits at an address divisible by Alignment. The returned slice is full
// (len == cap == size) so that a block's size class can be recovered from the
// slice header alone when the block is later recycled.
//
// Note: This function allocates slightly more memory than requested to ensure
// alignment. The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}
