package flstring

import (
	"sync/atomic"

	"github.com/jaydenemmanuel/flstring/internal/blockpool"
)

// AllocFunc allocates a block of at least size bytes. Returning nil, or a
// block shorter than size, signals allocation failure.
type AllocFunc func(size int) []byte

// FreeFunc returns a block previously produced by the paired AllocFunc.
type FreeFunc func(buf []byte)

type allocator struct {
	alloc AllocFunc
	free  FreeFunc
}

// customAllocator, when non-nil, replaces the recycler path for every block
// the package allocates. Swapped atomically so installation is safe while
// other goroutines allocate, but blocks are freed through whichever
// allocator is installed at free time: install hooks at startup, before any
// heap string exists.
var customAllocator atomic.Pointer[allocator]

// SetAllocator installs a process-wide allocation hook pair. Passing nil for
// alloc restores the default recycler-backed path. A nil free with a non-nil
// alloc leaves reclamation to the garbage collector.
func SetAllocator(alloc AllocFunc, free FreeFunc) {
	if alloc == nil {
		customAllocator.Store(nil)
		return
	}
	customAllocator.Store(&allocator{alloc: alloc, free: free})
}

// allocBlock obtains a block of at least size bytes. The returned block's
// length is its true capacity, which may exceed the request (class
// rounding).
func allocBlock(size int) ([]byte, error) {
	if a := customAllocator.Load(); a != nil {
		buf := a.alloc(size)
		if buf == nil || len(buf) < size {
			return nil, ErrOutOfMemory
		}
		return buf, nil
	}
	return blockpool.Alloc(size), nil
}

func freeBlock(buf []byte) {
	if buf == nil {
		return
	}
	if a := customAllocator.Load(); a != nil {
		if a.free != nil {
			a.free(buf)
		}
		return
	}
	blockpool.Free(buf)
}
