package blockpool

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jaydenemmanuel/flstring/internal/mem"
)

const (
	// NumClasses is the number of managed size classes.
	NumClasses = 7

	// SlabDepth is the per-class capacity of the recycled-block stack.
	// Eight is sufficient for typical short-lived string workloads and keeps
	// the cold region of a Recycler to seven cache lines.
	SlabDepth = 8

	// MaxBlockSize is the largest block size the pool manages. Requests above
	// this bypass the class table entirely and go straight to the fallback
	// allocator.
	MaxBlockSize = 4096
)

// classSizes lists the managed block sizes in ascending order.
var classSizes = [NumClasses]int{64, 128, 256, 512, 1024, 2048, 4096}

// ClassFor returns the index of the smallest class that can hold size bytes,
// or -1 when size exceeds MaxBlockSize.
func ClassFor(size int) int {
	for i := 0; i < NumClasses; i++ {
		if size <= classSizes[i] {
			return i
		}
	}
	return -1
}

// ClassSize returns the block size of the given class index.
func ClassSize(idx int) int {
	return classSizes[idx]
}

// BlockSize returns the actual allocation size for a request of size bytes:
// the full class size when the request maps into the table, or size itself
// when it bypasses the pool.
func BlockSize(size int) int {
	if idx := ClassFor(size); idx >= 0 {
		return classSizes[idx]
	}
	return size
}

// Recycler is a size-classed stack of reusable byte blocks.
//
// A Recycler is deliberately unsynchronized: it must be owned by exactly one
// goroutine at a time. The package-level Alloc and Free functions provide
// that scoping automatically by borrowing instances from a sync.Pool, so a
// Recycler is never visible to two goroutines simultaneously.
//
// The struct is laid out hot-to-cold: the per-class occupancy counts are
// packed into the leading cache line, with the (much larger) slot arrays
// behind them. A lookup that finds a class empty reads one byte of the hot
// line and never touches the slot region.
type Recycler struct {
	counts [NumClasses]uint8
	_      [64 - NumClasses]byte

	slots [NumClasses][SlabDepth][]byte
}

// Alloc returns a block of at least size bytes. When the request maps into a
// class with a recycled block available, the most recently freed block for
// that class is reused. On a class miss the block is allocated at the full
// class size, so it fits exactly back into its slot when freed. Requests
// above MaxBlockSize fall through to the fallback allocator unconditionally.
//
// The returned slice always has len == cap == BlockSize(size).
func (r *Recycler) Alloc(size int) []byte {
	if size <= 0 {
		return nil
	}

	idx := ClassFor(size)
	if idx < 0 {
		return mem.AllocAligned(size)
	}

	if n := r.counts[idx]; n > 0 {
		n--
		b := r.slots[idx][n]
		r.slots[idx][n] = nil
		r.counts[idx] = n
		poolStats.hits.Add(1)
		poolStats.classHits[idx].Add(1)
		return b
	}

	// Class miss: allocate the whole class, not the exact request, so the
	// block can be recycled into this class's slot on Free.
	poolStats.misses.Add(1)
	return mem.AllocAligned(classSizes[idx])
}

// Free returns a block previously produced by Alloc. Blocks whose length
// matches a managed class are pushed onto that class's stack while there is
// room; everything else, including evictions from a full stack, is simply
// dropped and left to the garbage collector, which plays the role of the
// platform deallocator.
func (r *Recycler) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}

	idx := ClassFor(len(buf))
	if idx < 0 || len(buf) != classSizes[idx] {
		// Oversize or foreign block: never recycled.
		return
	}

	if n := r.counts[idx]; n < SlabDepth {
		r.slots[idx][n] = buf
		r.counts[idx] = n + 1
		poolStats.pushes.Add(1)
		poolStats.classPushes[idx].Add(1)
		return
	}

	poolStats.evictions.Add(1)
}

// Drain empties every class stack, dropping all held blocks.
func (r *Recycler) Drain() {
	for i := 0; i < NumClasses; i++ {
		for j := 0; j < int(r.counts[i]); j++ {
			r.slots[i][j] = nil
		}
		r.counts[i] = 0
	}
}

// recyclers holds idle Recycler instances. Borrowing an instance for the
// duration of a single Alloc or Free call gives each block table exactly one
// owner at a time, which is the execution-unit scoping the pool relies on in
// place of thread-local storage.
var recyclers = sync.Pool{
	New: func() interface{} {
		return new(Recycler)
	},
}

// Alloc allocates a block of at least size bytes through a borrowed Recycler.
func Alloc(size int) []byte {
	r := recyclers.Get().(*Recycler)
	b := r.Alloc(size)
	recyclers.Put(r)
	return b
}

// Free recycles a block through a borrowed Recycler.
func Free(buf []byte) {
	r := recyclers.Get().(*Recycler)
	r.Free(buf)
	recyclers.Put(r)
}

// Stats is a snapshot of the pool instrumentation counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Pushes    uint64
	Evictions uint64

	ClassHits   [NumClasses]uint64
	ClassPushes [NumClasses]uint64
}

var poolStats struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	pushes    atomic.Uint64
	evictions atomic.Uint64

	classHits   [NumClasses]atomic.Uint64
	classPushes [NumClasses]atomic.Uint64
}

// Snapshot returns the current pool statistics.
func Snapshot() Stats {
	s := Stats{
		Hits:      poolStats.hits.Load(),
		Misses:    poolStats.misses.Load(),
		Pushes:    poolStats.pushes.Load(),
		Evictions: poolStats.evictions.Load(),
	}
	for i := 0; i < NumClasses; i++ {
		s.ClassHits[i] = poolStats.classHits[i].Load()
		s.ClassPushes[i] = poolStats.classPushes[i].Load()
	}
	return s
}

// ResetStats zeroes all pool instrumentation counters.
func ResetStats() {
	poolStats.hits.Store(0)
	poolStats.misses.Store(0)
	poolStats.pushes.Store(0)
	poolStats.evictions.Store(0)
	for i := 0; i < NumClasses; i++ {
		poolStats.classHits[i].Store(0)
		poolStats.classPushes[i].Store(0)
	}
}

// HitRate returns the fraction of class-mapped allocations served from a
// recycled block, in percent.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"BlockPool{hits: %d, misses: %d, pushes: %d, evictions: %d, hit rate: %.1f%%}",
		s.Hits, s.Misses, s.Pushes, s.Evictions, s.HitRate(),
	)
}
