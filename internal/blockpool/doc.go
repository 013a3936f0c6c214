// Package blockpool provides a size-classed recycler for the heap blocks
// backing string storage.
//
// # Size Classes
//
// Seven classes (64 B to 4 KiB, doubling) each keep a stack of up to eight
// reclaimed blocks. Allocation pops the most recently freed block of the
// mapped class; a miss allocates a whole class-sized block so it recycles
// cleanly. Requests above 4 KiB bypass the table.
//
// # Scoping
//
// A Recycler has no internal synchronization. The package-level Alloc and
// Free borrow instances from a sync.Pool for the duration of a single call,
// so every table has exactly one owner at any moment and no lock is ever
// taken on the block stacks themselves.
//
// # Layout
//
// The per-class occupancy counts share one cache line, separate from the
// slot arrays. Probing an empty class therefore costs a single small read
// rather than a full pointer-array line fetch.
package blockpool
