// Package flstring provides a mutable byte string optimized for allocation
// avoidance and fast substring search.
//
// # Representation
//
// A String stores up to 23 bytes inline inside the struct. Longer content
// lives in a heap block drawn from a size-classed recycler
// (internal/blockpool): freed blocks are kept in small per-class LIFO
// stacks, scoped to one goroutine at a time, so grow-heavy workloads reuse
// warm blocks instead of allocating. Block capacities are class-rounded and
// the String adopts the real capacity, so Cap() can exceed what the growth
// rule asked for.
//
//	s, _ := flstring.FromString("hello")
//	_ = s.Append([]byte(", world"))
//	pos := s.Find([]byte("world"), 0)
//
// # Search
//
// Index and the Find family select a strategy per call: a vectorized
// single-byte scan, the Two-Way matcher for haystacks of 64 KiB and up
// (linear time on any input, no per-call tables), and the bytes package
// baseline in between. Set FLSTRING_KERNEL=compact|wide to pin the byte
// scan kernel.
//
// # Building
//
// Builder accumulates content in a recycler-backed buffer and hands the
// buffer to the built String without copying:
//
//	b, _ := flstring.NewBuilder(flstring.WithInitialCapacity(1 << 10))
//	_ = b.AppendString("id=")
//	_ = b.AppendInt(42)
//	s, _ := b.Build()
//
// # Ownership
//
// A String owns its heap block exclusively. Use Clone for an independent
// copy, Move to transfer ownership, and Release to return the block to the
// recycler early; plain struct assignment of a heap-backed String is not
// supported. SyncString wraps a String behind an RWMutex for shared use.
//
// # Concurrency Checking
//
// Builds tagged flstrdebug embed an atomic access tracker in every String
// and panic on unsynchronized concurrent access. Release builds compile the
// tracker to nothing.
package flstring
