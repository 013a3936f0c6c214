// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 16-byte aligned allocation used as the unpooled fallback beneath
// the block recycler. Full slice expressions pin len == cap == size so the
// size class of a recycled block is always recoverable.
package mem
