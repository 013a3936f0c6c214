// Package bytescan provides vectorized single-byte search primitives.
//
// # Technique
//
// The target byte is broadcast across a 64-bit word and compared against the
// input in word-sized lanes using the zero-byte detection identity
// (x-0x01..01) &^ x & 0x80..80, so a 32-byte block with no candidate costs
// four loads and a handful of ALU ops regardless of content.
//
// # Kernel Selection
//
// Two kernels exist: a compact one-word loop and a wide four-word loop. The
// wide kernel is selected at init when the CPU reports vector registers wide
// enough for the compiler to profitably vectorize the unrolled body (AVX2 or
// SSE2 on x86-64, ASIMD on arm64). Set FLSTRING_KERNEL=compact|wide to force
// a kernel, e.g. for benchmarking the dispatch tiers in isolation.
package bytescan
