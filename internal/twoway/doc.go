// Package twoway implements Crochemore-Rytter Two-Way exact matching.
//
// The algorithm factorizes the needle at its critical position in O(m) time
// and constant space, then scans the haystack in two phases: a mismatch in
// the right part shifts past everything compared so far, and in the periodic
// case a "memory" counter prevents the left part from ever being rescanned.
// Total work is linear in the haystack regardless of input, which is where
// it earns its keep over skip-table methods on large, low-entropy text.
//
// Candidate positions are located with the vectorized byte scan from
// package bytescan before any scalar comparison runs.
//
// Needles of 8 bytes or fewer bypass the factorization: scan for the first
// byte, verify the remainder.
package twoway
