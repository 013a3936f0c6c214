package bytescan

import (
	"encoding/binary"
	"math/bits"
)

const (
	wordBytes  = 8
	blockBytes = 32
)

const (
	lowBits  = 0x0101010101010101
	highBits = 0x8080808080808080
)

// indexByteImpl is the implementation function pointer, selected once by
// initCapability based on detected vector width (or the FLSTRING_KERNEL
// override).
var indexByteImpl = indexByteCompact

// IndexByte returns the index of the first occurrence of c in b, or -1 if c
// is not present. The scan compares whole words against a broadcast copy of
// the target byte and only falls back to byte-at-a-time work for the tail.
func IndexByte(b []byte, c byte) int {
	return indexByteImpl(b, c)
}

// broadcast replicates c into every byte lane of a word.
func broadcast(c byte) uint64 {
	return lowBits * uint64(c)
}

// matchMask returns a word with the high bit set in the lowest byte lane of w
// equal to the broadcast pattern pat; zero when no lane matches. Lanes above
// the first match may carry borrow artifacts, so only the lowest set bit is
// meaningful.
func matchMask(w, pat uint64) uint64 {
	x := w ^ pat
	return (x - lowBits) &^ x & highBits
}

// indexByteWide processes 32-byte blocks, four words per iteration. The
// unrolled body pipelines the loads and lets the compiler keep all four lane
// masks in registers.
func indexByteWide(b []byte, c byte) int {
	n := len(b)
	pat := broadcast(c)

	i := 0
	for ; i+blockBytes <= n; i += blockBytes {
		w0 := binary.LittleEndian.Uint64(b[i:])
		w1 := binary.LittleEndian.Uint64(b[i+8:])
		w2 := binary.LittleEndian.Uint64(b[i+16:])
		w3 := binary.LittleEndian.Uint64(b[i+24:])

		if m := matchMask(w0, pat); m != 0 {
			return i + bits.TrailingZeros64(m)>>3
		}
		if m := matchMask(w1, pat); m != 0 {
			return i + 8 + bits.TrailingZeros64(m)>>3
		}
		if m := matchMask(w2, pat); m != 0 {
			return i + 16 + bits.TrailingZeros64(m)>>3
		}
		if m := matchMask(w3, pat); m != 0 {
			return i + 24 + bits.TrailingZeros64(m)>>3
		}
	}

	for ; i+wordBytes <= n; i += wordBytes {
		w := binary.LittleEndian.Uint64(b[i:])
		if m := matchMask(w, pat); m != 0 {
			return i + bits.TrailingZeros64(m)>>3
		}
	}

	for ; i < n; i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// indexByteCompact is the narrow-vector variant: one word per iteration.
// Preferred on targets where the wide block brings no pipelining benefit.
func indexByteCompact(b []byte, c byte) int {
	n := len(b)
	pat := broadcast(c)

	i := 0
	for ; i+wordBytes <= n; i += wordBytes {
		w := binary.LittleEndian.Uint64(b[i:])
		if m := matchMask(w, pat); m != 0 {
			return i + bits.TrailingZeros64(m)>>3
		}
	}

	for ; i < n; i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}
