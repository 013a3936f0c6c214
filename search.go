package flstring

import (
	"bytes"

	"github.com/jaydenemmanuel/flstring/internal/bytescan"
	"github.com/jaydenemmanuel/flstring/internal/twoway"
)

// NotFound is returned by the search operations when no match exists.
const NotFound = -1

// twoWayThreshold is the remaining-haystack length above which the Two-Way
// matcher beats the baseline. Below it, the baseline's skip heuristics win
// on typical text.
const twoWayThreshold = 65536

// Index returns the position of the first occurrence of needle in haystack
// at or after start, or NotFound. An empty needle matches at start whenever
// start is within the haystack (including one past the end). Index never
// allocates and never modifies its inputs.
//
// Strategy selection, in order: empty needle; single-byte needle via the
// vectorized scan; haystacks with at least 64 KiB remaining via the Two-Way
// matcher; everything else via the baseline bytes.Index.
func Index(haystack, needle []byte, start int) int {
	if start < 0 {
		start = 0
	}
	n, m := len(haystack), len(needle)
	if m == 0 {
		if start > n {
			return NotFound
		}
		return start
	}
	// Subtraction form: start+m would overflow for huge start values.
	if start > n-m {
		return NotFound
	}
	rest := haystack[start:]

	if m == 1 {
		if pos := bytescan.IndexByte(rest, needle[0]); pos >= 0 {
			return start + pos
		}
		return NotFound
	}
	if len(rest) >= twoWayThreshold {
		if pos := twoway.Index(rest, needle); pos >= 0 {
			return start + pos
		}
		return NotFound
	}
	if pos := bytes.Index(rest, needle); pos >= 0 {
		return start + pos
	}
	return NotFound
}

// Find returns the position of the first occurrence of needle at or after
// start, or NotFound.
func (s *String) Find(needle []byte, start int) int {
	s.track.beginRead()
	defer s.track.endRead()
	return Index(s.storage()[:s.size], needle, start)
}

// FindString is Find for a string needle.
func (s *String) FindString(needle string, start int) int {
	s.track.beginRead()
	defer s.track.endRead()
	return Index(s.storage()[:s.size], []byte(needle), start)
}

// FindByte returns the position of the first occurrence of c at or after
// start, or NotFound.
func (s *String) FindByte(c byte, start int) int {
	s.track.beginRead()
	defer s.track.endRead()
	if start < 0 {
		start = 0
	}
	if start >= s.size {
		return NotFound
	}
	if pos := bytescan.IndexByte(s.storage()[start:s.size], c); pos >= 0 {
		return start + pos
	}
	return NotFound
}

// RFind returns the position of the last occurrence of needle whose start
// is at or before limit, or NotFound. A negative limit means the end of the
// content.
func (s *String) RFind(needle []byte, limit int) int {
	s.track.beginRead()
	defer s.track.endRead()
	content := s.storage()[:s.size]
	if limit < 0 || limit > s.size-len(needle) {
		limit = s.size - len(needle)
	}
	if limit < 0 {
		return NotFound
	}
	if len(needle) == 0 {
		return limit
	}
	if pos := bytes.LastIndex(content[:limit+len(needle)], needle); pos >= 0 {
		return pos
	}
	return NotFound
}

// RFindByte returns the position of the last occurrence of c at or before
// limit, or NotFound. A negative limit means the end of the content.
func (s *String) RFindByte(c byte, limit int) int {
	s.track.beginRead()
	defer s.track.endRead()
	if limit < 0 || limit >= s.size {
		limit = s.size - 1
	}
	content := s.storage()
	for i := limit; i >= 0; i-- {
		if content[i] == c {
			return i
		}
	}
	return NotFound
}

// byteSet is a 256-entry membership table for the character-class finds.
type byteSet [4]uint64

func makeByteSet(chars []byte) byteSet {
	var set byteSet
	for _, c := range chars {
		set[c>>6] |= 1 << (c & 63)
	}
	return set
}

func (set *byteSet) contains(c byte) bool {
	return set[c>>6]&(1<<(c&63)) != 0
}

// FindFirstOf returns the position of the first byte at or after start that
// occurs in chars, or NotFound.
func (s *String) FindFirstOf(chars []byte, start int) int {
	s.track.beginRead()
	defer s.track.endRead()
	if start < 0 {
		start = 0
	}
	set := makeByteSet(chars)
	content := s.storage()
	for i := start; i < s.size; i++ {
		if set.contains(content[i]) {
			return i
		}
	}
	return NotFound
}

// FindLastOf returns the position of the last byte at or before limit that
// occurs in chars, or NotFound. A negative limit means the end.
func (s *String) FindLastOf(chars []byte, limit int) int {
	s.track.beginRead()
	defer s.track.endRead()
	if limit < 0 || limit >= s.size {
		limit = s.size - 1
	}
	set := makeByteSet(chars)
	content := s.storage()
	for i := limit; i >= 0; i-- {
		if set.contains(content[i]) {
			return i
		}
	}
	return NotFound
}

// FindFirstNotOf returns the position of the first byte at or after start
// that does not occur in chars, or NotFound.
func (s *String) FindFirstNotOf(chars []byte, start int) int {
	s.track.beginRead()
	defer s.track.endRead()
	if start < 0 {
		start = 0
	}
	set := makeByteSet(chars)
	content := s.storage()
	for i := start; i < s.size; i++ {
		if !set.contains(content[i]) {
			return i
		}
	}
	return NotFound
}

// FindLastNotOf returns the position of the last byte at or before limit
// that does not occur in chars, or NotFound. A negative limit means the
// end.
func (s *String) FindLastNotOf(chars []byte, limit int) int {
	s.track.beginRead()
	defer s.track.endRead()
	if limit < 0 || limit >= s.size {
		limit = s.size - 1
	}
	set := makeByteSet(chars)
	content := s.storage()
	for i := limit; i >= 0; i-- {
		if !set.contains(content[i]) {
			return i
		}
	}
	return NotFound
}
