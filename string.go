package flstring

import (
	"bytes"

	"github.com/jaydenemmanuel/flstring/internal/blockpool"
)

// InlineCapacity is the number of bytes a String stores without heap
// allocation. One extra byte of the inline buffer holds the terminator.
const InlineCapacity = 23

const heapFlag uint8 = 1 << 0

// String is a mutable byte string with inline storage for short values.
//
// Values up to InlineCapacity bytes live entirely inside the struct; longer
// values own a recycler-backed heap block. The representation is selected by
// an explicit flag, and the byte after the content is always zero in either
// representation.
//
// A String must not be duplicated by plain assignment once it may own heap
// storage; use Clone for a copy or Move to transfer ownership. The zero
// value is an empty inline String and ready to use.
type String struct {
	heap   []byte // full block including terminator slot; nil when inline
	size   int
	flags  uint8
	track  accessTracker
	inline [InlineCapacity + 1]byte
}

// New returns an empty String. Equivalent to the zero value.
func New() String {
	return String{}
}

// FromBytes returns a String holding a copy of b.
func FromBytes(b []byte) (String, error) {
	var s String
	if err := s.Assign(b); err != nil {
		return String{}, err
	}
	return s, nil
}

// FromString returns a String holding a copy of v.
func FromString(v string) (String, error) {
	var s String
	if err := s.AssignString(v); err != nil {
		return String{}, err
	}
	return s, nil
}

// Repeat returns a String of count copies of ch.
func Repeat(ch byte, count int) (String, error) {
	if count < 0 {
		return String{}, ErrInvalidCapacity
	}
	var s String
	if err := s.AppendRepeat(count, ch); err != nil {
		return String{}, err
	}
	return s, nil
}

func (s *String) isHeap() bool { return s.flags&heapFlag != 0 }

// storage returns the full backing buffer including the terminator slot.
func (s *String) storage() []byte {
	if s.isHeap() {
		return s.heap
	}
	return s.inline[:]
}

func (s *String) capacity() int {
	if s.isHeap() {
		return len(s.heap) - 1
	}
	return InlineCapacity
}

// Len returns the number of content bytes.
func (s *String) Len() int {
	s.track.beginRead()
	defer s.track.endRead()
	return s.size
}

// Cap returns the usable capacity of the current representation. For heap
// storage this is the true block capacity, which class rounding may have
// made larger than any requested amount.
func (s *String) Cap() int {
	s.track.beginRead()
	defer s.track.endRead()
	return s.capacity()
}

// Empty reports whether the String has no content.
func (s *String) Empty() bool {
	s.track.beginRead()
	defer s.track.endRead()
	return s.size == 0
}

// IsInline reports whether the content is held in the inline buffer.
func (s *String) IsInline() bool {
	s.track.beginRead()
	defer s.track.endRead()
	return !s.isHeap()
}

// Bytes returns the content as a slice aliasing the String's storage. The
// slice is invalidated by any mutating operation.
func (s *String) Bytes() []byte {
	s.track.beginRead()
	defer s.track.endRead()
	return s.storage()[:s.size]
}

// String returns a copy of the content as a Go string.
func (s *String) String() string {
	s.track.beginRead()
	defer s.track.endRead()
	return string(s.storage()[:s.size])
}

// At returns the byte at position pos, or an IndexError when pos is out of
// range.
func (s *String) At(pos int) (byte, error) {
	s.track.beginRead()
	defer s.track.endRead()
	if pos < 0 || pos >= s.size {
		return 0, indexError(pos, s.size)
	}
	return s.storage()[pos], nil
}

// SetAt stores c at position pos, or returns an IndexError when pos is out
// of range.
func (s *String) SetAt(pos int, c byte) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if pos < 0 || pos >= s.size {
		return indexError(pos, s.size)
	}
	s.storage()[pos] = c
	return nil
}

// Byte returns the byte at position pos without bounds checking against the
// content length. The caller must guarantee 0 <= pos < Len().
func (s *String) Byte(pos int) byte {
	return s.storage()[pos]
}

// SetByte stores c at position pos without bounds checking against the
// content length. The caller must guarantee 0 <= pos < Len().
func (s *String) SetByte(pos int, c byte) {
	s.storage()[pos] = c
}

// CopyTo copies up to len(dst) content bytes starting at pos into dst and
// returns the number copied. The destination is not terminated.
func (s *String) CopyTo(dst []byte, pos int) (int, error) {
	s.track.beginRead()
	defer s.track.endRead()
	if pos < 0 || pos > s.size {
		return 0, indexError(pos, s.size)
	}
	return copy(dst, s.storage()[pos:s.size]), nil
}

// growCapacity rounds minCap up to the next power of two minus one, with a
// floor of 32. Growing by whole binary orders keeps reallocation counts
// logarithmic in the final length.
func growCapacity(minCap int) int {
	if minCap < 32 {
		return 32
	}
	c := minCap
	c |= c >> 1
	c |= c >> 2
	c |= c >> 4
	c |= c >> 8
	c |= c >> 16
	c |= c >> 32
	return c
}

// grow ensures capacity() >= minCap, preserving content. The new block's
// true capacity is adopted, so Cap() may land above the growth-rule value.
func (s *String) grow(minCap int) error {
	if minCap <= s.capacity() {
		return nil
	}
	block, err := allocBlock(growCapacity(minCap) + 1)
	if err != nil {
		return err
	}
	n := copy(block, s.storage()[:s.size])
	block[n] = 0
	if s.isHeap() {
		freeBlock(s.heap)
	}
	s.heap = block
	s.flags |= heapFlag
	return nil
}

// Reserve ensures capacity for at least capacity bytes of content. Never
// shrinks.
func (s *String) Reserve(capacity int) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if capacity < 0 {
		return ErrInvalidCapacity
	}
	return s.grow(capacity)
}

// ShrinkToFit reduces heap storage to the smallest representation that
// holds the content: the inline buffer when it fits, otherwise the smallest
// block class. A no-op when no smaller representation exists.
func (s *String) ShrinkToFit() error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if !s.isHeap() || s.size >= s.capacity() {
		return nil
	}
	if s.size <= InlineCapacity {
		old := s.heap
		copy(s.inline[:], old[:s.size])
		s.inline[s.size] = 0
		s.heap = nil
		s.flags &^= heapFlag
		freeBlock(old)
		return nil
	}
	// Reallocate only when the content maps to a strictly smaller class.
	if blockpool.BlockSize(s.size+1) >= len(s.heap) {
		return nil
	}
	block, err := allocBlock(s.size + 1)
	if err != nil {
		return err
	}
	copy(block, s.heap[:s.size])
	block[s.size] = 0
	freeBlock(s.heap)
	s.heap = block
	return nil
}

// Append appends b to the content.
func (s *String) Append(b []byte) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if len(b) == 0 {
		return nil
	}
	newSize := s.size + len(b)
	if err := s.grow(newSize); err != nil {
		return err
	}
	buf := s.storage()
	copy(buf[s.size:], b)
	s.size = newSize
	buf[newSize] = 0
	return nil
}

// AppendString appends v to the content.
func (s *String) AppendString(v string) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if len(v) == 0 {
		return nil
	}
	newSize := s.size + len(v)
	if err := s.grow(newSize); err != nil {
		return err
	}
	buf := s.storage()
	copy(buf[s.size:], v)
	s.size = newSize
	buf[newSize] = 0
	return nil
}

// AppendByte appends a single byte.
func (s *String) AppendByte(c byte) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if err := s.grow(s.size + 1); err != nil {
		return err
	}
	buf := s.storage()
	buf[s.size] = c
	s.size++
	buf[s.size] = 0
	return nil
}

// AppendRepeat appends count copies of ch.
func (s *String) AppendRepeat(count int, ch byte) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if count < 0 {
		return ErrInvalidCapacity
	}
	if count == 0 {
		return nil
	}
	newSize := s.size + count
	if err := s.grow(newSize); err != nil {
		return err
	}
	buf := s.storage()
	for i := s.size; i < newSize; i++ {
		buf[i] = ch
	}
	s.size = newSize
	buf[newSize] = 0
	return nil
}

// Assign replaces the content with a copy of b, reusing the current heap
// block when it is large enough.
func (s *String) Assign(b []byte) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	return s.assign(b)
}

// AssignString replaces the content with a copy of v.
func (s *String) AssignString(v string) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	buf, err := s.assignDst(len(v))
	if err != nil {
		return err
	}
	copy(buf, v)
	return nil
}

func (s *String) assign(b []byte) error {
	buf, err := s.assignDst(len(b))
	if err != nil {
		return err
	}
	copy(buf, b)
	return nil
}

// assignDst prepares storage for n content bytes, reusing the current heap
// block when it is large enough, and returns the destination slice. The
// terminator and size are set before the content is copied in; the caller
// fills buf completely.
func (s *String) assignDst(n int) ([]byte, error) {
	if s.isHeap() && s.capacity() >= n {
		s.heap[n] = 0
		s.size = n
		return s.heap[:n], nil
	}
	if n <= InlineCapacity {
		if s.isHeap() {
			freeBlock(s.heap)
			s.heap = nil
			s.flags &^= heapFlag
		}
		s.inline[n] = 0
		s.size = n
		return s.inline[:n], nil
	}
	// The replacement block is acquired before the old one is released, so
	// a failed allocation leaves the string unchanged.
	block, err := allocBlock(n + 1)
	if err != nil {
		return nil, err
	}
	if s.isHeap() {
		freeBlock(s.heap)
	}
	block[n] = 0
	s.heap = block
	s.flags |= heapFlag
	s.size = n
	return block[:n], nil
}

// Insert inserts b at position pos, shifting the tail right.
func (s *String) Insert(pos int, b []byte) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if pos < 0 || pos > s.size {
		return indexError(pos, s.size)
	}
	if len(b) == 0 {
		return nil
	}
	newSize := s.size + len(b)
	if newSize >= s.capacity() {
		// Interior edits tend to come in runs, so grow with headroom rather
		// than exactly.
		if err := s.grow(newSize + newSize/2); err != nil {
			return err
		}
	}
	buf := s.storage()
	copy(buf[pos+len(b):], buf[pos:s.size])
	copy(buf[pos:], b)
	s.size = newSize
	buf[newSize] = 0
	return nil
}

// Erase removes up to n bytes starting at pos. Negative n removes through
// the end. Positions at or past the end are a no-op.
func (s *String) Erase(pos, n int) {
	s.track.beginWrite()
	defer s.track.endWrite()
	if pos < 0 || pos >= s.size {
		return
	}
	if n < 0 || n > s.size-pos {
		n = s.size - pos
	}
	if n == 0 {
		return
	}
	buf := s.storage()
	copy(buf[pos:], buf[pos+n:s.size])
	s.size -= n
	buf[s.size] = 0
}

// Replace substitutes the n bytes starting at pos with b. n is clamped to
// the available tail; negative n replaces through the end.
func (s *String) Replace(pos, n int, b []byte) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if pos < 0 || pos > s.size {
		return indexError(pos, s.size)
	}
	if n < 0 || n > s.size-pos {
		n = s.size - pos
	}
	newSize := s.size - n + len(b)
	if newSize >= s.capacity() {
		if err := s.grow(newSize + newSize/2); err != nil {
			return err
		}
	}
	buf := s.storage()
	if n != len(b) {
		copy(buf[pos+len(b):], buf[pos+n:s.size])
	}
	copy(buf[pos:], b)
	s.size = newSize
	buf[newSize] = 0
	return nil
}

// Resize sets the content length to newSize, filling any extension with
// fill.
func (s *String) Resize(newSize int, fill byte) error {
	s.track.beginWrite()
	defer s.track.endWrite()
	if newSize < 0 {
		return ErrInvalidCapacity
	}
	if newSize > s.size {
		if newSize >= s.capacity() {
			if err := s.grow(newSize + newSize/2); err != nil {
				return err
			}
		}
		buf := s.storage()
		for i := s.size; i < newSize; i++ {
			buf[i] = fill
		}
	}
	s.size = newSize
	s.storage()[newSize] = 0
	return nil
}

// PopBack removes the last byte. A no-op on an empty String.
func (s *String) PopBack() {
	s.track.beginWrite()
	defer s.track.endWrite()
	if s.size > 0 {
		s.size--
		s.storage()[s.size] = 0
	}
}

// Clear removes all content, keeping the current representation and
// capacity.
func (s *String) Clear() {
	s.track.beginWrite()
	defer s.track.endWrite()
	s.size = 0
	s.storage()[0] = 0
}

// Move transfers the representation to the returned String and resets the
// receiver to an empty inline value. The receiver stays valid and owns
// nothing afterward.
func (s *String) Move() String {
	s.track.beginWrite()
	defer s.track.endWrite()
	out := String{
		heap:   s.heap,
		size:   s.size,
		flags:  s.flags,
		inline: s.inline,
	}
	s.heap = nil
	s.size = 0
	s.flags = 0
	s.inline[0] = 0
	return out
}

// Release returns any heap block to the allocation path and resets the
// String to empty inline. Releasing an inline String, including one already
// released, is a no-op beyond clearing.
func (s *String) Release() {
	s.track.beginWrite()
	defer s.track.endWrite()
	if s.isHeap() {
		freeBlock(s.heap)
		s.heap = nil
		s.flags &^= heapFlag
	}
	s.size = 0
	s.inline[0] = 0
}

// Swap exchanges the contents of s and other.
func (s *String) Swap(other *String) {
	if s == other {
		return
	}
	s.track.beginWrite()
	defer s.track.endWrite()
	other.track.beginWrite()
	defer other.track.endWrite()
	s.heap, other.heap = other.heap, s.heap
	s.size, other.size = other.size, s.size
	s.flags, other.flags = other.flags, s.flags
	s.inline, other.inline = other.inline, s.inline
}

// Clone returns an independent copy of the content.
func (s *String) Clone() (String, error) {
	s.track.beginRead()
	defer s.track.endRead()
	return FromBytes(s.storage()[:s.size])
}

// Equal reports whether s and other hold the same bytes.
func (s *String) Equal(other *String) bool {
	s.track.beginRead()
	defer s.track.endRead()
	other.track.beginRead()
	defer other.track.endRead()
	return s.size == other.size &&
		bytes.Equal(s.storage()[:s.size], other.storage()[:other.size])
}

// EqualBytes reports whether the content equals b.
func (s *String) EqualBytes(b []byte) bool {
	s.track.beginRead()
	defer s.track.endRead()
	return bytes.Equal(s.storage()[:s.size], b)
}

// EqualString reports whether the content equals v.
func (s *String) EqualString(v string) bool {
	s.track.beginRead()
	defer s.track.endRead()
	return string(s.storage()[:s.size]) == v
}

// Compare returns -1, 0 or 1 ordering s against other lexicographically.
func (s *String) Compare(other *String) int {
	s.track.beginRead()
	defer s.track.endRead()
	other.track.beginRead()
	defer other.track.endRead()
	return bytes.Compare(s.storage()[:s.size], other.storage()[:other.size])
}

// StartsWith reports whether the content begins with prefix.
func (s *String) StartsWith(prefix []byte) bool {
	s.track.beginRead()
	defer s.track.endRead()
	return bytes.HasPrefix(s.storage()[:s.size], prefix)
}

// EndsWith reports whether the content ends with suffix.
func (s *String) EndsWith(suffix []byte) bool {
	s.track.beginRead()
	defer s.track.endRead()
	return bytes.HasSuffix(s.storage()[:s.size], suffix)
}

// Contains reports whether needle occurs in the content.
func (s *String) Contains(needle []byte) bool {
	s.track.beginRead()
	defer s.track.endRead()
	return Index(s.storage()[:s.size], needle, 0) != NotFound
}
