package flstring

import "sync"

// SyncString wraps a String behind a read-write mutex. Every operation runs
// under the lock and only ever calls the wrapped String's public methods,
// so the engine itself stays free of synchronization.
//
// For compound read-modify-write sequences use Update; the convenience
// accessors each take the lock independently and interleave with other
// goroutines' calls.
type SyncString struct {
	mu   sync.RWMutex
	data String
}

// NewSyncString returns a SyncString holding a copy of b.
func NewSyncString(b []byte) (*SyncString, error) {
	var s SyncString
	if err := s.data.Assign(b); err != nil {
		return nil, err
	}
	return &s, nil
}

// View calls fn with the wrapped String under the read lock. fn must not
// mutate the String or retain references into its storage past the call.
func (s *SyncString) View(fn func(*String)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

// Update calls fn with the wrapped String under the write lock and returns
// fn's error.
func (s *SyncString) Update(fn func(*String) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

// Len returns the content length.
func (s *SyncString) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Len()
}

// Bytes returns a copy of the content.
func (s *SyncString) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, s.data.Len())
	copy(out, s.data.Bytes())
	return out
}

// String returns a copy of the content as a Go string.
func (s *SyncString) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.String()
}

// Append appends b to the content.
func (s *SyncString) Append(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Append(b)
}

// Assign replaces the content with a copy of b.
func (s *SyncString) Assign(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Assign(b)
}

// Find returns the position of needle at or after start, or NotFound.
func (s *SyncString) Find(needle []byte, start int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Find(needle, start)
}

// Clear removes all content.
func (s *SyncString) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Clear()
}

// Release frees any heap storage held by the wrapped String.
func (s *SyncString) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Release()
}
