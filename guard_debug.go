//go:build flstrdebug

package flstring

import (
	"fmt"
	"sync/atomic"
)

// Access kinds held in the low byte of the packed state word.
const (
	accessNone  uint32 = 0
	accessRead  uint32 = 1
	accessWrite uint32 = 2
)

const (
	accessTypeMask   uint32 = 0xFF
	accessCountShift        = 8
)

// accessTracker detects unsynchronized concurrent access to a String at
// runtime. The state word packs [active goroutine count : 24][kind : 8].
// Concurrent reads stack; a write demands exclusive ownership. A transition
// that would constitute a data race panics with a diagnostic.
//
// Compiled in only under the flstrdebug build tag; the release variant is a
// zero-size stub.
type accessTracker struct {
	state atomic.Uint32
}

func (t *accessTracker) beginRead() {
	for {
		old := t.state.Load()
		if old&accessTypeMask == accessWrite {
			panic(violation("read", old))
		}
		count := old >> accessCountShift
		if t.state.CompareAndSwap(old, (count+1)<<accessCountShift|accessRead) {
			return
		}
	}
}

func (t *accessTracker) endRead() {
	for {
		old := t.state.Load()
		count := old >> accessCountShift
		var next uint32
		if count > 1 {
			next = (count-1)<<accessCountShift | accessRead
		}
		if t.state.CompareAndSwap(old, next) {
			return
		}
	}
}

func (t *accessTracker) beginWrite() {
	if !t.state.CompareAndSwap(0, 1<<accessCountShift|accessWrite) {
		panic(violation("write", t.state.Load()))
	}
}

func (t *accessTracker) endWrite() {
	t.state.Store(0)
}

func violation(attempted string, state uint32) string {
	kind := "none"
	switch state & accessTypeMask {
	case accessRead:
		kind = "read"
	case accessWrite:
		kind = "write"
	}
	return fmt.Sprintf(
		"flstring: unsynchronized %s access: %d goroutine(s) already in %s",
		attempted, state>>accessCountShift, kind)
}
