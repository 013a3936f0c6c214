package flstring

import (
	"fmt"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// Find tuner defaults and bounds.
const (
	defaultSmallCutoff = 256
	defaultLongCutoff  = 4096
	minSmallCutoff     = 128
	maxSmallCutoff     = 512
	minLongCutoff      = 2048
	maxLongCutoff      = 8192

	// adaptMask gates adaptation to one observation per 1024 recorded
	// searches; the rest update only the tick counter.
	adaptMask = 0x3FF
)

// FindTuner adjusts search strategy cutoffs from observed workload shape:
// needle byte diversity and where matches tend to land. It is advisory
// instrumentation; the dispatcher's tier thresholds are fixed, and callers
// that layer their own dispatch on top read the tuned cutoffs explicitly.
//
// All methods are safe for concurrent use.
type FindTuner struct {
	smallCutoff atomic.Int64
	longCutoff  atomic.Int64
	tick        atomic.Uint32
	adaptations atomic.Uint32
}

// NewFindTuner returns a tuner at the default cutoffs.
func NewFindTuner() *FindTuner {
	t := &FindTuner{}
	t.smallCutoff.Store(defaultSmallCutoff)
	t.longCutoff.Store(defaultLongCutoff)
	return t
}

// NeedleDiversity returns the ratio of distinct byte values to needle
// length. Low diversity marks repetitive needles, where skip-table search
// degrades and a higher long-needle cutoff pays off.
func NeedleDiversity(needle []byte) float64 {
	if len(needle) <= 1 {
		return 1.0
	}
	seen := bitset.New(256)
	for _, c := range needle {
		seen.Set(uint(c))
	}
	return float64(seen.Count()) / float64(len(needle))
}

// Record feeds one completed search into the tuner. foundPos is the match
// position or NotFound. Only every 1024th call adapts the cutoffs and pays
// for the diversity computation; the others are a single counter update.
func (t *FindTuner) Record(haystackLen int, needle []byte, foundPos int) {
	if t.tick.Add(1)&adaptMask != 0 {
		return
	}
	t.adaptations.Add(1)

	if n := len(needle); n >= 5 && n <= 64 {
		long := t.longCutoff.Load()
		if NeedleDiversity(needle) < 0.45 {
			long += 256
			if long > maxLongCutoff {
				long = maxLongCutoff
			}
			t.longCutoff.Store(long)
		} else if long > minLongCutoff {
			t.longCutoff.Store(long - 128)
		}
	}

	small := t.smallCutoff.Load()
	if foundPos != NotFound && foundPos < 32 {
		small += 16
		if small > maxSmallCutoff {
			small = maxSmallCutoff
		}
		t.smallCutoff.Store(small)
	} else if haystackLen > 1024 && small > minSmallCutoff {
		t.smallCutoff.Store(small - 8)
	}
}

// SmallCutoff returns the current small-haystack cutoff.
func (t *FindTuner) SmallCutoff() int { return int(t.smallCutoff.Load()) }

// LongCutoff returns the current long-needle cutoff.
func (t *FindTuner) LongCutoff() int { return int(t.longCutoff.Load()) }

// Adaptations returns how many sampled observations have adapted the
// cutoffs.
func (t *FindTuner) Adaptations() int { return int(t.adaptations.Load()) }

// Snapshot returns a printable summary of the tuner state.
func (t *FindTuner) Snapshot() string {
	return fmt.Sprintf("small=%d long=%d adaptations=%d",
		t.SmallCutoff(), t.LongCutoff(), t.Adaptations())
}
