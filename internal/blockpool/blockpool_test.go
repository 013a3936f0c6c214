package blockpool

import (
	"runtime"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestClassFor(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 0},
		{64, 0},
		{65, 1},
		{128, 1},
		{129, 2},
		{4096, 6},
		{4097, -1},
		{1 << 20, -1},
	}

	for _, tt := range tests {
		if got := ClassFor(tt.size); got != tt.want {
			t.Errorf("ClassFor(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestBlockSize(t *testing.T) {
	if got := BlockSize(100); got != 128 {
		t.Errorf("BlockSize(100) = %d, want 128", got)
	}
	if got := BlockSize(4096); got != 4096 {
		t.Errorf("BlockSize(4096) = %d, want 4096", got)
	}
	if got := BlockSize(9000); got != 9000 {
		t.Errorf("BlockSize(9000) = %d, want 9000", got)
	}
}

func TestRecycler_AllocClassSized(t *testing.T) {
	r := new(Recycler)

	b := r.Alloc(100)
	if len(b) != 128 || cap(b) != 128 {
		t.Fatalf("expected full class block (128), got len=%d cap=%d", len(b), cap(b))
	}

	big := r.Alloc(5000)
	if len(big) != 5000 {
		t.Fatalf("oversize request should bypass classes, got len=%d", len(big))
	}

	if b := r.Alloc(0); b != nil {
		t.Errorf("expected nil for zero size")
	}
}

func TestRecycler_LIFOReuse(t *testing.T) {
	r := new(Recycler)

	b1 := r.Alloc(200) // class 256
	b2 := r.Alloc(200)
	r.Free(b1)
	r.Free(b2)

	// Most recently freed comes back first.
	got := r.Alloc(200)
	if &got[0] != &b2[0] {
		t.Error("expected most recently freed block to be reused first")
	}
	got = r.Alloc(200)
	if &got[0] != &b1[0] {
		t.Error("expected earlier freed block on second pop")
	}
}

func TestRecycler_DepthBound(t *testing.T) {
	r := new(Recycler)

	blocks := make([][]byte, SlabDepth+3)
	for i := range blocks {
		blocks[i] = r.Alloc(64)
	}
	for _, b := range blocks {
		r.Free(b)
	}

	if got := r.counts[0]; got != SlabDepth {
		t.Errorf("expected class stack capped at %d, got %d", SlabDepth, got)
	}
}

func TestRecycler_ForeignBlockNotRecycled(t *testing.T) {
	r := new(Recycler)

	// A block whose length is not an exact class size must never enter a
	// slot: recycling it would hand out undersized storage later.
	r.Free(make([]byte, 100))
	for i := 0; i < NumClasses; i++ {
		if r.counts[i] != 0 {
			t.Fatalf("foreign block entered class %d", i)
		}
	}

	r.Free(nil)
	r.Free(make([]byte, 9000))
}

func TestRecycler_Drain(t *testing.T) {
	r := new(Recycler)
	r.Free(r.Alloc(64))
	r.Free(r.Alloc(1024))

	r.Drain()
	for i := 0; i < NumClasses; i++ {
		if r.counts[i] != 0 {
			t.Fatalf("class %d not drained", i)
		}
	}
}

func TestStats(t *testing.T) {
	ResetStats()
	r := new(Recycler)

	b := r.Alloc(64) // miss
	r.Free(b)        // push
	_ = r.Alloc(64)  // hit

	s := Snapshot()
	if s.Misses != 1 || s.Pushes != 1 || s.Hits != 1 {
		t.Errorf("unexpected stats: %s", s)
	}
	if s.ClassHits[0] != 1 || s.ClassPushes[0] != 1 {
		t.Errorf("unexpected per-class stats: %+v", s)
	}
	if s.HitRate() != 50 {
		t.Errorf("expected 50%% hit rate, got %.1f", s.HitRate())
	}

	ResetStats()
	if s := Snapshot(); s.Hits != 0 || s.Misses != 0 {
		t.Error("reset did not clear counters")
	}
}

// TestPackageAlloc_Disjoint verifies that two goroutines hammering the same
// size class never observe each other's live blocks. Each goroutine tags the
// blocks it holds with its own marker; any sharing of a live block would
// clobber the tag.
func TestPackageAlloc_Disjoint(t *testing.T) {
	const (
		iterations = 10000
		size       = 256
	)

	var g errgroup.Group
	for id := 0; id < 2; id++ {
		tag := byte(0xA0 + id)
		g.Go(func() error {
			held := make([][]byte, 0, 4)
			for i := 0; i < iterations; i++ {
				b := Alloc(size)
				for j := range b {
					b[j] = tag
				}
				held = append(held, b)

				if i%3 == 0 {
					runtime.Gosched()
				}

				for _, h := range held {
					for j := range h {
						if h[j] != tag {
							t.Errorf("live block observed by another owner: got %#x want %#x", h[j], tag)
							return nil
						}
					}
				}

				if len(held) == cap(held) {
					for _, h := range held {
						Free(h)
					}
					held = held[:0]
				}
			}
			for _, h := range held {
				Free(h)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func BenchmarkRecyclerAllocFree(b *testing.B) {
	r := new(Recycler)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := r.Alloc(200)
		r.Free(buf)
	}
}

func BenchmarkPackageAllocFree(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := Alloc(200)
		Free(buf)
	}
}
