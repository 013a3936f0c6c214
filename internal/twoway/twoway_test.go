package twoway

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestIndex_Basics(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"", "a", -1},
		{"a", "ab", -1},
		{"abc", "abc", 0},
		{"xabc", "abc", 1},
		{"abcabc", "cab", 2},
		{"hello world", "world", 6},
		{"hello world", "worlds", -1},
		{"mississippi", "issip", 4},
		{"mississippi", "ppi", 8},
		{"aaaaaaaaab", "aab", 7},
	}
	for _, tt := range tests {
		if got := Index([]byte(tt.haystack), []byte(tt.needle)); got != tt.want {
			t.Errorf("Index(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestIndex_LongNeedles(t *testing.T) {
	// Needles above the short-path cutoff exercise the factorization.
	tests := []struct {
		haystack string
		needle   string
		want     int
	}{
		{"the quick brown fox jumps over the lazy dog", "jumps over the", 20},
		{"the quick brown fox jumps over the lazy dog", "jumps over thx", -1},
		{strings.Repeat("ab", 50) + "abababcab", "abababcab", 100},
		{strings.Repeat("abc", 100), "abcabcabcabc", 0},
		{"aaaaaaaaaaaaaaaaaaab", "aaaaaaaaab", 10},
	}
	for _, tt := range tests {
		if got := Index([]byte(tt.haystack), []byte(tt.needle)); got != tt.want {
			t.Errorf("Index(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestIndex_MatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabets := [][]byte{
		[]byte("ab"),
		[]byte("abc"),
		[]byte("abcdefgh"),
	}
	for _, alpha := range alphabets {
		haystack := make([]byte, 5000)
		for i := range haystack {
			haystack[i] = alpha[rng.Intn(len(alpha))]
		}
		for trial := 0; trial < 3000; trial++ {
			m := 1 + rng.Intn(40)
			var needle []byte
			if trial%2 == 0 {
				// Sample a real substring so matches actually occur.
				start := rng.Intn(len(haystack) - m)
				needle = haystack[start : start+m]
			} else {
				needle = make([]byte, m)
				for i := range needle {
					needle[i] = alpha[rng.Intn(len(alpha))]
				}
			}
			got := Index(haystack, needle)
			want := bytes.Index(haystack, needle)
			if got != want {
				t.Fatalf("alpha=%q needle=%q: got %d, want %d", alpha, needle, got, want)
			}
		}
	}
}

func TestIndex_FactorizationSplit(t *testing.T) {
	// The right half of the factorization starts at the maximal suffix
	// itself. Splitting one byte later loses the period guarantee and the
	// shifts jump over occurrences whose left part straddles the boundary.
	if got := Index([]byte("aaaaaababab"), []byte("aaaababab")); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}

	// Small binary-alphabet inputs concentrate near-periodic needles that
	// stress the split. Sweep against the stdlib.
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20000; trial++ {
		haystack := make([]byte, 1+rng.Intn(60))
		for i := range haystack {
			haystack[i] = 'a' + byte(rng.Intn(2))
		}
		needle := make([]byte, 1+rng.Intn(20))
		for i := range needle {
			needle[i] = 'a' + byte(rng.Intn(2))
		}
		got := Index(haystack, needle)
		if want := bytes.Index(haystack, needle); got != want {
			t.Fatalf("haystack=%q needle=%q: got %d, want %d", haystack, needle, got, want)
		}
	}
}

func TestIndex_PlantedLate(t *testing.T) {
	haystack := bytes.Repeat([]byte{'x'}, 1000)
	needle := []byte("planted-needle-value")
	copy(haystack[900:], needle)
	if got := Index(haystack, needle); got != 900 {
		t.Fatalf("got %d, want 900", got)
	}
}

func TestIndex_HighlyPeriodic(t *testing.T) {
	// Worst case for naive matching: the needle is a long run with a single
	// distinguishing byte at the end, planted at the very end of a run-only
	// haystack.
	n := 100_000
	haystack := bytes.Repeat([]byte{'a'}, n)
	needle := append(bytes.Repeat([]byte{'a'}, 24), 'b')
	want := n - len(needle)
	copy(haystack[want:], needle)
	if got := Index(haystack, needle); got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestIndex_LinearWorkBound(t *testing.T) {
	// A run-only haystack with an absent needle must stay linear. A
	// quadratic matcher does ~n*m comparisons here (over 25 million); the
	// two-way bound is a small constant times n.
	n := 1 << 20
	haystack := bytes.Repeat([]byte{'a'}, n)
	needle := append(bytes.Repeat([]byte{'a'}, 24), 'b')

	got, st := IndexWithStats(haystack, needle)
	if got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
	if limit := 8 * (n + len(needle)); st.Comparisons > limit {
		t.Fatalf("comparisons = %d, want <= %d", st.Comparisons, limit)
	}
}

func TestIndex_PeriodicNeedleLinear(t *testing.T) {
	n := 1 << 19
	haystack := bytes.Repeat([]byte("ab"), n/2)
	needle := append(bytes.Repeat([]byte("ab"), 16), 'c')
	got, st := IndexWithStats(haystack, needle)
	if got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
	if limit := 8 * (n + len(needle)); st.Comparisons > limit {
		t.Fatalf("comparisons = %d, want <= %d", st.Comparisons, limit)
	}
}

func TestMaxSuffix(t *testing.T) {
	// The chosen factorization must satisfy the period property on a known
	// periodic needle: "abab" has period 2 under either order.
	_, per := maxSuffix([]byte("abab"))
	_, perRev := maxSuffixRev([]byte("abab"))
	if per != 2 && perRev != 2 {
		t.Fatalf("neither order found period 2: %d / %d", per, perRev)
	}

	// On a needle of distinct bytes both suffix starts are in range and
	// Index still finds every occurrence (spot check the glue).
	needle := []byte("abcdefghij")
	l1, _ := maxSuffix(needle)
	l2, _ := maxSuffixRev(needle)
	if l1 >= len(needle) || l2 >= len(needle) {
		t.Fatalf("suffix start out of range: %d / %d", l1, l2)
	}
}

func BenchmarkIndex(b *testing.B) {
	benches := []struct {
		name     string
		haystack []byte
		needle   []byte
	}{
		{"absent/64KiB", bytes.Repeat([]byte{'a'}, 64<<10), []byte("aaaaaaaaaaab")},
		{"late/64KiB", append(bytes.Repeat([]byte{'x'}, 64<<10), []byte("needle-here!")...), []byte("needle-here!")},
		{"short/64KiB", append(bytes.Repeat([]byte{'x'}, 64<<10), []byte("zq")...), []byte("zq")},
	}
	for _, bm := range benches {
		b.Run(bm.name, func(b *testing.B) {
			b.SetBytes(int64(len(bm.haystack)))
			for i := 0; i < b.N; i++ {
				Index(bm.haystack, bm.needle)
			}
		})
	}
}
