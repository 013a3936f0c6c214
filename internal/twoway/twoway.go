package twoway

import (
	"bytes"

	"github.com/jaydenemmanuel/flstring/internal/bytescan"
)

// shortNeedleMax is the needle length at or below which the critical
// factorization is skipped in favor of a scan-and-verify loop. For short
// needles the O(m) preprocessing dominates early matches.
const shortNeedleMax = 8

// Stats accumulates work counters for a single search. Used by tests to
// assert the linear-time bound on adversarial inputs.
type Stats struct {
	// Comparisons counts byte comparisons performed, including bytes
	// consumed by the candidate pre-scan.
	Comparisons int
}

// maxSuffix computes the maximal suffix of needle under lexicographic order
// together with its period. Returns the index where the suffix starts.
func maxSuffix(needle []byte) (start, period int) {
	m := len(needle)
	i, j, k := 0, 1, 1
	period = 1
	for j+k <= m {
		a, b := needle[j+k-1], needle[i+k-1]
		switch {
		case a < b:
			j += k
			k = 1
			period = j - i
		case a == b:
			if k == period {
				j += period
				k = 1
			} else {
				k++
			}
		default:
			// a > b: j becomes the new suffix candidate.
			i = j
			j = i + 1
			k = 1
			period = 1
		}
	}
	return i, period
}

// maxSuffixRev is maxSuffix under the reversed byte order. Both orders are
// computed so the factorization with the larger left part can be chosen.
func maxSuffixRev(needle []byte) (start, period int) {
	m := len(needle)
	i, j, k := 0, 1, 1
	period = 1
	for j+k <= m {
		a, b := needle[j+k-1], needle[i+k-1]
		switch {
		case a > b:
			j += k
			k = 1
			period = j - i
		case a == b:
			if k == period {
				j += period
				k = 1
			} else {
				k++
			}
		default:
			i = j
			j = i + 1
			k = 1
			period = 1
		}
	}
	return i, period
}

// Index returns the index of the first occurrence of needle in haystack, or
// -1 if needle is not present. Runs in O(len(haystack)+len(needle)) time and
// constant space.
func Index(haystack, needle []byte) int {
	var st Stats
	return index(haystack, needle, &st)
}

// IndexWithStats is Index with work counters, for callers that want to
// observe how much scanning a search cost.
func IndexWithStats(haystack, needle []byte) (int, Stats) {
	var st Stats
	pos := index(haystack, needle, &st)
	return pos, st
}

func index(haystack, needle []byte, st *Stats) int {
	n, m := len(haystack), len(needle)
	if m == 0 {
		return 0
	}
	if m > n {
		return -1
	}

	// Short needles: find the first byte with the vectorized scan, then
	// verify the rest. No factorization pass.
	if m <= shortNeedleMax {
		first := needle[0]
		for pos := 0; pos <= n-m; {
			off := bytescan.IndexByte(haystack[pos:n-m+1], first)
			if off < 0 {
				return -1
			}
			pos += off
			st.Comparisons += off + m
			if bytes.Equal(haystack[pos:pos+m], needle) {
				return pos
			}
			pos++
		}
		return -1
	}

	// Critical factorization: needle = needle[:l+1] + needle[l+1:], where
	// the chosen maximal suffix starts the right half at l+1. The
	// factorization with the larger left part gives the stronger period
	// guarantee and therefore fewer comparisons.
	s1, per1 := maxSuffix(needle)
	s2, per2 := maxSuffixRev(needle)
	s, per := s1, per1
	if s2 > s1 {
		s, per = s2, per2
	}
	l := s - 1

	// The needle is periodic when the left part recurs with period per at
	// the start of the suffix. per is a period of the maximal suffix, so
	// the compared window stays inside the needle.
	periodic := bytes.Equal(needle[:l+1], needle[per:per+l+1])
	st.Comparisons += l + 1

	end := n - m
	first := needle[l+1]

	if periodic {
		// Periodic case: a left-half mismatch advances by exactly the period,
		// and memory records how much of the next candidate is already known
		// to match, so those bytes are never rescanned.
		memory := 0
		for pos := 0; pos <= end; {
			if memory == 0 {
				off := bytescan.IndexByte(haystack[pos+l+1:], first)
				if off < 0 {
					return -1
				}
				pos += off
				st.Comparisons += off
				if pos > end {
					return -1
				}
			}

			i := l + 1
			if memory > i {
				i = memory
			}
			for i < m && needle[i] == haystack[pos+i] {
				i++
			}
			st.Comparisons += i - l
			if i < m {
				pos += i - l
				memory = 0
				continue
			}
			j := memory
			for j <= l && needle[j] == haystack[pos+j] {
				j++
			}
			st.Comparisons += j - memory + 1
			if j > l {
				return pos
			}
			pos += per
			memory = m - per
		}
		return -1
	}

	// Non-periodic case: the local period exceeds both halves, so a full
	// right-half match followed by a left-half mismatch shifts past the
	// longer half. No memory bookkeeping.
	shift := l + 1
	if m-(l+1) > shift {
		shift = m - (l + 1)
	}
	shift++
	for pos := 0; pos <= end; {
		off := bytescan.IndexByte(haystack[pos+l+1:], first)
		if off < 0 {
			return -1
		}
		pos += off
		st.Comparisons += off
		if pos > end {
			return -1
		}

		i := l + 1
		for i < m && needle[i] == haystack[pos+i] {
			i++
		}
		st.Comparisons += i - l
		if i < m {
			pos += i - l
			continue
		}
		j := 0
		for j <= l && needle[j] == haystack[pos+j] {
			j++
		}
		st.Comparisons += j + 1
		if j > l {
			return pos
		}
		pos += shift
	}
	return -1
}
