package fcurve

import (
	"fmt"
	"math"
)

// DefaultThreshold is the time distance under which two keys are
// considered to be on the same frame.
const DefaultThreshold = 1e-5

// SearchResult is the outcome of [Locate].
type SearchResult struct {
	// Index is the index of the matching key when Replace is true, or the
	// index at which a key with the searched time has to be inserted.
	Index int

	// Replace is true if a key lies within the threshold of the time.
	Replace bool
}

// Locate finds where a key at time belongs in keys, which must be sorted
// by time. Keys closer than threshold to time count as a match.
//
// A NaN time or empty slice yields the zero SearchResult. Locate panics if
// the search does not converge, which can only happen when keys contains
// NaN times.
func Locate(keys []Keyframe, time, threshold float64) SearchResult {
	n := len(keys)
	if n == 0 || math.IsNaN(time) {
		return SearchResult{}
	}

	// Out of range or on one of the boundary keys: no search needed.
	first := keys[0].Center.X
	if equalWithin(time, first, threshold) {
		return SearchResult{Index: 0, Replace: true}
	}
	if time < first {
		return SearchResult{Index: 0}
	}
	last := keys[n-1].Center.X
	if equalWithin(time, last, threshold) {
		return SearchResult{Index: n - 1, Replace: true}
	}
	if time > last {
		return SearchResult{Index: n}
	}

	start, end := 0, n-1
	maxLoop := 2 * n
	for loop := 0; start <= end; loop++ {
		if loop >= maxLoop {
			panic(fmt.Sprintf("fcurve: key search did not converge (start=%d end=%d len=%d)", start, end, n))
		}

		// Midpoint computed this way to avoid int overflow.
		mid := start + (end-start)/2
		midTime := keys[mid].Center.X

		if equalWithin(time, midTime, threshold) {
			return SearchResult{Index: mid, Replace: true}
		}
		if time > midTime {
			start = mid + 1
		} else if time < midTime {
			end = mid - 1
		}
	}

	return SearchResult{Index: start}
}

// LocateDefault is [Locate] with [DefaultThreshold].
func LocateDefault(keys []Keyframe, time float64) SearchResult {
	return Locate(keys, time, DefaultThreshold)
}

// equalWithin reports whether |a-b| <= threshold.
func equalWithin(a, b, threshold float64) bool {
	if a > b {
		return a-b <= threshold
	}
	return b-a <= threshold
}
