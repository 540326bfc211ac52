package fcurve

import (
	"math"
	"testing"
)

// keysAt returns linear keys at the given times, with value equal to time.
func keysAt(times ...float64) []Keyframe {
	keys := make([]Keyframe, len(times))
	for i, t := range times {
		keys[i] = NewKeyframe(t, t)
		keys[i].Interpolation = InterpolationLinear
	}
	return keys
}

func TestLocate(t *testing.T) {
	keys := keysAt(1, 3, 5, 7, 9)

	tests := []struct {
		name string
		time float64
		want SearchResult
	}{
		{"before first", 0, SearchResult{Index: 0}},
		{"on first", 1, SearchResult{Index: 0, Replace: true}},
		{"near first", 1 + 5e-6, SearchResult{Index: 0, Replace: true}},
		{"after last", 10, SearchResult{Index: 5}},
		{"on last", 9, SearchResult{Index: 4, Replace: true}},
		{"on interior", 5, SearchResult{Index: 2, Replace: true}},
		{"near interior", 7 - 5e-6, SearchResult{Index: 3, Replace: true}},
		{"between", 4, SearchResult{Index: 2}},
		{"between first pair", 2, SearchResult{Index: 1}},
		{"between last pair", 8, SearchResult{Index: 4}},
		{"just outside threshold", 3 + 2e-5, SearchResult{Index: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocateDefault(keys, tt.time)
			if got != tt.want {
				t.Errorf("Locate(%v) = %+v, want %+v", tt.time, got, tt.want)
			}
		})
	}
}

func TestLocateDegenerate(t *testing.T) {
	if got := LocateDefault(nil, 1); got != (SearchResult{}) {
		t.Errorf("Locate(empty) = %+v, want zero", got)
	}
	if got := LocateDefault(keysAt(1, 2), math.NaN()); got != (SearchResult{}) {
		t.Errorf("Locate(NaN) = %+v, want zero", got)
	}

	single := keysAt(4)
	if got := LocateDefault(single, 4); got != (SearchResult{Index: 0, Replace: true}) {
		t.Errorf("Locate(single, 4) = %+v", got)
	}
	if got := LocateDefault(single, 5); got != (SearchResult{Index: 1}) {
		t.Errorf("Locate(single, 5) = %+v", got)
	}
	if got := LocateDefault(single, 3); got != (SearchResult{Index: 0}) {
		t.Errorf("Locate(single, 3) = %+v", got)
	}
}

func TestLocateThreshold(t *testing.T) {
	keys := keysAt(0, 10, 20)
	if got := Locate(keys, 10.4, 0.5); !got.Replace || got.Index != 1 {
		t.Errorf("Locate(10.4, 0.5) = %+v, want replace at 1", got)
	}
	if got := Locate(keys, 10.4, 0.1); got.Replace || got.Index != 2 {
		t.Errorf("Locate(10.4, 0.1) = %+v, want insert at 2", got)
	}
}

func TestLocateAgreesWithLinearScan(t *testing.T) {
	keys := keysAt(-3, -1, 0, 2, 2.5, 8, 13, 21)
	for q := -5.0; q <= 23; q += 0.25 {
		want := 0
		for want < len(keys) && keys[want].Center.X < q-DefaultThreshold {
			want++
		}
		got := LocateDefault(keys, q)
		if got.Index != want {
			t.Errorf("Locate(%v).Index = %d, want %d", q, got.Index, want)
		}
		onKey := want < len(keys) && math.Abs(keys[want].Center.X-q) <= DefaultThreshold
		if got.Replace != onKey {
			t.Errorf("Locate(%v).Replace = %v, want %v", q, got.Replace, onKey)
		}
	}
}

func TestLocatePanicsOnUnorderedNaN(t *testing.T) {
	keys := keysAt(0, 1, 2, 3, 4, 5, 6, 7)
	for i := 1; i < len(keys)-1; i++ {
		keys[i].Center.X = math.NaN()
	}

	defer func() {
		if recover() == nil {
			t.Error("Locate did not panic on NaN keys")
		}
	}()
	// Neither branch moves the window when the midpoint time is NaN.
	Locate(keys, 3.5, DefaultThreshold)
}
