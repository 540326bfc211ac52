package fcurve

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func keyTimes(c *Curve) []float64 {
	var times []float64
	for _, k := range c.Keys() {
		times = append(times, k.Center.X)
	}
	return times
}

func keyValues(c *Curve) []float64 {
	var values []float64
	for _, k := range c.Keys() {
		values = append(values, k.Center.Y)
	}
	return values
}

func TestInsertOrReplace_KeepsOrder(t *testing.T) {
	c := New()
	for _, tv := range [][2]float64{{5, 50}, {1, 10}, {9, 90}, {3, 30}, {7, 70}} {
		InsertOrReplace(c, tv[0], tv[1])
		if NeedsResort(c) {
			t.Fatalf("insert at %v left the curve unsorted: %v", tv[0], keyTimes(c))
		}
	}

	if diff := cmp.Diff([]float64{1, 3, 5, 7, 9}, keyTimes(c)); diff != "" {
		t.Errorf("times mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10, 30, 50, 70, 90}, keyValues(c)); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertOrReplace_ReturnsIndex(t *testing.T) {
	c := New()
	if got := InsertOrReplace(c, 10, 1); got != 0 {
		t.Errorf("first insert = %d, want 0", got)
	}
	if got := InsertOrReplace(c, 20, 2); got != 1 {
		t.Errorf("append = %d, want 1", got)
	}
	if got := InsertOrReplace(c, 15, 3); got != 1 {
		t.Errorf("middle insert = %d, want 1", got)
	}
	if got := InsertOrReplace(c, 5, 4); got != 0 {
		t.Errorf("prepend = %d, want 0", got)
	}
}

func TestInsertOrReplace_ReplacesWithinThreshold(t *testing.T) {
	c := New()
	InsertOrReplace(c, 1, 10)
	InsertOrReplace(c, 2, 20)

	idx := InsertOrReplace(c, 2+5e-6, 25)
	if idx != 1 {
		t.Errorf("replace index = %d, want 1", idx)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (no duplicate)", c.Len())
	}
	k := c.Keys()[1]
	if k.Center.X != 2 || k.Center.Y != 25 {
		t.Errorf("replaced key center = %v, want (2, 25)", k.Center)
	}
}

func TestInsertOrReplace_Rejects(t *testing.T) {
	if got := InsertOrReplace(nil, 1, 1); got != -1 {
		t.Errorf("nil curve = %d, want -1", got)
	}

	c := New()
	if got := InsertOrReplace(c, math.NaN(), 1); got != -1 {
		t.Errorf("NaN time = %d, want -1", got)
	}

	c.SetSamples([]Sample{{0, 1}, {1, 2}})
	if got := InsertOrReplace(c, 3, 1); got != -1 {
		t.Errorf("sample curve = %d, want -1", got)
	}
	if c.Len() != 2 {
		t.Errorf("samples modified: Len() = %d", c.Len())
	}
}

func TestInsertOrReplace_Interpolation(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		prev  Interpolation
		want  Interpolation
	}{
		{"inherits previous", FlagAutoHandles, InterpolationLinear, InterpolationLinear},
		{"bezier by default", FlagAutoHandles, InterpolationBezier, InterpolationBezier},
		{"discrete is constant", FlagDiscreteValues, InterpolationBezier, InterpolationConstant},
		{"integer avoids bezier", FlagIntegerValues, InterpolationBezier, InterpolationLinear},
		{"integer keeps constant", FlagIntegerValues, InterpolationConstant, InterpolationConstant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithFlags(tt.flags))
			k := NewKeyframe(0, 0)
			k.Interpolation = tt.prev
			c.SetKeys([]Keyframe{k})

			idx := InsertOrReplace(c, 5, 1)
			if got := c.Keys()[idx].Interpolation; got != tt.want {
				t.Errorf("interpolation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertOrReplace_HandleInvariant(t *testing.T) {
	c := New()
	for i, v := range []float64{0, 3, -2, 8, 8, 1} {
		InsertOrReplace(c, float64(i*2), v)
	}
	for i, k := range c.Keys() {
		if k.Left.X > k.Center.X || k.Center.X > k.Right.X {
			t.Errorf("key %d handles out of order: %v %v %v", i, k.Left, k.Center, k.Right)
		}
	}
}

func TestInsertKey_Overwrites(t *testing.T) {
	c := New(WithFlags(0))
	InsertOrReplace(c, 1, 1)

	k := NewKeyframe(1, 7)
	k.Interpolation = InterpolationConstant
	k.LeftType, k.RightType = HandleFree, HandleFree
	if idx := InsertKey(c, k); idx != 0 {
		t.Fatalf("InsertKey = %d, want 0", idx)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if diff := cmp.Diff(k, c.Keys()[0], cmp.AllowUnexported(Keyframe{})); diff != "" {
		t.Errorf("key mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteKey(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []float64
	}{
		{"first", 0, []float64{2, 3, 4}},
		{"middle", 2, []float64{1, 2, 4}},
		{"last by negative index", -1, []float64{1, 2, 3}},
		{"second to last", -2, []float64{1, 2, 4}},
		{"out of range", 4, []float64{1, 2, 3, 4}},
		{"negative out of range", -5, []float64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithFlags(0))
			c.SetKeys(keysAt(1, 2, 3, 4))
			DeleteKey(c, tt.index)
			if diff := cmp.Diff(tt.want, keyTimes(c)); diff != "" {
				t.Errorf("times mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeleteKeys(t *testing.T) {
	c := New(WithFlags(0))
	c.SetKeys(keysAt(1, 2, 3, 4, 5))

	DeleteKeys(c, 1, 3)
	if diff := cmp.Diff([]float64{1, 4, 5}, keyTimes(c)); diff != "" {
		t.Errorf("times mismatch (-want +got):\n%s", diff)
	}

	DeleteKeys(c, 2, 1)
	DeleteKeys(c, 0, 10)
	if c.Len() != 3 {
		t.Errorf("invalid ranges changed the curve: %v", keyTimes(c))
	}

	DeleteKeys(c, 0, 3)
	if c.Data() != nil {
		t.Errorf("Data() = %v, want nil after deleting everything", c.Data())
	}
}

func TestDeleteSelectedKeys(t *testing.T) {
	c := New(WithFlags(0))
	keys := keysAt(1, 2, 3, 4)
	keys[0].Selected = SelectNone
	keys[1].Selected = SelectKey
	keys[2].Selected = SelectLeft
	keys[3].Selected = SelectAll
	c.SetKeys(keys)

	if !DeleteSelectedKeys(c) {
		t.Fatal("DeleteSelectedKeys = false, want true")
	}
	if diff := cmp.Diff([]float64{1, 3}, keyTimes(c)); diff != "" {
		t.Errorf("times mismatch (-want +got):\n%s", diff)
	}
	if DeleteSelectedKeys(c) {
		t.Error("second DeleteSelectedKeys = true, want false")
	}
}

func TestClearKeys(t *testing.T) {
	c := New()
	InsertOrReplace(c, 1, 1)
	ClearKeys(c)
	if c.Len() != 0 || c.Data() != nil {
		t.Errorf("ClearKeys left %d points", c.Len())
	}
	ClearKeys(nil)
}

func TestDeduplicateKeys(t *testing.T) {
	t.Run("fractional winner moves back", func(t *testing.T) {
		c := New(WithFlags(0))
		c.SetKeys([]Keyframe{NewKeyframe(1, 1), NewKeyframe(1.000001, 2), NewKeyframe(2, 5)})
		DeduplicateKeys(c)

		want := []Vec2{{1, 2}, {2, 5}}
		var got []Vec2
		for _, k := range c.Keys() {
			got = append(got, k.Center)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("centers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("whole frame winner stays", func(t *testing.T) {
		c := New(WithFlags(0))
		c.SetKeys([]Keyframe{NewKeyframe(0.999999, 1), NewKeyframe(1, 2)})
		DeduplicateKeys(c)

		if c.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", c.Len())
		}
		if got := c.Keys()[0].Center; got != V2(1, 2) {
			t.Errorf("center = %v, want (1, 2)", got)
		}
	})

	t.Run("no duplicates", func(t *testing.T) {
		c := New(WithFlags(0))
		c.SetKeys(keysAt(1, 2, 3))
		DeduplicateKeys(c)
		if diff := cmp.Diff([]float64{1, 2, 3}, keyTimes(c)); diff != "" {
			t.Errorf("times mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSubdivideHandles_PreservesShape(t *testing.T) {
	prev := Keyframe{Left: V2(-1, 0), Center: V2(0, 0), Right: V2(1, 2)}
	next := Keyframe{Left: V2(2, 2), Center: V2(3, 0), Right: V2(4, 0)}

	orig := New(WithFlags(0))
	orig.SetKeys([]Keyframe{prev, next})

	k := NewKeyframe(1.5, 1.5)
	k.LeftType, k.RightType = HandleFree, HandleFree
	delta, ok := SubdivideHandles(&k, &prev, &next)
	if !ok {
		t.Fatal("SubdivideHandles failed")
	}
	if !almostEqual(delta, 0, 1e-9) {
		t.Errorf("delta = %v, want 0", delta)
	}

	split := New(WithFlags(0))
	split.SetKeys([]Keyframe{prev, k, next})

	for x := 0.0; x <= 3; x += 0.125 {
		want := orig.ValueAt(x)
		got := split.ValueAt(x)
		if !almostEqual(got, want, 1e-9) {
			t.Errorf("ValueAt(%v) = %v after split, want %v", x, got, want)
		}
	}
}

func TestSubdivideHandles_OutsideSegment(t *testing.T) {
	prev := NewKeyframe(0, 0)
	next := NewKeyframe(3, 0)
	k := NewKeyframe(5, 0)
	if _, ok := SubdivideHandles(&k, &prev, &next); ok {
		t.Error("SubdivideHandles outside the segment reported ok")
	}
}

func TestDelete_RecalculatesAutoHandles(t *testing.T) {
	build := func(points ...[2]float64) *Curve {
		c := New()
		for _, p := range points {
			InsertOrReplace(c, p[0], p[1])
		}
		return c
	}
	handles := func(c *Curve) [][2]Vec2 {
		var out [][2]Vec2
		for _, k := range c.Keys() {
			out = append(out, [2]Vec2{k.Left, k.Right})
		}
		return out
	}

	tests := []struct {
		name string
		edit func(c *Curve)
	}{
		{"DeleteKey", func(c *Curve) { DeleteKey(c, 0) }},
		{"DeleteKeys", func(c *Curve) { DeleteKeys(c, 0, 1) }},
		{"DeleteSelectedKeys", func(c *Curve) {
			c.DeselectAll()
			c.Keys()[0].Selected = SelectAll
			DeleteSelectedKeys(c)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := build([2]float64{0, 0}, [2]float64{10, 10}, [2]float64{20, 30})
			tt.edit(c)

			first := c.Keys()[0]
			if first.Left.Y != 10 || first.Right.Y != 10 {
				t.Errorf("new first key handles = %v, %v; want flat at 10", first.Left, first.Right)
			}

			want := build([2]float64{10, 10}, [2]float64{20, 30})
			if diff := cmp.Diff(handles(want), handles(c), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("handles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
