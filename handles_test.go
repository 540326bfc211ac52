package fcurve

import (
	"math"
	"math/rand/v2"
	"testing"
)

func autoCurve(ext Extrapolation, typ HandleType, points ...Vec2) *Curve {
	c := New(WithFlags(0), WithExtrapolation(ext))
	keys := make([]Keyframe, len(points))
	for i, p := range points {
		keys[i] = NewKeyframe(p.X, p.Y)
		keys[i].LeftType, keys[i].RightType = typ, typ
	}
	c.SetKeys(keys)
	return c
}

func TestRecalcHandles_Auto(t *testing.T) {
	scale := 2 * autoHandleScale

	t.Run("peak is horizontal", func(t *testing.T) {
		c := autoCurve(ExtrapolateLinear, HandleAuto, V2(0, 0), V2(1, 1), V2(2, 0))
		RecalcHandles(c)
		k := c.Keys()[1]
		if !k.Left.Approx(V2(1-2/scale, 1), 1e-12) {
			t.Errorf("Left = %v, want (%v, 1)", k.Left, 1-2/scale)
		}
		if !k.Right.Approx(V2(1+2/scale, 1), 1e-12) {
			t.Errorf("Right = %v, want (%v, 1)", k.Right, 1+2/scale)
		}
	})

	t.Run("line stays straight", func(t *testing.T) {
		c := autoCurve(ExtrapolateLinear, HandleAuto, V2(0, 0), V2(1, 1), V2(2, 2))
		RecalcHandles(c)
		for i, k := range c.Keys() {
			for _, h := range []Vec2{k.Left, k.Right} {
				if !almostEqual(h.Y-k.Center.Y, h.X-k.Center.X, 1e-12) {
					t.Errorf("key %d handle %v not on the line through %v", i, h, k.Center)
				}
			}
		}
		// The straight curve evaluates linearly.
		for _, x := range []float64{0.25, 0.5, 1.3, 1.9} {
			if got := c.ValueAt(x); !almostEqual(got, x, 1e-9) {
				t.Errorf("ValueAt(%v) = %v, want %v", x, got, x)
			}
		}
	})

	t.Run("uneven spacing limits handle length", func(t *testing.T) {
		c := autoCurve(ExtrapolateLinear, HandleAuto, V2(0, 0), V2(10, 1), V2(11, 2))
		RecalcHandles(c)
		k := c.Keys()[1]
		if k.Center.X-k.Left.X > 5*(k.Right.X-k.Center.X)+1e-9 {
			t.Errorf("left handle %v more than five times the right %v", k.Left, k.Right)
		}
	})
}

func TestRecalcHandles_AutoClamped(t *testing.T) {
	points := []Vec2{V2(0, 0), V2(1, 1), V2(2, 0.5)}

	clamped := autoCurve(ExtrapolateLinear, HandleAutoClamped, points...)
	RecalcHandles(clamped)
	k := clamped.Keys()[1]
	if k.Left.Y != 1 || k.Right.Y != 1 {
		t.Errorf("clamped extremum handles = %v, %v, want horizontal", k.Left, k.Right)
	}

	free := autoCurve(ExtrapolateLinear, HandleAuto, points...)
	RecalcHandles(free)
	k = free.Keys()[1]
	if k.Left.Y == 1 {
		t.Errorf("auto extremum handle %v is horizontal, want tilted", k.Left)
	}
}

func TestRecalcHandles_AutoClampedNoOvershoot(t *testing.T) {
	// A steep rise into a small step: the right handle would overshoot the
	// next key without clamping.
	c := autoCurve(ExtrapolateLinear, HandleAutoClamped, V2(0, 0), V2(1, 10), V2(5, 10.5))
	RecalcHandles(c)
	k := c.Keys()[1]
	if k.Right.Y > 10.5+1e-12 {
		t.Errorf("right handle %v overshoots next key value 10.5", k.Right)
	}
	// The opposite handle stays collinear.
	slopeL := (k.Center.Y - k.Left.Y) / (k.Center.X - k.Left.X)
	slopeR := (k.Right.Y - k.Center.Y) / (k.Right.X - k.Center.X)
	if !almostEqual(slopeL, slopeR, 1e-9) {
		t.Errorf("handle slopes differ: %v vs %v", slopeL, slopeR)
	}
}

func TestRecalcHandles_EndsUnderConstantExtrapolation(t *testing.T) {
	points := []Vec2{V2(0, 0), V2(1, 1), V2(2, 2)}

	c := autoCurve(ExtrapolateConstant, HandleAuto, points...)
	RecalcHandles(c)
	keys := c.Keys()
	for _, i := range []int{0, 2} {
		k := keys[i]
		if k.Left.Y != k.Center.Y || k.Right.Y != k.Center.Y {
			t.Errorf("end key %d handles %v %v not horizontal", i, k.Left, k.Right)
		}
	}

	c = autoCurve(ExtrapolateLinear, HandleAuto, points...)
	RecalcHandles(c)
	if k := c.Keys()[0]; k.Right.Y == k.Center.Y {
		t.Errorf("end key handle %v horizontal under linear extrapolation", k.Right)
	}
}

func TestRecalcHandles_Vector(t *testing.T) {
	c := autoCurve(ExtrapolateLinear, HandleVector, V2(0, 0), V2(3, 3), V2(9, 0))
	RecalcHandles(c)
	k := c.Keys()[1]
	if !k.Left.Approx(V2(2, 2), 1e-12) {
		t.Errorf("Left = %v, want (2, 2)", k.Left)
	}
	if !k.Right.Approx(V2(5, 2), 1e-12) {
		t.Errorf("Right = %v, want (5, 2)", k.Right)
	}
}

func TestCalcHandles_Aligned(t *testing.T) {
	prev := NewKeyframe(-3, 0)
	next := NewKeyframe(3, 0)
	k := Keyframe{
		Left: V2(-1, -1), Center: V2(0, 0), Right: V2(2, 0),
		LeftType: HandleAligned, RightType: HandleAligned,
		Selected: SelectLeft,
	}

	calcHandles(&k, &prev, &next)

	if !k.Left.Approx(V2(-1, -1), 1e-12) {
		t.Errorf("leading Left moved to %v", k.Left)
	}
	want := V2(math.Sqrt2, math.Sqrt2)
	if !k.Right.Approx(want, 1e-12) {
		t.Errorf("Right = %v, want %v", k.Right, want)
	}
}

func TestCalcHandles_AlignedSkippedWithFree(t *testing.T) {
	prev := NewKeyframe(-3, 0)
	next := NewKeyframe(3, 0)
	k := Keyframe{
		Left: V2(-1, -1), Center: V2(0, 0), Right: V2(2, 0),
		LeftType: HandleFree, RightType: HandleAligned,
	}
	orig := k
	calcHandles(&k, &prev, &next)
	if k.Left != orig.Left || k.Right != orig.Right {
		t.Errorf("handles changed: %v %v", k.Left, k.Right)
	}
}

func TestRecalcHandles_Invariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	types := []HandleType{HandleFree, HandleVector, HandleAligned, HandleAuto, HandleAutoClamped}

	for iter := range 200 {
		c := New(WithFlags(0), WithExtrapolation(Extrapolation(iter%2)))
		var keys []Keyframe
		x := 0.0
		for range 2 + rng.IntN(8) {
			x += rng.Float64() * 5
			k := NewKeyframe(x, rng.Float64()*20-10)
			k.Left = k.Center.Add(V2(rng.Float64()*6-3, rng.Float64()*6-3))
			k.Right = k.Center.Add(V2(rng.Float64()*6-3, rng.Float64()*6-3))
			k.LeftType = types[rng.IntN(len(types))]
			k.RightType = types[rng.IntN(len(types))]
			k.Selected = Selection(rng.IntN(8))
			keys = append(keys, k)
		}
		c.SetKeys(keys)

		RecalcHandles(c)
		for i, k := range c.Keys() {
			if !(k.Left.X <= k.Center.X && k.Center.X <= k.Right.X) {
				t.Fatalf("iteration %d key %d: handles out of order: %v %v %v",
					iter, i, k.Left, k.Center, k.Right)
			}
		}
	}
}

func TestRecalcHandles_SingleKeyClamps(t *testing.T) {
	c := New(WithFlags(0))
	k := NewKeyframe(5, 1)
	k.Left = V2(7, 1)
	c.SetKeys([]Keyframe{k})

	RecalcHandles(c)
	if got := c.Keys()[0].Left.X; got != 5 {
		t.Errorf("Left.X = %v, want 5", got)
	}
}

func TestRecalcHandles_Cyclic(t *testing.T) {
	points := []Vec2{V2(0, 0), V2(5, 5), V2(10, 10)}

	c := autoCurve(ExtrapolateConstant, HandleAutoClamped, points...)
	c.Modifiers = []Modifier{&Cycles{Before: CycleRepeatOffset, After: CycleRepeatOffset}}
	if !c.IsCyclic() {
		t.Fatal("IsCyclic() = false")
	}
	RecalcHandles(c)

	k := c.Keys()[0]
	slope := (k.Right.Y - k.Center.Y) / (k.Right.X - k.Center.X)
	if !almostEqual(slope, 1, 1e-9) {
		t.Errorf("first key slope through the cycle = %v, want 1", slope)
	}

	c.Modifiers = nil
	RecalcHandles(c)
	if k := c.Keys()[0]; k.Right.Y != k.Center.Y {
		t.Errorf("first key handle %v not horizontal without a cycle", k.Right)
	}
}

func TestDemoteHandlesOnPartialSelection(t *testing.T) {
	tests := []struct {
		name      string
		sel       Selection
		left      HandleType
		right     HandleType
		wantLeft  HandleType
		wantRight HandleType
	}{
		{"unselected keeps auto", SelectNone, HandleAuto, HandleAutoClamped, HandleAuto, HandleAutoClamped},
		{"fully selected keeps auto", SelectAll, HandleAuto, HandleAuto, HandleAuto, HandleAuto},
		{"partial demotes auto", SelectKey, HandleAuto, HandleAutoClamped, HandleAligned, HandleAligned},
		{"vector with center only", SelectKey, HandleVector, HandleVector, HandleFree, HandleFree},
		{"vector with own side and center", SelectKey | SelectLeft, HandleVector, HandleVector, HandleVector, HandleFree},
		{"vector with own side only", SelectRight, HandleVector, HandleVector, HandleVector, HandleFree},
		{"free and aligned unchanged", SelectLeft, HandleFree, HandleAligned, HandleFree, HandleAligned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithFlags(0))
			keys := keysAt(0, 1, 2)
			keys[1].Selected = tt.sel
			keys[1].LeftType, keys[1].RightType = tt.left, tt.right
			c.SetKeys(keys)

			DemoteHandlesOnPartialSelection(c)

			k := c.Keys()[1]
			if k.LeftType != tt.wantLeft || k.RightType != tt.wantRight {
				t.Errorf("types = %v/%v, want %v/%v", k.LeftType, k.RightType, tt.wantLeft, tt.wantRight)
			}
		})
	}
}
