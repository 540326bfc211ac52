package fcurve

import (
	"math"
	"slices"
)

// InsertOrReplace adds a key at (time, value) to a keyframe curve and
// returns its index.
//
// If a key already lies within [DefaultThreshold] of time, only its value
// is replaced and its handles move along with it. Otherwise a new Bezier key
// with auto-clamped handles is inserted in time order, so no [Resort] is
// needed afterwards.
//
// It returns -1 for a nil or sample-backed curve.
func InsertOrReplace(c *Curve, time, value float64) int {
	if c == nil || math.IsNaN(time) {
		return -1
	}
	if _, ok := c.data.(Samples); ok {
		return -1
	}

	keys := c.Keys()
	res := LocateDefault(keys, time)
	if res.Replace {
		keys[res.Index].MoveValueWithHandles(value)
		c.structureChanged()
		return res.Index
	}

	k := NewKeyframe(time, value)
	k.Interpolation = c.newKeyInterpolation(keys, res.Index)
	c.data = Keyframes(slices.Insert(keys, res.Index, k))
	c.structureChanged()
	return res.Index
}

// InsertKey adds k to a keyframe curve and returns its index. A key already
// within [DefaultThreshold] of k's time is overwritten completely.
//
// It returns -1 for a nil or sample-backed curve.
func InsertKey(c *Curve, k Keyframe) int {
	if c == nil || math.IsNaN(k.Center.X) {
		return -1
	}
	if _, ok := c.data.(Samples); ok {
		return -1
	}

	k.clampHandles()
	keys := c.Keys()
	res := LocateDefault(keys, k.Center.X)
	if res.Replace {
		keys[res.Index] = k
	} else {
		c.data = Keyframes(slices.Insert(keys, res.Index, k))
	}
	c.structureChanged()
	return res.Index
}

// newKeyInterpolation picks the interpolation for a key inserted at index.
func (c *Curve) newKeyInterpolation(keys []Keyframe, index int) Interpolation {
	switch {
	case c.Flags&FlagDiscreteValues != 0:
		return InterpolationConstant
	case index > 0:
		ipo := keys[index-1].Interpolation
		if c.Flags&FlagIntegerValues != 0 && ipo == InterpolationBezier {
			return InterpolationLinear
		}
		return ipo
	case c.Flags&FlagIntegerValues != 0:
		return InterpolationLinear
	default:
		return InterpolationBezier
	}
}

// structureChanged runs the bookkeeping that follows an edit.
func (c *Curve) structureChanged() {
	if c.Flags&FlagAutoHandles != 0 {
		RecalcHandles(c)
	}
}

// DeleteKey removes the key at index. Negative indices count from the end.
// Out-of-range indices are ignored.
func DeleteKey(c *Curve, index int) {
	keys := c.Keys()
	n := len(keys)
	if index >= n || index < -n {
		return
	}
	if index < 0 {
		index += n
	}
	c.setKeys(slices.Delete(keys, index, index+1))
}

// DeleteKeys removes the keys in the half-open index range [from, to).
// Invalid ranges are ignored.
func DeleteKeys(c *Curve, from, to int) {
	keys := c.Keys()
	if from < 0 || to > len(keys) || from >= to {
		return
	}
	c.setKeys(slices.Delete(keys, from, to))
}

// DeleteSelectedKeys removes every key whose center is selected and
// reports whether anything was removed.
func DeleteSelectedKeys(c *Curve) bool {
	keys := c.Keys()
	kept := slices.DeleteFunc(keys, func(k Keyframe) bool {
		return k.Selected&SelectKey != 0
	})
	if len(kept) == len(keys) {
		return false
	}
	c.setKeys(kept)
	return true
}

// ClearKeys removes all points from the curve.
func ClearKeys(c *Curve) {
	if c != nil {
		c.data = nil
	}
}

// setKeys stores keys after a structural edit, dropping the storage when
// it becomes empty.
func (c *Curve) setKeys(keys []Keyframe) {
	if len(keys) == 0 {
		c.data = nil
		return
	}
	c.data = Keyframes(keys)
	c.structureChanged()
}

// DeduplicateKeys merges keys closer than [DefaultThreshold] in time.
// The last of a run of duplicates wins. Unless the winner sits exactly on a
// whole frame, it is moved back to the time of the first duplicate so the
// reference time does not drift forward. The curve must be sorted.
func DeduplicateKeys(c *Curve) {
	keys := c.Keys()
	if len(keys) < 2 {
		return
	}

	prev := 0
	for i := 1; i < len(keys); i++ {
		prevTime := keys[prev].Center.X
		t := keys[i].Center.X

		if t-prevTime <= DefaultThreshold {
			keys[prev] = keys[i]
			if math.Floor(t) != t {
				keys[prev].MoveTimeWithHandles(prevTime)
			}
			continue
		}

		prev++
		if prev != i {
			keys[prev] = keys[i]
		}
	}

	c.setKeys(keys[:prev+1])
}

// SubdivideHandles adjusts the handles of prev and next, and sets the
// handles of k, so that k splits the Bezier segment between prev and next
// without changing its shape. k.Center.X must lie strictly between the two
// neighbours.
//
// It returns the difference between k's value and the value the segment had
// at k's time, and false if the segment cannot be split there.
func SubdivideHandles(k, prev, next *Keyframe) (delta float64, ok bool) {
	if k.Center.X <= prev.Center.X || k.Center.X >= next.Center.X {
		return 0, false
	}

	seg := bezierSegment{P0: prev.Center, P1: prev.Right, P2: next.Left, P3: next.Center}
	seg.correct()

	u, ok := seg.param(k.Center.X)
	if !ok || u <= 0 || u >= 1 {
		return 0, false
	}

	// De Casteljau split at u.
	a0 := seg.P0.Lerp(seg.P1, u)
	a1 := seg.P1.Lerp(seg.P2, u)
	a2 := seg.P2.Lerp(seg.P3, u)
	b0 := a0.Lerp(a1, u)
	b1 := a1.Lerp(a2, u)
	mid := b0.Lerp(b1, u)

	prev.Right = a0
	next.Left = a2

	diff := k.Center.Sub(mid)
	k.Left = b0.Add(diff)
	k.Right = b1.Add(diff)
	return diff.Y, true
}
