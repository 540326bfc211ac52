package fcurve

import "math"

const (
	// autoHandleScale relates the auto tangent to handle length. It places
	// handles of evenly spaced keys a little under a third of the way to
	// their neighbours.
	autoHandleScale = 2.5614

	// handleGap is the minimum time distance kept between a key and its
	// handles before they are recomputed, so aligned handles never collapse.
	handleGap = 0.001

	alignEpsilon = 1e-5
)

// RecalcHandles recomputes the handles of every key from its neighbours
// according to the handle types, then restores the handle ordering
// invariant. Free handles are only clamped.
//
// The first and last keys with both handles auto are made horizontal when
// the curve extrapolates constantly. A cyclic curve (see [Curve.IsCyclic])
// whose end keys are both auto computes their handles through the cycle
// instead.
func RecalcHandles(c *Curve) {
	keys := c.Keys()
	n := len(keys)
	if n < 2 {
		for i := range keys {
			keys[i].clampHandles()
		}
		return
	}

	first, last := keys[0].Center, keys[n-1].Center
	cycle := c.IsCyclic() && keys[0].bothAuto() && keys[n-1].bothAuto()

	for i := range keys {
		k := &keys[i]

		var prev, next *Keyframe
		if i > 0 {
			prev = &keys[i-1]
		} else if cycle {
			wrapped := shiftKey(keys[n-2], first.Sub(last))
			prev = &wrapped
		}
		if i < n-1 {
			next = &keys[i+1]
		} else if cycle {
			wrapped := shiftKey(keys[1], last.Sub(first))
			next = &wrapped
		}

		k.Left.X = math.Min(k.Left.X, math.Nextafter(k.Center.X-handleGap, math.Inf(-1)))
		k.Right.X = math.Max(k.Right.X, math.Nextafter(k.Center.X+handleGap, math.Inf(1)))

		calcHandles(k, prev, next)

		if k.bothAuto() && !cycle && (i == 0 || i == n-1) &&
			c.Extrapolation == ExtrapolateConstant {
			k.Left.Y = k.Center.Y
			k.Right.Y = k.Center.Y
			k.clampLocked = true
		}
	}

	// A clamped end of a cycle is flattened on both sides so the
	// wrap-around stays smooth.
	if cycle && (keys[0].clampLocked || keys[n-1].clampLocked) {
		for _, k := range []*Keyframe{&keys[0], &keys[n-1]} {
			k.Left.Y = k.Center.Y
			k.Right.Y = k.Center.Y
			k.clampLocked = true
		}
	}

	for i := range keys {
		keys[i].clampHandles()
	}
}

// shiftKey returns a copy of k moved by delta.
func shiftKey(k Keyframe, delta Vec2) Keyframe {
	k.Left = k.Left.Add(delta)
	k.Center = k.Center.Add(delta)
	k.Right = k.Right.Add(delta)
	return k
}

// calcHandles recomputes the handles of k. prev and next are the
// neighbouring keys; at most one of them may be nil.
func calcHandles(k, prev, next *Keyframe) {
	k.clampLocked = false
	if k.LeftType == HandleFree && k.RightType == HandleFree {
		return
	}

	p2 := k.Center
	var p1, p3 Vec2
	switch {
	case prev != nil:
		p1 = prev.Center
	case next != nil:
		p1 = p2.Mul(2).Sub(next.Center)
	default:
		return
	}
	if next != nil {
		p3 = next.Center
	} else {
		p3 = p2.Mul(2).Sub(p1)
	}

	dA := p2.Sub(p1)
	dB := p3.Sub(p2)
	lenA, lenB := dA.X, dB.X
	if lenA == 0 {
		lenA = 1
	}
	if lenB == 0 {
		lenB = 1
	}

	if k.LeftType.isAuto() || k.RightType.isAuto() {
		tangent := dB.Mul(1 / lenB).Add(dA.Mul(1 / lenA))
		scale := tangent.X * autoHandleScale

		if scale != 0 {
			lenA = math.Min(lenA, 5*lenB)
			lenB = math.Min(lenB, 5*lenA)

			var leftViolated, rightViolated bool
			if k.LeftType.isAuto() {
				k.Left = p2.Sub(tangent.Mul(lenA / scale))
				if k.LeftType == HandleAutoClamped && prev != nil && next != nil {
					leftViolated = clampAutoHandle(k, &k.Left, prev.Center.Y, next.Center.Y, prev.Center.Y)
				}
			}
			if k.RightType.isAuto() {
				k.Right = p2.Add(tangent.Mul(lenB / scale))
				if k.RightType == HandleAutoClamped && prev != nil && next != nil {
					rightViolated = clampAutoHandle(k, &k.Right, prev.Center.Y, next.Center.Y, next.Center.Y)
				}
			}

			// Keep the pair collinear after one side was clamped.
			if leftViolated || rightViolated {
				h1 := k.Left.X - p2.X
				h2 := p2.X - k.Right.X
				if leftViolated {
					k.Right.Y = p2.Y + (p2.Y-k.Left.Y)/h1*h2
				} else {
					k.Left.Y = p2.Y + (p2.Y-k.Right.Y)/h2*h1
				}
			}
		}
	}

	if k.LeftType == HandleVector {
		k.Left = p2.Sub(dA.Mul(1.0 / 3))
	}
	if k.RightType == HandleVector {
		k.Right = p2.Add(dB.Mul(1.0 / 3))
	}

	alignHandles(k)
}

// clampAutoHandle flattens h at a local extremum of the key values, and
// otherwise keeps it from overshooting limit, the value of the neighbour
// on its own side. It reports whether h had to be clamped to limit.
func clampAutoHandle(k *Keyframe, h *Vec2, prevY, nextY, limit float64) bool {
	d1 := prevY - k.Center.Y
	d2 := nextY - k.Center.Y
	if (d1 <= 0 && d2 <= 0) || (d1 >= 0 && d2 >= 0) {
		h.Y = k.Center.Y
		k.clampLocked = true
		return false
	}

	// Values rise through the key when d1 <= 0.
	rising := d1 <= 0
	isLeft := h == &k.Left
	if rising == isLeft {
		if limit > h.Y {
			h.Y = limit
			return true
		}
	} else if limit < h.Y {
		h.Y = limit
		return true
	}
	return false
}

// alignHandles rotates aligned handles to be collinear with the opposite
// one, keeping their own length. The side whose handle is selected leads.
func alignHandles(k *Keyframe) {
	if k.LeftType == HandleFree || k.RightType == HandleFree {
		return
	}
	if k.LeftType != HandleAligned && k.RightType != HandleAligned {
		return
	}

	p2 := k.Center
	lenA := p2.Sub(k.Left).Length()
	lenB := p2.Sub(k.Right).Length()
	if lenA == 0 {
		lenA = 1
	}
	if lenB == 0 {
		lenB = 1
	}
	ratio := lenA / lenB

	alignRight := func() {
		if k.RightType == HandleAligned && lenA > alignEpsilon {
			k.Right = p2.Add(p2.Sub(k.Left).Mul(1 / ratio))
		}
	}
	alignLeft := func() {
		if k.LeftType == HandleAligned && lenB > alignEpsilon {
			k.Left = p2.Add(p2.Sub(k.Right).Mul(ratio))
		}
	}

	if k.Selected&SelectLeft != 0 {
		alignRight()
		alignLeft()
	} else {
		alignLeft()
		alignRight()
	}
}

// DemoteHandlesOnPartialSelection adjusts handle types of partially
// selected keys so they match what an edit of the selected parts can
// change, then recalculates the handles.
//
// On a key that is neither fully selected nor unselected, auto handles
// become aligned, and a vector handle becomes free when exactly one of
// itself and the key center is selected.
func DemoteHandlesOnPartialSelection(c *Curve) {
	keys := c.Keys()
	for i := range keys {
		k := &keys[i]
		sel := k.Selected & SelectAll
		if sel == SelectNone || sel == SelectAll {
			continue
		}

		if k.LeftType.isAuto() {
			k.LeftType = HandleAligned
		}
		if k.RightType.isAuto() {
			k.RightType = HandleAligned
		}

		center := sel&SelectKey != 0
		if k.LeftType == HandleVector && (sel&SelectLeft != 0) != center {
			k.LeftType = HandleFree
		}
		if k.RightType == HandleVector && (sel&SelectRight != 0) != center {
			k.RightType = HandleFree
		}
	}
	RecalcHandles(c)
}
