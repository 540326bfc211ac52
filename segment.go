package fcurve

import (
	"log/slog"
	"math"
)

const (
	// keySnapEpsilon is the distance under which a query time is taken to
	// be exactly on a key.
	keySnapEpsilon = 1e-8

	// flatEpsilon is the value tolerance of the flat-segment shortcut.
	flatEpsilon = 1.1920929e-7
)

// bezierSegment is the cubic Bezier between two keys in the time/value
// plane. P0 and P3 are the key centers, P1 and P2 the inner handles.
type bezierSegment struct {
	P0, P1, P2, P3 Vec2
}

// correct shortens the inner handles so that their combined time extent
// does not exceed the span of the segment. Without this the time
// component can run backwards and the segment loops on itself.
func (s *bezierSegment) correct() {
	h1 := s.P1.Sub(s.P0)
	h2 := s.P2.Sub(s.P3)
	span := s.P3.X - s.P0.X

	len1 := math.Abs(h1.X)
	len2 := math.Abs(h2.X)
	total := len1 + len2
	if total == 0 || total <= span {
		return
	}

	fac := span / total
	s.P1 = s.P0.Add(h1.Mul(fac))
	s.P2 = s.P3.Add(h2.Mul(fac))
}

// valueAt evaluates the value component at parameter u.
func (s *bezierSegment) valueAt(u float64) float64 {
	c0 := s.P0.Y
	c1 := 3 * (s.P1.Y - s.P0.Y)
	c2 := 3 * (s.P0.Y - 2*s.P1.Y + s.P2.Y)
	c3 := s.P3.Y - s.P0.Y + 3*(s.P1.Y-s.P2.Y)
	return c0 + u*(c1+u*(c2+u*c3))
}

// isFlat reports whether all four control values coincide.
func (s *bezierSegment) isFlat() bool {
	return math.Abs(s.P0.Y-s.P3.Y) < flatEpsilon &&
		math.Abs(s.P1.Y-s.P2.Y) < flatEpsilon &&
		math.Abs(s.P2.Y-s.P3.Y) < flatEpsilon
}

// evaluate returns the segment value at time t, and false if the time
// component has no solution for t.
func (s bezierSegment) evaluate(t float64) (float64, bool) {
	if s.isFlat() {
		return s.P0.Y, true
	}
	s.correct()

	u, ok := s.param(t)
	if !ok {
		return 0, false
	}
	return s.valueAt(u), true
}

// param returns the curve parameter at time t. After correct the time
// component is monotonic, so every t within the segment has a parameter;
// when the closed-form roots miss it, bisection finds it.
func (s *bezierSegment) param(t float64) (float64, bool) {
	var roots [3]float64
	if findRoots(t, s.P0.X, s.P1.X, s.P2.X, s.P3.X, &roots) > 0 {
		return clamp(roots[0], 0, 1), true
	}
	if t < s.P0.X || t > s.P3.X {
		return 0, false
	}
	return bisectRoot(t, s.P0.X, s.P1.X, s.P2.X, s.P3.X), true
}

// evalKeyframes evaluates sorted, non-empty keys at time t.
func (c *Curve) evalKeyframes(keys []Keyframe, t float64) float64 {
	n := len(keys)
	if t <= keys[0].Center.X {
		return c.extrapolate(keys, t, 0, +1)
	}
	if keys[n-1].Center.X <= t {
		return c.extrapolate(keys, t, n-1, -1)
	}
	return c.interpolate(keys, t)
}

// extrapolate evaluates t outside the keyed range. end is the index of the
// boundary key and dir points from it toward its neighbour.
func (c *Curve) extrapolate(keys []Keyframe, t float64, end, dir int) float64 {
	k := &keys[end]

	if len(keys) == 1 ||
		c.Extrapolation == ExtrapolateConstant ||
		c.Flags&FlagDiscreteValues != 0 ||
		k.Interpolation == InterpolationConstant {
		return k.Center.Y
	}

	dx := k.Center.X - t

	if k.Interpolation == InterpolationLinear {
		neighbour := &keys[end+dir]
		span := neighbour.Center.X - k.Center.X
		if span == 0 {
			return k.Center.Y
		}
		slope := (neighbour.Center.Y - k.Center.Y) / span
		return k.Center.Y - slope*dx
	}

	// Bezier: continue along the outer handle.
	handle := k.Left
	if dir < 0 {
		handle = k.Right
	}
	span := k.Center.X - handle.X
	if span == 0 {
		return k.Center.Y
	}
	slope := (k.Center.Y - handle.Y) / span
	return k.Center.Y - slope*dx
}

// interpolate evaluates t strictly inside the keyed range.
func (c *Curve) interpolate(keys []Keyframe, t float64) float64 {
	// Curves are short; a linear scan finds the straddling pair.
	i := 1
	for i < len(keys)-1 && keys[i].Center.X < t {
		i++
	}
	prev, next := &keys[i-1], &keys[i]

	if math.Abs(next.Center.X-t) < keySnapEpsilon {
		return next.Center.Y
	}
	if math.Abs(prev.Center.X-t) < keySnapEpsilon {
		return prev.Center.Y
	}

	duration := next.Center.X - prev.Center.X
	if prev.Interpolation == InterpolationConstant ||
		c.Flags&FlagDiscreteValues != 0 ||
		duration == 0 {
		return prev.Center.Y
	}

	switch prev.Interpolation {
	case InterpolationLinear:
		return prev.Center.Y + (next.Center.Y-prev.Center.Y)*(t-prev.Center.X)/duration
	case InterpolationBezier:
		seg := bezierSegment{P0: prev.Center, P1: prev.Right, P2: next.Left, P3: next.Center}
		v, ok := seg.evaluate(t)
		if !ok {
			Logger().Debug("fcurve: no segment parameter for time",
				slog.String("path", c.Path),
				slog.Float64("time", t),
				slog.Float64("from", prev.Center.X),
				slog.Float64("to", next.Center.X))
			return 0
		}
		return v
	default:
		return prev.Center.Y
	}
}
