package fcurve

import "math"

// Root solvers used to invert the time component of Bezier segments.
//
// Only roots in [rootMin, rootMax] are reported: the parameter range of a
// segment plus a little slack that absorbs rounding error at the ends.

const (
	rootMin = -1e-10
	rootMax = 1.000001

	// degenerateRatio is the relative size under which a leading
	// coefficient is treated as zero. Over u in [0, 1] the dropped term
	// contributes less than this fraction of the remaining ones.
	degenerateRatio = 1e-9

	// bisectIterations bounds the fallback search; 2^-60 is below the
	// spacing of float64 values in [0, 1] that matter for evaluation.
	bisectIterations = 60
)

// acceptRoot reports whether r is a usable segment parameter.
func acceptRoot(r float64) bool {
	return r >= rootMin && r <= rootMax
}

// rootSet collects accepted roots in discovery order.
type rootSet struct {
	out *[3]float64
	n   int
}

func (s *rootSet) add(r float64) {
	if s.n < len(s.out) && isFinite(r) && acceptRoot(r) {
		s.out[s.n] = r
		s.n++
	}
}

// findRoots returns the number of parameters u in the segment range with
// B(u) = x, where B is the one-dimensional cubic Bezier with control values
// q0..q3. The roots are stored in out in a deterministic order.
func findRoots(x, q0, q1, q2, q3 float64, out *[3]float64) int {
	c0 := q0 - x
	c1 := 3 * (q1 - q0)
	c2 := 3 * (q0 - 2*q1 + q2)
	c3 := q3 - q0 + 3*(q1-q2)
	return solveCubic(c0, c1, c2, c3, out)
}

// solveCubic finds the roots of c0 + c1*u + c2*u^2 + c3*u^3 = 0 in the
// segment range.
//
// The cubic is normalized and depressed to t^3 + 3p*t + 2q = 0 with
// u = t - a. The sign of the discriminant q^2 + p^3 selects one real root
// (Cardano), a repeated root, or three distinct real roots (trigonometric
// form). A vanishing leading coefficient falls back to the quadratic.
func solveCubic(c0, c1, c2, c3 float64, out *[3]float64) int {
	scale := math.Max(math.Abs(c1), math.Abs(c2))
	if c3 == 0 || math.Abs(c3) <= degenerateRatio*scale {
		return solveQuadratic(c0, c1, c2, out)
	}

	a := c2 / c3 / 3
	b := c1 / c3
	c := c0 / c3

	p := b/3 - a*a
	q := (2*a*a*a - a*b + c) / 2
	d := q*q + p*p*p

	roots := rootSet{out: out}
	switch {
	case d > 0:
		// One real root.
		t := math.Sqrt(d)
		roots.add(math.Cbrt(-q+t) + math.Cbrt(-q-t) - a)
	case d == 0:
		// A single and a double root.
		t := math.Cbrt(-q)
		roots.add(2*t - a)
		roots.add(-t - a)
	default:
		// Three distinct real roots; p < 0 here.
		phi := math.Acos(clamp(-q/math.Sqrt(-(p*p*p)), -1, 1))
		t := math.Sqrt(-p)
		cp := math.Cos(phi / 3)
		sq := math.Sqrt(3 - 3*cp*cp)
		roots.add(2*t*cp - a)
		roots.add(-t*(cp+sq) - a)
		roots.add(-t*(cp-sq) - a)
	}
	return roots.n
}

// solveQuadratic finds the roots of c0 + c1*u + c2*u^2 = 0 in the segment
// range, in ascending order.
func solveQuadratic(c0, c1, c2 float64, out *[3]float64) int {
	if c2 == 0 || math.Abs(c2) <= degenerateRatio*math.Abs(c1) {
		return solveLinear(c0, c1, out)
	}

	roots := rootSet{out: out}
	disc := c1*c1 - 4*c2*c0
	switch {
	case disc > 0:
		// Numerically stable form, see
		// https://math.stackexchange.com/questions/866331
		k := -0.5 * (c1 + math.Copysign(math.Sqrt(disc), c1))
		r1 := k / c2
		r2 := c0 / k
		if r1 > r2 {
			r1, r2 = r2, r1
		}
		roots.add(r1)
		roots.add(r2)
	case disc == 0:
		roots.add(-c1 / (2 * c2))
	}
	return roots.n
}

// solveLinear finds the root of c0 + c1*u = 0 in the segment range.
// An identically zero equation reports u = 0.
func solveLinear(c0, c1 float64, out *[3]float64) int {
	roots := rootSet{out: out}
	switch {
	case c1 != 0:
		roots.add(-c0 / c1)
	case c0 == 0:
		roots.add(0)
	}
	return roots.n
}

// bisectRoot returns the parameter u in [0, 1] with B(u) = x for a
// one-dimensional cubic Bezier that is non-decreasing on [0, 1] and has
// q0 <= x <= q3. It is used when the closed-form solution loses the root to
// rounding, which happens for nearly degenerate control values.
func bisectRoot(x, q0, q1, q2, q3 float64) float64 {
	lo, hi := 0.0, 1.0
	for range bisectIterations {
		mid := (lo + hi) / 2
		if bezier1D(mid, q0, q1, q2, q3) < x {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo <= 1e-15 {
			break
		}
	}
	return (lo + hi) / 2
}

// bezier1D evaluates the one-dimensional cubic Bezier at u.
func bezier1D(u, q0, q1, q2, q3 float64) float64 {
	v := 1 - u
	return v*v*v*q0 + 3*v*v*u*q1 + 3*v*u*u*q2 + u*u*u*q3
}

// clamp limits x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
