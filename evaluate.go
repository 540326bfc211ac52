package fcurve

import "math"

// Evaluator evaluates curves, resolving driver targets through the
// collaborators it was created with.
//
// An Evaluator holds no per-curve state and may be shared; the curves it
// evaluates may not be evaluated or edited concurrently.
type Evaluator struct {
	targets      TargetResolver
	orientations OrientationResolver
	expressions  ExpressionEvaluator
}

// NewEvaluator creates an Evaluator. Without options, curves with drivers
// that read targets or expressions become invalid on first evaluation.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	var o evaluatorOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Evaluator{
		targets:      o.targets,
		orientations: o.orientations,
		expressions:  o.expressions,
	}
}

// Evaluate returns the value of c at time t and caches it on the curve
// (see [Curve.LastValue]).
//
// A driver, if present, is evaluated first and its value replaces t. When
// the curve has no points, the driver value is also the curve value, unless
// a range-restricted modifier excludes it. The modifier stack then adjusts
// the lookup time, the keys or samples are evaluated, and the modifier stack
// adjusts the value. Curves with FlagIntegerValues are truncated toward
// zero.
//
// Empty curves (see [Curve.IsEmpty]) evaluate to 0 and leave the cache
// untouched.
func (e *Evaluator) Evaluate(c *Curve, t float64) float64 {
	if c.IsEmpty() {
		return 0
	}

	var v float64
	if c.Driver != nil {
		t = e.evalDriver(c.Driver)
		if c.Len() == 0 && !blocksDriverValue(c.Modifiers, t) {
			v = t
		}
	}

	v = c.evaluate(t, v)
	c.lastValue = v
	return v
}

// ValueAt evaluates the keys or samples of c and its modifiers at time t,
// ignoring any driver. The cached value is not updated.
func (c *Curve) ValueAt(t float64) float64 {
	if c == nil {
		return 0
	}
	return c.evaluate(t, 0)
}

// evaluate runs the modifier stack around the point lookup. v is the value
// used when the curve has no points.
func (c *Curve) evaluate(t, v float64) float64 {
	stack := newModifierStack(c.Modifiers)
	lookup := stack.evalTime(c, t)

	switch d := c.data.(type) {
	case Keyframes:
		if len(d) > 0 {
			v = c.evalKeyframes(d, lookup)
		}
	case Samples:
		if len(d) > 0 {
			v = evalSamples(d, lookup)
		}
	}

	v = stack.evalValue(v, lookup)

	if c.Flags&FlagIntegerValues != 0 {
		v = math.Trunc(v)
	}
	return v
}
