// Package fcurve evaluates animation curves.
//
// # Overview
//
// A [Curve] maps a query time to a scalar value. Its points are either
// sparse keyframes, each with a center and two Bezier handles, or a dense
// buffer of unit-spaced samples. A curve may carry a [Driver], which
// computes the query time from properties of external objects, and a stack
// of [Modifier] values that rewrite the lookup time and the resulting value.
//
// # Quick Start
//
//	c := fcurve.New(fcurve.WithPath("location", 0))
//	fcurve.InsertOrReplace(c, 1, 0)
//	fcurve.InsertOrReplace(c, 24, 10)
//
//	ev := fcurve.NewEvaluator()
//	v := ev.Evaluate(c, 12.5)
//
// # Editing
//
// [InsertOrReplace] keeps keys sorted and recalculates auto handles. Code
// that moves keys directly through [Curve.Keys] calls [Resort] (when
// [NeedsResort] reports true) and [RecalcHandles] afterwards.
//
// # Evaluation
//
// Bezier segments are evaluated by solving the time component of the
// segment for its curve parameter in closed form. Outside the keyed range
// the curve holds its boundary value or continues along the boundary
// tangent, depending on its [Extrapolation].
//
// Drivers that fail to resolve a target become invalid and evaluate to 0
// until [ResetDriverValidity] is called. Failures never abort evaluation;
// they are reported through [Driver.Err] and the package [Logger].
//
// # Coordinate System
//
// Curve positions are [Vec2] values with X as the time (frame) and Y as
// the value.
//
// # Concurrency
//
// Evaluation is synchronous and performs no locking. Callers serialize
// edits and evaluations of the same curve.
package fcurve
