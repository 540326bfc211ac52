// Package expr evaluates driver expressions in a sandboxed Go interpreter.
//
// An expression is a single arithmetic Go expression over the driver's
// variables, numeric literals and a fixed set of math functions:
//
//	sin(angle) * 2 + offset
//	clamp(pow(x, 2), 0, 1)
//
// Integer literals are floating point (1/2 is 0.5). Comparisons, function
// literals, selectors and every other construct are rejected before the
// expression reaches the interpreter, and the interpreter only sees the
// math package.
//
// Compiled programs are cached by expression text and variable names.
//
// The [Evaluator] implements fcurve.ExpressionEvaluator:
//
//	ev := fcurve.NewEvaluator(
//	    fcurve.WithTargetResolver(scene),
//	    fcurve.WithExpressionEvaluator(expr.New()),
//	)
package expr
