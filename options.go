package fcurve

// CurveOption configures a Curve during creation.
//
// Example:
//
//	c := fcurve.New(
//	    fcurve.WithPath("location"),
//	    fcurve.WithExtrapolation(fcurve.ExtrapolateLinear),
//	    fcurve.WithFlags(fcurve.FlagAutoHandles),
//	)
type CurveOption func(*curveOptions)

// curveOptions holds optional configuration for Curve creation.
type curveOptions struct {
	path          string
	arrayIndex    int
	group         string
	extrapolation Extrapolation
	flags         Flags
	driver        *Driver
	modifiers     []Modifier
}

// defaultCurveOptions returns the default curve options.
func defaultCurveOptions() curveOptions {
	return curveOptions{
		extrapolation: ExtrapolateConstant,
		flags:         FlagAutoHandles,
	}
}

// WithPath sets the animated property path and array index.
func WithPath(path string, arrayIndex ...int) CurveOption {
	return func(o *curveOptions) {
		o.path = path
		if len(arrayIndex) > 0 {
			o.arrayIndex = arrayIndex[0]
		}
	}
}

// WithGroup sets the name of the sub-object the curve belongs to.
func WithGroup(name string) CurveOption {
	return func(o *curveOptions) {
		o.group = name
	}
}

// WithExtrapolation sets the extrapolation mode. The default is
// [ExtrapolateConstant].
func WithExtrapolation(e Extrapolation) CurveOption {
	return func(o *curveOptions) {
		o.extrapolation = e
	}
}

// WithFlags replaces the curve flags. The default is [FlagAutoHandles].
func WithFlags(f Flags) CurveOption {
	return func(o *curveOptions) {
		o.flags = f
	}
}

// WithDriver attaches a driver to the curve.
func WithDriver(d *Driver) CurveOption {
	return func(o *curveOptions) {
		o.driver = d
	}
}

// WithModifiers appends modifiers to the curve's stack.
func WithModifiers(mods ...Modifier) CurveOption {
	return func(o *curveOptions) {
		o.modifiers = append(o.modifiers, mods...)
	}
}

// EvaluatorOption configures an Evaluator during creation.
//
// Example:
//
//	ev := fcurve.NewEvaluator(
//	    fcurve.WithTargetResolver(scene),
//	    fcurve.WithExpressionEvaluator(expr.New()),
//	)
type EvaluatorOption func(*evaluatorOptions)

// evaluatorOptions holds the collaborators used by drivers.
type evaluatorOptions struct {
	targets      TargetResolver
	orientations OrientationResolver
	expressions  ExpressionEvaluator
}

// WithTargetResolver sets the collaborator that resolves driver targets.
func WithTargetResolver(r TargetResolver) EvaluatorOption {
	return func(o *evaluatorOptions) {
		o.targets = r
	}
}

// WithOrientationResolver sets the collaborator used by rotational
// difference drivers.
func WithOrientationResolver(r OrientationResolver) EvaluatorOption {
	return func(o *evaluatorOptions) {
		o.orientations = r
	}
}

// WithExpressionEvaluator sets the expression sandbox used by expression
// drivers.
func WithExpressionEvaluator(e ExpressionEvaluator) EvaluatorOption {
	return func(o *evaluatorOptions) {
		o.expressions = e
	}
}
