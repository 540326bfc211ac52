package fcurve

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cast"
)

// Errors reported by drivers through [Driver.Err].
var (
	// ErrTargetUnresolved is returned when a driver target cannot be
	// resolved or coerced to a number.
	ErrTargetUnresolved = errors.New("fcurve: driver target unresolved")

	// ErrOrientationUnresolved is returned when a rotational difference
	// target has no orientation.
	ErrOrientationUnresolved = errors.New("fcurve: driver orientation unresolved")

	// ErrNoResolver is returned when a driver needs a collaborator the
	// Evaluator was not given.
	ErrNoResolver = errors.New("fcurve: no resolver configured")

	// ErrExpressionFailed is returned when the expression sandbox fails.
	ErrExpressionFailed = errors.New("fcurve: driver expression failed")
)

// DriverType selects how a driver combines its targets.
type DriverType uint8

const (
	// DriverAverage is the mean of the target values.
	DriverAverage DriverType = iota

	// DriverSum is the sum of the target values.
	DriverSum

	// DriverExpression evaluates Expression with each target bound to its
	// name.
	DriverExpression

	// DriverRotationalDifference is the angle between the orientations of
	// the first two targets.
	DriverRotationalDifference

	// DriverLiteral returns the value last set with SetLiteral.
	DriverLiteral
)

// String returns the driver type name.
func (t DriverType) String() string {
	switch t {
	case DriverAverage:
		return "average"
	case DriverSum:
		return "sum"
	case DriverExpression:
		return "expression"
	case DriverRotationalDifference:
		return "rotational-difference"
	case DriverLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// DriverState is the validity of a driver.
type DriverState uint8

const (
	DriverValid DriverState = iota
	DriverInvalid
)

// String returns "valid" or "invalid".
func (s DriverState) String() string {
	if s == DriverInvalid {
		return "invalid"
	}
	return "valid"
}

// ObjectRef names an object owned by the host application.
type ObjectRef string

// Target is a property of an external object read by a driver.
type Target struct {
	// Name is the variable name the target is bound to in expressions.
	Name string

	Object ObjectRef
	Path   string

	// Index selects an element of an array-valued property when Indexed
	// is set.
	Index   int
	Indexed bool
}

// String returns a readable form of the target, such as "Cube.location[2]".
func (t Target) String() string {
	s := string(t.Object) + "." + t.Path
	if t.Indexed {
		s += fmt.Sprintf("[%d]", t.Index)
	}
	return s
}

// TargetResolver reads driver target properties. Resolve returns the raw
// property value: a bool, an integer or float of any width, a numeric
// string, an enum with an integer underlying type, or a slice or array of
// those for indexed targets.
type TargetResolver interface {
	Resolve(t Target) (any, error)
}

// OrientationResolver returns the world orientation of an object, used by
// rotational difference drivers. path selects a sub-object such as a bone
// and may be empty.
type OrientationResolver interface {
	ResolveOrientation(obj ObjectRef, path string) (mgl64.Quat, error)
}

// ExpressionEvaluator evaluates driver expressions with the given variable
// bindings.
type ExpressionEvaluator interface {
	EvaluateExpression(text string, vars map[string]float64) (float64, error)
}

// RotationError reports which targets of a rotational difference driver
// have no orientation. It matches [ErrOrientationUnresolved] with
// errors.Is.
type RotationError struct {
	First  bool
	Second bool

	// Err is the resolver error of the first failing target, if any.
	Err error
}

func (e *RotationError) Error() string {
	var which string
	switch {
	case e.First && e.Second:
		which = "both targets"
	case e.First:
		which = "first target"
	default:
		which = "second target"
	}
	msg := "fcurve: rotational difference: cannot resolve orientation of " + which
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RotationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrOrientationUnresolved}
	}
	return []error{ErrOrientationUnresolved, e.Err}
}

// Driver computes a curve's input from external targets. A driver becomes
// invalid when a target fails to resolve and then evaluates to 0 until
// [ResetDriverValidity] is called.
type Driver struct {
	Type    DriverType
	Targets []Target

	// Expression is used by DriverExpression.
	Expression string

	state     DriverState
	err       error
	literal   float64
	lastValue float64
}

// NewDriver returns a valid driver of the given type.
func NewDriver(typ DriverType, targets ...Target) *Driver {
	return &Driver{Type: typ, Targets: targets}
}

// NewExpressionDriver returns a valid expression driver.
func NewExpressionDriver(expression string, targets ...Target) *Driver {
	return &Driver{Type: DriverExpression, Expression: expression, Targets: targets}
}

// State returns whether the driver is valid.
func (d *Driver) State() DriverState {
	return d.state
}

// Err returns the error that made the driver invalid, or nil.
func (d *Driver) Err() error {
	return d.err
}

// LastValue returns the result of the last successful evaluation.
func (d *Driver) LastValue() float64 {
	return d.lastValue
}

// SetLiteral sets the value returned by a DriverLiteral driver.
func (d *Driver) SetLiteral(v float64) {
	d.literal = v
}

// ResetDriverValidity makes d valid again and clears its error.
func ResetDriverValidity(d *Driver) {
	if d == nil {
		return
	}
	d.state = DriverValid
	d.err = nil
}

func (d *Driver) invalidate(err error) {
	d.state = DriverInvalid
	d.err = err
	Logger().Warn("fcurve: driver invalidated",
		slog.String("type", d.Type.String()),
		slog.Any("error", err))
}

// evalDriver evaluates d. Invalid drivers and drivers that fail during
// this call evaluate to 0.
func (e *Evaluator) evalDriver(d *Driver) float64 {
	if d.state == DriverInvalid {
		return 0
	}

	var (
		v   float64
		err error
	)
	switch d.Type {
	case DriverAverage, DriverSum:
		v, err = e.sumTargets(d.Targets)
		if err == nil && d.Type == DriverAverage && len(d.Targets) > 0 {
			v /= float64(len(d.Targets))
		}
	case DriverExpression:
		if d.Expression == "" {
			return 0
		}
		v, err = e.evalExpression(d)
	case DriverRotationalDifference:
		v, err = e.rotationalDifference(d.Targets)
	case DriverLiteral:
		v = d.literal
	default:
		err = fmt.Errorf("fcurve: unknown driver type %d", d.Type)
	}

	if err != nil {
		d.invalidate(err)
		return 0
	}
	d.lastValue = v
	return v
}

func (e *Evaluator) sumTargets(targets []Target) (float64, error) {
	var sum float64
	for _, t := range targets {
		v, err := e.resolveTarget(t)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (e *Evaluator) evalExpression(d *Driver) (float64, error) {
	if e.expressions == nil {
		return 0, fmt.Errorf("expression driver: %w", ErrNoResolver)
	}

	vars := make(map[string]float64, len(d.Targets))
	for _, t := range d.Targets {
		v, err := e.resolveTarget(t)
		if err != nil {
			return 0, err
		}
		vars[t.Name] = v
	}

	v, err := e.expressions.EvaluateExpression(d.Expression, vars)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrExpressionFailed, d.Expression, err)
	}
	return v, nil
}

// resolveTarget reads t through the target resolver and coerces it to a
// float.
func (e *Evaluator) resolveTarget(t Target) (float64, error) {
	if e.targets == nil {
		return 0, fmt.Errorf("target %s: %w", t, ErrNoResolver)
	}

	raw, err := e.targets.Resolve(t)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrTargetUnresolved, t, err)
	}

	if t.Indexed {
		raw, err = indexValue(raw, t.Index)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrTargetUnresolved, t, err)
		}
	}

	v, err := toFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrTargetUnresolved, t, err)
	}
	return v, nil
}

// indexValue returns element i of a slice or array value.
func indexValue(raw any, i int) (any, error) {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if i < 0 || i >= rv.Len() {
			return nil, fmt.Errorf("index %d out of range [0:%d]", i, rv.Len())
		}
		return rv.Index(i).Interface(), nil
	default:
		return nil, fmt.Errorf("cannot index %T", raw)
	}
}

// toFloat coerces a resolved property value to float64.
func toFloat(raw any) (float64, error) {
	if raw == nil {
		return 0, errors.New("no value")
	}

	// Enums are usually named integer types, which cast does not accept.
	rv := reflect.ValueOf(raw)
	switch {
	case rv.Kind() == reflect.Bool:
		return cast.ToFloat64E(rv.Bool())
	case rv.CanInt():
		return float64(rv.Int()), nil
	case rv.CanUint():
		return float64(rv.Uint()), nil
	}
	return cast.ToFloat64E(raw)
}

// rotationalDifference returns the angle in radians between the
// orientations of the first two targets.
func (e *Evaluator) rotationalDifference(targets []Target) (float64, error) {
	if e.orientations == nil {
		return 0, fmt.Errorf("rotational difference driver: %w", ErrNoResolver)
	}

	var (
		q      [2]mgl64.Quat
		failed [2]bool
		cause  error
	)
	for i := range q {
		if i >= len(targets) {
			failed[i] = true
			continue
		}
		var err error
		q[i], err = e.orientations.ResolveOrientation(targets[i].Object, targets[i].Path)
		if err != nil {
			failed[i] = true
			if cause == nil {
				cause = err
			}
		}
	}
	if failed[0] || failed[1] {
		return 0, &RotationError{First: failed[0], Second: failed[1], Err: cause}
	}

	return rotationAngle(q[0], q[1]), nil
}

// rotationAngle returns the angle of the rotation taking q1 to q2, on the
// shorter arc.
func rotationAngle(q1, q2 mgl64.Quat) float64 {
	diff := q1.Normalize().Inverse().Mul(q2.Normalize())
	angle := 2 * math.Acos(clamp(diff.W, -1, 1))
	if angle > math.Pi {
		angle = 2*math.Pi - angle
	}
	return angle
}
