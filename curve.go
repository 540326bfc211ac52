package fcurve

// Extrapolation selects how a curve behaves outside its keyed range.
type Extrapolation uint8

const (
	// ExtrapolateConstant holds the value of the nearest boundary key.
	ExtrapolateConstant Extrapolation = iota

	// ExtrapolateLinear extends the boundary tangent.
	ExtrapolateLinear
)

// String returns the extrapolation name.
func (e Extrapolation) String() string {
	if e == ExtrapolateLinear {
		return "linear"
	}
	return "constant"
}

// Flags are per-curve behaviour switches.
type Flags uint8

const (
	// FlagDiscreteValues makes every segment and both extrapolation ranges
	// hold the previous key value.
	FlagDiscreteValues Flags = 1 << iota

	// FlagAutoHandles recalculates handles after every structural edit
	// made through this package.
	FlagAutoHandles

	// FlagIntegerValues truncates evaluated values toward zero.
	FlagIntegerValues
)

// Storage is the point data of a curve: either [Keyframes] or [Samples].
// The set of implementations is closed.
type Storage interface {
	isStorage()
}

// Keyframes is sparse control point storage.
type Keyframes []Keyframe

// Samples is dense, unit-spaced sample storage.
type Samples []Sample

func (Keyframes) isStorage() {}
func (Samples) isStorage()   {}

// Curve is an animation curve: keyframes or samples, an optional driver
// and a stack of modifiers, evaluated to one scalar per query time.
//
// A Curve is not safe for concurrent use. Callers serialize edits against
// evaluation.
type Curve struct {
	// Path is the property path of the animated property.
	Path string

	// ArrayIndex selects the element of an array-valued property.
	ArrayIndex int

	// Group is the name of the sub-object the curve belongs to, used to
	// scope evaluation passes (see [WithScope]).
	Group string

	Extrapolation Extrapolation
	Flags         Flags

	// Driver, when set, supplies the evaluation time.
	Driver *Driver

	// Modifiers are applied in order.
	Modifiers []Modifier

	data      Storage
	lastValue float64
}

// New creates an empty curve.
func New(opts ...CurveOption) *Curve {
	o := defaultCurveOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Curve{
		Path:          o.path,
		ArrayIndex:    o.arrayIndex,
		Group:         o.group,
		Extrapolation: o.extrapolation,
		Flags:         o.flags,
		Driver:        o.driver,
		Modifiers:     o.modifiers,
	}
}

// Data returns the curve's storage, or nil if it has no points.
func (c *Curve) Data() Storage {
	if c == nil {
		return nil
	}
	return c.data
}

// Keys returns the keyframes of the curve. The slice aliases the curve's
// storage: edits through it are visible to the curve, but callers that move
// keys in time must call [Resort] afterwards.
// It returns nil for sample-backed curves.
func (c *Curve) Keys() []Keyframe {
	if c == nil {
		return nil
	}
	keys, _ := c.data.(Keyframes)
	return keys
}

// Samples returns the samples of the curve, or nil if it is keyframe-backed.
func (c *Curve) Samples() []Sample {
	if c == nil {
		return nil
	}
	samples, _ := c.data.(Samples)
	return samples
}

// SetKeys replaces the curve's points with a copy of keys.
func (c *Curve) SetKeys(keys []Keyframe) {
	if len(keys) == 0 {
		c.data = nil
		return
	}
	c.data = Keyframes(append([]Keyframe(nil), keys...))
}

// SetSamples replaces the curve's points with a copy of samples.
// Samples must be sorted and exactly one time unit apart.
func (c *Curve) SetSamples(samples []Sample) {
	if len(samples) == 0 {
		c.data = nil
		return
	}
	c.data = Samples(append([]Sample(nil), samples...))
}

// Len returns the number of keyframes or samples.
func (c *Curve) Len() int {
	if c == nil {
		return 0
	}
	switch d := c.data.(type) {
	case Keyframes:
		return len(d)
	case Samples:
		return len(d)
	default:
		return 0
	}
}

// LastValue returns the value cached by the last [Evaluator.Evaluate] call.
func (c *Curve) LastValue() float64 {
	if c == nil {
		return 0
	}
	return c.lastValue
}

// IsEmpty reports whether evaluating the curve can produce anything: it has
// no points, no driver and no active generator modifier.
func (c *Curve) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Len() == 0 && c.Driver == nil && !hasGenerator(c.Modifiers)
}

// HasSelectedKeys reports whether any keyframe center is selected.
func (c *Curve) HasSelectedKeys() bool {
	for _, k := range c.Keys() {
		if k.Selected&SelectKey != 0 {
			return true
		}
	}
	return false
}

// SelectAll selects every part of every keyframe.
func (c *Curve) SelectAll() {
	keys := c.Keys()
	for i := range keys {
		keys[i].Selected = SelectAll
	}
}

// DeselectAll clears the selection of every keyframe.
func (c *Curve) DeselectAll() {
	keys := c.Keys()
	for i := range keys {
		keys[i].Selected = SelectNone
	}
}
