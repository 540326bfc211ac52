package fcurve

// HandleType controls how one handle of a keyframe is computed.
type HandleType uint8

const (
	// HandleFree handles are never recomputed.
	HandleFree HandleType = iota

	// HandleVector handles point one third of the way toward the
	// neighbouring key.
	HandleVector

	// HandleAligned handles stay collinear with the opposite handle while
	// keeping their own length.
	HandleAligned

	// HandleAuto handles are computed from the neighbouring keys.
	HandleAuto

	// HandleAutoClamped handles are computed like HandleAuto but are
	// flattened at local extrema and never overshoot the neighbours.
	HandleAutoClamped
)

// String returns the handle type name.
func (h HandleType) String() string {
	switch h {
	case HandleFree:
		return "free"
	case HandleVector:
		return "vector"
	case HandleAligned:
		return "aligned"
	case HandleAuto:
		return "auto"
	case HandleAutoClamped:
		return "auto-clamped"
	default:
		return "unknown"
	}
}

// isAuto reports whether the handle is recomputed from neighbours.
func (h HandleType) isAuto() bool {
	return h == HandleAuto || h == HandleAutoClamped
}

// Interpolation selects how the segment starting at a keyframe is evaluated.
type Interpolation uint8

const (
	// InterpolationBezier evaluates the segment as a cubic Bezier curve.
	// It is the zero value.
	InterpolationBezier Interpolation = iota

	// InterpolationLinear interpolates the two key values linearly.
	InterpolationLinear

	// InterpolationConstant holds the value of the first key.
	InterpolationConstant
)

// String returns the interpolation name.
func (i Interpolation) String() string {
	switch i {
	case InterpolationBezier:
		return "bezier"
	case InterpolationLinear:
		return "linear"
	case InterpolationConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// Selection is a bit set of the selected parts of a keyframe.
type Selection uint8

const (
	SelectLeft Selection = 1 << iota
	SelectKey
	SelectRight

	SelectNone Selection = 0
	SelectAll            = SelectLeft | SelectKey | SelectRight
)

// Keyframe is a control point of a curve: a center with one tangent
// handle on either side.
//
// The handles must satisfy Left.X <= Center.X <= Right.X. Every mutating
// function of this package restores that ordering.
type Keyframe struct {
	Left   Vec2
	Center Vec2
	Right  Vec2

	LeftType  HandleType
	RightType HandleType

	Selected Selection

	// Interpolation applies to the segment between this key and the next.
	Interpolation Interpolation

	// clampLocked marks keys whose auto-clamped handles were flattened
	// during the last handle recalculation.
	clampLocked bool
}

// NewKeyframe returns a selected Bezier keyframe at (time, value) with
// auto-clamped handles one frame to either side.
func NewKeyframe(time, value float64) Keyframe {
	return Keyframe{
		Left:      Vec2{X: time - 1, Y: value},
		Center:    Vec2{X: time, Y: value},
		Right:     Vec2{X: time + 1, Y: value},
		LeftType:  HandleAutoClamped,
		RightType: HandleAutoClamped,
		Selected:  SelectAll,
	}
}

// Time returns the key's time.
func (k *Keyframe) Time() float64 {
	return k.Center.X
}

// Value returns the key's value.
func (k *Keyframe) Value() float64 {
	return k.Center.Y
}

// IsSelected reports whether any part of the key is selected.
func (k *Keyframe) IsSelected() bool {
	return k.Selected != SelectNone
}

// bothAuto reports whether both handles are auto-computed.
func (k *Keyframe) bothAuto() bool {
	return k.LeftType.isAuto() && k.RightType.isAuto()
}

// MoveTimeWithHandles moves the key to a new time, shifting both handles
// by the same amount.
func (k *Keyframe) MoveTimeWithHandles(time float64) {
	delta := time - k.Center.X
	k.Left.X += delta
	k.Center.X = time
	k.Right.X += delta
}

// MoveValueWithHandles moves the key to a new value, shifting both handles
// by the same amount.
func (k *Keyframe) MoveValueWithHandles(value float64) {
	delta := value - k.Center.Y
	k.Left.Y += delta
	k.Center.Y = value
	k.Right.Y += delta
}

// clampHandles restores Left.X <= Center.X <= Right.X.
func (k *Keyframe) clampHandles() {
	if k.Left.X > k.Center.X {
		k.Left.X = k.Center.X
	}
	if k.Right.X < k.Center.X {
		k.Right.X = k.Center.X
	}
}

// Sample is one entry of a dense sample buffer.
// Consecutive samples are exactly one time unit apart.
type Sample struct {
	Time  float64
	Value float64
}
