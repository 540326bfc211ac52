package fcurve

import "math"

// RangeOption configures [BoundingRange] and [KeyedRange].
type RangeOption func(*rangeOptions)

type rangeOptions struct {
	handles      bool
	selectedOnly bool
	frames       bool
	frameMin     float64
	frameMax     float64
}

// IncludeHandles extends the range to cover Bezier handles.
func IncludeHandles() RangeOption {
	return func(o *rangeOptions) {
		o.handles = true
	}
}

// SelectedOnly restricts the range to keys whose center is selected.
func SelectedOnly() RangeOption {
	return func(o *rangeOptions) {
		o.selectedOnly = true
	}
}

// InFrameRange restricts the range to keys with times in [lo, hi].
func InFrameRange(lo, hi float64) RangeOption {
	return func(o *rangeOptions) {
		o.frames = true
		o.frameMin = lo
		o.frameMax = hi
	}
}

func (o *rangeOptions) accepts(k *Keyframe) bool {
	if o.selectedOnly && k.Selected&SelectKey == 0 {
		return false
	}
	if o.frames && (k.Center.X < o.frameMin || k.Center.X > o.frameMax) {
		return false
	}
	return true
}

// BoundingRange returns the time and value extent of the curve's points.
// It reports false if no point qualifies. Sample-backed curves ignore the
// handle and selection options.
func BoundingRange(c *Curve, opts ...RangeOption) (Rect, bool) {
	var o rangeOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := Rect{
		Min: Vec2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	found := false

	switch d := c.Data().(type) {
	case Keyframes:
		for i := range d {
			k := &d[i]
			if !o.accepts(k) {
				continue
			}
			r = r.extend(k.Center)
			if o.handles {
				r = r.extend(k.Left)
				r = r.extend(k.Right)
			}
			found = true
		}
	case Samples:
		for _, s := range d {
			if o.frames && (s.Time < o.frameMin || s.Time > o.frameMax) {
				continue
			}
			r = r.extend(Vec2{X: s.Time, Y: s.Value})
			found = true
		}
	}

	if !found {
		return Rect{}, false
	}
	return r, true
}

// KeyedRange returns the times of the first and last qualifying point.
// It reports false if no point qualifies.
func KeyedRange(c *Curve, opts ...RangeOption) (start, end float64, ok bool) {
	r, ok := BoundingRange(c, opts...)
	if !ok {
		return 0, 0, false
	}
	return r.Min.X, r.Max.X, true
}
