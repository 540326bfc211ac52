package fcurve

import (
	"math"

	"github.com/gogpu/fcurve/internal/parallel"
)

// evalSamples looks up t in a non-empty, unit-spaced sample buffer.
// Times outside the buffer clamp to the boundary samples. Inside, the
// sample at floor(t - first) is returned without interpolation.
func evalSamples(samples []Sample, t float64) float64 {
	first := &samples[0]
	last := &samples[len(samples)-1]

	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	i := int(math.Floor(t - first.Time))
	i = max(0, min(i, len(samples)-1))
	return samples[i].Value
}

// BakeSamples replaces the keyframes of c with one sample per whole frame
// in [start, end], evaluated through the curve's keys and modifiers (the
// driver is not consulted). It does nothing for nil curves, empty curves or
// an inverted range.
func BakeSamples(c *Curve, start, end int) {
	if c.IsEmpty() || start > end {
		return
	}

	samples := make([]Sample, 0, end-start+1)
	for frame := start; frame <= end; frame++ {
		t := float64(frame)
		samples = append(samples, Sample{Time: t, Value: c.ValueAt(t)})
	}
	c.data = Samples(samples)
}

// BakeAll bakes every curve of set as [BakeSamples] does, spreading the
// curves over workers goroutines (GOMAXPROCS if workers <= 0). The curves
// must be distinct; modifiers may be shared between them.
func BakeAll(set []*Curve, start, end, workers int) {
	if len(set) == 0 || start > end {
		return
	}
	pool := parallel.NewPool(min(workers, len(set)))
	defer pool.Close()

	pool.Run(len(set), func(i int) {
		BakeSamples(set[i], start, end)
	})
}

// SamplesToKeyframes replaces the samples of c with one linear keyframe
// per sample. Keyframe-backed curves are left unchanged.
func SamplesToKeyframes(c *Curve) {
	samples := c.Samples()
	if len(samples) == 0 {
		return
	}

	keys := make([]Keyframe, len(samples))
	for i, s := range samples {
		k := NewKeyframe(s.Time, s.Value)
		k.Interpolation = InterpolationLinear
		k.Selected = SelectNone
		keys[i] = k
	}
	c.data = Keyframes(keys)
	c.structureChanged()
}
