package fcurve

import "math"

// Modifier is an entry of a curve's modifier stack. It is implemented by
// [*Generator], [*FnGenerator], [*Cycles], [*Stepped] and [*Limits]; the
// set is closed.
//
// During evaluation every modifier may first rewrite the lookup time (time
// pass, in stack order) and then the looked-up value (value pass, in stack
// order).
type Modifier interface {
	base() *ModifierBase
}

// ModifierBase holds the settings shared by all modifiers.
type ModifierBase struct {
	// Muted modifiers are skipped.
	Muted bool

	// UseInfluence blends the modifier result with its input by Influence.
	UseInfluence bool
	Influence    float64

	// Restrict limits the modifier to the frame range [Start, End], fading
	// in over BlendIn and out over BlendOut frames.
	Restrict bool
	Start    float64
	End      float64
	BlendIn  float64
	BlendOut float64
}

func (b *ModifierBase) base() *ModifierBase { return b }

// inRange reports whether the modifier applies at time t.
func (b *ModifierBase) inRange(t float64) bool {
	return !b.Restrict || (b.Start <= t && t <= b.End)
}

// influence returns the blend factor at time t.
func (b *ModifierBase) influence(t float64) float64 {
	inf := 1.0
	if b.UseInfluence {
		inf = b.Influence
	}
	if !b.Restrict {
		return inf
	}

	switch {
	case t <= b.Start || t >= b.End:
		return 0
	case b.BlendIn > 0 && t < b.Start+b.BlendIn:
		return inf * (t - b.Start) / b.BlendIn
	case b.BlendOut > 0 && t > b.End-b.BlendOut:
		return inf * (b.End - t) / b.BlendOut
	}
	return inf
}

// Generator replaces (or adds to) the curve value with the polynomial
// sum(Coefficients[i] * t^i).
type Generator struct {
	ModifierBase

	Coefficients []float64
	Additive     bool
}

// NewGenerator returns a polynomial generator with the given coefficients,
// lowest order first.
func NewGenerator(coefficients ...float64) *Generator {
	return &Generator{Coefficients: coefficients}
}

// GeneratorFunc is the function evaluated by an [FnGenerator].
type GeneratorFunc uint8

const (
	FuncSin GeneratorFunc = iota
	FuncCos
	FuncTan
	FuncSqrt
	FuncLn
	FuncSinc
)

// String returns the function name.
func (f GeneratorFunc) String() string {
	switch f {
	case FuncSin:
		return "sin"
	case FuncCos:
		return "cos"
	case FuncTan:
		return "tan"
	case FuncSqrt:
		return "sqrt"
	case FuncLn:
		return "ln"
	case FuncSinc:
		return "sinc"
	default:
		return "unknown"
	}
}

// FnGenerator replaces (or adds to) the curve value with
// Amplitude*Func(PhaseMultiplier*t + PhaseOffset) + ValueOffset.
// Outside the domain of Func (negative square roots, non-positive
// logarithms) the value is left unchanged.
type FnGenerator struct {
	ModifierBase

	Func            GeneratorFunc
	Amplitude       float64
	PhaseMultiplier float64
	PhaseOffset     float64
	ValueOffset     float64
	Additive        bool
}

// NewFnGenerator returns a generator for fn with unit amplitude and phase
// multiplier.
func NewFnGenerator(fn GeneratorFunc) *FnGenerator {
	return &FnGenerator{Func: fn, Amplitude: 1, PhaseMultiplier: 1}
}

// CycleMode selects how a [Cycles] modifier repeats the keyed range on one
// side.
type CycleMode uint8

const (
	// CycleRepeat repeats the keyed range unchanged.
	CycleRepeat CycleMode = iota

	// CycleRepeatOffset repeats the keyed range, shifting each repetition
	// by the value difference between the last and first key.
	CycleRepeatOffset

	// CycleMirror plays every other repetition backwards.
	CycleMirror

	// CycleOff leaves the side to the curve's extrapolation.
	CycleOff
)

// Cycles repeats the keyed range of the curve before its first and after
// its last key. A zero count repeats forever.
type Cycles struct {
	ModifierBase

	Before      CycleMode
	After       CycleMode
	BeforeCount int
	AfterCount  int
}

// Stepped snaps the lookup time down to multiples of Step (shifted by
// Offset), turning the curve into a staircase. With UseStart or UseEnd
// times before StartFrame or after EndFrame are not snapped.
type Stepped struct {
	ModifierBase

	Step   float64
	Offset float64

	UseStart   bool
	StartFrame float64
	UseEnd     bool
	EndFrame   float64
}

// LimitFlags selects the bounds enforced by a [Limits] modifier.
type LimitFlags uint8

const (
	LimitMinTime LimitFlags = 1 << iota
	LimitMaxTime
	LimitMinValue
	LimitMaxValue
)

// Limits clamps the lookup time to [Min.X, Max.X] and the value to
// [Min.Y, Max.Y], for the bounds enabled in Flags.
type Limits struct {
	ModifierBase

	Min, Max Vec2
	Flags    LimitFlags
}

// hasGenerator reports whether mods contains an unmuted modifier that can
// produce values without keys.
func hasGenerator(mods []Modifier) bool {
	for _, m := range mods {
		switch m := m.(type) {
		case *Generator:
			if !m.Muted {
				return true
			}
		case *FnGenerator:
			if !m.Muted {
				return true
			}
		}
	}
	return false
}

// blocksDriverValue reports whether a range-restricted modifier excludes
// time t, in which case a driver value must not stand in for missing keys.
func blocksDriverValue(mods []Modifier, t float64) bool {
	for _, m := range mods {
		if !m.base().inRange(t) {
			return true
		}
	}
	return false
}

// IsCyclic reports whether the curve repeats forever in both directions:
// its first modifier is an unmuted, unrestricted Cycles modifier with full
// influence and infinite repeat (or repeat with offset) on both sides.
func (c *Curve) IsCyclic() bool {
	if c == nil || len(c.Modifiers) == 0 {
		return false
	}
	cyc, ok := c.Modifiers[0].(*Cycles)
	if !ok || cyc.Muted || cyc.Restrict || cyc.UseInfluence {
		return false
	}
	if cyc.BeforeCount != 0 || cyc.AfterCount != 0 {
		return false
	}
	repeats := func(m CycleMode) bool {
		return m == CycleRepeat || m == CycleRepeatOffset
	}
	return repeats(cyc.Before) && repeats(cyc.After)
}

// modifierStack evaluates a modifier list for one query. It holds the
// per-evaluation state that time modifiers hand to the value pass, so the
// modifiers themselves are never written to.
type modifierStack struct {
	mods []Modifier

	// valueOffsets[i] is added to the value by modifier i.
	valueOffsets []float64
}

func newModifierStack(mods []Modifier) modifierStack {
	s := modifierStack{mods: mods}
	if len(mods) > 0 {
		s.valueOffsets = make([]float64, len(mods))
	}
	return s
}

// evalTime runs the time pass and returns the lookup time.
func (s *modifierStack) evalTime(c *Curve, t float64) float64 {
	for i, m := range s.mods {
		b := m.base()
		if b.Muted || !b.inRange(t) {
			continue
		}

		var nt float64
		switch m := m.(type) {
		case *Cycles:
			nt, s.valueOffsets[i] = m.evalTime(c, t)
		case *Stepped:
			nt = m.evalTime(t)
		case *Limits:
			nt = m.evalTime(t)
		case *Generator, *FnGenerator:
			continue
		default:
			continue
		}

		inf := b.influence(t)
		t = nt*inf + t*(1-inf)
	}
	return t
}

// evalValue runs the value pass on v looked up at time t.
func (s *modifierStack) evalValue(v, t float64) float64 {
	for i, m := range s.mods {
		b := m.base()
		if b.Muted || !b.inRange(t) {
			continue
		}

		var nv float64
		switch m := m.(type) {
		case *Generator:
			nv = m.evalValue(v, t)
		case *FnGenerator:
			nv = m.evalValue(v, t)
		case *Cycles:
			nv = v + s.valueOffsets[i]
		case *Limits:
			nv = m.evalValue(v)
		case *Stepped:
			continue
		default:
			continue
		}

		inf := b.influence(t)
		v = nv*inf + v*(1-inf)
	}
	return v
}

func (g *Generator) evalValue(v, t float64) float64 {
	var sum, pow float64 = 0, 1
	for _, coeff := range g.Coefficients {
		sum += coeff * pow
		pow *= t
	}
	if g.Additive {
		return v + sum
	}
	return sum
}

func (g *FnGenerator) evalValue(v, t float64) float64 {
	arg := g.PhaseMultiplier*t + g.PhaseOffset

	var fn float64
	switch g.Func {
	case FuncSin:
		fn = math.Sin(arg)
	case FuncCos:
		fn = math.Cos(arg)
	case FuncTan:
		fn = math.Tan(arg)
	case FuncSqrt:
		if arg < 0 {
			return v
		}
		fn = math.Sqrt(arg)
	case FuncLn:
		if arg <= 0 {
			return v
		}
		fn = math.Log(arg)
	case FuncSinc:
		if arg == 0 {
			fn = 1
		} else {
			fn = math.Sin(arg) / arg
		}
	default:
		return v
	}

	out := g.Amplitude*fn + g.ValueOffset
	if g.Additive {
		return v + out
	}
	return out
}

// evalTime maps t into the keyed range of c. The second result is the value
// offset of the repetition t falls into.
func (m *Cycles) evalTime(c *Curve, t float64) (float64, float64) {
	first, last, ok := c.endpoints()
	if !ok {
		return t, 0
	}

	var (
		side   float64
		mode   CycleMode
		count  int
		anchor float64
	)
	switch {
	case t < first.X:
		side, mode, count, anchor = -1, m.Before, m.BeforeCount, first.X
	case t > last.X:
		side, mode, count, anchor = 1, m.After, m.AfterCount, last.X
	default:
		return t, 0
	}
	if mode == CycleOff {
		return t, 0
	}

	span := last.X - first.X
	rise := last.Y - first.Y
	if span == 0 {
		return t, 0
	}

	cycle := side * (t - anchor) / span
	phase := math.Mod(t-anchor, span)
	if count != 0 && cycle > float64(count) {
		return t, 0
	}

	var offset float64
	if mode == CycleRepeatOffset {
		if side < 0 {
			offset = math.Floor((t - anchor) / span)
		} else {
			offset = math.Ceil((t - anchor) / span)
		}
		offset *= rise
	}

	switch {
	case phase == 0:
		// Exactly on a repetition boundary.
		t = first.X
		if side > 0 {
			t = last.X
		}
		if mode == CycleMirror && int(cycle)%2 != 0 {
			if side > 0 {
				t = first.X
			} else {
				t = last.X
			}
		}
	case mode == CycleMirror && int(cycle+1)%2 != 0:
		if side < 0 {
			t = first.X - phase
		} else {
			t = last.X - phase
		}
	default:
		t = first.X + phase
	}
	if t < first.X {
		t += span
	}
	return t, offset
}

func (m *Stepped) evalTime(t float64) float64 {
	if m.Step == 0 {
		return t
	}
	if m.UseStart && t < m.StartFrame {
		return t
	}
	if m.UseEnd && t > m.EndFrame {
		return t
	}
	block := math.Trunc((t - m.Offset) / m.Step)
	return block*m.Step + m.Offset
}

func (m *Limits) evalTime(t float64) float64 {
	if m.Flags&LimitMinTime != 0 && t < m.Min.X {
		return m.Min.X
	}
	if m.Flags&LimitMaxTime != 0 && t > m.Max.X {
		return m.Max.X
	}
	return t
}

func (m *Limits) evalValue(v float64) float64 {
	if m.Flags&LimitMinValue != 0 && v < m.Min.Y {
		return m.Min.Y
	}
	if m.Flags&LimitMaxValue != 0 && v > m.Max.Y {
		return m.Max.Y
	}
	return v
}

// endpoints returns the first and last point of the curve.
func (c *Curve) endpoints() (first, last Vec2, ok bool) {
	switch d := c.data.(type) {
	case Keyframes:
		if len(d) > 0 {
			return d[0].Center, d[len(d)-1].Center, true
		}
	case Samples:
		if len(d) > 0 {
			return Vec2{d[0].Time, d[0].Value}, Vec2{d[len(d)-1].Time, d[len(d)-1].Value}, true
		}
	}
	return Vec2{}, Vec2{}, false
}
