package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/fcurve"
)

// curveFlags are the flags shared by commands that build a curve.
type curveFlags struct {
	keys          []string
	interp        string
	extrapolation string
	cycles        bool
	stepped       float64
	integer       bool
}

func (f *curveFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVarP(&f.keys, "key", "k", nil, "key as time:value (repeatable)")
	fl.StringVar(&f.interp, "interp", "bezier", "interpolation: bezier, linear or constant")
	fl.StringVar(&f.extrapolation, "extrapolation", "constant", "extrapolation: constant or linear")
	fl.BoolVar(&f.cycles, "cycles", false, "repeat the keyed range forever")
	fl.Float64Var(&f.stepped, "stepped", 0, "hold values for steps of this many frames")
	fl.BoolVar(&f.integer, "integer", false, "truncate values to integers")
	_ = cmd.MarkFlagRequired("key")
}

func (f *curveFlags) build() (*fcurve.Curve, error) {
	ipo, err := parseInterpolation(f.interp)
	if err != nil {
		return nil, err
	}

	opts := []fcurve.CurveOption{}
	switch f.extrapolation {
	case "constant":
	case "linear":
		opts = append(opts, fcurve.WithExtrapolation(fcurve.ExtrapolateLinear))
	default:
		return nil, fmt.Errorf("unknown extrapolation %q", f.extrapolation)
	}
	if f.integer {
		opts = append(opts, fcurve.WithFlags(fcurve.FlagAutoHandles|fcurve.FlagIntegerValues))
	}
	if f.cycles {
		opts = append(opts, fcurve.WithModifiers(&fcurve.Cycles{}))
	}
	if f.stepped > 0 {
		opts = append(opts, fcurve.WithModifiers(&fcurve.Stepped{Step: f.stepped}))
	}

	c := fcurve.New(opts...)
	for _, s := range f.keys {
		t, v, err := parseKey(s)
		if err != nil {
			return nil, err
		}
		fcurve.InsertOrReplace(c, t, v)
	}

	keys := c.Keys()
	for i := range keys {
		keys[i].Interpolation = ipo
	}
	fcurve.RecalcHandles(c)
	return c, nil
}

func parseKey(s string) (t, v float64, err error) {
	ts, vs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("key %q: want time:value", s)
	}
	if t, err = strconv.ParseFloat(ts, 64); err != nil {
		return 0, 0, fmt.Errorf("key %q: bad time: %w", s, err)
	}
	if v, err = strconv.ParseFloat(vs, 64); err != nil {
		return 0, 0, fmt.Errorf("key %q: bad value: %w", s, err)
	}
	return t, v, nil
}

func parseInterpolation(s string) (fcurve.Interpolation, error) {
	for _, ipo := range []fcurve.Interpolation{
		fcurve.InterpolationBezier,
		fcurve.InterpolationLinear,
		fcurve.InterpolationConstant,
	} {
		if ipo.String() == s {
			return ipo, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation %q", s)
}
