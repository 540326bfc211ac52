// Package plot rasterizes animation curves into images.
package plot

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/fcurve"
)

var (
	// ErrEmptyCurve is returned for curves that evaluate to nothing.
	ErrEmptyCurve = errors.New("plot: curve is empty")

	// ErrInvalidSize is returned for non-positive image sizes and empty
	// time ranges.
	ErrInvalidSize = errors.New("plot: invalid size")
)

const (
	margin       = 8
	markerRadius = 3
	fallbackSpan = 100
)

// Render draws c over its keyed range (or the range set with
// [WithTimeRange]) and returns the image. The curve is sampled once per
// pixel column through [fcurve.Curve.ValueAt], so the driver is ignored.
func Render(c *fcurve.Curve, opts ...Option) (*image.RGBA, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if c.IsEmpty() {
		return nil, ErrEmptyCurve
	}
	if o.width <= 2*margin || o.height <= 2*margin {
		return nil, ErrInvalidSize
	}

	t0, t1 := o.start, o.end
	if !o.hasRange {
		keyed, ok := fcurve.BoundingRange(c)
		switch {
		case !ok:
			t0, t1 = 0, fallbackSpan
		case keyed.Width() == 0:
			t0, t1 = keyed.Min.X-1, keyed.Max.X+1
		default:
			t0, t1 = keyed.Min.X, keyed.Max.X
		}
	}
	if !(t1 > t0) {
		return nil, ErrInvalidSize
	}

	cols := o.width - 2*margin
	values := make([]float64, cols+1)
	for i := range values {
		t := t0 + (t1-t0)*float64(i)/float64(cols)
		values[i] = c.ValueAt(t)
	}

	v0, v1 := valueRange(c, values, o.handles)
	p := newProjection(o, t0, t1, v0, v1)

	img := image.NewRGBA(image.Rect(0, 0, o.width, o.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)

	if p.v0 <= 0 && 0 <= p.v1 {
		y := p.y(0)
		fill(img, o.axis, func(r *vector.Rasterizer) {
			strokeLine(r, margin, y, float32(o.width-margin), y, 1)
		})
	}

	fill(img, o.line, func(r *vector.Rasterizer) {
		for i := 1; i < len(values); i++ {
			x0 := p.x(t0 + (t1-t0)*float64(i-1)/float64(cols))
			x1 := p.x(t0 + (t1-t0)*float64(i)/float64(cols))
			strokeLine(r, x0, p.y(values[i-1]), x1, p.y(values[i]), o.lineWidth)
		}
	})

	keys := c.Keys()
	if o.handles && len(keys) > 0 {
		fill(img, o.handle, func(r *vector.Rasterizer) {
			for _, k := range keys {
				cx, cy := p.point(k.Center)
				for _, h := range []fcurve.Vec2{k.Left, k.Right} {
					hx, hy := p.point(h)
					strokeLine(r, cx, cy, hx, hy, 1)
					square(r, hx, hy, markerRadius-1)
				}
			}
		})
	}
	if o.keys && len(keys) > 0 {
		fill(img, o.key, func(r *vector.Rasterizer) {
			for _, k := range keys {
				x, y := p.point(k.Center)
				square(r, x, y, markerRadius)
			}
		})
	}

	if o.label != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(o.text),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(margin, margin+basicfont.Face7x13.Ascent),
		}
		d.DrawString(o.label)
	}

	return img, nil
}

// WritePNG renders c and encodes it as PNG to w.
func WritePNG(w io.Writer, c *fcurve.Curve, opts ...Option) error {
	img, err := Render(c, opts...)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// valueRange returns the value extent of the sampled values and the keys,
// padded so the curve does not touch the border.
func valueRange(c *fcurve.Curve, values []float64, handles bool) (lo, hi float64) {
	r := fcurve.Rect{
		Min: fcurve.Vec2{Y: math.Inf(1)},
		Max: fcurve.Vec2{Y: math.Inf(-1)},
	}
	for _, v := range values {
		r.Min.Y, r.Max.Y = math.Min(r.Min.Y, v), math.Max(r.Max.Y, v)
	}

	var ropts []fcurve.RangeOption
	if handles {
		ropts = append(ropts, fcurve.IncludeHandles())
	}
	if keyed, ok := fcurve.BoundingRange(c, ropts...); ok {
		r = r.Union(keyed)
	}

	if r.Height() < 1e-9 {
		return r.Min.Y - 1, r.Max.Y + 1
	}
	pad := r.Height() * 0.05
	return r.Min.Y - pad, r.Max.Y + pad
}

type projection struct {
	t0, t1 float64
	v0, v1 float64
	w, h   float64
}

func newProjection(o options, t0, t1, v0, v1 float64) projection {
	return projection{
		t0: t0, t1: t1,
		v0: v0, v1: v1,
		w: float64(o.width - 2*margin),
		h: float64(o.height - 2*margin),
	}
}

func (p projection) x(t float64) float32 {
	return float32(margin + (t-p.t0)/(p.t1-p.t0)*p.w)
}

func (p projection) y(v float64) float32 {
	return float32(margin + p.h - (v-p.v0)/(p.v1-p.v0)*p.h)
}

func (p projection) point(v fcurve.Vec2) (x, y float32) {
	return p.x(v.X), p.y(v.Y)
}

// fill rasterizes the paths added by build and composites them onto img in
// color c.
func fill(img *image.RGBA, c color.Color, build func(r *vector.Rasterizer)) {
	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	build(r)
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

// strokeLine adds a quad of the given width centered on the segment. All
// quads wind the same way, so overlapping joins accumulate instead of
// cancelling.
func strokeLine(r *vector.Rasterizer, x0, y0, x1, y1, width float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		square(r, x0, y0, width/2)
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	r.MoveTo(x0+nx, y0+ny)
	r.LineTo(x1+nx, y1+ny)
	r.LineTo(x1-nx, y1-ny)
	r.LineTo(x0-nx, y0-ny)
	r.ClosePath()
}

func square(r *vector.Rasterizer, x, y, half float32) {
	r.MoveTo(x-half, y-half)
	r.LineTo(x+half, y-half)
	r.LineTo(x+half, y+half)
	r.LineTo(x-half, y+half)
	r.ClosePath()
}
