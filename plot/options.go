package plot

import "image/color"

// Option configures [Render].
type Option func(*options)

type options struct {
	width, height int

	hasRange   bool
	start, end float64

	lineWidth float32
	keys      bool
	handles   bool
	label     string

	background color.Color
	axis       color.Color
	line       color.Color
	key        color.Color
	handle     color.Color
	text       color.Color
}

func defaultOptions() options {
	return options{
		width:      640,
		height:     320,
		lineWidth:  2,
		keys:       true,
		background: color.RGBA{R: 0x1d, G: 0x1d, B: 0x1d, A: 0xff},
		axis:       color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff},
		line:       color.RGBA{R: 0xe0, G: 0x80, B: 0x30, A: 0xff},
		key:        color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		handle:     color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff},
		text:       color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
	}
}

// WithSize sets the image size in pixels. The default is 640x320.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithTimeRange plots [start, end] instead of the keyed range.
func WithTimeRange(start, end float64) Option {
	return func(o *options) {
		o.hasRange = true
		o.start, o.end = start, end
	}
}

// WithLineWidth sets the curve stroke width in pixels.
func WithLineWidth(w float32) Option {
	return func(o *options) {
		o.lineWidth = w
	}
}

// WithKeys toggles key markers. They are drawn by default.
func WithKeys(show bool) Option {
	return func(o *options) {
		o.keys = show
	}
}

// WithHandles toggles Bezier handle drawing.
func WithHandles(show bool) Option {
	return func(o *options) {
		o.handles = show
	}
}

// WithLabel draws text in the top-left corner.
func WithLabel(text string) Option {
	return func(o *options) {
		o.label = text
	}
}

// WithColors sets the background and curve colors.
func WithColors(background, line color.Color) Option {
	return func(o *options) {
		o.background = background
		o.line = line
	}
}
