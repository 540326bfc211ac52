package expr

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/gogpu/fcurve"
)

const (
	defaultCacheTTL     = 10 * time.Minute
	defaultCacheCleanup = time.Minute
)

// Option configures an Evaluator.
type Option func(*options)

type options struct {
	ttl     time.Duration
	cleanup time.Duration
}

// WithCacheTTL sets how long an unused compiled expression stays cached.
// A negative duration keeps programs until the Evaluator is dropped.
func WithCacheTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

// Evaluator compiles and runs driver expressions. It is safe for
// concurrent use.
type Evaluator struct {
	programs *cache.Cache
}

// New creates an Evaluator with an empty program cache.
func New(opts ...Option) *Evaluator {
	o := options{ttl: defaultCacheTTL, cleanup: defaultCacheCleanup}
	for _, opt := range opts {
		opt(&o)
	}

	ttl := o.ttl
	if ttl < 0 {
		ttl = cache.NoExpiration
	}
	return &Evaluator{programs: cache.New(ttl, o.cleanup)}
}

// EvaluateExpression evaluates text with vars bound by name.
//
// Compilation errors wrap one of the package's sentinel errors. A
// non-finite result is logged and evaluates to 0.
func (e *Evaluator) EvaluateExpression(text string, vars map[string]float64) (v float64, err error) {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	slices.Sort(names)

	p := e.program(text, names)
	if p.err != nil {
		return 0, p.err
	}

	defer func() {
		if r := recover(); r != nil {
			v, err = 0, fmt.Errorf("%w: %q: %v", ErrRuntime, text, r)
		}
	}()

	v = p.fn(vars)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		fcurve.Logger().Warn("expr: non-finite result",
			slog.String("expression", text),
			slog.Float64("value", v))
		return 0, nil
	}
	return v, nil
}

// Len returns the number of cached programs.
func (e *Evaluator) Len() int {
	return e.programs.ItemCount()
}

// Reset drops every cached program.
func (e *Evaluator) Reset() {
	e.programs.Flush()
}

func (e *Evaluator) program(text string, names []string) *program {
	key := text + "\x00" + strings.Join(names, ",")
	if p, ok := e.programs.Get(key); ok {
		return p.(*program)
	}

	p := compile(text, names)
	if p.err != nil {
		fcurve.Logger().Debug("expr: compile failed",
			slog.String("expression", text),
			slog.Any("error", p.err))
	}
	e.programs.SetDefault(key, p)
	return p
}
