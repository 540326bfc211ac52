package expr

// prelude is prepended to every compiled expression. It defines the names
// listed in builtinFuncs and builtinConsts.
const prelude = `package main

import "math"

const (
	pi  = math.Pi
	tau = 2 * math.Pi
	e   = math.E
)

func sin(x float64) float64      { return math.Sin(x) }
func cos(x float64) float64      { return math.Cos(x) }
func tan(x float64) float64      { return math.Tan(x) }
func asin(x float64) float64     { return math.Asin(x) }
func acos(x float64) float64     { return math.Acos(x) }
func atan(x float64) float64     { return math.Atan(x) }
func atan2(y, x float64) float64 { return math.Atan2(y, x) }
func sinh(x float64) float64     { return math.Sinh(x) }
func cosh(x float64) float64     { return math.Cosh(x) }
func tanh(x float64) float64     { return math.Tanh(x) }
func sqrt(x float64) float64     { return math.Sqrt(x) }
func pow(x, y float64) float64   { return math.Pow(x, y) }
func exp(x float64) float64      { return math.Exp(x) }
func log(x float64) float64      { return math.Log(x) }
func log2(x float64) float64     { return math.Log2(x) }
func log10(x float64) float64    { return math.Log10(x) }
func hypot(x, y float64) float64 { return math.Hypot(x, y) }
func abs(x float64) float64      { return math.Abs(x) }
func floor(x float64) float64    { return math.Floor(x) }
func ceil(x float64) float64     { return math.Ceil(x) }
func round(x float64) float64    { return math.Round(x) }
func trunc(x float64) float64    { return math.Trunc(x) }
func fmod(x, y float64) float64  { return math.Mod(x, y) }
func degrees(x float64) float64  { return x * 180 / math.Pi }
func radians(x float64) float64  { return x * math.Pi / 180 }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(x, lo, hi float64) float64 { return math.Max(lo, math.Min(x, hi)) }
`

// builtinFuncs maps the functions of prelude to their arity.
var builtinFuncs = map[string]int{
	"sin": 1, "cos": 1, "tan": 1,
	"asin": 1, "acos": 1, "atan": 1, "atan2": 2,
	"sinh": 1, "cosh": 1, "tanh": 1,
	"sqrt": 1, "pow": 2, "exp": 1,
	"log": 1, "log2": 1, "log10": 1,
	"hypot": 2, "abs": 1,
	"floor": 1, "ceil": 1, "round": 1, "trunc": 1,
	"fmod":    2,
	"degrees": 1, "radians": 1,
	"lerp": 3, "clamp": 3,
}

var builtinConsts = map[string]bool{
	"pi":  true,
	"tau": true,
	"e":   true,
}

// reserved names cannot be bound as variables.
var reserved = map[string]bool{
	"_":       true,
	"vars":    true,
	"math":    true,
	"float64": true,
	"true":    true,
	"false":   true,
	"nil":     true,
	"iota":    true,
}
