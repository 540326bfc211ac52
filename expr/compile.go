package expr

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Errors returned by [Evaluator.EvaluateExpression].
var (
	ErrSyntax      = errors.New("expr: syntax error")
	ErrUnsupported = errors.New("expr: unsupported construct")
	ErrUnknownName = errors.New("expr: unknown name")
	ErrInvalidName = errors.New("expr: invalid variable name")
	ErrCompile     = errors.New("expr: compile failed")
	ErrRuntime     = errors.New("expr: runtime failure")
)

// program is a compiled expression. A failed compilation is cached too, so
// the same broken expression is not parsed again on every frame.
type program struct {
	fn  func(vars map[string]float64) float64
	err error
}

// compile validates text against the bound variable names and builds it
// in a fresh interpreter restricted to the math package.
func compile(text string, names []string) *program {
	src, err := translate(text, names)
	if err != nil {
		return &program{err: err}
	}

	i := interp.New(interp.Options{})
	if err := i.Use(interp.Exports{"math/math": stdlib.Symbols["math/math"]}); err != nil {
		return &program{err: fmt.Errorf("%w: %w", ErrCompile, err)}
	}
	if _, err := i.Eval(src); err != nil {
		return &program{err: fmt.Errorf("%w: %q: %w", ErrCompile, text, err)}
	}

	v, err := i.Eval("main.Eval")
	if err != nil {
		return &program{err: fmt.Errorf("%w: %w", ErrCompile, err)}
	}
	fn, ok := v.Interface().(func(map[string]float64) float64)
	if !ok {
		return &program{err: fmt.Errorf("%w: unexpected entry point %s", ErrCompile, v.Type())}
	}
	return &program{fn: fn}
}

// translate checks text and returns the Go source of a program whose Eval
// function computes it.
func translate(text string, names []string) (string, error) {
	bound := make(map[string]bool, len(names))
	for _, n := range names {
		if !token.IsIdentifier(n) || reserved[n] || builtinConsts[n] || builtinFuncs[n] > 0 {
			return "", fmt.Errorf("%w: %q", ErrInvalidName, n)
		}
		bound[n] = true
	}

	node, err := parser.ParseExpr(text)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrSyntax, text, err)
	}

	var body strings.Builder
	if err := emit(&body, node, bound); err != nil {
		return "", err
	}

	var src strings.Builder
	src.WriteString(prelude)
	src.WriteString("\nfunc Eval(vars map[string]float64) float64 {\n")
	for _, n := range names {
		fmt.Fprintf(&src, "\t%s := vars[%q]\n\t_ = %s\n", n, n, n)
	}
	fmt.Fprintf(&src, "\treturn float64(%s)\n}\n", body.String())
	return src.String(), nil
}

// emit writes the canonical form of an allowed expression node to b.
func emit(b *strings.Builder, node ast.Expr, bound map[string]bool) error {
	switch n := node.(type) {
	case *ast.BasicLit:
		switch n.Kind {
		case token.INT:
			// Integer literals are floats: 1/2 is 0.5.
			fmt.Fprintf(b, "float64(%s)", n.Value)
		case token.FLOAT:
			b.WriteString(n.Value)
		default:
			return fmt.Errorf("%w: %s literal", ErrUnsupported, strings.ToLower(n.Kind.String()))
		}

	case *ast.Ident:
		if !bound[n.Name] && !builtinConsts[n.Name] {
			return fmt.Errorf("%w: %s", ErrUnknownName, n.Name)
		}
		b.WriteString(n.Name)

	case *ast.ParenExpr:
		b.WriteByte('(')
		if err := emit(b, n.X, bound); err != nil {
			return err
		}
		b.WriteByte(')')

	case *ast.UnaryExpr:
		if n.Op != token.ADD && n.Op != token.SUB {
			return fmt.Errorf("%w: unary %s", ErrUnsupported, n.Op)
		}
		b.WriteString(n.Op.String())
		b.WriteByte('(')
		if err := emit(b, n.X, bound); err != nil {
			return err
		}
		b.WriteByte(')')

	case *ast.BinaryExpr:
		switch n.Op {
		case token.ADD, token.SUB, token.MUL, token.QUO:
		default:
			return fmt.Errorf("%w: operator %s", ErrUnsupported, n.Op)
		}
		if err := emit(b, n.X, bound); err != nil {
			return err
		}
		fmt.Fprintf(b, " %s ", n.Op)
		return emit(b, n.Y, bound)

	case *ast.CallExpr:
		fn, ok := n.Fun.(*ast.Ident)
		if !ok {
			return fmt.Errorf("%w: call of %T", ErrUnsupported, n.Fun)
		}
		arity, ok := builtinFuncs[fn.Name]
		if !ok {
			return fmt.Errorf("%w: function %s", ErrUnknownName, fn.Name)
		}
		if n.Ellipsis.IsValid() || len(n.Args) != arity {
			return fmt.Errorf("%w: %s takes %s", ErrUnsupported, fn.Name, plural(arity, "argument"))
		}
		b.WriteString(fn.Name)
		b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := emit(b, arg, bound); err != nil {
				return err
			}
		}
		b.WriteByte(')')

	default:
		return fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
