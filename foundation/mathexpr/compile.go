// File: compile.go
// Title: Math Expression Compiler and Evaluator
// Description: Resolves identifiers and functions of a parsed expression and
//              turns the AST into a tree of closures that is evaluated
//              against a variable binding.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial compiler implementation

package mathexpr

import (
	"fmt"
	"math"
)

type evalFn func(vars map[string]float64) (float64, error)

// Option configures compilation
type Option func(*compileOptions)

type compileOptions struct {
	variables map[string]bool
	order     []string
}

// WithVariables declares the names that are bound at evaluation time
func WithVariables(names ...string) Option {
	return func(o *compileOptions) {
		for _, name := range names {
			if !o.variables[name] {
				o.variables[name] = true
				o.order = append(o.order, name)
			}
		}
	}
}

// Program is a compiled expression. It is immutable and safe for
// concurrent use.
type Program struct {
	source    string
	root      Node
	eval      evalFn
	variables []string
}

// Compile parses and resolves an expression
func Compile(source string, opts ...Option) (*Program, error) {
	o := &compileOptions{variables: make(map[string]bool)}
	for _, opt := range opts {
		opt(o)
	}

	root, err := Parse(source)
	if err != nil {
		return nil, err
	}

	c := &compiler{variables: o.variables}
	eval, err := c.compile(root)
	if err != nil {
		return nil, err
	}

	return &Program{
		source:    source,
		root:      root,
		eval:      eval,
		variables: o.order,
	}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(source string, opts ...Option) *Program {
	p, err := Compile(source, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Eval evaluates the program with the given variable binding
func (p *Program) Eval(vars map[string]float64) (float64, error) {
	return p.eval(vars)
}

// Func returns a single-variable view of the program. Every other declared
// variable must be bound in fixed.
func (p *Program) Func(variable string, fixed ...map[string]float64) func(float64) (float64, error) {
	vars := make(map[string]float64)
	for _, m := range fixed {
		for k, v := range m {
			vars[k] = v
		}
	}
	return func(x float64) (float64, error) {
		binding := make(map[string]float64, len(vars)+1)
		for k, v := range vars {
			binding[k] = v
		}
		binding[variable] = x
		return p.eval(binding)
	}
}

// Source returns the expression text the program was compiled from
func (p *Program) Source() string { return p.source }

// AST returns the root of the parsed expression
func (p *Program) AST() Node { return p.root }

// Variables returns the declared variable names in declaration order
func (p *Program) Variables() []string {
	out := make([]string, len(p.variables))
	copy(out, p.variables)
	return out
}

type compiler struct {
	variables map[string]bool
}

func (c *compiler) compile(n Node) (evalFn, error) {
	switch v := n.(type) {
	case *NumberLit:
		value := v.Value
		return func(map[string]float64) (float64, error) { return value, nil }, nil

	case *Ident:
		return c.compileIdent(v)

	case *Unary:
		x, err := c.compile(v.X)
		if err != nil {
			return nil, err
		}
		if v.Op == TokenPlus {
			return x, nil
		}
		return func(vars map[string]float64) (float64, error) {
			val, err := x(vars)
			return -val, err
		}, nil

	case *Binary:
		return c.compileBinary(v)

	case *Call:
		return c.compileCall(v)

	default:
		return nil, &SyntaxError{Message: fmt.Sprintf("unsupported node %T", n), Position: n.Pos()}
	}
}

func (c *compiler) compileIdent(v *Ident) (evalFn, error) {
	name := v.Name

	if c.variables[name] {
		return func(vars map[string]float64) (float64, error) {
			val, ok := vars[name]
			if !ok {
				return 0, &EvalError{Name: name, Message: "variable is not bound"}
			}
			return val, nil
		}, nil
	}

	if value, ok := constants[name]; ok {
		return func(map[string]float64) (float64, error) { return value, nil }, nil
	}

	if isFunction(name) {
		return nil, &SyntaxError{Message: fmt.Sprintf("function %q used without arguments", name), Position: v.Position}
	}

	return nil, &SyntaxError{Message: fmt.Sprintf("undefined symbol %q", name), Position: v.Position}
}

func (c *compiler) compileBinary(v *Binary) (evalFn, error) {
	left, err := c.compile(v.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.compile(v.Right)
	if err != nil {
		return nil, err
	}

	var op func(a, b float64) float64
	switch v.Op {
	case TokenPlus:
		op = func(a, b float64) float64 { return a + b }
	case TokenMinus:
		op = func(a, b float64) float64 { return a - b }
	case TokenStar:
		op = func(a, b float64) float64 { return a * b }
	case TokenSlash:
		op = func(a, b float64) float64 { return a / b }
	case TokenPercent:
		op = math.Mod
	case TokenCaret:
		op = math.Pow
	default:
		return nil, &SyntaxError{Message: fmt.Sprintf("unknown operator %s", v.Op), Position: v.Position}
	}

	return func(vars map[string]float64) (float64, error) {
		a, err := left(vars)
		if err != nil {
			return 0, err
		}
		b, err := right(vars)
		if err != nil {
			return 0, err
		}
		return op(a, b), nil
	}, nil
}

func (c *compiler) compileCall(v *Call) (evalFn, error) {
	fn, ok := functions[v.Name]
	if !ok {
		return nil, &SyntaxError{Message: fmt.Sprintf("unknown function %q", v.Name), Position: v.Position}
	}

	n := len(v.Args)
	if n < fn.MinArgs || (fn.MaxArgs >= 0 && n > fn.MaxArgs) {
		return nil, &SyntaxError{
			Message:  fmt.Sprintf("function %q expects %s, got %d", v.Name, arity(fn), n),
			Position: v.Position,
		}
	}

	args := make([]evalFn, n)
	for i, a := range v.Args {
		compiled, err := c.compile(a)
		if err != nil {
			return nil, err
		}
		args[i] = compiled
	}

	impl := fn.Fn
	return func(vars map[string]float64) (float64, error) {
		values := make([]float64, len(args))
		for i, a := range args {
			val, err := a(vars)
			if err != nil {
				return 0, err
			}
			values[i] = val
		}
		return impl(values)
	}, nil
}

func arity(fn function) string {
	switch {
	case fn.MaxArgs < 0:
		return fmt.Sprintf("at least %d argument(s)", fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs:
		return fmt.Sprintf("%d argument(s)", fn.MinArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", fn.MinArgs, fn.MaxArgs)
	}
}
