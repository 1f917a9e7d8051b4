// File: functions.go
// Title: Built-in Functions and Constants
// Description: Registry of the functions and constants available in
//              expressions, with their accepted argument counts.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial function set

package mathexpr

import (
	"math"
	"sort"
)

// function describes a built-in. MaxArgs < 0 means variadic.
type function struct {
	MinArgs int
	MaxArgs int
	Fn      func(args []float64) (float64, error)
}

func unary(f func(float64) float64) function {
	return function{MinArgs: 1, MaxArgs: 1, Fn: func(a []float64) (float64, error) {
		return f(a[0]), nil
	}}
}

func binary(f func(float64, float64) float64) function {
	return function{MinArgs: 2, MaxArgs: 2, Fn: func(a []float64) (float64, error) {
		return f(a[0], a[1]), nil
	}}
}

var functions = map[string]function{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"asin": unary(math.Asin),
	"acos": unary(math.Acos),
	"atan": unary(math.Atan),
	"sec":  unary(func(x float64) float64 { return 1 / math.Cos(x) }),
	"csc":  unary(func(x float64) float64 { return 1 / math.Sin(x) }),
	"cot":  unary(func(x float64) float64 { return 1 / math.Tan(x) }),

	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"asinh": unary(math.Asinh),
	"acosh": unary(math.Acosh),
	"atanh": unary(math.Atanh),

	"exp":   unary(math.Exp),
	"ln":    unary(math.Log),
	"log10": unary(math.Log10),
	"log2":  unary(math.Log2),
	"sqrt":  unary(math.Sqrt),
	"cbrt":  unary(math.Cbrt),
	"log": {MinArgs: 1, MaxArgs: 2, Fn: func(a []float64) (float64, error) {
		if len(a) == 2 {
			if a[1] <= 0 || a[1] == 1 {
				return 0, &EvalError{Name: "log", Message: "base must be positive and different from 1"}
			}
			return math.Log(a[0]) / math.Log(a[1]), nil
		}
		return math.Log(a[0]), nil
	}},

	"abs":   unary(math.Abs),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"sign":  unary(sign),

	"pow":   binary(math.Pow),
	"atan2": binary(math.Atan2),
	"min": {MinArgs: 1, MaxArgs: -1, Fn: func(a []float64) (float64, error) {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Min(m, v)
		}
		return m, nil
	}},
	"max": {MinArgs: 1, MaxArgs: -1, Fn: func(a []float64) (float64, error) {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Max(m, v)
		}
		return m, nil
	}},
}

var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"phi": math.Phi,
}

func sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func isFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// Functions returns the names of all built-in functions in sorted order
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Constants returns a copy of the built-in constants
func Constants() map[string]float64 {
	out := make(map[string]float64, len(constants))
	for k, v := range constants {
		out[k] = v
	}
	return out
}
