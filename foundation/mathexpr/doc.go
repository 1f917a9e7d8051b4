// File: doc.go
// Title: Math Expression Package Documentation
// Description: Package documentation for the scalar math expression
//              language: lexer, parser, AST and compiled evaluator.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package mathexpr compiles textual scalar expressions such as "cos(x)" or
"(x + 2/x) / 2" into programs that can be evaluated repeatedly.

Package: mathexpr
Title: Scalar Math Expression Language
Description: Provides tokenization, recursive descent parsing into an AST,
             and compilation of the AST into a closure tree. Compilation
             resolves every identifier, so an expression that compiles can
             only fail at evaluation time when a declared variable is
             missing from the binding or a function reports a domain error.
Author: msto63
Version: v0.1.0
Created: 2026-10-19
Modified: 2026-10-19

Grammar:

	expr    = term { ("+" | "-") term }
	term    = unary { ("*" | "/" | "%") unary | power }
	unary   = ("-" | "+") unary | power
	power   = primary [ ("^" | "**") unary ]
	primary = number | ident | ident "(" [ expr { "," expr } ] ")" | "(" expr ")"

The second alternative of term is implicit multiplication: "2x", "3(x+1)"
and "2 pi" multiply their operands. Power is right-associative and binds
tighter than unary minus, so "-x^2" is "-(x^2)" and "2^-1" is 0.5.

Built-in functions:

	sin cos tan asin acos atan sec csc cot
	sinh cosh tanh asinh acosh atanh
	exp ln log log10 log2 sqrt cbrt
	abs floor ceil round sign
	min max pow atan2

log takes an optional second argument, the base. min and max accept one
or more arguments.

Built-in constants: pi, e, tau, phi. A declared variable with the same
name shadows the constant.

Usage Examples:

	prog, err := mathexpr.Compile("cos(x)", mathexpr.WithVariables("x"))
	if err != nil {
		var syn *mathexpr.SyntaxError
		errors.As(err, &syn)
		...
	}
	y, err := prog.Eval(map[string]float64{"x": 0.5})

	g := prog.Func("x")
	y, err = g(0.7390851)

Errors:

Compile returns *SyntaxError for malformed input, unknown identifiers,
unknown functions and wrong argument counts. Eval returns *EvalError.
Non-finite results are returned as values; callers that require finite
output check it themselves.
*/
package mathexpr
