// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     angle
// Description: Rewrites trigonometric calls so their arguments are read
//              in the configured angle unit
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package angle

import (
	"strings"

	"github.com/msto63/puntofijo/foundation/mathexpr"
)

// TrigFunctions are the calls whose argument is converted from degrees
var TrigFunctions = []string{"sin", "cos", "tan", "asin", "acos", "atan", "sec", "csc", "cot"}

var trigSet = func() map[string]bool {
	m := make(map[string]bool, len(TrigFunctions))
	for _, name := range TrigFunctions {
		m[name] = true
	}
	return m
}()

// Transform rewrites expr for the given unit. For radians (and any unit
// other than degrees) expr is returned unchanged. For degrees every call
// name(ARG) of a trigonometric function becomes name((ARG) * pi / 180).
//
// Names are matched as whole identifier tokens, so sinh or arcsin are left
// alone. A call without a matching closing parenthesis is copied verbatim;
// compiling the result reports the syntax error.
func Transform(expr string, unit Unit) string {
	if unit != Degrees {
		return expr
	}
	return rewriteDegrees(expr)
}

// rewriteDegrees copies src into a builder, replacing each matched call.
// Arguments are rewritten recursively so nested calls are converted too.
func rewriteDegrees(src string) string {
	// Illegal characters stay in the token stream; the compiler reports them.
	tokens, _ := mathexpr.Tokenize(src)

	var b strings.Builder
	b.Grow(len(src) + 16)
	last := 0

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Type != mathexpr.TokenIdentifier || !trigSet[tok.Value] {
			continue
		}
		if i+1 >= len(tokens) || tokens[i+1].Type != mathexpr.TokenLeftParen {
			continue
		}

		closing := matchingParen(tokens, i+1)
		if closing < 0 {
			continue
		}

		open, end := tokens[i+1], tokens[closing]
		b.WriteString(src[last:tok.Position])
		b.WriteString(tok.Value)
		b.WriteString("((")
		b.WriteString(rewriteDegrees(src[open.End:end.Position]))
		b.WriteString(") * pi / 180)")

		last = end.End
		i = closing
	}

	b.WriteString(src[last:])
	return b.String()
}

// matchingParen returns the index of the token closing the parenthesis at
// open, or -1 when the input ends first
func matchingParen(tokens []mathexpr.Token, open int) int {
	depth := 0
	for j := open; j < len(tokens); j++ {
		switch tokens[j].Type {
		case mathexpr.TokenLeftParen:
			depth++
		case mathexpr.TokenRightParen:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}
