// File: ast.go
// Title: Math Expression Abstract Syntax Tree
// Description: Node types produced by the parser. Every node can print
//              itself back as a fully parenthesized expression, which is
//              used in tests and diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial AST node set

package mathexpr

import (
	"strings"
)

// Node is an expression tree node
type Node interface {
	// Pos returns the byte offset of the node in the source
	Pos() int
	String() string
	node()
}

// NumberLit is a numeric literal
type NumberLit struct {
	Value    float64
	Text     string
	Position int
}

// Ident is a reference to a variable or constant
type Ident struct {
	Name     string
	Position int
}

// Unary is a prefix operator applied to an operand
type Unary struct {
	Op       TokenType // TokenPlus or TokenMinus
	X        Node
	Position int
}

// Binary is an infix operator. Implicit multiplication is a Binary with
// Op TokenStar and Implicit set.
type Binary struct {
	Op       TokenType
	Left     Node
	Right    Node
	Implicit bool
	Position int
}

// Call is a function application
type Call struct {
	Name     string
	Args     []Node
	Position int
}

func (n *NumberLit) Pos() int { return n.Position }
func (n *Ident) Pos() int     { return n.Position }
func (n *Unary) Pos() int     { return n.Position }
func (n *Binary) Pos() int    { return n.Position }
func (n *Call) Pos() int      { return n.Position }

func (*NumberLit) node() {}
func (*Ident) node()     {}
func (*Unary) node()     {}
func (*Binary) node()    {}
func (*Call) node()      {}

func (n *NumberLit) String() string { return n.Text }
func (n *Ident) String() string     { return n.Name }

func (n *Unary) String() string {
	return "(" + opSymbol(n.Op) + n.X.String() + ")"
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + opSymbol(n.Op) + " " + n.Right.String() + ")"
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func opSymbol(op TokenType) string {
	switch op {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenCaret:
		return "^"
	default:
		return "?"
	}
}

// Walk calls fn for n and each of its descendants in depth-first order.
// Returning false from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Unary:
		Walk(v.X, fn)
	case *Binary:
		Walk(v.Left, fn)
		Walk(v.Right, fn)
	case *Call:
		for _, a := range v.Args {
			Walk(a, fn)
		}
	}
}
