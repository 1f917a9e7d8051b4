// File: parser.go
// Title: Math Expression Recursive Descent Parser
// Description: Builds an AST from the token stream. Handles operator
//              precedence, right-associative powers, unary signs and
//              implicit multiplication.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser implementation

package mathexpr

import (
	"fmt"
	"strconv"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack
const maxDepth = 256

// Parser implements recursive descent parsing for expressions
type Parser struct {
	tokens  []Token
	pos     int
	current Token
	depth   int
}

// Parse parses an expression into an AST
func Parse(input string) (Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &Parser{tokens: tokens}
	p.current = tokens[0]

	if p.current.Type == TokenEOF {
		return nil, p.parseError("empty expression")
	}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenEOF {
		return nil, p.parseError(fmt.Sprintf("unexpected %s", describe(p.current)))
	}

	return node, nil
}

// parseExpression parses additive expressions
func (p *Parser) parseExpression() (Node, error) {
	if p.depth++; p.depth > maxDepth {
		return nil, p.parseError("expression nested too deeply")
	}
	defer func() { p.depth-- }()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.current.Type == TokenPlus || p.current.Type == TokenMinus {
		op := p.current
		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, Position: op.Position}
	}

	return left, nil
}

// parseTerm parses multiplicative expressions, including implicit products
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TokenStar, TokenSlash, TokenPercent:
			op := p.current
			p.advance()

			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: op.Type, Left: left, Right: right, Position: op.Position}

		case TokenIdentifier, TokenLeftParen:
			pos := p.current.Position
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: TokenStar, Left: left, Right: right, Implicit: true, Position: pos}

		default:
			return left, nil
		}
	}
}

// parseUnary parses prefix signs
func (p *Parser) parseUnary() (Node, error) {
	if p.current.Type == TokenMinus || p.current.Type == TokenPlus {
		op := p.current
		p.advance()

		if p.depth++; p.depth > maxDepth {
			return nil, p.parseError("expression nested too deeply")
		}
		x, err := p.parseUnary()
		p.depth--
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op.Type, X: x, Position: op.Position}, nil
	}

	return p.parsePower()
}

// parsePower parses the right-associative power operator
func (p *Parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenCaret {
		return base, nil
	}

	op := p.current
	p.advance()

	// The exponent may carry its own sign: 2^-x
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: TokenCaret, Left: base, Right: exp, Position: op.Position}, nil
}

// parsePrimary parses literals, identifiers, calls and parenthesized groups
func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current

	switch tok.Type {
	case TokenNumber:
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.parseError(fmt.Sprintf("invalid number %q", tok.Value))
		}
		p.advance()
		return &NumberLit{Value: value, Text: tok.Value, Position: tok.Position}, nil

	case TokenIdentifier:
		p.advance()
		if p.current.Type == TokenLeftParen && isFunction(tok.Value) {
			return p.parseCall(tok)
		}
		return &Ident{Name: tok.Value, Position: tok.Position}, nil

	case TokenLeftParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenRightParen {
			return nil, p.parseError(fmt.Sprintf("expected ')' but found %s", describe(p.current)))
		}
		p.advance()
		return inner, nil

	default:
		return nil, p.parseError(fmt.Sprintf("unexpected %s", describe(tok)))
	}
}

// parseCall parses the argument list of a function call
func (p *Parser) parseCall(name Token) (Node, error) {
	p.advance() // consume '('

	call := &Call{Name: name.Value, Position: name.Position}

	if p.current.Type == TokenRightParen {
		p.advance()
		return call, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		switch p.current.Type {
		case TokenComma:
			p.advance()
		case TokenRightParen:
			p.advance()
			return call, nil
		default:
			return nil, p.parseError(fmt.Sprintf("expected ',' or ')' in call to %s but found %s",
				name.Value, describe(p.current)))
		}
	}
}

// advance moves to the next token; EOF is sticky
func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.current = p.tokens[p.pos]
}

func (p *Parser) parseError(message string) error {
	return &SyntaxError{Message: message, Position: p.current.Position}
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of expression"
	case TokenIdentifier, TokenNumber:
		return fmt.Sprintf("%q", tok.Value)
	default:
		return fmt.Sprintf("'%s'", tok.Value)
	}
}
