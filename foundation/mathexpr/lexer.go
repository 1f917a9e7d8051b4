// File: lexer.go
// Title: Math Expression Lexical Analyzer
// Description: Converts expression strings into token streams with byte
//              offsets. Illegal characters become TokenIllegal tokens so
//              callers that only rewrite source text can still scan it.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer implementation

package mathexpr

import (
	"fmt"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenNumber     // 12, 0.5, 1e-6, .25
	TokenIdentifier // x, sin, pi

	// Operators
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %
	TokenCaret   // ^ or **

	// Delimiters
	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,
)

// Token represents a lexical token with its byte span in the input
type Token struct {
	Type     TokenType
	Value    string
	Position int // Offset of the first byte
	End      int // Offset one past the last byte
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return fmt.Sprintf("ILLEGAL(%s)", t.Value)
	default:
		return fmt.Sprintf("%s(%s)", t.Type.String(), t.Value)
	}
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenNumber:
		return "NUMBER"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenPercent:
		return "PERCENT"
	case TokenCaret:
		return "CARET"
	case TokenLeftParen:
		return "LEFT_PAREN"
	case TokenRightParen:
		return "RIGHT_PAREN"
	case TokenComma:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}

// Lexer performs lexical analysis of expression input
type Lexer struct {
	input    string
	position int  // Current position in input (points to current char)
	readPos  int  // Current reading position (after current char)
	ch       byte // Current char under examination
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.position

	switch l.ch {
	case 0:
		if l.position >= len(l.input) {
			return Token{Type: TokenEOF, Position: pos, End: pos}
		}
		return l.illegal()
	case '+':
		return l.single(TokenPlus)
	case '-':
		return l.single(TokenMinus)
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenCaret, Value: "**", Position: pos, End: l.position}
		}
		return l.single(TokenStar)
	case '/':
		return l.single(TokenSlash)
	case '%':
		return l.single(TokenPercent)
	case '^':
		return l.single(TokenCaret)
	case '(':
		return l.single(TokenLeftParen)
	case ')':
		return l.single(TokenRightParen)
	case ',':
		return l.single(TokenComma)
	}

	if isLetter(l.ch) {
		value := l.readIdentifier()
		return Token{Type: TokenIdentifier, Value: value, Position: pos, End: l.position}
	}

	if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
		value := l.readNumber()
		return Token{Type: TokenNumber, Value: value, Position: pos, End: l.position}
	}

	return l.illegal()
}

// Tokenize returns all tokens up to and including EOF. Illegal characters
// are kept in the stream; the first one is also reported as an error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	var firstErr error

	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)

		if tok.Type == TokenIllegal && firstErr == nil {
			firstErr = &SyntaxError{
				Message:  fmt.Sprintf("illegal character %q", tok.Value),
				Position: tok.Position,
			}
		}

		if tok.Type == TokenEOF {
			return tokens, firstErr
		}
	}
}

// Tokenize is a shorthand for NewLexer(input).Tokenize()
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}

// single emits a one-byte token and advances past it
func (l *Lexer) single(tokenType TokenType) Token {
	tok := Token{Type: tokenType, Value: string(l.ch), Position: l.position, End: l.position + 1}
	l.readChar()
	return tok
}

// illegal consumes one character, decoding multi-byte UTF-8 sequences
// so that a token never splits a rune
func (l *Lexer) illegal() Token {
	start := l.position
	l.readChar()
	for l.ch >= 0x80 && l.ch < 0xC0 {
		l.readChar()
	}
	return Token{Type: TokenIllegal, Value: l.input[start:l.position], Position: start, End: l.position}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}

	l.position = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// peekCharAt returns the character n bytes after the current one
func (l *Lexer) peekCharAt(n int) byte {
	if l.position+n >= len(l.input) {
		return 0
	}
	return l.input[l.position+n]
}

// readIdentifier reads letters, digits and underscores
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads a numeric literal with optional fraction and exponent.
// The exponent is only consumed when digits follow, so "2e" lexes as the
// number 2 followed by the identifier e.
func (l *Lexer) readNumber() string {
	start := l.position

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekCharAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekCharAt(2))) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[start:l.position]
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
