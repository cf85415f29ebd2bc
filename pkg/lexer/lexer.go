// Package lexer turns source text into a flat token stream.
package lexer

import (
	"github.com/nyxlang/nyxc/pkg/token"
)

// Lexer scans a source string into tokens. It never fails: malformed
// input surfaces as token.Invalid tokens for the parser to reject.
type Lexer struct {
	src    string
	cursor int
	line   int
	column int
}

// New constructs a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Tokenize scans the full source and returns its token stream, terminated
// by exactly one token.EOF.
func Tokenize(src string) []token.Token {
	return New(src).Tokenize()
}

// Tokenize scans the lexer's source and returns its token stream.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		l.skipWhitespaceAndComments()
		if l.isAtEnd() {
			break
		}

		start := l.cursor
		line, column := l.line, l.column
		c := l.advance()

		switch {
		case isAlpha(c):
			tokens = append(tokens, l.identifier(start, line, column))
		case isDigit(c):
			tokens = append(tokens, l.number(start, line, column))
		default:
			tokens = append(tokens, l.symbol(c, line, column))
		}
	}
	tokens = append(tokens, token.New(token.EOF, "", l.line, l.column))
	return tokens
}

func (l *Lexer) symbol(c byte, line, column int) token.Token {
	switch c {
	case '(':
		return l.make(token.LParen, "(", line, column)
	case ')':
		return l.make(token.RParen, ")", line, column)
	case '{':
		return l.make(token.LBrace, "{", line, column)
	case '}':
		return l.make(token.RBrace, "}", line, column)
	case ',':
		return l.make(token.Comma, ",", line, column)
	case '.':
		return l.make(token.Dot, ".", line, column)
	case ':':
		return l.make(token.Colon, ":", line, column)
	case ';':
		return l.make(token.Semicolon, ";", line, column)
	case '+':
		return l.make(token.Plus, "+", line, column)
	case '-':
		if l.match('>') {
			return l.make(token.Arrow, "->", line, column)
		}
		return l.make(token.Minus, "-", line, column)
	case '*':
		return l.make(token.Star, "*", line, column)
	case '/':
		return l.make(token.Slash, "/", line, column)
	case '%':
		return l.make(token.Percent, "%", line, column)
	case '!':
		if l.match('=') {
			return l.make(token.NotEqual, "!=", line, column)
		}
		return l.make(token.Not, "!", line, column)
	case '=':
		if l.match('=') {
			return l.make(token.Equal, "==", line, column)
		}
		return l.make(token.Assign, "=", line, column)
	case '<':
		if l.match('=') {
			return l.make(token.LessEqual, "<=", line, column)
		}
		return l.make(token.Less, "<", line, column)
	case '>':
		if l.match('=') {
			return l.make(token.GreaterEqual, ">=", line, column)
		}
		return l.make(token.Greater, ">", line, column)
	case '&':
		if l.match('&') {
			return l.make(token.AndAnd, "&&", line, column)
		}
		return l.make(token.Invalid, "&", line, column)
	case '|':
		if l.match('|') {
			return l.make(token.OrOr, "||", line, column)
		}
		return l.make(token.Invalid, "|", line, column)
	case '"':
		return l.string(line, column)
	default:
		return l.make(token.Invalid, string(c), line, column)
	}
}

func (l *Lexer) make(kind token.Kind, lexeme string, line, column int) token.Token {
	return token.New(kind, lexeme, line, column)
}

func (l *Lexer) identifier(start, line, column int) token.Token {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	text := l.src[start:l.cursor]
	if kind, ok := token.Keywords[text]; ok {
		return l.make(kind, text, line, column)
	}
	return l.make(token.Identifier, text, line, column)
}

func (l *Lexer) number(start, line, column int) token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // .
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.make(token.Float, l.src[start:l.cursor], line, column)
	}

	return l.make(token.Integer, l.src[start:l.cursor], line, column)
}

func (l *Lexer) string(line, column int) token.Token {
	start := l.cursor
	for !l.isAtEnd() && l.peek() != '"' {
		l.advance()
	}

	if l.isAtEnd() {
		return l.make(token.Invalid, "Unterminated string", line, column)
	}

	text := l.src[start:l.cursor]
	l.advance() // closing quote
	return l.make(token.String, text, line, column)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		switch c := l.peek(); c {
		case ' ', '\r', '\t', '\n':
			l.advance()
		case '/':
			if l.cursor+1 < len(l.src) && l.src[l.cursor+1] == '/' {
				for !l.isAtEnd() && l.peek() != '\n' {
					l.advance()
				}
			} else if l.cursor+1 < len(l.src) && l.src[l.cursor+1] == '*' {
				l.advance() // /
				l.advance() // *
				depth := 1
				for !l.isAtEnd() && depth > 0 {
					if l.peek() == '/' && l.cursor+1 < len(l.src) && l.src[l.cursor+1] == '*' {
						l.advance()
						l.advance()
						depth++
					} else if l.peek() == '*' && l.cursor+1 < len(l.src) && l.src[l.cursor+1] == '/' {
						l.advance()
						l.advance()
						depth--
					} else {
						l.advance()
					}
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) isAtEnd() bool {
	return l.cursor >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cursor]
}

func (l *Lexer) peekNext() byte {
	if l.cursor+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cursor+1]
}

func (l *Lexer) advance() byte {
	c := l.src[l.cursor]
	l.cursor++
	l.column++
	if c == '\n' {
		l.line++
		l.column = 1
	}
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.cursor] != expected {
		return false
	}
	l.cursor++
	l.column++
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
