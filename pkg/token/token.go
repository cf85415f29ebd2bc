// Package token defines the lexical token kinds and the flat Token value
// type shared by the lexer, parser, and diagnostics across the pipeline.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	Invalid Kind = iota
	EOF

	// Keywords
	Fun
	Val
	Var
	If
	Else
	While
	Return
	Break
	Continue
	True
	False
	Null

	// Reserved, recognized but unused in lowering.
	Package
	Import
	Class
	Interface
	When
	For
	As
	Is
	This
	Super
	In

	// Literals
	Identifier
	Integer
	Float
	String

	// Operators and punctuation
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Equal
	NotEqual
	Less
	Greater
	LessEqual
	GreaterEqual
	AndAnd
	OrOr
	Not
	LParen
	RParen
	LBrace
	RBrace
	Comma
	Dot
	Colon
	Semicolon
	Arrow
)

var kindNames = map[Kind]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Fun:          "fun",
	Val:          "val",
	Var:          "var",
	If:           "if",
	Else:         "else",
	While:        "while",
	Return:       "return",
	Break:        "break",
	Continue:     "continue",
	True:         "true",
	False:        "false",
	Null:         "null",
	Package:      "package",
	Import:       "import",
	Class:        "class",
	Interface:    "interface",
	When:         "when",
	For:          "for",
	As:           "as",
	Is:           "is",
	This:         "this",
	Super:        "super",
	In:           "in",
	Identifier:   "IDENTIFIER",
	Integer:      "INTEGER",
	Float:        "FLOAT",
	String:       "STRING",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Assign:       "=",
	Equal:        "==",
	NotEqual:     "!=",
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	AndAnd:       "&&",
	OrOr:         "||",
	Not:          "!",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	Comma:        ",",
	Dot:          ".",
	Colon:        ":",
	Semicolon:    ";",
	Arrow:        "->",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "<unknown kind>"
}

// Keywords maps keyword lexemes to their reserved Kind. Anything not
// present here lexes as Identifier.
var Keywords = map[string]Kind{
	"fun":       Fun,
	"val":       Val,
	"var":       Var,
	"if":        If,
	"else":      Else,
	"while":     While,
	"return":    Return,
	"break":     Break,
	"continue":  Continue,
	"true":      True,
	"false":     False,
	"null":      Null,
	"package":   Package,
	"import":    Import,
	"class":     Class,
	"interface": Interface,
	"when":      When,
	"for":       For,
	"as":        As,
	"is":        Is,
	"this":      This,
	"super":     Super,
	"in":        In,
}

// Position is a 1-based source location shared by every AST node and
// symbol so diagnostics can always point at real source text.
type Position struct {
	Line   int
	Column int
}

// WrapError attaches this position to err's message in the
// "Error at line L, col C: message" form the semantic analyzer's
// diagnostics also use; pkg/irgen wraps its errors with it.
func (p Position) WrapError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("Error at line %d, col %d: %w", p.Line, p.Column, err)
}

// Token is an immutable lexical unit: a kind, the exact source text that
// produced it, and its starting position.
type Token struct {
	Kind   Kind
	Lexeme string
	Position
}

func New(kind Kind, lexeme string, line, column int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Position: Position{Line: line, Column: column}}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Kind, t.Lexeme, t.Line, t.Column)
}
