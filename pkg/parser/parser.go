// Package parser implements a recursive-descent, operator-precedence
// grammar over a token.Token stream, producing an *ast.File.
package parser

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkg/ast"
	"github.com/nyxlang/nyxc/pkg/lexer"
	"github.com/nyxlang/nyxc/pkg/token"
)

// ParseError is the single, unrecovered diagnostic a Parser can raise.
// The grammar never attempts error recovery: the first mismatch aborts
// compilation.
type ParseError struct {
	token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.Message)
}

// Parser consumes a fixed token slice with unbounded lookahead by index.
type Parser struct {
	tokens  []token.Token
	current int
}

// New constructs a Parser over an already-lexed token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes src and parses it into a File in one call.
func Parse(src string) (*ast.File, error) {
	return New(lexer.Tokenize(src)).ParseFile()
}

// ParseFile parses File := FunctionDecl*.
func (p *Parser) ParseFile() (file *ast.File, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			file, err = nil, perr
		}
	}()

	var funcs []*ast.FunctionDecl
	for !p.isAtEnd() {
		funcs = append(funcs, p.functionDecl())
	}
	return &ast.File{Functions: funcs}, nil
}

func (p *Parser) functionDecl() *ast.FunctionDecl {
	p.consume(token.Fun, "Expect 'fun' for function declaration.")
	name := p.consume(token.Identifier, "Expect function name.")

	p.consume(token.LParen, "Expect '(' after function name.")
	var params []ast.Parameter
	if !p.check(token.RParen) {
		for {
			params = append(params, p.parameter())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RParen, "Expect ')' after parameters.")

	returnType := "Unit"
	if p.match(token.Colon) {
		returnType = p.consume(token.Identifier, "Expect return type.").Lexeme
	}

	body := p.block()
	return &ast.FunctionDecl{Name: name, Parameters: params, ReturnType: returnType, Body: body}
}

func (p *Parser) parameter() ast.Parameter {
	name := p.consume(token.Identifier, "Expect parameter name.")
	p.consume(token.Colon, "Expect ':' after parameter name.")
	typ := p.consume(token.Identifier, "Expect parameter type.")
	return ast.Parameter{Name: name, Type: typ.Lexeme}
}

func (p *Parser) block() *ast.BlockStmt {
	p.consume(token.LBrace, "Expect '{' before block.")
	var statements []ast.Stmt
	for !p.check(token.RBrace) && !p.isAtEnd() {
		// A ';' only separates statements; it produces no node.
		if p.match(token.Semicolon) {
			continue
		}
		statements = append(statements, p.statement())
	}
	p.consume(token.RBrace, "Expect '}' after block.")
	return &ast.BlockStmt{Statements: statements}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.Val, token.Var):
		return p.variableDecl()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Break):
		return &ast.BreakStmt{Keyword: p.previous()}
	case p.match(token.Continue):
		return &ast.ContinueStmt{Keyword: p.previous()}
	case p.check(token.LBrace):
		return p.block()
	}

	if p.check(token.Identifier) && p.peekAt(1).Kind == token.Assign {
		return p.assignment()
	}

	return &ast.ExprStmt{Expression: p.expression()}
}

func (p *Parser) variableDecl() ast.Stmt {
	immutable := p.previous().Kind == token.Val
	name := p.consume(token.Identifier, "Expect variable name.")

	declaredType := ""
	if p.match(token.Colon) {
		declaredType = p.consume(token.Identifier, "Expect type name.").Lexeme
	}

	p.consume(token.Assign, "Expect '=' for variable initialization.")
	initializer := p.expression()

	return &ast.VarDeclStmt{Name: name, DeclaredType: declaredType, Initializer: initializer, Immutable: immutable}
}

func (p *Parser) assignment() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")
	p.consume(token.Assign, "Expect '=' for assignment.")
	value := p.expression()
	return &ast.AssignmentStmt{Name: name, Value: value}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LParen, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RParen, "Expect ')' after condition.")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}

	return &ast.IfStmt{Condition: condition, Then: then, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LParen, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RParen, "Expect ')' after condition.")
	body := p.statement()

	return &ast.WhileStmt{Condition: condition, Body: body}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.RBrace) && !p.check(token.Semicolon) && !p.check(token.EOF) {
		value = p.expression()
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) expression() ast.Expr {
	return p.logicalOr()
}

func (p *Parser) logicalOr() ast.Expr {
	expr := p.logicalAnd()
	for p.match(token.OrOr) {
		op := p.previous()
		right := p.logicalAnd()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicalAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AndAnd) {
		op := p.previous()
		right := p.equality()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.Equal, token.NotEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.addition()
	for p.match(token.Less, token.LessEqual, token.Greater, token.GreaterEqual) {
		op := p.previous()
		right := p.addition()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) addition() ast.Expr {
	expr := p.multiplication()
	for p.match(token.Plus, token.Minus) {
		op := p.previous()
		right := p.multiplication()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) multiplication() ast.Expr {
	expr := p.unary()
	for p.match(token.Star, token.Slash, token.Percent) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Not, token.Minus) {
		op := p.previous()
		operand := p.unary()
		return &ast.UnaryExpr{Op: op, Operand: operand}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False, token.True, token.Null, token.Integer, token.Float, token.String):
		return &ast.LiteralExpr{Token: p.previous()}
	case p.match(token.Identifier):
		name := p.previous()
		if p.match(token.LParen) {
			var args []ast.Expr
			if !p.check(token.RParen) {
				for {
					args = append(args, p.expression())
					if !p.match(token.Comma) {
						break
					}
				}
			}
			p.consume(token.RParen, "Expect ')' after arguments.")
			return &ast.CallExpr{Callee: name, Args: args}
		}
		return &ast.VariableExpr{Name: name}
	case p.match(token.LParen):
		expr := p.expression()
		p.consume(token.RParen, "Expect ')' after expression.")
		return &ast.GroupingExpr{Inner: expr}
	}

	p.fail("Expect expression.")
	return nil // unreachable: fail panics
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.current + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.fail(message)
	return token.Token{} // unreachable: fail panics
}

func (p *Parser) fail(message string) {
	panic(&ParseError{Position: p.peek().Position, Message: message})
}
