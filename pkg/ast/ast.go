// Package ast defines the typed syntax tree produced by pkg/parser and
// consumed by pkg/sema and pkg/irgen.
package ast

import "github.com/nyxlang/nyxc/pkg/token"

// Expr is any expression node. Every implementation carries the token
// nearest its origin so diagnostics always have a real source position.
type Expr interface {
	expr()
	Pos() token.Position
}

// Stmt is any statement node.
type Stmt interface {
	stmt()
}

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*BinaryExpr) expr()                 {}
func (e *BinaryExpr) Pos() token.Position { return e.Op.Position }

// UnaryExpr is `op operand`.
type UnaryExpr struct {
	Op      token.Token
	Operand Expr
}

func (*UnaryExpr) expr()                 {}
func (e *UnaryExpr) Pos() token.Position { return e.Op.Position }

// LiteralExpr carries the literal token itself; its Kind determines the
// literal's type (Integer, Float, String, True, False, Null).
type LiteralExpr struct {
	Token token.Token
}

func (*LiteralExpr) expr()                 {}
func (e *LiteralExpr) Pos() token.Position { return e.Token.Position }

// VariableExpr is a reference to a declared name.
type VariableExpr struct {
	Name token.Token
}

func (*VariableExpr) expr()                 {}
func (e *VariableExpr) Pos() token.Position { return e.Name.Position }

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee token.Token
	Args   []Expr
}

func (*CallExpr) expr()                 {}
func (e *CallExpr) Pos() token.Position { return e.Callee.Position }

// GroupingExpr is a parenthesized expression, kept distinct from its inner
// expression so a printer could round-trip parentheses if one existed.
type GroupingExpr struct {
	Inner Expr
}

func (*GroupingExpr) expr()                 {}
func (e *GroupingExpr) Pos() token.Position { return e.Inner.Pos() }

// BlockStmt is an ordered statement list; entering one pushes a new scope
// during semantic analysis (see pkg/sema).
type BlockStmt struct {
	Statements []Stmt
}

func (*BlockStmt) stmt() {}

// VarDeclStmt declares a new binding, mutable (`var`) or immutable
// (`val`), with an optional declared type name.
type VarDeclStmt struct {
	Name         token.Token
	DeclaredType string // empty when the ": Type" annotation is absent
	Initializer  Expr
	Immutable    bool
}

func (*VarDeclStmt) stmt() {}

// AssignmentStmt rebinds an already-declared name.
type AssignmentStmt struct {
	Name  token.Token
	Value Expr
}

func (*AssignmentStmt) stmt() {}

// IfStmt is `if (cond) then [else else]`.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // nil when absent
}

func (*IfStmt) stmt() {}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmt() {}

// ReturnStmt is `return [value]`. Keyword is kept for its position, since
// a bare `return` has no expression to anchor diagnostics to.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil for a void return
}

func (*ReturnStmt) stmt() {}

// BreakStmt and ContinueStmt are parsed but rejected during semantic
// analysis (see pkg/sema); the IR generator never sees them.
type BreakStmt struct {
	Keyword token.Token
}

func (*BreakStmt) stmt() {}

type ContinueStmt struct {
	Keyword token.Token
}

func (*ContinueStmt) stmt() {}

// ExprStmt is an expression evaluated for its side effect (typically a
// call).
type ExprStmt struct {
	Expression Expr
}

func (*ExprStmt) stmt() {}

// Parameter is one entry of a FunctionDecl's parameter list.
type Parameter struct {
	Name token.Token
	Type string
}

// FunctionDecl is a top-level function: name, parameters, return type
// (defaulting to "Unit" when the annotation is absent), and body.
type FunctionDecl struct {
	Name       token.Token
	Parameters []Parameter
	ReturnType string
	Body       *BlockStmt
}

// File is the parse of a whole source unit: an ordered function list.
type File struct {
	Functions []*FunctionDecl
}
