package parser_test

import (
	"testing"

	"github.com/nyxlang/nyxc/pkg/ast"
	"github.com/nyxlang/nyxc/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestParse_ArithmeticPrecedence(t *testing.T) {
	r := require.New(t)

	file, err := parser.Parse(`fun main() { val x = 1 + 2 * 3 }`)
	r.NoError(err)
	r.Len(file.Functions, 1)

	body := file.Functions[0].Body
	r.Len(body.Statements, 1)

	decl, ok := body.Statements[0].(*ast.VarDeclStmt)
	r.True(ok)

	add, ok := decl.Initializer.(*ast.BinaryExpr)
	r.True(ok)

	mul, ok := add.Right.(*ast.BinaryExpr)
	r.True(ok)

	lit, ok := mul.Left.(*ast.LiteralExpr)
	r.True(ok)
	r.Equal("2", lit.Token.Lexeme)
}

func TestParse_FunctionSignature(t *testing.T) {
	r := require.New(t)

	file, err := parser.Parse(`fun add(a: Int, b: Int): Int { return a + b }`)
	r.NoError(err)

	fn := file.Functions[0]
	r.Equal("add", fn.Name.Lexeme)
	r.Equal("Int", fn.ReturnType)
	r.Len(fn.Parameters, 2)
	r.Equal("a", fn.Parameters[0].Name.Lexeme)
	r.Equal("Int", fn.Parameters[0].Type)
}

func TestParse_DefaultReturnTypeIsUnit(t *testing.T) {
	r := require.New(t)

	file, err := parser.Parse(`fun main() { }`)
	r.NoError(err)
	r.Equal("Unit", file.Functions[0].ReturnType)
}

func TestParse_AssignmentVsExpressionStatement(t *testing.T) {
	r := require.New(t)

	file, err := parser.Parse(`fun main() { var x = 1; x = 2; print_i32(x) }`)
	r.NoError(err)

	stmts := file.Functions[0].Body.Statements
	_, isAssign := stmts[1].(*ast.AssignmentStmt)
	r.True(isAssign)

	_, isExprStmt := stmts[2].(*ast.ExprStmt)
	r.True(isExprStmt)
}

func TestParse_IfElse(t *testing.T) {
	r := require.New(t)

	file, err := parser.Parse(`fun main() { if (true) { } else { } }`)
	r.NoError(err)

	ifStmt, ok := file.Functions[0].Body.Statements[0].(*ast.IfStmt)
	r.True(ok)
	r.NotNil(ifStmt.Else)
}

func TestParse_ReturnWithoutExpression(t *testing.T) {
	r := require.New(t)

	file, err := parser.Parse(`fun f() { return }`)
	r.NoError(err)

	ret, ok := file.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	r.True(ok)
	r.Nil(ret.Value)
}

func TestParse_CallWithArguments(t *testing.T) {
	r := require.New(t)

	file, err := parser.Parse(`fun main() { print_i32(1 + 2) }`)
	r.NoError(err)

	exprStmt := file.Functions[0].Body.Statements[0].(*ast.ExprStmt)
	call, ok := exprStmt.Expression.(*ast.CallExpr)
	r.True(ok)
	r.Equal("print_i32", call.Callee.Lexeme)
	r.Len(call.Args, 1)
}

func TestParse_LogicalPrecedenceAndAssociativity(t *testing.T) {
	r := require.New(t)

	file, err := parser.Parse(`fun main() { val x = a || b && c }`)
	r.NoError(err)

	decl := file.Functions[0].Body.Statements[0].(*ast.VarDeclStmt)
	or, ok := decl.Initializer.(*ast.BinaryExpr)
	r.True(ok)
	r.Equal("||", or.Op.Lexeme)

	and, ok := or.Right.(*ast.BinaryExpr)
	r.True(ok)
	r.Equal("&&", and.Op.Lexeme)
}

func TestParse_UnclosedParenIsAParseError(t *testing.T) {
	r := require.New(t)

	_, err := parser.Parse(`fun main() { val x = (1 + 2 }`)
	r.Error(err)

	var perr *parser.ParseError
	r.ErrorAs(err, &perr)
}

func TestParse_MissingExpressionIsAParseError(t *testing.T) {
	r := require.New(t)

	_, err := parser.Parse(`fun main() { val x = }`)
	r.Error(err)
}
