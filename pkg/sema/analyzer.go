// Package sema implements a two-pass semantic analyzer: declaration of
// every top-level and built-in function, then per-function
// scope-and-type checking against pkg/symbols.
package sema

import (
	"github.com/nyxlang/nyxc/pkg/ast"
	"github.com/nyxlang/nyxc/pkg/symbols"
	"github.com/nyxlang/nyxc/pkg/token"
)

// Analyzer walks an *ast.File, populating a symbol table and an error
// list. The populated symbol table stays available through Symbols so
// pkg/irgen can consult function signatures afterward.
type Analyzer struct {
	symbols *symbols.Table
	errors  ErrorList

	currentReturnType symbols.Type
	loopDepth         int
}

// New constructs an Analyzer with the two built-in runtime functions
// pre-declared.
func New() *Analyzer {
	a := &Analyzer{symbols: symbols.New()}
	a.symbols.DeclareFunction("print_i32", []symbols.Type{symbols.Int}, symbols.Unit, token.Position{})
	a.symbols.DeclareFunction("print_bool", []symbols.Type{symbols.Boolean}, symbols.Unit, token.Position{})
	return a
}

// Analyze runs both passes over file. It returns (true, an empty list)
// when the program is well-typed, or (false, formatted diagnostics)
// otherwise. Analysis never stops at the first error.
func Analyze(file *ast.File) (ok bool, diagnostics []string) {
	a := New()
	return a.Run(file)
}

// Run behaves like Analyze but operates on an existing Analyzer, so a
// caller (pkg/compiler) can keep the populated symbol table around for
// pkg/irgen's call-return-type lookups afterward.
func (a *Analyzer) Run(file *ast.File) (ok bool, diagnostics []string) {
	a.analyzeFile(file)
	return a.errors.Empty(), a.errors.Formatted()
}

// Symbols exposes the populated symbol table, so pkg/irgen can look up a
// callee's return type instead of hardcoding the two built-ins.
func (a *Analyzer) Symbols() *symbols.Table {
	return a.symbols
}

func (a *Analyzer) analyzeFile(file *ast.File) {
	// Pass 1: declare every function. Duplicate names are errors; the
	// later declaration is not registered.
	for _, fn := range file.Functions {
		var paramTypes []symbols.Type
		for _, p := range fn.Parameters {
			paramTypes = append(paramTypes, symbols.TypeFromName(p.Type))
		}
		returnType := symbols.TypeFromName(fn.ReturnType)
		if !a.symbols.DeclareFunction(fn.Name.Lexeme, paramTypes, returnType, fn.Name.Position) {
			a.errors.Add(fn.Name.Position, "Function '%s' is already defined.", fn.Name.Lexeme)
		}
	}

	// Pass 2: check each function body.
	for _, fn := range file.Functions {
		a.analyzeFunction(fn)
	}
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDecl) {
	a.symbols.EnterScope()
	defer a.symbols.ExitScope()

	a.currentReturnType = symbols.TypeFromName(fn.ReturnType)

	for _, p := range fn.Parameters {
		typ := symbols.TypeFromName(p.Type)
		if typ == symbols.Unknown {
			a.errors.Add(p.Name.Position, "Unknown type '%s' for parameter '%s'.", p.Type, p.Name.Lexeme)
		}
		if !a.symbols.DeclareVariable(p.Name.Lexeme, typ, true, p.Name.Position) {
			a.errors.Add(p.Name.Position, "Parameter '%s' is already defined.", p.Name.Lexeme)
		}
	}

	a.analyzeBlock(fn.Body)
}

func (a *Analyzer) analyzeBlock(block *ast.BlockStmt) {
	for _, stmt := range block.Statements {
		a.analyzeStmt(stmt)
	}
}

func (a *Analyzer) analyzeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		a.symbols.EnterScope()
		a.analyzeBlock(s)
		a.symbols.ExitScope()

	case *ast.VarDeclStmt:
		a.analyzeVarDecl(s)

	case *ast.AssignmentStmt:
		a.analyzeAssignment(s)

	case *ast.IfStmt:
		if a.checkExpr(s.Condition) != symbols.Boolean {
			a.errors.Add(s.Condition.Pos(), "Condition of 'if' must be Boolean.")
		}
		a.analyzeStmt(s.Then)
		if s.Else != nil {
			a.analyzeStmt(s.Else)
		}

	case *ast.WhileStmt:
		if a.checkExpr(s.Condition) != symbols.Boolean {
			a.errors.Add(s.Condition.Pos(), "Condition of 'while' must be Boolean.")
		}
		a.loopDepth++
		a.analyzeStmt(s.Body)
		a.loopDepth--

	case *ast.ReturnStmt:
		retType := symbols.Unit
		pos := s.Keyword.Position
		if s.Value != nil {
			retType = a.checkExpr(s.Value)
			pos = s.Value.Pos()
		}
		if retType != a.currentReturnType {
			a.errors.Add(pos, "Return type mismatch. Expected %s, got %s.", a.currentReturnType, retType)
		}

	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.errors.Add(s.Keyword.Position, "'break' outside of a loop is not supported.")
		} else {
			a.errors.Add(s.Keyword.Position, "'break' is not supported.")
		}

	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.errors.Add(s.Keyword.Position, "'continue' outside of a loop is not supported.")
		} else {
			a.errors.Add(s.Keyword.Position, "'continue' is not supported.")
		}

	case *ast.ExprStmt:
		a.checkExpr(s.Expression)
	}
}

func (a *Analyzer) analyzeVarDecl(decl *ast.VarDeclStmt) {
	initType := a.checkExpr(decl.Initializer)

	declaredType := initType
	if decl.DeclaredType != "" {
		declaredType = symbols.TypeFromName(decl.DeclaredType)
	}

	if declaredType == symbols.Unknown {
		a.errors.Add(decl.Name.Position, "Unknown type '%s'.", decl.DeclaredType)
	} else if initType != declaredType {
		a.errors.Add(decl.Name.Position, "Type mismatch: declared %s but initialized with %s.", declaredType, initType)
	}

	if !a.symbols.DeclareVariable(decl.Name.Lexeme, declaredType, decl.Immutable, decl.Name.Position) {
		a.errors.Add(decl.Name.Position, "Variable '%s' is already defined in this scope.", decl.Name.Lexeme)
	}
}

func (a *Analyzer) analyzeAssignment(assign *ast.AssignmentStmt) {
	v, ok := a.symbols.LookupVariable(assign.Name.Lexeme)
	if !ok {
		a.errors.Add(assign.Name.Position, "Variable '%s' is not defined.", assign.Name.Lexeme)
		a.checkExpr(assign.Value)
		return
	}

	if v.Immutable {
		a.errors.Add(assign.Name.Position, "Cannot reassign 'val' variable '%s'.", assign.Name.Lexeme)
	}

	valType := a.checkExpr(assign.Value)
	if valType != v.Type {
		a.errors.Add(assign.Name.Position, "Type mismatch in assignment to '%s'. Expected %s, got %s.", assign.Name.Lexeme, v.Type, valType)
	}
}

func (a *Analyzer) checkExpr(expr ast.Expr) symbols.Type {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		return a.checkBinaryExpr(e)
	case *ast.UnaryExpr:
		return a.checkUnaryExpr(e)
	case *ast.LiteralExpr:
		return a.checkLiteralExpr(e)
	case *ast.VariableExpr:
		return a.checkVariableExpr(e)
	case *ast.CallExpr:
		return a.checkCallExpr(e)
	case *ast.GroupingExpr:
		return a.checkExpr(e.Inner)
	default:
		return symbols.Unknown
	}
}

func (a *Analyzer) checkBinaryExpr(e *ast.BinaryExpr) symbols.Type {
	left := a.checkExpr(e.Left)
	right := a.checkExpr(e.Right)

	switch e.Op.Kind {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent:
		if left == symbols.Int && right == symbols.Int {
			return symbols.Int
		}
		a.errors.Add(e.Op.Position, "Arithmetic operators require Int operands.")
		return symbols.Int

	case token.Equal, token.NotEqual:
		if left == right {
			return symbols.Boolean
		}
		a.errors.Add(e.Op.Position, "Equality operators require operands of the same type.")
		return symbols.Boolean

	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		if left == symbols.Int && right == symbols.Int {
			return symbols.Boolean
		}
		a.errors.Add(e.Op.Position, "Comparison operators require Int operands.")
		return symbols.Boolean

	case token.AndAnd, token.OrOr:
		if left == symbols.Boolean && right == symbols.Boolean {
			return symbols.Boolean
		}
		a.errors.Add(e.Op.Position, "Logical operators require Boolean operands.")
		return symbols.Boolean

	default:
		return symbols.Unknown
	}
}

func (a *Analyzer) checkUnaryExpr(e *ast.UnaryExpr) symbols.Type {
	operand := a.checkExpr(e.Operand)

	switch e.Op.Kind {
	case token.Minus:
		if operand == symbols.Int {
			return symbols.Int
		}
		a.errors.Add(e.Op.Position, "Unary minus requires Int operand.")
		return symbols.Int
	case token.Not:
		if operand == symbols.Boolean {
			return symbols.Boolean
		}
		a.errors.Add(e.Op.Position, "Unary NOT requires Boolean operand.")
		return symbols.Boolean
	default:
		return symbols.Unknown
	}
}

func (a *Analyzer) checkLiteralExpr(e *ast.LiteralExpr) symbols.Type {
	switch e.Token.Kind {
	case token.Integer:
		return symbols.Int
	case token.Float:
		return symbols.Float
	case token.String:
		return symbols.String
	case token.True, token.False:
		return symbols.Boolean
	case token.Null:
		return symbols.Unit
	default:
		return symbols.Unknown
	}
}

func (a *Analyzer) checkVariableExpr(e *ast.VariableExpr) symbols.Type {
	v, ok := a.symbols.LookupVariable(e.Name.Lexeme)
	if !ok {
		a.errors.Add(e.Name.Position, "Variable '%s' is not defined.", e.Name.Lexeme)
		return symbols.Unknown
	}
	return v.Type
}

func (a *Analyzer) checkCallExpr(e *ast.CallExpr) symbols.Type {
	fn, ok := a.symbols.LookupFunction(e.Callee.Lexeme)
	if !ok {
		a.errors.Add(e.Callee.Position, "Function '%s' is not defined.", e.Callee.Lexeme)
		for _, arg := range e.Args {
			a.checkExpr(arg)
		}
		return symbols.Unknown
	}

	if len(e.Args) != len(fn.ParameterTypes) {
		a.errors.Add(e.Callee.Position, "Function '%s' expects %d arguments, but got %d.", e.Callee.Lexeme, len(fn.ParameterTypes), len(e.Args))
		for _, arg := range e.Args {
			a.checkExpr(arg)
		}
	} else {
		for i, arg := range e.Args {
			argType := a.checkExpr(arg)
			if argType != fn.ParameterTypes[i] {
				a.errors.Add(e.Callee.Position, "Argument %d of '%s' expects %s, but got %s.", i+1, e.Callee.Lexeme, fn.ParameterTypes[i], argType)
			}
		}
	}

	return fn.ReturnType
}
