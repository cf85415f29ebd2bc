// Package irgen lowers a type-checked *ast.File into SSA pkg/ir form.
// It is an environment-threading generator with no separate mem2reg
// pass: phi placement happens inline at every branch point the
// generator itself visits.
//
// Generate assumes its input already passed pkg/sema; it is an internal
// error (not a user-facing diagnostic) for a variable or function lookup
// to fail here.
package irgen

import (
	"fmt"
	"sort"

	"github.com/nyxlang/nyxc/pkg/ast"
	"github.com/nyxlang/nyxc/pkg/ir"
	"github.com/nyxlang/nyxc/pkg/symbols"
	"github.com/nyxlang/nyxc/pkg/token"
)

// environment maps a source variable name to its current SSA value. It
// is copied, never aliased, at every branch point.
type environment map[string]ir.Value

func (e environment) clone() environment {
	cp := make(environment, len(e))
	for k, v := range e {
		cp[k] = v
	}
	return cp
}

// Generator holds the per-module state threaded through one Generate
// call: the instruction builder, the module under construction, the
// symbol table produced by pkg/sema (for call signature resolution), a
// name->*ir.Function index built before any body is lowered (so a call
// can reference its callee's FunctionRef regardless of declaration
// order), and the current environment.
type Generator struct {
	builder   *ir.Builder
	module    *ir.Module
	symbols   *symbols.Table
	functions map[string]*ir.Function
	env       environment
}

// New constructs a Generator. symTable must be the table pkg/sema
// populated while type-checking the same file that will be passed to
// Generate.
func New(symTable *symbols.Table) *Generator {
	return &Generator{
		builder: ir.NewBuilder(),
		module:  &ir.Module{},
		symbols: symTable,
	}
}

// internalError signals input the generator cannot lower: a name
// pkg/sema should have already rejected, or a type or literal (Float,
// String, null) with no IR representation. It is
// recovered in Generate and turned into a returned error, mirroring
// pkg/parser's panic/recover ParseError pattern.
type internalError struct {
	pos token.Position
	msg string
}

func (e *internalError) Error() string {
	return e.pos.WrapError(fmt.Errorf("%s", e.msg)).Error()
}

func (g *Generator) fail(pos token.Position, format string, args ...any) {
	panic(&internalError{pos: pos, msg: fmt.Sprintf(format, args...)})
}

// Generate lowers file to a pkg/ir Module, one Function per top-level
// declaration.
func Generate(file *ast.File, symTable *symbols.Table) (mod *ir.Module, err error) {
	g := New(symTable)
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*internalError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()
	g.declareFunctions(file)
	for _, fn := range file.Functions {
		g.visitFunction(fn)
	}
	return g.module, nil
}

// builtinSignatures lists the runtime-provided functions every program
// can call without declaring them.
var builtinSignatures = []string{"print_i32", "print_bool"}

// declareFunctions creates every callable's *ir.Function up front and
// indexes it by name, before any function body is lowered. A call site
// can then build a FunctionRef to its callee regardless of whether that
// callee is declared earlier or later in the file, or is a built-in with
// no body of its own. User-declared functions are also added to the
// module here, in file order; built-ins are indexed but never added to
// the module, since they have no IR body to print.
func (g *Generator) declareFunctions(file *ast.File) {
	g.functions = make(map[string]*ir.Function)

	for _, name := range builtinSignatures {
		sig, ok := g.symbols.LookupFunction(name)
		if !ok {
			g.fail(token.Position{}, "internal: built-in function '%s' missing from symbol table", name)
		}
		var params []ir.Param
		for i, pt := range sig.ParameterTypes {
			params = append(params, ir.Param{Name: fmt.Sprintf("arg%d", i), Typ: irType(pt, sig.Position)})
		}
		g.functions[name] = ir.NewFunction(name, irType(sig.ReturnType, sig.Position), params)
	}

	for _, node := range file.Functions {
		var params []ir.Param
		for _, p := range node.Parameters {
			params = append(params, ir.Param{Name: p.Name.Lexeme, Typ: irType(symbols.TypeFromName(p.Type), p.Name.Position)})
		}
		returnType := irType(symbols.TypeFromName(node.ReturnType), node.Name.Position)
		fn := ir.NewFunction(node.Name.Lexeme, returnType, params)
		g.functions[node.Name.Lexeme] = fn
		g.module.AddFunction(fn)
	}
}

// irType maps a source-level symbols.Type onto the IR's closed lattice,
// rejecting Float and String with a clear, position-tagged error rather
// than crashing on an unmapped type: the IR has no representation for
// either.
func irType(t symbols.Type, pos token.Position) ir.Type {
	switch t {
	case symbols.Int:
		return ir.I32
	case symbols.Boolean:
		return ir.I1
	case symbols.Unit:
		return ir.Void
	default:
		panic(&internalError{pos: pos, msg: fmt.Sprintf("type %s has no IR representation", t)})
	}
}

func (g *Generator) visitFunction(node *ast.FunctionDecl) {
	fn := g.functions[node.Name.Lexeme]
	g.builder.SetFunction(fn)

	entry := fn.CreateBlock("entry")
	g.builder.SetInsertPoint(entry)

	g.env = make(environment)
	for _, p := range fn.Params {
		g.env[p.Name] = p.Arg
	}

	g.visitBlock(node.Body)

	if !g.builder.InsertBlock().Terminated() {
		if fn.ReturnType == ir.Void {
			g.builder.CreateRet(nil)
		} else {
			g.builder.CreateRet(ir.Constant{Typ: fn.ReturnType, Val: 0})
		}
	}
}

func (g *Generator) visitBlock(block *ast.BlockStmt) {
	for _, stmt := range block.Statements {
		g.visitStmt(stmt)
	}
}

func (g *Generator) visitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		g.visitBlock(s)

	case *ast.VarDeclStmt:
		g.env[s.Name.Lexeme] = g.visitExpr(s.Initializer)

	case *ast.AssignmentStmt:
		g.env[s.Name.Lexeme] = g.visitExpr(s.Value)

	case *ast.IfStmt:
		g.visitIf(s)

	case *ast.WhileStmt:
		g.visitWhile(s)

	case *ast.ReturnStmt:
		var val ir.Value
		if s.Value != nil {
			val = g.visitExpr(s.Value)
		}
		g.builder.CreateRet(val)

	case *ast.ExprStmt:
		g.visitExpr(s.Expression)

	case *ast.BreakStmt, *ast.ContinueStmt:
		// Rejected during semantic analysis; Generate is never called on a
		// file containing one.
	}
}

// visitIf lowers an if/else into a three-block diamond and phi-merges the
// environments produced by the two branches.
func (g *Generator) visitIf(s *ast.IfStmt) {
	cond := g.visitExpr(s.Condition)
	fn := g.builder.InsertBlock().Fn

	thenBB := fn.CreateBlock("if.then")
	elseBB := fn.CreateBlock("if.else")
	mergeBB := fn.CreateBlock("if.merge")
	g.builder.CreateCondBr(cond, thenBB, elseBB)

	envBefore := g.env.clone()

	g.builder.SetInsertPoint(thenBB)
	g.visitStmt(s.Then)
	thenOutBB := g.builder.InsertBlock()
	envThen := g.env
	if !thenOutBB.Terminated() {
		g.builder.CreateBr(mergeBB)
	}

	g.builder.SetInsertPoint(elseBB)
	g.env = envBefore
	if s.Else != nil {
		g.visitStmt(s.Else)
	}
	elseOutBB := g.builder.InsertBlock()
	envElse := g.env
	if !elseOutBB.Terminated() {
		g.builder.CreateBr(mergeBB)
	}

	g.builder.SetInsertPoint(mergeBB)
	g.phiMerge(mergeBB, []predecessor{{thenOutBB, envThen}, {elseOutBB, envElse}})
}

// predecessor is one (block, environment-at-exit) pair feeding phiMerge.
type predecessor struct {
	block *ir.BasicBlock
	env   environment
}

// phiMerge computes the environment live at mergeBB: predecessors
// terminated by `ret` contribute nothing (their environment never
// reaches mergeBB), a variable with one surviving value is carried
// through directly, and a variable with disagreeing values gets a phi
// with one incoming per predecessor that defines it.
func (g *Generator) phiMerge(mergeBB *ir.BasicBlock, preds []predecessor) {
	names := map[string]bool{}
	live := func(p predecessor) bool {
		term := p.block.Terminator()
		return !(term != nil && term.Kind() == ir.Ret)
	}
	for _, p := range preds {
		if !live(p) {
			continue
		}
		for name := range p.env {
			names[name] = true
		}
	}

	sortedNames := make([]string, 0, len(names))
	for name := range names {
		sortedNames = append(sortedNames, name)
	}
	sort.Strings(sortedNames)

	for _, name := range sortedNames {
		type incoming struct {
			block *ir.BasicBlock
			val   ir.Value
		}
		var incomings []incoming
		var first ir.Value
		allSame := true
		for _, p := range preds {
			if !live(p) {
				continue
			}
			val, ok := p.env[name]
			if !ok {
				continue
			}
			incomings = append(incomings, incoming{p.block, val})
			if first == nil {
				first = val
			} else if val != first {
				allSame = false
			}
		}
		if len(incomings) == 0 {
			continue
		}
		if allSame {
			g.env[name] = first
			continue
		}
		phi := g.builder.CreatePhi(first.Type())
		for _, inc := range incomings {
			phi.AddIncoming(inc.block, inc.val)
		}
		g.env[name] = phi
	}
}

// visitWhile lowers a while loop into header/body/exit blocks. Every
// variable live in the preheader environment gets a header phi created
// up front (one incoming from the preheader); after the body is lowered,
// each phi's loop-back incoming is backfilled from the post-body
// environment.
func (g *Generator) visitWhile(s *ast.WhileStmt) {
	fn := g.builder.InsertBlock().Fn
	preheaderBB := g.builder.InsertBlock()
	headerBB := fn.CreateBlock("while.header")
	bodyBB := fn.CreateBlock("while.body")
	exitBB := fn.CreateBlock("while.exit")

	g.builder.CreateBr(headerBB)
	g.builder.SetInsertPoint(headerBB)

	envBeforeLoop := g.env.clone()
	headerPhis := make(map[string]*ir.PhiInst)
	liveNames := make([]string, 0, len(g.env))
	for name := range g.env {
		liveNames = append(liveNames, name)
	}
	sort.Strings(liveNames)
	for _, name := range liveNames {
		val := g.env[name]
		phi := g.builder.CreatePhi(val.Type())
		phi.AddIncoming(preheaderBB, val)
		headerPhis[name] = phi
		g.env[name] = phi
	}

	cond := g.visitExpr(s.Condition)
	g.builder.CreateCondBr(cond, bodyBB, exitBB)

	g.builder.SetInsertPoint(bodyBB)
	g.visitStmt(s.Body)
	bodyOutBB := g.builder.InsertBlock()
	if !bodyOutBB.Terminated() {
		g.builder.CreateBr(headerBB)
	}

	envAfterBody := g.env
	for name, phi := range headerPhis {
		phi.AddIncoming(bodyOutBB, envAfterBody[name])
	}

	g.builder.SetInsertPoint(exitBB)
	g.env = envBeforeLoop
	for name, phi := range headerPhis {
		g.env[name] = phi
	}
}

func (g *Generator) visitExpr(expr ast.Expr) ir.Value {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		return g.visitBinaryExpr(e)
	case *ast.UnaryExpr:
		return g.visitUnaryExpr(e)
	case *ast.LiteralExpr:
		return g.visitLiteralExpr(e)
	case *ast.VariableExpr:
		return g.visitVariableExpr(e)
	case *ast.CallExpr:
		return g.visitCallExpr(e)
	case *ast.GroupingExpr:
		return g.visitExpr(e.Inner)
	default:
		g.fail(expr.Pos(), "unhandled expression node")
		return nil
	}
}

// visitBinaryExpr lowers `&&`/`||` via short-circuiting control flow and
// every other binary operator directly to one ir.Builder call.
func (g *Generator) visitBinaryExpr(e *ast.BinaryExpr) ir.Value {
	switch e.Op.Kind {
	case token.AndAnd:
		return g.visitShortCircuit(e, false)
	case token.OrOr:
		return g.visitShortCircuit(e, true)
	}

	l := g.visitExpr(e.Left)
	r := g.visitExpr(e.Right)

	switch e.Op.Kind {
	case token.Plus:
		return g.builder.CreateAdd(l, r)
	case token.Minus:
		return g.builder.CreateSub(l, r)
	case token.Star:
		return g.builder.CreateMul(l, r)
	case token.Slash:
		return g.builder.CreateSDiv(l, r)
	case token.Percent:
		return g.builder.CreateSRem(l, r)
	case token.Equal:
		return g.builder.CreateICmp(ir.ICmpEq, l, r)
	case token.NotEqual:
		return g.builder.CreateICmp(ir.ICmpNe, l, r)
	case token.Less:
		return g.builder.CreateICmp(ir.ICmpLt, l, r)
	case token.LessEqual:
		return g.builder.CreateICmp(ir.ICmpLe, l, r)
	case token.Greater:
		return g.builder.CreateICmp(ir.ICmpGt, l, r)
	case token.GreaterEqual:
		return g.builder.CreateICmp(ir.ICmpGe, l, r)
	default:
		g.fail(e.Pos(), "unhandled binary operator %s", e.Op.Kind)
		return nil
	}
}

// visitShortCircuit lowers `a && b` (isOr=false) or `a || b` (isOr=true):
// the left operand is always evaluated; the right operand is only
// evaluated when it can change the result, branching into a dedicated
// rhs block and merging with an i1 phi.
func (g *Generator) visitShortCircuit(e *ast.BinaryExpr, isOr bool) ir.Value {
	startBB := g.builder.InsertBlock()
	l := g.visitExpr(e.Left)
	fn := startBB.Fn

	label := "and"
	if isOr {
		label = "or"
	}
	evalR := fn.CreateBlock(label + ".rhs")
	merge := fn.CreateBlock(label + ".merge")

	if isOr {
		g.builder.CreateCondBr(l, merge, evalR)
	} else {
		g.builder.CreateCondBr(l, evalR, merge)
	}

	g.builder.SetInsertPoint(evalR)
	r := g.visitExpr(e.Right)
	rOutBB := g.builder.InsertBlock()
	g.builder.CreateBr(merge)

	g.builder.SetInsertPoint(merge)
	phi := g.builder.CreatePhi(ir.I1)
	phi.AddIncoming(startBB, ir.ConstBool(isOr))
	phi.AddIncoming(rOutBB, r)
	return phi
}

func (g *Generator) visitUnaryExpr(e *ast.UnaryExpr) ir.Value {
	operand := g.visitExpr(e.Operand)
	switch e.Op.Kind {
	case token.Not:
		return g.builder.CreateNot(operand)
	case token.Minus:
		return g.builder.CreateSub(ir.ConstInt(0), operand)
	default:
		g.fail(e.Pos(), "unhandled unary operator %s", e.Op.Kind)
		return nil
	}
}

func (g *Generator) visitLiteralExpr(e *ast.LiteralExpr) ir.Value {
	switch e.Token.Kind {
	case token.Integer:
		var v int32
		if _, err := fmt.Sscan(e.Token.Lexeme, &v); err != nil {
			g.fail(e.Pos(), "integer literal '%s' does not fit in a 32-bit int: %s", e.Token.Lexeme, err)
		}
		return ir.ConstInt(v)
	case token.True:
		return ir.ConstBool(true)
	case token.False:
		return ir.ConstBool(false)
	default:
		g.fail(e.Pos(), "literal of kind %s has no IR representation", e.Token.Kind)
		return nil
	}
}

func (g *Generator) visitVariableExpr(e *ast.VariableExpr) ir.Value {
	if v, ok := g.env[e.Name.Lexeme]; ok {
		return v
	}
	g.fail(e.Pos(), "internal: undefined variable '%s' reached IR generation", e.Name.Lexeme)
	return nil
}

// visitCallExpr resolves the callee against the name->*ir.Function index
// declareFunctions built and calls it through a FunctionRef, rather than
// a bare name string.
func (g *Generator) visitCallExpr(e *ast.CallExpr) ir.Value {
	var args []ir.Value
	for _, argExpr := range e.Args {
		args = append(args, g.visitExpr(argExpr))
	}

	fn, ok := g.functions[e.Callee.Lexeme]
	if !ok {
		g.fail(e.Pos(), "internal: undefined function '%s' reached IR generation", e.Callee.Lexeme)
		return nil
	}

	return g.builder.CreateCall(fn.ReturnType, ir.FunctionRef{Fn: fn}, args)
}
