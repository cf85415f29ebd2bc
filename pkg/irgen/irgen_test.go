package irgen_test

import (
	"testing"

	"github.com/nyxlang/nyxc/pkg/irgen"
	"github.com/nyxlang/nyxc/pkg/parser"
	"github.com/nyxlang/nyxc/pkg/sema"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	file, err := parser.Parse(src)
	require.NoError(t, err)

	a := sema.New()
	ok, diags := a.Run(file)
	require.True(t, ok, "%v", diags)

	mod, err := irgen.Generate(file, a.Symbols())
	require.NoError(t, err)
	return mod.Dump()
}

func TestGenerate_ArithmeticPrecedence(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `fun f(): Int { return 1 + 2 * 3 }`)
	r.Contains(dump, "= mul i32 2, 3")
	r.Contains(dump, "= add i32 1,")
}

func TestGenerate_IfElsePhiMerge(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `
		fun f(a: Boolean): Int {
			var x = 1
			if (a) {
				x = 2
			} else {
				x = 3
			}
			return x
		}`)
	r.Contains(dump, "if.then:")
	r.Contains(dump, "if.else:")
	r.Contains(dump, "if.merge:")
	r.Contains(dump, "= phi i32 [ 2, %if.then ], [ 3, %if.else ]")
	r.Contains(dump, "ret i32 %")
}

func TestGenerate_IfWithoutElseOnlyPhisWhenBothSidesLive(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `
		fun f(a: Boolean): Int {
			var x = 1
			if (a) {
				x = 2
			}
			return x
		}`)
	r.Contains(dump, "= phi i32 [ 2, %if.then ], [ 1, %if.else ]")
}

func TestGenerate_SingleBranchReturnDoesNotForcePhi(t *testing.T) {
	r := require.New(t)

	// The then-branch returns, so it contributes nothing to the merge:
	// `x` flows through unchanged from the else branch with no phi.
	dump := generate(t, `
		fun f(a: Boolean): Int {
			var x = 1
			if (a) {
				return 0
			} else {
				x = 5
			}
			return x
		}`)
	r.NotContains(dump, "phi")
}

func TestGenerate_ShortCircuitAnd(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `fun f(a: Boolean, b: Boolean): Boolean { return a && b }`)
	r.Contains(dump, "and.rhs:")
	r.Contains(dump, "and.merge:")
	r.Contains(dump, "condbr i1 %a, label %and.rhs, label %and.merge")
	r.Contains(dump, "= phi i1 [ 0, %entry ], [ %b, %and.rhs ]")
}

func TestGenerate_ShortCircuitOr(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `fun f(a: Boolean, b: Boolean): Boolean { return a || b }`)
	r.Contains(dump, "or.rhs:")
	r.Contains(dump, "condbr i1 %a, label %or.merge, label %or.rhs")
	r.Contains(dump, "= phi i1 [ 1, %entry ], [ %b, %or.rhs ]")
}

func TestGenerate_WhileLoopHeaderPhi(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `
		fun f(): Int {
			var i = 0
			while (i < 10) {
				i = i + 1
			}
			return i
		}`)
	r.Contains(dump, "while.header:")
	r.Contains(dump, "while.body:")
	r.Contains(dump, "while.exit:")
	r.Contains(dump, "= phi i32 [ 0, %entry ], [ %")
	r.Contains(dump, "br label %while.header")
}

func TestGenerate_VoidFunctionGetsImplicitRetVoid(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `fun f() { print_i32(1) }`)
	r.Contains(dump, "ret void")
}

func TestGenerate_UnusedFunctionGetsImplicitZeroReturn(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `fun f(): Int { }`)
	r.Contains(dump, "ret i32 0")
}

func TestGenerate_CallReturnTypeResolvedFromSymbolTable(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `
		fun helper(): Int { return 42 }
		fun main() { var x = helper() }`)
	r.Contains(dump, "= call i32 @helper()")
}

func TestGenerate_UnaryMinusLowersToSubFromZero(t *testing.T) {
	r := require.New(t)

	dump := generate(t, `fun f(): Int { return -5 }`)
	r.Contains(dump, "= sub i32 0, 5")
}
