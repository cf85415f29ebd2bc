package ir_test

import (
	"testing"

	"github.com/nyxlang/nyxc/pkg/ir"
	"github.com/stretchr/testify/require"
)

func TestBuilder_StraightLineFunction(t *testing.T) {
	r := require.New(t)

	fn := ir.NewFunction("add", ir.I32, []ir.Param{
		{Name: "a", Typ: ir.I32},
		{Name: "b", Typ: ir.I32},
	})
	entry := fn.CreateBlock("entry")

	b := ir.NewBuilder()
	b.SetInsertPoint(entry)
	sum := b.CreateAdd(fn.Params[0].Arg, fn.Params[1].Arg)
	b.CreateRet(sum)

	mod := &ir.Module{}
	mod.AddFunction(fn)

	want := "define i32 @add(i32 %a, i32 %b) {\n" +
		"entry:\n" +
		"  %0 = add i32 %a, %b\n" +
		"  ret i32 %0\n" +
		"}\n\n"
	r.Equal(want, mod.Dump())
}

func TestBuilder_VoidCallConsumesNoID(t *testing.T) {
	r := require.New(t)

	fn := ir.NewFunction("main", ir.Void, nil)
	entry := fn.CreateBlock("entry")
	printI32 := ir.NewFunction("print_i32", ir.Void, []ir.Param{{Name: "v", Typ: ir.I32}})

	b := ir.NewBuilder()
	b.SetInsertPoint(entry)
	b.CreateCall(ir.Void, ir.FunctionRef{Fn: printI32}, []ir.Value{ir.ConstInt(42)})
	next := b.CreateAdd(ir.ConstInt(1), ir.ConstInt(2))
	b.CreateRet(nil)

	r.Equal("%0", next.Name())

	mod := &ir.Module{}
	mod.AddFunction(fn)
	want := "define void @main() {\n" +
		"entry:\n" +
		"  call void @print_i32(i32 42)\n" +
		"  %0 = add i32 1, 2\n" +
		"  ret void\n" +
		"}\n\n"
	r.Equal(want, mod.Dump())
}

func TestBuilder_PhiDump(t *testing.T) {
	r := require.New(t)

	fn := ir.NewFunction("choose", ir.I32, nil)
	entry := fn.CreateBlock("entry")
	thenBB := fn.CreateBlock("then")
	elseBB := fn.CreateBlock("else")
	merge := fn.CreateBlock("merge")

	b := ir.NewBuilder()
	b.SetInsertPoint(entry)
	b.CreateCondBr(ir.ConstBool(true), thenBB, elseBB)

	b.SetInsertPoint(thenBB)
	b.CreateBr(merge)

	b.SetInsertPoint(elseBB)
	b.CreateBr(merge)

	b.SetInsertPoint(merge)
	phi := b.CreatePhi(ir.I32)
	phi.AddIncoming(thenBB, ir.ConstInt(1))
	phi.AddIncoming(elseBB, ir.ConstInt(2))
	b.CreateRet(phi)

	r.True(merge.Terminated())
	r.False(thenBB.Terminator() == nil)

	mod := &ir.Module{}
	mod.AddFunction(fn)
	dump := mod.Dump()
	r.Contains(dump, "%0 = phi i32 [ 1, %then ], [ 2, %else ]")
	r.Contains(dump, "condbr i1 1, label %then, label %else")
}
