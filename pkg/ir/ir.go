// Package ir defines a typed, SSA-form intermediate representation:
// values, instructions, basic blocks, functions, and a module, plus a
// textual pretty-printer used as the --dump-ir format.
package ir

import "strconv"

// Type is the IR's tiny, closed type lattice: I32, I1, Void.
// Source-level Float/String are rejected before reaching this package
// (see pkg/irgen's checks).
type Type int

const (
	Void Type = iota
	I32
	I1
)

func (t Type) String() string {
	switch t {
	case I32:
		return "i32"
	case I1:
		return "i1"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// Value is any SSA operand: a Constant, a function Argument, an
// Instruction result, or a Function referenced by name at a call site.
type Value interface {
	Name() string
	Type() Type
}

// Constant is a value-typed I32 or I1 literal. Constants have no
// identity: two Constants with equal fields are interchangeable and may
// be freely duplicated.
type Constant struct {
	Typ Type
	Val int32
}

func (c Constant) Name() string { return strconv.FormatInt(int64(c.Val), 10) }
func (c Constant) Type() Type   { return c.Typ }

// ConstInt and ConstBool are convenience constructors used throughout
// pkg/irgen.
func ConstInt(v int32) Constant  { return Constant{Typ: I32, Val: v} }
func ConstBool(b bool) Constant {
	if b {
		return Constant{Typ: I1, Val: 1}
	}
	return Constant{Typ: I1, Val: 0}
}

// Argument is the SSA definition of one function parameter.
type Argument struct {
	ArgName string
	Typ     Type
}

func (a *Argument) Name() string { return "%" + a.ArgName }
func (a *Argument) Type() Type   { return a.Typ }

// FunctionRef lets a *Function stand in as a named module-level operand
// for a direct call.
type FunctionRef struct {
	Fn *Function
}

func (f FunctionRef) Name() string { return "@" + f.Fn.Name }
func (f FunctionRef) Type() Type   { return f.Fn.ReturnType }
