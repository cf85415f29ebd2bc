package ir

import "strings"

// Dump renders the module as the textual form --dump-ir emits: one
// `define` block per function, one label per basic block, one indented
// instruction line per instruction.
func (m *Module) Dump() string {
	var b strings.Builder
	for _, fn := range m.Functions {
		fn.dump(&b)
	}
	return b.String()
}

func (fn *Function) dump(b *strings.Builder) {
	b.WriteString("define ")
	b.WriteString(fn.ReturnType.String())
	b.WriteString(" @")
	b.WriteString(fn.Name)
	b.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Typ.String())
		b.WriteString(" %")
		b.WriteString(p.Name)
	}
	b.WriteString(") {\n")
	for _, block := range fn.Blocks {
		b.WriteString(block.Label)
		b.WriteString(":\n")
		for _, inst := range block.Instructions {
			b.WriteString("  ")
			b.WriteString(inst.Dump())
			b.WriteString("\n")
		}
	}
	b.WriteString("}\n\n")
}
