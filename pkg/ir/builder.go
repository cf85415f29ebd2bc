package ir

// Builder keeps the current insertion block for one function and mints
// fresh instruction ids. pkg/irgen holds one Builder and switches it
// across functions as it lowers each one in turn.
type Builder struct {
	current *Function
	block   *BasicBlock
}

// NewBuilder constructs a Builder with no insertion point set; callers
// must SetInsertPoint before emitting.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetFunction switches the builder to a new owning function, resetting
// its id counter scope (each Function carries its own nextID).
func (b *Builder) SetFunction(fn *Function) {
	b.current = fn
}

// SetInsertPoint moves the insertion cursor to bb.
func (b *Builder) SetInsertPoint(bb *BasicBlock) {
	b.block = bb
	b.current = bb.Fn
}

// InsertBlock returns the current insertion block.
func (b *Builder) InsertBlock() *BasicBlock {
	return b.block
}

func (b *Builder) emit(inst Instruction) Instruction {
	b.block.Append(inst)
	return inst
}

func (b *Builder) binary(op OpKind, resultType Type, l, r Value) Value {
	inst := &BinaryInst{base: base{id: b.current.nextInstID(), typ: resultType}, OpKind: op, Left: l, Right: r}
	return b.emit(inst)
}

func (b *Builder) CreateAdd(l, r Value) Value  { return b.binary(Add, I32, l, r) }
func (b *Builder) CreateSub(l, r Value) Value  { return b.binary(Sub, I32, l, r) }
func (b *Builder) CreateMul(l, r Value) Value  { return b.binary(Mul, I32, l, r) }
func (b *Builder) CreateSDiv(l, r Value) Value { return b.binary(SDiv, I32, l, r) }
func (b *Builder) CreateSRem(l, r Value) Value { return b.binary(SRem, I32, l, r) }

// CreateICmp emits a signed integer comparison; kind must be one of the
// ICmp* OpKinds.
func (b *Builder) CreateICmp(kind OpKind, l, r Value) Value {
	return b.binary(kind, I1, l, r)
}

// CreateNot emits a Boolean negation.
func (b *Builder) CreateNot(operand Value) Value {
	inst := &UnaryInst{base: base{id: b.current.nextInstID(), typ: I1}, Operand: operand}
	return b.emit(inst)
}

// CreatePhi emits an empty phi of the given type; callers fill it in via
// PhiInst.AddIncoming, immediately or later by backpatching.
func (b *Builder) CreatePhi(typ Type) *PhiInst {
	inst := &PhiInst{base: base{id: b.current.nextInstID(), typ: typ}}
	b.emit(inst)
	return inst
}

// CreateCall emits a call to callee, normally a FunctionRef. A
// Void-returning call mints no fresh id, since it has no result to name.
func (b *Builder) CreateCall(returnType Type, callee Value, args []Value) Value {
	id := 0
	if returnType != Void {
		id = b.current.nextInstID()
	}
	inst := &CallInst{base: base{id: id, typ: returnType}, Callee: callee, Args: args}
	return b.emit(inst)
}

// CreateBr emits an unconditional branch terminator.
func (b *Builder) CreateBr(target *BasicBlock) {
	b.emit(&BranchInst{base: base{typ: Void}, Target: target})
}

// CreateCondBr emits a conditional branch terminator.
func (b *Builder) CreateCondBr(cond Value, then, els *BasicBlock) {
	b.emit(&CondBranchInst{base: base{typ: Void}, Condition: cond, Then: then, Else: els})
}

// CreateRet emits a return terminator; val is nil for `ret void`.
func (b *Builder) CreateRet(val Value) {
	b.emit(&ReturnInst{base: base{typ: Void}, Value: val})
}
