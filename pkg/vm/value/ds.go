package value

import "github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"

// EntKind tags the variant held by an EntIndex.
type EntKind byte

const (
	// EntLocal is a slot in the current frame.
	EntLocal EntKind = iota
	// EntUpvalue is captured by the current closure.
	EntUpvalue
	// EntPackageMember is a member of the current package.
	EntPackageMember
	// EntConst is an inlined constant in the current function's pool.
	EntConst
	// EntBuiltIn is a compile-time name mapping to a single opcode.
	EntBuiltIn
	// EntBlank is the write-only sink for "_".
	EntBlank
)

// EntIndex describes where an identifier's value lives at runtime.
type EntIndex struct {
	Kind EntKind
	// Index is meaningful for EntLocal, EntUpvalue, EntPackageMember and
	// EntConst.
	Index int16
	// Op is meaningful for EntBuiltIn.
	Op opcode.Opcode
}

// Blank is the sentinel EntIndex for the blank identifier.
var Blank = EntIndex{Kind: EntBlank}

// BuiltIn constructs an EntIndex naming a single built-in opcode.
func BuiltIn(op opcode.Opcode) EntIndex { return EntIndex{Kind: EntBuiltIn, Op: op} }

// encodeEntIndex packs kind into the top 3 bits of a signed 16-bit word and
// the index into the low 13; it is how LOAD's single data word carries both
// pieces of information. EntBuiltIn never reaches LOAD (EmitLoad emits its
// opcode directly) and EmitLoad rejects EntBlank, but EmitStore does encode
// EntBlank for a store into "_". Kinds 4 and above set the word's sign bit,
// so decodeEntIndex reads the kind back with an unsigned shift.
func encodeEntIndex(idx EntIndex) int16 {
	if idx.Index < 0 || idx.Index >= 1<<13 {
		panic("entity index out of encodable range")
	}
	return int16(idx.Kind)<<13 | idx.Index
}

func decodeEntIndex(w int16) EntIndex {
	return EntIndex{Kind: EntKind(uint16(w) >> 13), Index: w & 0x1fff}
}

// UpValue is either Open (still referencing the enclosing frame's slot, the
// only variant the generator ever produces) or Closed (captured by value
// after the enclosing frame returned, produced by the VM at runtime).
type UpValue struct {
	IsOpen bool

	// Open
	OwnerFunc  FunctionKey
	OwnerIndex EntIndex

	// Closed
	Value Value
}

// OpenUpValue constructs an Open upvalue referencing slot idx of the
// function owner.
func OpenUpValue(owner FunctionKey, idx EntIndex) UpValue {
	return UpValue{IsOpen: true, OwnerFunc: owner, OwnerIndex: idx}
}

// LHSKind tags the variant held by a LeftHandSide.
type LHSKind byte

const (
	// LHSPrimitive is a plain identifier target.
	LHSPrimitive LHSKind = iota
	// LHSIndexSel is an index- or selector-based target; [container, key]
	// must already be on the stack.
	LHSIndexSel
	// LHSDeref is a pointer target; [pointer] must already be on the stack.
	LHSDeref
)

// LeftHandSide describes a single assignment target. Offset is a
// stack-relative position computed at emission time; it starts out as a
// placeholder (0) while the LHS list is being built and is resolved to its
// final value before a store is emitted -- see the assignment lowering in
// 4.4 of the design.
type LeftHandSide struct {
	Kind LHSKind
	// Ent is meaningful for LHSPrimitive.
	Ent EntIndex
	// Offset is meaningful for LHSIndexSel and LHSDeref: the stack offset
	// (negative, counting from the top) of the container/pointer word(s).
	Offset int16
}

// Primitive constructs a LHSPrimitive target.
func Primitive(ent EntIndex) LeftHandSide { return LeftHandSide{Kind: LHSPrimitive, Ent: ent} }

// IndexSelExpr constructs a LHSIndexSel target at the given stack offset.
func IndexSelExpr(offset int16) LeftHandSide {
	return LeftHandSide{Kind: LHSIndexSel, Offset: offset}
}

// Deref constructs a LHSDeref target at the given stack offset.
func Deref(offset int16) LeftHandSide { return LeftHandSide{Kind: LHSDeref, Offset: offset} }

// StackWords returns how many stack words of LHS-preparation this target
// consumes: 0 for a bare identifier, 2 for [container, key], 1 for
// [pointer].
func (l LeftHandSide) StackWords() int {
	switch l.Kind {
	case LHSIndexSel:
		return 2
	case LHSDeref:
		return 1
	default:
		return 0
	}
}

// noOp is the sentinel written in STORE's op data word when the store is a
// plain assignment rather than a compound op=.
const noOp = int16(-1)

// EmitStore emits a STORE targeting lhs. valOff is the stack offset
// (relative to the top, negative) of the value to store. If op is non-nil
// the store reads the existing value, combines it with the pushed value
// using op, and writes the result back -- used for op= and ++/--.
func (f *Function) EmitStore(lhs LeftHandSide, valOff int16, op *opcode.Opcode) {
	f.EmitCode(opcode.STORE)
	switch lhs.Kind {
	case LHSPrimitive:
		f.EmitData(int16(0))
		f.EmitData(encodeEntIndex(lhs.Ent))
	case LHSIndexSel:
		f.EmitData(int16(1))
		f.EmitData(lhs.Offset)
	case LHSDeref:
		f.EmitData(int16(2))
		f.EmitData(lhs.Offset)
	}
	f.EmitData(valOff)
	if op != nil {
		f.EmitData(int16(*op))
	} else {
		f.EmitData(noOp)
	}
}

// EmitPop appends a POP.
func (f *Function) EmitPop() { f.EmitCode(opcode.POP) }

// EmitReturn appends a RETURN. A second RETURN immediately following
// another is a no-op at the VM level, which is what lets the generator
// unconditionally append an epilogue RETURN to every function body.
func (f *Function) EmitReturn() { f.EmitCode(opcode.RETURN) }

// EmitReturnInitPkg appends a RETURN_INIT_PKG naming pkgIndex.
func (f *Function) EmitReturnInitPkg(pkgIndex int16) {
	f.EmitCode(opcode.RETURN_INIT_PKG)
	f.EmitData(pkgIndex)
}

// EmitImport appends an IMPORT naming pkgIndex.
func (f *Function) EmitImport(pkgIndex int16) {
	f.EmitCode(opcode.IMPORT)
	f.EmitData(pkgIndex)
}

// EmitPreCall appends a PRE_CALL.
func (f *Function) EmitPreCall() { f.EmitCode(opcode.PRE_CALL) }

// EmitCall appends a CALL, recording whether the call site used "...".
func (f *Function) EmitCall(ellipsis bool) {
	f.EmitCode(opcode.CALL)
	if ellipsis {
		f.EmitData(1)
	} else {
		f.EmitData(0)
	}
}

// EmitNew appends a NEW.
func (f *Function) EmitNew() { f.EmitCode(opcode.NEW) }

// EmitLoadField appends a LOAD_FIELD.
func (f *Function) EmitLoadField() { f.EmitCode(opcode.LOAD_FIELD) }

// EmitJump appends a placeholder jump of the given kind (JUMP, JUMP_IF or
// JUMP_IF_NOT) and returns the index of its data word, to be resolved by
// PatchJump once the target is known.
func (f *Function) EmitJump(op opcode.Opcode) int {
	f.EmitCode(op)
	f.EmitData(0)
	return len(f.Code) - 1
}

// PatchJump resolves the placeholder at dataIdx (as returned by EmitJump)
// to jump to the current end of the code buffer: a signed offset, in code
// words, from the word immediately following dataIdx.
func (f *Function) PatchJump(dataIdx int) {
	f.PatchData(dataIdx, int16(len(f.Code)-(dataIdx+1)))
}

// EmitRange appends a RANGE with a placeholder exit offset and returns the
// index of that data word, to be patched once the loop's extent is known.
func (f *Function) EmitRange() int {
	f.EmitCode(opcode.RANGE)
	f.EmitData(0)
	return len(f.Code) - 1
}
