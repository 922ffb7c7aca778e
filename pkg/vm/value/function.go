package value

import "github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"

// CodeWord is one 16-bit slot of a function's instruction buffer: either an
// opcode or a signed data word (a jump offset, an immediate, a pool index)
// following an opcode that takes data -- one word after an opcode for which
// Opcode.HasData is true, four after STORE.
type CodeWord struct {
	IsData bool
	Op     opcode.Opcode
	Data   int16
}

// constEntry pairs a constant with the entity it was registered for, if
// any, so that re-registering the same (entity, value) pair is idempotent.
type constEntry struct {
	entity EntityKey
	hasEnt bool
	val    Value
}

// Function is a single entry in the function arena: a compiled body.
type Function struct {
	Package PackageKey

	Code    []CodeWord
	consts  []constEntry
	constOf map[EntityKey]int16

	// locals maps a declared name's entity to its local slot.
	locals    map[EntityKey]int16
	numLocals int16

	// upvalues captured by this function, and the entity each was
	// captured for, so a second capture request returns the same slot.
	Upvalues  []UpValue
	upvalueOf map[EntityKey]int16

	ParamCount int
	RetCount   int
	Variadic   bool
	IsCtor     bool
}

// NewFunction allocates an empty Function owned by pkg.
func NewFunction(pkg PackageKey, isCtor bool) *Function {
	return &Function{
		Package:   pkg,
		constOf:   map[EntityKey]int16{},
		locals:    map[EntityKey]int16{},
		upvalueOf: map[EntityKey]int16{},
		IsCtor:    isCtor,
	}
}

// EmitCode appends an opcode-only word.
func (f *Function) EmitCode(op opcode.Opcode) {
	f.Code = append(f.Code, CodeWord{Op: op})
}

// EmitData appends a raw data word. Callers are responsible for emitting it
// directly after an opcode that takes data: an opcode for which HasData is
// true, or STORE (whose four words EmitStore writes).
func (f *Function) EmitData(d int16) {
	f.Code = append(f.Code, CodeWord{IsData: true, Data: d})
}

// Pos returns the index of the next word to be written, i.e. the length of
// the code buffer so far.
func (f *Function) Pos() int { return len(f.Code) }

// PatchData overwrites the data word at index i (as returned by Pos taken
// right after the corresponding placeholder EmitData(0) call minus one).
func (f *Function) PatchData(i int, d int16) {
	f.Code[i] = CodeWord{IsData: true, Data: d}
}

// AddConst registers val in the constant pool, optionally associated with
// entity, and returns its EntIndex. Registering the same (entity, value)
// pair a second time returns the index already assigned -- the dedup
// invariant in 8.5 of the design.
func (f *Function) AddConst(entity EntityKey, hasEntity bool, val Value) EntIndex {
	if hasEntity {
		if i, ok := f.constOf[entity]; ok {
			return EntIndex{Kind: EntConst, Index: i}
		}
	}
	i := int16(len(f.consts))
	f.consts = append(f.consts, constEntry{entity: entity, hasEnt: hasEntity, val: val})
	if hasEntity {
		f.constOf[entity] = i
	}
	return EntIndex{Kind: EntConst, Index: i}
}

// ConstVal returns the value stored at constant pool index i.
func (f *Function) ConstVal(i int16) Value { return f.consts[i].val }

// EmitLoad emits the load sequence for idx: the built-in's own opcode for
// EntBuiltIn, or LOAD followed by a data word for every other kind except
// EntBlank, which panics.
func (f *Function) EmitLoad(idx EntIndex) {
	switch idx.Kind {
	case EntBuiltIn:
		f.EmitCode(idx.Op)
	case EntLocal, EntUpvalue, EntPackageMember, EntConst:
		f.EmitCode(opcode.LOAD)
		f.EmitData(encodeEntIndex(idx))
	default:
		panic("cannot load a blank identifier")
	}
}

// AddLocal declares a new local slot bound to entity and returns its index.
func (f *Function) AddLocal(entity EntityKey, hasEntity bool) EntIndex {
	i := f.numLocals
	f.numLocals++
	if hasEntity {
		f.locals[entity] = i
	}
	return EntIndex{Kind: EntLocal, Index: i}
}

// NumLocals returns the number of local slots allocated so far, including
// parameters and named results.
func (f *Function) NumLocals() int16 { return f.numLocals }

// EntityIndex looks up entity among this function's locals and its
// constant pool, returning (EntLocal index, true) or (EntConst index,
// true) on a hit.
func (f *Function) EntityIndex(entity EntityKey) (EntIndex, bool) {
	if i, ok := f.locals[entity]; ok {
		return EntIndex{Kind: EntLocal, Index: i}, true
	}
	if i, ok := f.constOf[entity]; ok {
		return EntIndex{Kind: EntConst, Index: i}, true
	}
	return EntIndex{}, false
}

// TryAddUpvalue returns the existing upvalue slot for entity if this
// function has already captured it, or appends uv as a new one.
func (f *Function) TryAddUpvalue(entity EntityKey, uv UpValue) EntIndex {
	if i, ok := f.upvalueOf[entity]; ok {
		return EntIndex{Kind: EntUpvalue, Index: i}
	}
	i := int16(len(f.Upvalues))
	f.Upvalues = append(f.Upvalues, uv)
	f.upvalueOf[entity] = i
	return EntIndex{Kind: EntUpvalue, Index: i}
}
