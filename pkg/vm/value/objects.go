package value

// Objects owns every arena grown during code generation: functions, types,
// strings, slices, maps, boxed cells and packages. All arenas are created
// empty and grow monotonically; nothing is ever freed while a generator is
// alive. A key returned by one of the Add* methods stays valid for the
// lifetime of the Objects it came from.
type Objects struct {
	Functions []*Function
	Types     []*Type
	Strings   []string
	Slices    [][]Value
	Maps      []*MapVal
	Boxes     []Value
	Packages  []*Package

	// basicTypes maps a basic type name to its interned Value, so that
	// repeated references to e.g. "int" resolve to the same TypeKey.
	basicTypes map[string]Value
	// emptyString interns the zero-length string so default-valued
	// strings don't each allocate a new arena slot.
	emptyString StringKey
}

// NewObjects returns an Objects table pre-populated with the language's
// basic types.
func NewObjects() *Objects {
	o := &Objects{basicTypes: map[string]Value{}}
	o.emptyString = o.AddString("")
	o.internBasic(BasicBool, Bool(false))
	o.internBasic(BasicInt, Int(0))
	o.internBasic(BasicFloat64, Float64(0))
	o.internBasic(BasicString, Str(o.emptyString))
	return o
}

func (o *Objects) internBasic(name string, zero Value) {
	k := o.AddType(NewBasicType(name, zero))
	o.basicTypes[name] = Type(k)
}

// BasicType returns the interned Value for a basic type name, if any.
func (o *Objects) BasicType(name string) (Value, bool) {
	v, ok := o.basicTypes[name]
	return v, ok
}

// EmptyString returns the key of the interned zero-length string.
func (o *Objects) EmptyString() StringKey { return o.emptyString }

// AddFunction inserts fn and returns its key.
func (o *Objects) AddFunction(fn *Function) FunctionKey {
	o.Functions = append(o.Functions, fn)
	return FunctionKey(len(o.Functions) - 1)
}

// Function dereferences a FunctionKey.
func (o *Objects) Function(k FunctionKey) *Function { return o.Functions[k] }

// AddType inserts t and returns its key.
func (o *Objects) AddType(t *Type) TypeKey {
	o.Types = append(o.Types, t)
	return TypeKey(len(o.Types) - 1)
}

// Type dereferences a TypeKey.
func (o *Objects) Type(k TypeKey) *Type { return o.Types[k] }

// AddString interns s as a new arena slot and returns its key. Strings are
// not deduplicated by value (nor are types, apart from the basic types
// NewObjects interns): callers that want sharing (e.g. the empty string)
// must do so themselves.
func (o *Objects) AddString(s string) StringKey {
	o.Strings = append(o.Strings, s)
	return StringKey(len(o.Strings) - 1)
}

// String dereferences a StringKey.
func (o *Objects) String(k StringKey) string { return o.Strings[k] }

// AddSlice inserts elems as a new slice object and returns its key.
func (o *Objects) AddSlice(elems []Value) SliceKey {
	o.Slices = append(o.Slices, elems)
	return SliceKey(len(o.Slices) - 1)
}

// Slice dereferences a SliceKey.
func (o *Objects) Slice(k SliceKey) []Value { return o.Slices[k] }

// AddMap inserts m as a new map object and returns its key.
func (o *Objects) AddMap(m *MapVal) MapKey {
	o.Maps = append(o.Maps, m)
	return MapKey(len(o.Maps) - 1)
}

// Map dereferences a MapKey.
func (o *Objects) Map(k MapKey) *MapVal { return o.Maps[k] }

// AddBox inserts the initial contents of a boxed cell and returns its key.
// A Boxed value is only ever created at runtime by REF, so this method has
// no caller in the generator itself -- it exists for the VM, which shares
// this arena representation and allocates the cell REF addresses into.
func (o *Objects) AddBox(v Value) BoxKey {
	o.Boxes = append(o.Boxes, v)
	return BoxKey(len(o.Boxes) - 1)
}

// Box dereferences a BoxKey.
func (o *Objects) Box(k BoxKey) Value { return o.Boxes[k] }

// SetBox overwrites the contents of a boxed cell, as DEREF-assignment does
// at runtime; a VM-side method, not called during generation.
func (o *Objects) SetBox(k BoxKey, v Value) { o.Boxes[k] = v }

// AddPackage inserts pkg and returns its key.
func (o *Objects) AddPackage(pkg *Package) PackageKey {
	o.Packages = append(o.Packages, pkg)
	return PackageKey(len(o.Packages) - 1)
}

// Package dereferences a PackageKey.
func (o *Objects) Package(k PackageKey) *Package { return o.Packages[k] }
