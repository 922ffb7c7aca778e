package value

// TypeKind tags the variant held by a Type's data.
type TypeKind byte

const (
	TypeBasic TypeKind = iota
	TypeSlice
	TypeMap
	TypeStruct
	TypeInterface
	TypeClosure
	TypeBoxed
	TypeVariadic
)

// Basic type names recognised without further resolution.
const (
	BasicBool    = "bool"
	BasicInt     = "int"
	BasicFloat64 = "float64"
	BasicString  = "string"
)

// Type is a single entry in the type arena. Only the fields relevant to
// Kind are populated; the rest are left at their zero value.
//
// Nested type references (a slice's element, a map's key/value, a
// closure's params/results, a struct's field types) are stored as Values
// of KindType rather than as bare TypeKeys. This keeps the representation
// uniform with the rest of the system -- get_or_gen_type always hands back
// a Value -- and lets Struct double as a receiver's method table: a
// method attached by FuncDecl lowering (4.3) is pushed onto the same
// Fields slice as a KindFunction Value, addressed by the same
// name-to-index map used for declared fields.
type Type struct {
	Kind TypeKind

	// TypeBasic
	Name string

	// TypeSlice, TypeBoxed, TypeVariadic
	Elem Value

	// TypeMap
	MapKey Value
	MapVal Value

	// TypeStruct: member values (field types at declaration time, method
	// closures appended later) parallel to FieldIndex.
	Fields     []Value
	FieldIndex map[string]int

	// TypeInterface
	Methods []Value

	// TypeClosure
	Params  []Value
	Results []Value

	// Zero is the type's zero value, computed once at creation time.
	Zero Value
}

// NewBasicType returns a freshly allocated basic Type named name with the
// given zero value.
func NewBasicType(name string, zero Value) *Type {
	return &Type{Kind: TypeBasic, Name: name, Zero: zero}
}

// NewSliceType returns a Type for []elem. Its zero value is a nil slice.
func NewSliceType(elem Value) *Type {
	return &Type{Kind: TypeSlice, Elem: elem, Zero: Nil}
}

// NewMapType returns a Type for map[key]val. Its zero value is a nil map.
func NewMapType(key, val Value) *Type {
	return &Type{Kind: TypeMap, MapKey: key, MapVal: val, Zero: Nil}
}

// NewStructType returns a Type for a struct with the given field types, in
// declaration order, and a name-to-index map for member lookup. Struct
// instance construction is outside the scope of the generator; its zero
// value is Nil and is meant to be supplied by the VM.
func NewStructType(fields []Value, index map[string]int) *Type {
	return &Type{Kind: TypeStruct, Fields: fields, FieldIndex: index, Zero: Nil}
}

// NewInterfaceType returns a Type for an interface with the given method
// types. Method dispatch is outside the scope of the generator.
func NewInterfaceType(methods []Value) *Type {
	return &Type{Kind: TypeInterface, Methods: methods, Zero: Nil}
}

// NewClosureType returns a Type for func(params) results.
func NewClosureType(params, results []Value) *Type {
	return &Type{Kind: TypeClosure, Params: params, Results: results, Zero: Nil}
}

// NewBoxedType returns a Type for *inner. Its zero value is a nil pointer.
func NewBoxedType(inner Value) *Type {
	return &Type{Kind: TypeBoxed, Elem: inner, Zero: Nil}
}

// NewVariadicType returns a Type for ...elem. It is only meaningful as the
// type of a function's last parameter and has no zero value of its own.
func NewVariadicType(elem Value) *Type {
	return &Type{Kind: TypeVariadic, Elem: elem}
}

// IsVariadic reports whether t is a Variadic(elem) type.
func (t *Type) IsVariadic() bool { return t.Kind == TypeVariadic }

// AddStructMember appends value as a new named member of a struct type
// (typically a method's closure, attached by a receiver-bound FuncDecl),
// growing Fields/FieldIndex, and returns its index.
func (t *Type) AddStructMember(name string, val Value) int {
	i := len(t.Fields)
	t.Fields = append(t.Fields, val)
	if t.FieldIndex == nil {
		t.FieldIndex = map[string]int{}
	}
	t.FieldIndex[name] = i
	return i
}
