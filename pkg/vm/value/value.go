package value

// Kind tags the variant held by a Value.
type Kind byte

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat64
	KindStr
	KindSlice
	KindMap
	KindFunction
	KindType
	KindBoxed
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat64:
		return "float64"
	case KindStr:
		return "string"
	case KindSlice:
		return "slice"
	case KindMap:
		return "map"
	case KindFunction:
		return "function"
	case KindType:
		return "type"
	case KindBoxed:
		return "boxed"
	default:
		return "invalid"
	}
}

// Value is the tagged union every expression in the generated program
// evaluates to. It is small and trivially copyable by design: anything
// with interior state (a slice's backing elements, a map's entries, a
// function's instruction buffer) lives in one of Objects' arenas and is
// addressed through a key carried in this struct, never embedded directly.
//
// Only one field is meaningful for a given Kind:
//
//	KindNil      -- none
//	KindBool     -- B
//	KindInt      -- I
//	KindFloat64  -- F
//	KindStr      -- Key as StringKey
//	KindSlice    -- Key as SliceKey
//	KindMap      -- Key as MapKey
//	KindFunction -- Key as FunctionKey
//	KindType     -- Key as TypeKey
//	KindBoxed    -- Key as BoxKey
type Value struct {
	Kind Kind
	B    bool
	I    int64
	F    float64
	Key  int32
}

// Nil is the zero Value.
var Nil = Value{Kind: KindNil}

// Bool constructs a KindBool Value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Int constructs a KindInt Value.
func Int(i int64) Value { return Value{Kind: KindInt, I: i} }

// Float64 constructs a KindFloat64 Value.
func Float64(f float64) Value { return Value{Kind: KindFloat64, F: f} }

// Str constructs a KindStr Value referencing key.
func Str(key StringKey) Value { return Value{Kind: KindStr, Key: int32(key)} }

// Slice constructs a KindSlice Value referencing key.
func Slice(key SliceKey) Value { return Value{Kind: KindSlice, Key: int32(key)} }

// Map constructs a KindMap Value referencing key.
func Map(key MapKey) Value { return Value{Kind: KindMap, Key: int32(key)} }

// Function constructs a KindFunction Value referencing key.
func Function(key FunctionKey) Value { return Value{Kind: KindFunction, Key: int32(key)} }

// Type constructs a KindType Value referencing key.
func Type(key TypeKey) Value { return Value{Kind: KindType, Key: int32(key)} }

// Boxed constructs a KindBoxed Value referencing key.
func Boxed(key BoxKey) Value { return Value{Kind: KindBoxed, Key: int32(key)} }

// StringKey returns v's string arena key. Only valid when v.Kind == KindStr.
func (v Value) StringKey() StringKey { return StringKey(v.Key) }

// SliceKey returns v's slice arena key. Only valid when v.Kind == KindSlice.
func (v Value) SliceKey() SliceKey { return SliceKey(v.Key) }

// MapKey returns v's map arena key. Only valid when v.Kind == KindMap.
func (v Value) MapKey() MapKey { return MapKey(v.Key) }

// FunctionKey returns v's function arena key. Only valid when v.Kind == KindFunction.
func (v Value) FunctionKey() FunctionKey { return FunctionKey(v.Key) }

// TypeKey returns v's type arena key. Only valid when v.Kind == KindType.
func (v Value) TypeKey() TypeKey { return TypeKey(v.Key) }

// BoxKey returns v's box arena key. Only valid when v.Kind == KindBoxed.
func (v Value) BoxKey() BoxKey { return BoxKey(v.Key) }
