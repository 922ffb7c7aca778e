package value

// FunctionKey, TypeKey, StringKey, SliceKey, MapKey, BoxKey and PackageKey
// are stable handles into the arenas owned by an Objects table. They are
// monotonically assigned on insertion and never reused or freed during code
// generation; a key stays valid for the lifetime of the Objects it came
// from.
type (
	FunctionKey int32
	TypeKey     int32
	StringKey   int32
	SliceKey    int32
	MapKey      int32
	BoxKey      int32
	PackageKey  int32
)

// EntityKey is the parser-provided handle that identifies a declared name's
// binding site. It is opaque to this package: the compiler supplies
// whatever comparable value its front end uses to identify a binding (for
// a go/ast-based front end, typically a *ast.Object). The blank identifier
// has no EntityKey.
type EntityKey any
