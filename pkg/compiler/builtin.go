package compiler

import "github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"

// builtInFunc describes a built-in function: its dedicated opcode, its
// declared parameter count (used to compute the variadic pack count) and
// whether its last parameter is variadic.
type builtInFunc struct {
	name         string
	opcode       opcode.Opcode
	paramsCount  int
	variadic     bool
}

// builtInFuncs is the fixed table of built-in functions (6.4). They are
// not called like ordinary functions: the generator recognises a call to
// an unbound identifier of one of these names and emits the function's
// dedicated opcode directly instead of the LOAD/PRE_CALL/CALL sequence.
var builtInFuncs = []builtInFunc{
	{name: "new", opcode: opcode.NEW, paramsCount: 1, variadic: false},
	{name: "make", opcode: opcode.MAKE, paramsCount: 2, variadic: true},
	{name: "len", opcode: opcode.LEN, paramsCount: 1, variadic: false},
	{name: "cap", opcode: opcode.CAP, paramsCount: 1, variadic: false},
	{name: "append", opcode: opcode.APPEND, paramsCount: 2, variadic: true},
	{name: "assert", opcode: opcode.ASSERT, paramsCount: 1, variadic: false},
}

// builtInVals maps a built-in value name to the opcode that pushes it.
var builtInVals = map[string]opcode.Opcode{
	"true":  opcode.PUSH_TRUE,
	"false": opcode.PUSH_FALSE,
	"nil":   opcode.PUSH_NIL,
}

// builtInFuncByName finds a built-in function definition by name.
func builtInFuncByName(name string) (*builtInFunc, bool) {
	for i := range builtInFuncs {
		if builtInFuncs[i].name == name {
			return &builtInFuncs[i], true
		}
	}
	return nil, false
}
