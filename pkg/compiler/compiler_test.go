package compiler_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justanotheranonymoususer/goscript/pkg/compiler"
	"github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"
	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

func compileOK(t *testing.T, src string) *value.ByteCode {
	t.Helper()
	fset := token.NewFileSet()
	bc, errs, err := compiler.Compile(fset, "test.go", src)
	require.NoError(t, err)
	if errs != nil && errs.Len() > 0 {
		t.Fatalf("unexpected diagnostics: %s", errs.Error())
	}
	require.NotNil(t, bc)
	return bc
}

func compileErr(t *testing.T, src string) *compiler.ErrorList {
	t.Helper()
	fset := token.NewFileSet()
	bc, errs, err := compiler.Compile(fset, "test.go", src)
	require.NoError(t, err)
	require.Nil(t, bc)
	require.NotNil(t, errs)
	require.Greater(t, errs.Len(), 0)
	return errs
}

// mainPackageOf returns the single package a one-file compile produces.
func mainPackageOf(t *testing.T, bc *value.ByteCode) *value.Package {
	t.Helper()
	require.Len(t, bc.Packages, 1)
	return bc.Objects.Package(bc.Packages[0])
}

func TestAssertAddition(t *testing.T) {
	src := `package p
	func main() { assert(1 + 2 == 3) }`
	bc := compileOK(t, src)
	pkg := mainPackageOf(t, bc)
	require.True(t, pkg.HasMainFunc)
}

func TestForLoopAccumulatesPackageVar(t *testing.T) {
	src := `package p
	var x = 0
	func main() {
		for i := 0; i < 3; i++ {
			x += i
		}
	}`
	bc := compileOK(t, src)
	pkg := mainPackageOf(t, bc)
	require.True(t, pkg.HasMainFunc)
	// member 0 is always the constructor (invariant 4).
	ctor := bc.Objects.Function(pkg.Member(0).FunctionKey())
	require.True(t, ctor.IsCtor)
	last := ctor.Code[len(ctor.Code)-2]
	require.Equal(t, opcode.RETURN_INIT_PKG, last.Op)
}

func TestSliceRangeSum(t *testing.T) {
	src := `package p
	func main() {
		xs := []int{1, 2, 3}
		s := 0
		for _, v := range xs {
			s += v
		}
		assert(s == 6)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestMapIndexSum(t *testing.T) {
	src := `package p
	func main() {
		m := map[string]int{"a": 1, "b": 2}
		assert(m["a"]+m["b"] == 3)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestValueSemanticsCopyOnAssign(t *testing.T) {
	src := `package p
	func main() {
		x := 1
		y := x
		y = 2
		assert(x == 1)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestAssignmentMismatchRejected(t *testing.T) {
	src := `package p
	var a, b = 1`
	errs := compileErr(t, src)
	require.Contains(t, errs.Error(), "assignment mismatch")
}

func TestPackageMemberZeroIsConstructor(t *testing.T) {
	src := `package p
	var x = 1
	func main() {}`
	bc := compileOK(t, src)
	pkg := mainPackageOf(t, bc)
	m0 := pkg.Member(0)
	require.Equal(t, value.KindFunction, m0.Kind)
	ctor := bc.Objects.Function(m0.FunctionKey())
	require.True(t, ctor.IsCtor)
}

func TestShortCircuitAnd(t *testing.T) {
	src := `package p
	func sideEffect() bool { return true }
	func main() {
		assert(false && sideEffect())
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestUndefinedIdentifier(t *testing.T) {
	src := `package p
	func main() { assert(doesNotExist) }`
	errs := compileErr(t, src)
	require.Contains(t, errs.Error(), "undefined: doesNotExist")
}

func TestNotImplementedConstructs(t *testing.T) {
	cases := []string{
		`package p
		func main() { go sideEffect() }
		func sideEffect() {}`,
		`package p
		func main() {
			switch 1 {
			case 1:
			}
		}`,
		`package p
		import "fmt"
		func main() {}`,
	}
	for _, src := range cases {
		errs := compileErr(t, src)
		require.Contains(t, errs.Error(), "not implemented")
	}
}

func TestConstantPoolIdempotence(t *testing.T) {
	src := `package p
	func main() {
		const n = 42
		a := n
		b := n
		assert(a == b)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestPackageScopeConstVisibleFromOtherFunctions(t *testing.T) {
	src := `package p
	const limit = 3
	func within(n int) bool {
		return n == limit
	}
	func main() {
		assert(within(limit))
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestClosureCapturesImmediateParent(t *testing.T) {
	src := `package p
	func main() {
		x := 1
		f := func() int {
			return x
		}
		assert(f() == 1)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestTupleAssignFromSingleCall(t *testing.T) {
	src := `package p
	func pair() (int, int) { return 1, 2 }
	func main() {
		a, b := pair()
		assert(a == 1)
		assert(b == 2)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestVarSpecFromSingleCall(t *testing.T) {
	src := `package p
	func pair() (int, int) { return 1, 2 }
	func main() {
		var a, b = pair()
		assert(a+b == 3)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestNamedResultBareReturn(t *testing.T) {
	src := `package p
	func answer() (n int) {
		n = 42
		return
	}
	func main() {
		assert(answer() == 42)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestFuncTypedVar(t *testing.T) {
	src := `package p
	func main() {
		var f func(int) int
		_ = f
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}

func TestStructFieldAssignment(t *testing.T) {
	src := `package p
	type Point struct {
		X int
		Y int
	}
	func main() {
		p := new(Point)
		p.X = 3
		assert(p.X == 3)
	}`
	bc := compileOK(t, src)
	require.True(t, mainPackageOf(t, bc).HasMainFunc)
}
