package compiler

import (
	"go/ast"
	"go/token"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"
	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

var noPos token.Position

// mainSentinel is the LOAD_FIELD key the entry stub pushes to mean "this
// package's registered main function", rather than an ordinary field or
// index lookup (4.8 of the design).
const mainSentinel = -1

// genPackage compiles a single file into a package: an auto-generated
// constructor (member 0) whose body runs every package-scope var/const
// declaration, plus every top-level function and method, registered
// directly as package members or attached to their receiver's type. File
// order is preserved so later declarations can reference an identifier
// declared earlier in the same file -- the only order this generator
// supports, per the single-file scope of 4.8 of the design.
func (c *codegen) genPackage(file *ast.File, pkgName string) (value.PackageKey, error) {
	ctorFn := value.NewFunction(0, true)
	ctorKey := c.objects.AddFunction(ctorFn)
	pkgKey := c.objects.AddPackage(value.NewPackage(pkgName, value.Function(ctorKey)))
	ctorFn.Package = pkgKey

	prevPkg := c.currentPkg
	c.currentPkg = pkgKey
	c.pushFunc(ctorKey)

	for _, decl := range file.Decls {
		if err := c.visitDecl(decl); err != nil {
			c.popFunc()
			c.currentPkg = prevPkg
			return 0, err
		}
	}

	ctorFn.EmitReturnInitPkg(int16(pkgKey))
	c.popFunc()
	c.currentPkg = prevPkg
	return pkgKey, nil
}

// genEntry builds the program's entry function: import the main package
// (running its constructor if it has not already run), fetch its
// registered main function, and call it. This is the FunctionKey recorded
// as ByteCode.Entry.
func (c *codegen) genEntry(mainPkg value.PackageKey) (value.FunctionKey, error) {
	pkg := c.objects.Package(mainPkg)
	if !pkg.HasMainFunc {
		c.errs.Addf(noPos, "package %s has no main function", pkg.Name)
		return 0, errSentinel
	}
	entryFn := value.NewFunction(mainPkg, false)
	entryKey := c.objects.AddFunction(entryFn)
	entryFn.EmitImport(0)
	entryFn.EmitCode(opcode.PUSH_IMM)
	entryFn.EmitData(mainSentinel)
	entryFn.EmitLoadField()
	entryFn.EmitPreCall()
	entryFn.EmitCall(false)
	entryFn.EmitReturn()
	return entryKey, nil
}
