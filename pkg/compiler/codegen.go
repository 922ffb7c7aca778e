// Package compiler lowers a parsed Go-subset AST into the bytecode
// artifact consumed by the stack-based VM: compiled function bodies,
// package objects, and an entry stub that boots package 0's main.
//
// Parsing, lexical analysis and source position tracking are treated as
// collaborators: the front end is the standard library's go/parser and
// go/ast, used without go/types -- this generator performs only the
// minimal, best-effort constant-literal evaluation described in 4.7 of the
// design and otherwise defers typing decisions to the VM. A name's
// declaration site is identified by its *ast.Object, which go/parser
// resolves for us while building the AST; that pointer is this package's
// EntityKey.
package compiler

import (
	"go/ast"
	"go/token"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"
	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

// codegen implements the code generation logic: a tree-walking visitor
// over the AST that emits instructions into the function on top of
// funcStack, resolves identifiers, and finally assembles a ByteCode
// artifact.
type codegen struct {
	objects *value.Objects
	fset    *token.FileSet

	packageIndices map[string]int16
	packages       []value.PackageKey
	currentPkg     value.PackageKey

	// funcStack is the LIFO function-under-construction stack; every
	// emission targets its top. This is the only piece of state shared
	// across a nested function literal's visit.
	funcStack []value.FunctionKey

	// namedTypes maps a type declaration's name to its resolved Value,
	// the minimal substitute for a symbol table of named types (4.7).
	namedTypes map[string]value.Value

	errs *ErrorList
}

// newCodegen returns a codegen ready to process a single file.
func newCodegen(fset *token.FileSet, errs *ErrorList) *codegen {
	return &codegen{
		objects:        value.NewObjects(),
		fset:           fset,
		packageIndices: map[string]int16{},
		errs:           errs,
	}
}

// curFunc returns the Function on top of funcStack -- "the current
// function" throughout this package's comments.
func (c *codegen) curFunc() *value.Function {
	return c.objects.Function(c.funcStack[len(c.funcStack)-1])
}

// pushFunc pushes fkey onto funcStack.
func (c *codegen) pushFunc(fkey value.FunctionKey) { c.funcStack = append(c.funcStack, fkey) }

// popFunc pops the top of funcStack.
func (c *codegen) popFunc() { c.funcStack = c.funcStack[:len(c.funcStack)-1] }

// posOf resolves an AST node's source position for diagnostics.
func (c *codegen) posOf(n ast.Node) token.Position {
	return c.fset.Position(n.Pos())
}

func (c *codegen) errorUndefined(n ast.Node, name string) error {
	c.errs.Addf(c.posOf(n), "undefined: %s", name)
	return errSentinel
}

func (c *codegen) errorMismatch(n ast.Node, lhsN, rhsN int) error {
	c.errs.Addf(c.posOf(n), "assignment mismatch: %d variables but %d values", lhsN, rhsN)
	return errSentinel
}

func (c *codegen) errorNotImplemented(n ast.Node, what string) error {
	c.errs.Addf(c.posOf(n), "not implemented: %s", what)
	return errSentinel
}

// visitExpr dispatches on the concrete expression node kind. Every case
// nets exactly one pushed value (8.1), except where documented otherwise.
func (c *codegen) visitExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.Ident:
		return c.visitIdent(e)
	case *ast.BasicLit:
		return c.visitBasicLit(e)
	case *ast.FuncLit:
		return c.visitFuncLit(e)
	case *ast.CompositeLit:
		return c.visitCompositeLit(e)
	case *ast.ParenExpr:
		return c.visitExpr(e.X)
	case *ast.SelectorExpr:
		return c.visitSelector(e)
	case *ast.IndexExpr:
		return c.visitIndex(e)
	case *ast.SliceExpr:
		return c.visitSlice(e)
	case *ast.StarExpr:
		return c.visitStar(e)
	case *ast.UnaryExpr:
		return c.visitUnary(e)
	case *ast.BinaryExpr:
		return c.visitBinary(e)
	case *ast.CallExpr:
		return c.visitCall(e)
	case *ast.ArrayType:
		return c.visitTypeExpr(e)
	case *ast.MapType:
		return c.visitTypeExpr(e)
	case *ast.StructType:
		return c.errorNotImplemented(e, "struct type used as a value expression")
	case *ast.FuncType:
		return c.errorNotImplemented(e, "func type used as a value expression")
	case *ast.InterfaceType:
		return c.errorNotImplemented(e, "interface type used as a value expression")
	case *ast.ChanType:
		return c.errorNotImplemented(e, "channels")
	case *ast.TypeAssertExpr:
		return c.errorNotImplemented(e, "type assertions")
	case *ast.Ellipsis:
		return c.errorNotImplemented(e, "bare ellipsis expression")
	case *ast.KeyValueExpr:
		return c.errorNotImplemented(e, "key-value expression outside a composite literal")
	default:
		return c.errorNotImplemented(expr, "expression kind")
	}
}

// visitStmt dispatches on the concrete statement node kind.
func (c *codegen) visitStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return c.visitBlock(s)
	case *ast.ExprStmt:
		return c.visitExpr(s.X)
	case *ast.IfStmt:
		return c.visitIf(s)
	case *ast.ForStmt:
		return c.visitFor(s)
	case *ast.RangeStmt:
		return c.visitRange(s)
	case *ast.ReturnStmt:
		return c.visitReturn(s)
	case *ast.IncDecStmt:
		return c.visitIncDec(s)
	case *ast.AssignStmt:
		return c.visitAssignStmt(s)
	case *ast.DeclStmt:
		return c.visitDeclStmt(s)
	case *ast.LabeledStmt:
		return c.errorNotImplemented(s, "labeled statements")
	case *ast.BranchStmt:
		return c.errorNotImplemented(s, "branch statements")
	case *ast.GoStmt:
		return c.errorNotImplemented(s, "go statements")
	case *ast.DeferStmt:
		return c.errorNotImplemented(s, "defer statements")
	case *ast.SendStmt:
		return c.errorNotImplemented(s, "channel send")
	case *ast.SwitchStmt:
		return c.errorNotImplemented(s, "switch statements")
	case *ast.TypeSwitchStmt:
		return c.errorNotImplemented(s, "type switch statements")
	case *ast.SelectStmt:
		return c.errorNotImplemented(s, "select statements")
	default:
		return c.errorNotImplemented(stmt, "statement kind")
	}
}

// visitBlock visits each child statement in order.
func (c *codegen) visitBlock(b *ast.BlockStmt) error {
	for _, s := range b.List {
		if err := c.visitStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// visitDecl dispatches on a top-level declaration.
func (c *codegen) visitDecl(decl ast.Decl) error {
	switch d := decl.(type) {
	case *ast.GenDecl:
		return c.visitGenDecl(d)
	case *ast.FuncDecl:
		return c.visitFuncDecl(d)
	default:
		return c.errorNotImplemented(decl, "declaration kind")
	}
}

// compoundOpFor maps an assignment/inc-dec token to the opcode used for
// the read-modify-write STORE that implements it, if any.
func compoundOpFor(tok token.Token) (opcode.Opcode, bool) {
	switch tok {
	case token.ADD_ASSIGN, token.INC:
		return opcode.ADD, true
	case token.SUB_ASSIGN, token.DEC:
		return opcode.SUB, true
	case token.MUL_ASSIGN:
		return opcode.MUL, true
	case token.QUO_ASSIGN:
		return opcode.QUO, true
	case token.REM_ASSIGN:
		return opcode.REM, true
	case token.AND_ASSIGN:
		return opcode.AND, true
	case token.OR_ASSIGN:
		return opcode.OR, true
	case token.XOR_ASSIGN:
		return opcode.XOR, true
	case token.SHL_ASSIGN:
		return opcode.SHL, true
	case token.SHR_ASSIGN:
		return opcode.SHR, true
	case token.AND_NOT_ASSIGN:
		return opcode.AND_NOT, true
	default:
		return 0, false
	}
}
