package compiler

import (
	"go/ast"
	"go/token"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"
	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

// visitIf lowers an if/else chain. The else branch, when present, is
// visited directly whether it is a block or (for an "else if") another
// IfStmt -- visitStmt already dispatches both.
func (c *codegen) visitIf(s *ast.IfStmt) error {
	if s.Init != nil {
		if err := c.visitStmt(s.Init); err != nil {
			return err
		}
	}
	if err := c.visitExpr(s.Cond); err != nil {
		return err
	}
	toElse := c.curFunc().EmitJump(opcode.JUMP_IF_NOT)
	if err := c.visitStmt(s.Body); err != nil {
		return err
	}
	if s.Else == nil {
		c.curFunc().PatchJump(toElse)
		return nil
	}
	toEnd := c.curFunc().EmitJump(opcode.JUMP)
	c.curFunc().PatchJump(toElse)
	if err := c.visitStmt(s.Else); err != nil {
		return err
	}
	c.curFunc().PatchJump(toEnd)
	return nil
}

// visitFor lowers a C-style for loop. A missing condition loops
// unconditionally (for {} / for ;; {}); break and continue are not
// implemented (see the BranchStmt case in visitStmt).
func (c *codegen) visitFor(s *ast.ForStmt) error {
	if s.Init != nil {
		if err := c.visitStmt(s.Init); err != nil {
			return err
		}
	}
	loopStart := c.curFunc().Pos()
	var exitJump int
	hasCond := s.Cond != nil
	if hasCond {
		if err := c.visitExpr(s.Cond); err != nil {
			return err
		}
		exitJump = c.curFunc().EmitJump(opcode.JUMP_IF_NOT)
	}
	if err := c.visitStmt(s.Body); err != nil {
		return err
	}
	if s.Post != nil {
		if err := c.visitStmt(s.Post); err != nil {
			return err
		}
	}
	back := c.curFunc().EmitJump(opcode.JUMP)
	c.curFunc().PatchData(back, int16(loopStart-(back+1)))
	if hasCond {
		c.curFunc().PatchJump(exitJump)
	}
	return nil
}

// visitRange lowers for-range over a slice or map. RANGE, on each
// execution, either pushes the next [key, value] pair and falls through
// to the loop body or -- once the container is exhausted -- jumps past
// the loop, having already discarded the container itself.
func (c *codegen) visitRange(s *ast.RangeStmt) error {
	if err := c.visitExpr(s.X); err != nil {
		return err
	}
	c.curFunc().EmitCode(opcode.PUSH_IMM)
	c.curFunc().EmitData(-1)
	rangeOpPos := c.curFunc().Pos()
	exitJump := c.curFunc().EmitRange()

	isDef := s.Tok == token.DEFINE
	if s.Value != nil {
		if err := c.storeRangeVar(s.Value, isDef); err != nil {
			return err
		}
	} else {
		c.curFunc().EmitPop()
	}
	if s.Key != nil {
		if err := c.storeRangeVar(s.Key, isDef); err != nil {
			return err
		}
	} else {
		c.curFunc().EmitPop()
	}

	if err := c.visitStmt(s.Body); err != nil {
		return err
	}
	back := c.curFunc().EmitJump(opcode.JUMP)
	c.curFunc().PatchData(back, int16(rangeOpPos-(back+1)))
	c.curFunc().PatchJump(exitJump)
	return nil
}

// storeRangeVar binds one of range's key/value identifiers, consuming the
// word currently on top of the stack. Only plain identifiers are valid
// here -- Go itself rejects anything else as a range variable.
func (c *codegen) storeRangeVar(expr ast.Expr, isDef bool) error {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return c.errorNotImplemented(expr, "range variable")
	}
	idx, err := c.addLocalOrResolveIdent(ident, isDef)
	if err != nil {
		return err
	}
	c.curFunc().EmitStore(value.Primitive(idx), -1, nil)
	c.curFunc().EmitPop()
	return nil
}

// visitReturn evaluates each result expression and stores it into its
// result local (results occupy locals 0..RetCount-1, allocated ahead of
// the receiver and parameters -- see genFuncBody), then returns. A bare
// "return" in a function with named results relies on those same locals
// already holding the right values, so "return expr" must write them too
// rather than leaving values on the operand stack.
func (c *codegen) visitReturn(s *ast.ReturnStmt) error {
	for i, r := range s.Results {
		if err := c.visitExpr(r); err != nil {
			return err
		}
		idx := value.EntIndex{Kind: value.EntLocal, Index: int16(i)}
		c.curFunc().EmitStore(value.Primitive(idx), -1, nil)
		c.curFunc().EmitPop()
	}
	c.curFunc().EmitReturn()
	return nil
}

// visitDeclStmt lowers a local var/const/type declaration.
func (c *codegen) visitDeclStmt(s *ast.DeclStmt) error {
	gd, ok := s.Decl.(*ast.GenDecl)
	if !ok {
		return c.errorNotImplemented(s.Decl, "declaration kind")
	}
	return c.visitGenDecl(gd)
}

// visitGenDecl lowers var, const and type declarations, at both package
// and function scope. const declarations are folded at compile time with
// no runtime store: into the enclosing function's constant pool (EntConst)
// at function scope, and into a package member at package scope (see
// genConstSpec); var declarations always allocate storage and emit a
// store, even when the initializer is a literal.
func (c *codegen) visitGenDecl(d *ast.GenDecl) error {
	switch d.Tok {
	case token.IMPORT:
		return c.errorNotImplemented(d, "imports")
	case token.VAR:
		for _, spec := range d.Specs {
			if err := c.genVarSpec(spec.(*ast.ValueSpec)); err != nil {
				return err
			}
		}
		return nil
	case token.CONST:
		for _, spec := range d.Specs {
			if err := c.genConstSpec(spec.(*ast.ValueSpec)); err != nil {
				return err
			}
		}
		return nil
	case token.TYPE:
		for _, spec := range d.Specs {
			ts := spec.(*ast.TypeSpec)
			tv, err := c.resolveTypeExpr(ts.Type)
			if err != nil {
				return err
			}
			if c.namedTypes == nil {
				c.namedTypes = map[string]value.Value{}
			}
			c.namedTypes[ts.Name.Name] = tv
		}
		return nil
	default:
		return c.errorNotImplemented(d, "declaration token")
	}
}

func (c *codegen) genVarSpec(spec *ast.ValueSpec) error {
	if len(spec.Names) > 1 && len(spec.Values) == 1 {
		return c.genVarSpecFromCall(spec)
	}
	if len(spec.Values) != 0 && len(spec.Values) != len(spec.Names) {
		return c.errorMismatch(spec, len(spec.Names), len(spec.Values))
	}
	for i, name := range spec.Names {
		if len(spec.Values) != 0 {
			if err := c.visitExpr(spec.Values[i]); err != nil {
				return err
			}
		} else {
			typVal, err := c.resolveTypeExpr(spec.Type)
			if err != nil {
				return err
			}
			c.emitConstLoad(c.typeDefault(typVal))
		}
		idx, err := c.addLocalOrResolveIdent(name, true)
		if err != nil {
			return err
		}
		c.curFunc().EmitStore(value.Primitive(idx), -1, nil)
		c.curFunc().EmitPop()
	}
	return nil
}

// genVarSpecFromCall lowers "var a, b = f()": every name gets its own
// local, the call is visited exactly once, and the VM-supplied return
// values are stored right to left -- the same single-call shape
// genTupleAssign's pushMultiRHS supports for := and =.
func (c *codegen) genVarSpecFromCall(spec *ast.ValueSpec) error {
	targets := make([]value.LeftHandSide, len(spec.Names))
	for i, name := range spec.Names {
		idx, err := c.addLocalOrResolveIdent(name, true)
		if err != nil {
			return err
		}
		targets[i] = value.Primitive(idx)
	}
	if err := c.pushMultiRHS(spec, len(spec.Names), spec.Values); err != nil {
		return err
	}
	for i := len(targets) - 1; i >= 0; i-- {
		c.curFunc().EmitStore(targets[i], -1, nil)
		c.curFunc().EmitPop()
	}
	return nil
}

// genConstSpec folds a const declaration's values at compile time. At
// function scope each name is registered directly in the enclosing
// function's constant pool (no local slot, no runtime store). At package
// scope -- the ctor is the current function -- there is no constant pool
// another function's body could see, so the name is instead registered as
// a package member holding its final value up front; no store is ever
// emitted for it; the ctor's code needs nothing more than var handling.
func (c *codegen) genConstSpec(spec *ast.ValueSpec) error {
	if len(spec.Values) != len(spec.Names) {
		return c.errorMismatch(spec, len(spec.Names), len(spec.Values))
	}
	for i, name := range spec.Names {
		val, err := c.evalConstExpr(spec.Values[i])
		if err != nil {
			return err
		}
		entity, hasEntity := entityOf(name)
		if c.curFunc().IsCtor {
			pkg := c.objects.Package(c.curFunc().Package)
			pkg.AddMember(entity, hasEntity, val)
			continue
		}
		c.curFunc().AddConst(entity, hasEntity, val)
	}
	return nil
}

// evalConstExpr evaluates the narrow set of constant expressions this
// generator supports without a full constant-folding pass: literals and a
// leading unary minus over a numeric literal.
func (c *codegen) evalConstExpr(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return c.valueFromBasicLit(e)
	case *ast.UnaryExpr:
		if e.Op != token.SUB {
			return value.Nil, c.errorNotImplemented(e, "non-constant initializer")
		}
		inner, err := c.evalConstExpr(e.X)
		if err != nil {
			return value.Nil, err
		}
		switch inner.Kind {
		case value.KindInt:
			return value.Int(-inner.I), nil
		case value.KindFloat64:
			return value.Float64(-inner.F), nil
		default:
			return value.Nil, c.errorNotImplemented(e, "unary minus over this constant")
		}
	case *ast.Ident:
		switch e.Name {
		case "true":
			return value.Bool(true), nil
		case "false":
			return value.Bool(false), nil
		}
		return value.Nil, c.errorNotImplemented(e, "non-literal constant initializer")
	default:
		return value.Nil, c.errorNotImplemented(expr, "non-constant initializer")
	}
}

// visitFuncDecl lowers a top-level function or method declaration,
// compiling its body as a nested Function and registering it either as a
// package member (a plain function, recording it as the package's main if
// so named) or as a method closure attached to its receiver's named type.
func (c *codegen) visitFuncDecl(d *ast.FuncDecl) error {
	fkey, err := c.genFuncBody(d.Recv, d.Type, d.Body)
	if err != nil {
		return err
	}
	if d.Recv == nil {
		entity, hasEntity := entityOf(d.Name)
		pkg := c.objects.Package(c.currentPkg)
		idx := pkg.AddMember(entity, hasEntity, value.Function(fkey))
		if d.Name.Name == "main" {
			pkg.SetMainFunc(idx)
		}
		return nil
	}
	recvType, err := c.receiverType(d.Recv)
	if err != nil {
		return err
	}
	recvType.AddStructMember(d.Name.Name, value.Function(fkey))
	return nil
}

// receiverType resolves a method's receiver to its previously declared
// named struct type; an undeclared or non-struct receiver is rejected.
func (c *codegen) receiverType(recv *ast.FieldList) (*value.Type, error) {
	texpr := recv.List[0].Type
	if star, ok := texpr.(*ast.StarExpr); ok {
		texpr = star.X
	}
	ident, ok := texpr.(*ast.Ident)
	if !ok {
		return nil, c.errorNotImplemented(texpr, "method receiver type")
	}
	tv, ok := c.namedTypes[ident.Name]
	if !ok {
		return nil, c.errorUndefined(ident, ident.Name)
	}
	return c.objects.Type(tv.TypeKey()), nil
}
