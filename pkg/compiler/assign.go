package compiler

import (
	"go/ast"
	"go/token"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"
	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

// buildLHSTarget prepares a single assignment target: for an index or
// selector expression it evaluates the container and key and returns an
// IndexSel descriptor; for a dereference it evaluates the pointer and
// returns a Deref descriptor; for a plain identifier (including the
// blank identifier) it resolves or allocates the binding directly, with
// no runtime preparation needed. isDef controls whether a plain
// identifier allocates a fresh local (:=) or resolves an existing binding
// (=).
func (c *codegen) buildLHSTarget(expr ast.Expr, isDef bool) (value.LeftHandSide, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		idx, err := c.addLocalOrResolveIdent(e, isDef)
		if err != nil {
			return value.LeftHandSide{}, err
		}
		return value.Primitive(idx), nil
	case *ast.IndexExpr:
		if err := c.visitExpr(e.X); err != nil {
			return value.LeftHandSide{}, err
		}
		if err := c.visitExpr(e.Index); err != nil {
			return value.LeftHandSide{}, err
		}
		return value.IndexSelExpr(0), nil
	case *ast.SelectorExpr:
		if err := c.visitExpr(e.X); err != nil {
			return value.LeftHandSide{}, err
		}
		c.emitConstLoad(value.Str(c.objects.AddString(e.Sel.Name)))
		return value.IndexSelExpr(0), nil
	case *ast.StarExpr:
		if err := c.visitExpr(e.X); err != nil {
			return value.LeftHandSide{}, err
		}
		return value.Deref(0), nil
	case *ast.ParenExpr:
		return c.buildLHSTarget(e.X, isDef)
	default:
		return value.LeftHandSide{}, c.errorNotImplemented(expr, "assignment target")
	}
}

// genSingleAssign lowers an assignment (or compound assignment) with
// exactly one target: evaluate the LHS's runtime prep (if any), evaluate
// the single RHS value, then store. op is non-nil for a compound
// assignment or ++/--.
func (c *codegen) genSingleAssign(lhs ast.Expr, rhs ast.Expr, isDef bool, op *opcode.Opcode) error {
	target, err := c.buildLHSTarget(lhs, isDef)
	if err != nil {
		return err
	}
	if err := c.visitExpr(rhs); err != nil {
		return err
	}
	if target.Kind != value.LHSPrimitive {
		target.Offset = int16(-(target.StackWords() + 1))
	}
	c.curFunc().EmitStore(target, -1, op)
	c.curFunc().EmitPop()
	return nil
}

// pushMultiRHS pushes the values consumed by a multi-target assignment or
// var spec with targetCount targets, in the order the stores expect to
// consume them (left to right). Two shapes are supported, per 4.4 Phase
// 2: the ordinary one-expression-per-target case, and a single call
// expression feeding every target at once, in which case it is visited
// exactly once and the VM itself is responsible for leaving targetCount
// values on the stack. Anything else is an arity mismatch.
func (c *codegen) pushMultiRHS(pos ast.Node, targetCount int, rhsExprs []ast.Expr) error {
	if len(rhsExprs) == 1 {
		if call, ok := rhsExprs[0].(*ast.CallExpr); ok {
			return c.visitExpr(call)
		}
	}
	if len(rhsExprs) != targetCount {
		return c.errorMismatch(pos, targetCount, len(rhsExprs))
	}
	for _, r := range rhsExprs {
		if err := c.visitExpr(r); err != nil {
			return err
		}
	}
	return nil
}

// genTupleAssign lowers a multi-target assignment (a, b = x, y or
// a, b := x, y) where every target is a plain identifier: the common
// case, and the only one this generator supports with more than one
// target on the left (mixing an index/selector/deref target into a
// multi-value assignment is rejected -- see DESIGN.md). RHS values are
// pushed left to right (pushMultiRHS), then stored right to left, since
// each Primitive store consumes exactly the value currently on top of
// the stack.
func (c *codegen) genTupleAssign(lhsExprs, rhsExprs []ast.Expr, isDef bool) error {
	for _, l := range lhsExprs {
		if _, ok := l.(*ast.Ident); !ok {
			return c.errorNotImplemented(l, "non-identifier target in a multi-value assignment")
		}
	}
	targets := make([]value.LeftHandSide, len(lhsExprs))
	for i, l := range lhsExprs {
		idx, err := c.addLocalOrResolveIdent(l.(*ast.Ident), isDef)
		if err != nil {
			return err
		}
		targets[i] = value.Primitive(idx)
	}
	if err := c.pushMultiRHS(lhsExprs[0], len(lhsExprs), rhsExprs); err != nil {
		return err
	}
	for i := len(targets) - 1; i >= 0; i-- {
		c.curFunc().EmitStore(targets[i], -1, nil)
		c.curFunc().EmitPop()
	}
	return nil
}

// visitAssignStmt dispatches a Go assignment statement to the single- or
// tuple-target lowering, resolving its compound operator (if any).
func (c *codegen) visitAssignStmt(s *ast.AssignStmt) error {
	if op, ok := compoundOpFor(s.Tok); ok {
		return c.genSingleAssign(s.Lhs[0], s.Rhs[0], false, &op)
	}
	isDef := s.Tok == token.DEFINE
	if len(s.Lhs) == 1 && len(s.Rhs) == 1 {
		return c.genSingleAssign(s.Lhs[0], s.Rhs[0], isDef, nil)
	}
	return c.genTupleAssign(s.Lhs, s.Rhs, isDef)
}

// visitIncDec lowers x++ / x-- as a compound self-store of 1.
func (c *codegen) visitIncDec(s *ast.IncDecStmt) error {
	op, _ := compoundOpFor(s.Tok)
	target, err := c.buildLHSTarget(s.X, false)
	if err != nil {
		return err
	}
	c.emitIntLiteral(1)
	if target.Kind != value.LHSPrimitive {
		target.Offset = int16(-(target.StackWords() + 1))
	}
	c.curFunc().EmitStore(target, -1, &op)
	c.curFunc().EmitPop()
	return nil
}
