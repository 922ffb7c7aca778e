package compiler

import (
	"go/ast"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

// entityOf returns the EntityKey identifying ident's declaration site, and
// whether ident resolved to one at all. The blank identifier and any name
// go/parser could not bind (a built-in or a genuinely undefined reference)
// both report ok == false; callers distinguish the two by name.
func entityOf(ident *ast.Ident) (value.EntityKey, bool) {
	if ident.Obj == nil {
		return nil, false
	}
	return ident.Obj, true
}

func isBlank(ident *ast.Ident) bool { return ident.Name == "_" }

// resolveIdent implements 4.5: local, then upvalue (by scanning
// funcStack's ancestor functions, skipping the package constructor at the
// bottom and the current function at the top), then package member.
// Built-ins and genuinely undefined names are handled first.
func (c *codegen) resolveIdent(ident *ast.Ident) (value.EntIndex, error) {
	entity, ok := entityOf(ident)
	if !ok {
		if op, ok := builtInVals[ident.Name]; ok {
			return value.BuiltIn(op), nil
		}
		return value.EntIndex{}, c.errorUndefined(ident, ident.Name)
	}

	if idx, ok := c.curFunc().EntityIndex(entity); ok {
		return idx, nil
	}

	if owner, idx, ok := c.findUpvalueOwner(entity); ok {
		uv := value.OpenUpValue(owner, idx)
		return c.curFunc().TryAddUpvalue(entity, uv), nil
	}

	pkg := c.objects.Package(c.currentPkg)
	if i, ok := pkg.MemberIndex(entity); ok {
		return value.EntIndex{Kind: value.EntPackageMember, Index: int16(i)}, nil
	}

	return value.EntIndex{}, c.errorUndefined(ident, ident.Name)
}

// findUpvalueOwner scans funcStack from the top down, skipping the current
// function (the top) and the package constructor (the bottom), looking for
// an ancestor frame that holds entity as a local or a constant. Every frame
// between those two is searched, nearest first. The caller records the
// capture only in the current function: no upvalue is added to any
// intermediate function, so a name found beyond the immediate parent is
// captured as an Open upvalue on the owning frame directly.
func (c *codegen) findUpvalueOwner(entity value.EntityKey) (value.FunctionKey, value.EntIndex, bool) {
	n := len(c.funcStack)
	if n <= 2 {
		return 0, value.EntIndex{}, false
	}
	for i := n - 2; i >= 1; i-- {
		owner := c.funcStack[i]
		if idx, ok := c.objects.Function(owner).EntityIndex(entity); ok {
			return owner, idx, true
		}
	}
	return 0, value.EntIndex{}, false
}

// addLocalOrResolveIdent implements add_local_or_resolve_ident: when
// isDef, it always allocates a fresh local -- or, when the current
// function is the package constructor, a fresh package member -- even if
// a binding with the same entity already exists, shadowing it; otherwise it
// behaves like resolveIdent. The blank identifier always resolves to
// EntBlank.
func (c *codegen) addLocalOrResolveIdent(ident *ast.Ident, isDef bool) (value.EntIndex, error) {
	if isBlank(ident) {
		return value.Blank, nil
	}
	if !isDef {
		return c.resolveIdent(ident)
	}
	entity, hasEntity := entityOf(ident)
	if c.curFunc().IsCtor {
		pkgKey := c.curFunc().Package
		i := c.objects.Package(pkgKey).AddVar(entity)
		return value.EntIndex{Kind: value.EntPackageMember, Index: int16(i)}, nil
	}
	idx := c.curFunc().AddLocal(entity, hasEntity)
	return idx, nil
}
