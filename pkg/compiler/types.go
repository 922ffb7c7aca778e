package compiler

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"
	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

// resolveTypeExpr implements the minimal, best-effort type resolution
// described in 4.7 of the design: enough to drive NEW/make/composite
// literals and zero-value computation, with no general type checking. A
// bare identifier resolves first against the built-in basic types, then
// against previously declared named types (visitGenDecl's TYPE case); a
// construct outside this minimal surface (fixed-size arrays, non-empty
// interfaces, embedded struct fields, channel types) is rejected with a
// diagnostic rather than silently misresolved.
func (c *codegen) resolveTypeExpr(expr ast.Expr) (value.Value, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if v, ok := c.objects.BasicType(t.Name); ok {
			return v, nil
		}
		if v, ok := c.namedTypes[t.Name]; ok {
			return v, nil
		}
		return value.Nil, c.errorNotImplemented(t, "named or unknown type "+t.Name)
	case *ast.ArrayType:
		if t.Len != nil {
			return value.Nil, c.errorNotImplemented(t, "fixed-size arrays")
		}
		elem, err := c.resolveTypeExpr(t.Elt)
		if err != nil {
			return value.Nil, err
		}
		return value.Type(c.objects.AddType(value.NewSliceType(elem))), nil
	case *ast.MapType:
		key, err := c.resolveTypeExpr(t.Key)
		if err != nil {
			return value.Nil, err
		}
		val, err := c.resolveTypeExpr(t.Value)
		if err != nil {
			return value.Nil, err
		}
		return value.Type(c.objects.AddType(value.NewMapType(key, val))), nil
	case *ast.StarExpr:
		inner, err := c.resolveTypeExpr(t.X)
		if err != nil {
			return value.Nil, err
		}
		return value.Type(c.objects.AddType(value.NewBoxedType(inner))), nil
	case *ast.StructType:
		return c.resolveStructType(t)
	case *ast.InterfaceType:
		if t.Methods != nil && len(t.Methods.List) > 0 {
			return value.Nil, c.errorNotImplemented(t, "interface method sets")
		}
		return value.Type(c.objects.AddType(value.NewInterfaceType(nil))), nil
	case *ast.Ellipsis:
		elem, err := c.resolveTypeExpr(t.Elt)
		if err != nil {
			return value.Nil, err
		}
		return value.Type(c.objects.AddType(value.NewVariadicType(elem))), nil
	case *ast.FuncType:
		params, err := c.resolveFieldTypes(t.Params)
		if err != nil {
			return value.Nil, err
		}
		results, err := c.resolveFieldTypes(t.Results)
		if err != nil {
			return value.Nil, err
		}
		return value.Type(c.objects.AddType(value.NewClosureType(params, results))), nil
	case *ast.ParenExpr:
		return c.resolveTypeExpr(t.X)
	default:
		return value.Nil, c.errorNotImplemented(expr, "type expression")
	}
}

// resolveFieldTypes resolves a func type's parameter or result list to one
// Value per declared name, expanding a multi-name field (a, b int) to one
// entry per name and an unnamed field to a single entry, via namesOrOne.
// A nil list (no results) resolves to nil.
func (c *codegen) resolveFieldTypes(fields *ast.FieldList) ([]value.Value, error) {
	if fields == nil {
		return nil, nil
	}
	var out []value.Value
	for _, field := range fields.List {
		fv, err := c.resolveTypeExpr(field.Type)
		if err != nil {
			return nil, err
		}
		for i := 0; i < namesOrOne(field); i++ {
			out = append(out, fv)
		}
	}
	return out, nil
}

func (c *codegen) resolveStructType(t *ast.StructType) (value.Value, error) {
	var fields []value.Value
	index := map[string]int{}
	for _, field := range t.Fields.List {
		fv, err := c.resolveTypeExpr(field.Type)
		if err != nil {
			return value.Nil, err
		}
		names := field.Names
		if len(names) == 0 {
			return value.Nil, c.errorNotImplemented(field.Type, "embedded struct fields")
		}
		for _, n := range names {
			index[n.Name] = len(fields)
			fields = append(fields, fv)
		}
	}
	return value.Type(c.objects.AddType(value.NewStructType(fields, index))), nil
}

// typeDefault returns the zero value of the type named by typVal, a
// KindType Value previously returned by resolveTypeExpr.
func (c *codegen) typeDefault(typVal value.Value) value.Value {
	return c.objects.Type(typVal.TypeKey()).Zero
}

// valueFromBasicLit implements the constant-evaluation slice of 4.7:
// turning an *ast.BasicLit into a concrete Value, with the int/float/char
// coercions and overflow checks a full type checker would otherwise
// perform.
func (c *codegen) valueFromBasicLit(lit *ast.BasicLit) (value.Value, error) {
	switch lit.Kind {
	case token.INT:
		i, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			c.errs.Addf(c.posOf(lit), "invalid integer literal %q: %s", lit.Value, err)
			return value.Nil, errSentinel
		}
		return value.Int(i), nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			c.errs.Addf(c.posOf(lit), "invalid float literal %q: %s", lit.Value, err)
			return value.Nil, errSentinel
		}
		return value.Float64(f), nil
	case token.CHAR:
		r, _, _, err := strconv.UnquoteChar(lit.Value[1:len(lit.Value)-1], '\'')
		if err != nil {
			c.errs.Addf(c.posOf(lit), "invalid rune literal %q: %s", lit.Value, err)
			return value.Nil, errSentinel
		}
		return value.Int(int64(r)), nil
	case token.STRING:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			c.errs.Addf(c.posOf(lit), "invalid string literal %q: %s", lit.Value, err)
			return value.Nil, errSentinel
		}
		if s == "" {
			return value.Str(c.objects.EmptyString()), nil
		}
		return value.Str(c.objects.AddString(s)), nil
	default:
		c.errs.Addf(c.posOf(lit), "unsupported literal kind %s", lit.Kind)
		return value.Nil, errSentinel
	}
}

// emitConstLoad registers val in the current function's constant pool and
// emits the LOAD sequence for it.
func (c *codegen) emitConstLoad(val value.Value) {
	idx := c.curFunc().AddConst(nil, false, val)
	c.curFunc().EmitLoad(idx)
}

// emitIntLiteral pushes the integer i, using an immediate when it fits the
// data word the opcode carries and falling back to the constant pool
// otherwise.
func (c *codegen) emitIntLiteral(i int64) {
	if i >= -(1<<15) && i < 1<<15 {
		c.curFunc().EmitCode(opcode.PUSH_IMM)
		c.curFunc().EmitData(int16(i))
		return
	}
	c.emitConstLoad(value.Int(i))
}
