package compiler

import (
	"go/ast"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

// genFuncBody compiles a function or method body as a new Function.
// Result locals come first, occupying slots 0..RetCount-1 in declaration
// order (an unnamed result still reserves an anonymous slot, since
// visitReturn addresses a result by its positional index, not its name);
// every result slot is pre-initialized to its type's zero value, which is
// also what makes a bare "return" in a named-result function correct. The
// receiver (if any) and the declared parameters follow as locals
// RetCount..RetCount+ParamCount-1, in that order -- matching how the
// original compiler prepends the receiver to the parameter list before
// generating the function. The body is then visited with this Function on
// top of funcStack, and a RETURN is always appended as an epilogue, a
// no-op at the VM level if the body already returned explicitly on every
// path.
func (c *codegen) genFuncBody(recv *ast.FieldList, typ *ast.FuncType, body *ast.BlockStmt) (value.FunctionKey, error) {
	fn := value.NewFunction(c.currentPkg, false)
	fkey := c.objects.AddFunction(fn)
	c.pushFunc(fkey)
	defer c.popFunc()

	if typ.Results != nil {
		for _, field := range typ.Results.List {
			typVal, err := c.resolveTypeExpr(field.Type)
			if err != nil {
				return 0, err
			}
			zero := c.typeDefault(typVal)
			names := field.Names
			if len(names) == 0 {
				names = []*ast.Ident{nil}
			}
			for _, name := range names {
				var entity value.EntityKey
				var hasEntity bool
				if name != nil {
					entity, hasEntity = entityOf(name)
				}
				idx := fn.AddLocal(entity, hasEntity)
				c.emitConstLoad(zero)
				fn.EmitStore(value.Primitive(idx), -1, nil)
				fn.EmitPop()
				fn.RetCount++
			}
		}
	}

	if recv != nil {
		c.addParamFields(recv.List)
	}
	variadic := c.addParamFields(typ.Params.List)
	fn.Variadic = variadic
	fn.ParamCount = int(fn.NumLocals()) - fn.RetCount

	if err := c.visitBlock(body); err != nil {
		return 0, err
	}
	fn.EmitReturn()
	return fkey, nil
}

// addParamFields declares a local for every name in fields, in order, and
// reports whether the last field's type was a bare "...T" (valid only as
// the final parameter field). A field with no names still consumes one
// anonymous local slot, since parameter counting is purely positional.
func (c *codegen) addParamFields(fields []*ast.Field) bool {
	variadic := false
	for i, field := range fields {
		_, variadic = field.Type.(*ast.Ellipsis)
		if len(field.Names) == 0 {
			c.curFunc().AddLocal(nil, false)
			continue
		}
		for _, name := range field.Names {
			entity, hasEntity := entityOf(name)
			c.curFunc().AddLocal(entity, hasEntity)
		}
		_ = i
	}
	return variadic
}

func namesOrOne(field *ast.Field) int {
	if len(field.Names) == 0 {
		return 1
	}
	return len(field.Names)
}
