package compiler

import (
	"go/ast"
	"go/token"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/opcode"
	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
)

// binaryOps maps a binary operator token to the opcode that implements it.
// token.LAND and token.LOR are handled separately by visitBinary, since
// they short-circuit rather than always evaluating both operands.
var binaryOps = map[token.Token]opcode.Opcode{
	token.ADD:     opcode.ADD,
	token.SUB:     opcode.SUB,
	token.MUL:     opcode.MUL,
	token.QUO:     opcode.QUO,
	token.REM:     opcode.REM,
	token.AND:     opcode.AND,
	token.OR:      opcode.OR,
	token.XOR:     opcode.XOR,
	token.SHL:     opcode.SHL,
	token.SHR:     opcode.SHR,
	token.AND_NOT: opcode.AND_NOT,
	token.EQL:     opcode.EQL,
	token.LSS:     opcode.LSS,
	token.GTR:     opcode.GTR,
	token.NEQ:     opcode.NEQ,
	token.LEQ:     opcode.LEQ,
	token.GEQ:     opcode.GEQ,
}

// unaryOps maps a prefix operator token to the opcode that implements it.
// token.AND (address-of) is handled separately by visitUnary; any other
// operator, channel receive (token.ARROW) included, is reported as not
// implemented.
var unaryOps = map[token.Token]opcode.Opcode{
	token.ADD: opcode.UNARY_ADD,
	token.SUB: opcode.UNARY_SUB,
	token.XOR: opcode.UNARY_XOR,
	token.NOT: opcode.NOT,
}

// visitIdent resolves ident and emits its load.
func (c *codegen) visitIdent(e *ast.Ident) error {
	idx, err := c.resolveIdent(e)
	if err != nil {
		return err
	}
	c.curFunc().EmitLoad(idx)
	return nil
}

// visitBasicLit evaluates a literal and pushes it, via the constant pool.
func (c *codegen) visitBasicLit(e *ast.BasicLit) error {
	val, err := c.valueFromBasicLit(e)
	if err != nil {
		return err
	}
	if val.Kind == value.KindInt {
		c.emitIntLiteral(val.I)
		return nil
	}
	c.emitConstLoad(val)
	return nil
}

// visitFuncLit compiles a function literal's body as a nested Function and
// emits the sequence that turns it into a closure value: the function
// constant is loaded, then wrapped by NEW so the VM captures this literal's
// Upvalues at the point it is evaluated (the first half of 4.6 of the
// design: building a Function; the second is shared with visitFuncDecl).
func (c *codegen) visitFuncLit(e *ast.FuncLit) error {
	fkey, err := c.genFuncBody(nil, e.Type, e.Body)
	if err != nil {
		return err
	}
	c.emitConstLoad(value.Function(fkey))
	c.curFunc().EmitNew()
	return nil
}

// visitCompositeLit lowers a slice or map composite literal by
// materialising it directly into the arena -- a Slice or MapVal built
// entirely at compile time -- and loading the result as a single
// constant, exactly like any other literal (4.7). This is why a composite
// literal's elements must themselves be constant-evaluable: a basic
// literal, true/false, a leading unary minus, or a nested composite
// literal of the element/key/value type; anything else (a variable, a
// call, an arbitrary expression) has no compile-time value to put in the
// arena. Struct literals are not supported -- struct instance
// construction is the VM's job, per the design notes on Type.Zero.
func (c *codegen) visitCompositeLit(e *ast.CompositeLit) error {
	typVal, err := c.resolveTypeExpr(e.Type)
	if err != nil {
		return err
	}
	val, err := c.compLitValue(typVal, e)
	if err != nil {
		return err
	}
	c.emitConstLoad(val)
	return nil
}

// compLitValue materialises a slice or map composite literal into the
// arena, mirroring get_comp_value: every element is evaluated as a
// constant (litElemValue) rather than at runtime.
func (c *codegen) compLitValue(typVal value.Value, e *ast.CompositeLit) (value.Value, error) {
	t := c.objects.Type(typVal.TypeKey())
	switch t.Kind {
	case value.TypeSlice:
		elems := make([]value.Value, len(e.Elts))
		for i, elt := range e.Elts {
			if _, ok := elt.(*ast.KeyValueExpr); ok {
				return value.Nil, c.errorNotImplemented(elt, "keyed slice literal element")
			}
			v, err := c.litElemValue(t.Elem, elt)
			if err != nil {
				return value.Nil, err
			}
			elems[i] = v
		}
		return value.Slice(c.objects.AddSlice(elems)), nil
	case value.TypeMap:
		m := value.NewMapVal()
		for _, elt := range e.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				return value.Nil, c.errorNotImplemented(elt, "map literal element without a key")
			}
			k, err := c.litElemValue(t.MapKey, kv.Key)
			if err != nil {
				return value.Nil, err
			}
			v, err := c.litElemValue(t.MapVal, kv.Value)
			if err != nil {
				return value.Nil, err
			}
			m.Insert(k, v)
		}
		return value.Map(c.objects.AddMap(m)), nil
	default:
		return value.Nil, c.errorNotImplemented(e, "composite literal of this type")
	}
}

// litElemValue evaluates a single composite-literal element (or map
// key/value) to a constant Value: a nested composite literal recurses
// into compLitValue, anything else falls to the generator's ordinary
// constant-expression evaluation.
func (c *codegen) litElemValue(elemType value.Value, expr ast.Expr) (value.Value, error) {
	if nested, ok := expr.(*ast.CompositeLit); ok {
		typVal := elemType
		if nested.Type != nil {
			var err error
			typVal, err = c.resolveTypeExpr(nested.Type)
			if err != nil {
				return value.Nil, err
			}
		}
		return c.compLitValue(typVal, nested)
	}
	return c.evalConstExpr(expr)
}

// visitSelector lowers struct/map field access (x.Name, resolved at
// runtime by name). Package-qualified access (pkg.Name) would need
// multi-file import resolution, which is out of scope (1); a selector
// whose base is an unresolved name therefore falls through to visitExpr,
// which reports it as an ordinary undefined identifier.
func (c *codegen) visitSelector(e *ast.SelectorExpr) error {
	if err := c.visitExpr(e.X); err != nil {
		return err
	}
	c.emitConstLoad(value.Str(c.objects.AddString(e.Sel.Name)))
	c.curFunc().EmitLoadField()
	return nil
}

// visitIndex lowers x[i] for both slices and maps: LOAD_FIELD is the
// general "index a container by key" operation.
func (c *codegen) visitIndex(e *ast.IndexExpr) error {
	if err := c.visitExpr(e.X); err != nil {
		return err
	}
	if err := c.visitExpr(e.Index); err != nil {
		return err
	}
	c.curFunc().EmitLoadField()
	return nil
}

// visitSlice lowers x[low:high] and x[low:high:max]. A missing bound
// pushes Nil; the VM substitutes 0 for a missing low and len(x)/cap(x) for
// a missing high/max.
func (c *codegen) visitSlice(e *ast.SliceExpr) error {
	if err := c.visitExpr(e.X); err != nil {
		return err
	}
	pushBoundOrNil := func(b ast.Expr) error {
		if b == nil {
			c.curFunc().EmitCode(opcode.PUSH_NIL)
			return nil
		}
		return c.visitExpr(b)
	}
	if err := pushBoundOrNil(e.Low); err != nil {
		return err
	}
	if err := pushBoundOrNil(e.High); err != nil {
		return err
	}
	if e.Max != nil {
		if err := c.visitExpr(e.Max); err != nil {
			return err
		}
		c.curFunc().EmitCode(opcode.SLICE_FULL)
		return nil
	}
	c.curFunc().EmitCode(opcode.SLICE)
	return nil
}

// visitStar lowers *p, a pointer dereference, as an expression.
func (c *codegen) visitStar(e *ast.StarExpr) error {
	if err := c.visitExpr(e.X); err != nil {
		return err
	}
	c.curFunc().EmitCode(opcode.DEREF)
	return nil
}

// visitUnary lowers a prefix operator. Address-of (&x) boxes a copy of x's
// current value rather than aliasing its storage -- consistent with
// Value's flat, arena-indirected representation, where the only place true
// aliasing exists is a Boxed cell.
func (c *codegen) visitUnary(e *ast.UnaryExpr) error {
	if e.Op == token.AND {
		if err := c.visitExpr(e.X); err != nil {
			return err
		}
		c.curFunc().EmitCode(opcode.REF)
		return nil
	}
	op, ok := unaryOps[e.Op]
	if !ok {
		return c.errorNotImplemented(e, "unary operator "+e.Op.String())
	}
	if err := c.visitExpr(e.X); err != nil {
		return err
	}
	c.curFunc().EmitCode(op)
	return nil
}

// visitBinary lowers && and || with short-circuit jumps and everything
// else as a plain pop-two/push-one opcode.
func (c *codegen) visitBinary(e *ast.BinaryExpr) error {
	switch e.Op {
	case token.LAND:
		return c.visitShortCircuit(e, opcode.JUMP_IF_NOT, opcode.PUSH_FALSE)
	case token.LOR:
		return c.visitShortCircuit(e, opcode.JUMP_IF, opcode.PUSH_TRUE)
	}
	op, ok := binaryOps[e.Op]
	if !ok {
		return c.errorNotImplemented(e, "binary operator "+e.Op.String())
	}
	if err := c.visitExpr(e.X); err != nil {
		return err
	}
	if err := c.visitExpr(e.Y); err != nil {
		return err
	}
	c.curFunc().EmitCode(op)
	return nil
}

func (c *codegen) visitShortCircuit(e *ast.BinaryExpr, shortJump, shortPush opcode.Opcode) error {
	if err := c.visitExpr(e.X); err != nil {
		return err
	}
	toShort := c.curFunc().EmitJump(shortJump)
	if err := c.visitExpr(e.Y); err != nil {
		return err
	}
	toEnd := c.curFunc().EmitJump(opcode.JUMP)
	c.curFunc().PatchJump(toShort)
	c.curFunc().EmitCode(shortPush)
	c.curFunc().PatchJump(toEnd)
	return nil
}

// visitTypeExpr resolves a type expression and loads the resulting type as
// a constant. visitBuiltInCall uses it for the type argument of new and
// make; visitExpr also routes bare array and map type expressions here.
func (c *codegen) visitTypeExpr(e ast.Expr) error {
	typVal, err := c.resolveTypeExpr(e)
	if err != nil {
		return err
	}
	c.emitConstLoad(typVal)
	return nil
}

// visitCall lowers three distinct shapes: a built-in function (recognised
// by name, emitting its dedicated opcode), a type conversion (recognised
// by the callee resolving as a type; since Value already self-describes
// its Kind, a conversion among the supported basic types is the identity
// at this representation and the argument is simply evaluated), and an
// ordinary call (push the callee, PRE_CALL, push each argument, CALL).
func (c *codegen) visitCall(e *ast.CallExpr) error {
	if ident, ok := e.Fun.(*ast.Ident); ok {
		if _, hasEntity := entityOf(ident); !hasEntity {
			if bi, ok := builtInFuncByName(ident.Name); ok {
				return c.visitBuiltInCall(bi, e)
			}
			if _, ok := c.objects.BasicType(ident.Name); ok {
				return c.visitExpr(e.Args[0])
			}
		}
	}
	if err := c.visitExpr(e.Fun); err != nil {
		return err
	}
	c.curFunc().EmitPreCall()
	for _, arg := range e.Args {
		if err := c.visitExpr(arg); err != nil {
			return err
		}
	}
	c.curFunc().EmitCall(e.Ellipsis != token.NoPos)
	return nil
}

func (c *codegen) visitBuiltInCall(bi *builtInFunc, e *ast.CallExpr) error {
	switch bi.name {
	case "new":
		if err := c.visitTypeExpr(e.Args[0]); err != nil {
			return err
		}
		c.curFunc().EmitNew()
		return nil
	case "make":
		if err := c.visitTypeExpr(e.Args[0]); err != nil {
			return err
		}
		for _, arg := range e.Args[1:] {
			if err := c.visitExpr(arg); err != nil {
				return err
			}
		}
		c.curFunc().EmitCode(opcode.MAKE)
		c.curFunc().EmitData(c.builtInPackCount(bi, e))
		return nil
	case "len", "cap", "assert":
		if err := c.visitExpr(e.Args[0]); err != nil {
			return err
		}
		c.curFunc().EmitCode(bi.opcode)
		return nil
	case "append":
		for _, arg := range e.Args {
			if err := c.visitExpr(arg); err != nil {
				return err
			}
		}
		c.curFunc().EmitCode(opcode.APPEND)
		c.curFunc().EmitData(c.builtInPackCount(bi, e))
		return nil
	default:
		return c.errorNotImplemented(e, "built-in "+bi.name)
	}
}

// builtInPackCount computes the data word for a variadic built-in
// (make/append): declared_params - 1 - arg_count, where arg_count is every
// argument in the call (including make's leading type argument) -- the
// negated number of trailing arguments the VM should pack. An explicit
// "args..." spread disables packing outright and yields 0.
func (c *codegen) builtInPackCount(bi *builtInFunc, e *ast.CallExpr) int16 {
	if e.Ellipsis != token.NoPos {
		return 0
	}
	return int16(bi.paramsCount - 1 - len(e.Args))
}
