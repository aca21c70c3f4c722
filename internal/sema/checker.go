package sema

import (
	"github.com/ashlang/ashc/internal/ast"
	"github.com/ashlang/ashc/internal/diag"
	"github.com/ashlang/ashc/internal/token"
)

// Checker walks an AST in a single pass, maintaining a parent-linked
// scope chain and writing each expression's resolved type into its
// annotation slot. The operator, call, subscript, access and constructor
// rules below are this checker's own decisions (DESIGN.md records the
// assignability, promotion and comparison ones) — the source this is
// grounded on left these cases as empty switch arms.
type Checker struct {
	sink       *diag.Sink
	nextID     uint64
	returnType []Type
	loopDepth  int
	switchDep  int
}

// NewChecker creates a checker reporting through sink.
func NewChecker(sink *diag.Sink) *Checker {
	return &Checker{sink: sink}
}

func (c *Checker) newID() uint64 {
	c.nextID++
	return c.nextID
}

// Check type-checks a complete program, represented as the implicit
// top-level block ParseProgram returns.
func (c *Checker) Check(program *ast.Block) {
	global := newScope(nil)
	c.checkBlockStmts(global, program.Stmts)
}

// checkBlockStmts implements the two-pass per-block algorithm: reserve
// Undefined placeholders for every name this block declares, then walk
// the statements in order, back-patching each slot as its definition is
// processed.
func (c *Checker) checkBlockStmts(scope *Scope, stmts []ast.Stmt) {
	for _, st := range stmts {
		switch s := st.(type) {
		case *ast.Decl:
			scope.define(s.Name, Undefined{}, s.Pos())
		case *ast.Typedef:
			scope.define(s.Name, Undefined{}, s.Pos())
		case *ast.Fn:
			scope.define(s.Name, Undefined{}, s.Pos())
		case *ast.StructDef:
			scope.define(s.Name, Undefined{}, s.Pos())
		case *ast.EnumDef:
			scope.define(s.Name, Undefined{}, s.Pos())
		}
	}

	for _, st := range stmts {
		c.checkStmt(scope, st)
		if c.sink.Failed() {
			return
		}
	}
}

func (c *Checker) checkStmt(scope *Scope, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ErrorStmt, *ast.Nop, *ast.BreakStmt, *ast.ContinueStmt:
		c.checkJump(s)

	case *ast.Block:
		c.checkBlockStmts(newScope(scope), s.Stmts)

	case *ast.ExprStmt:
		c.checkExpr(scope, s.Expr)

	case *ast.Decl:
		c.checkDecl(scope, s)

	case *ast.Typedef:
		underlying := c.resolveSpec(scope, s.Spec)
		scope.define(s.Name, &Typedef{ID: c.newID(), Name: s.Name, Underlying: underlying}, s.Pos())

	case *ast.IfElse:
		cond := c.checkExpr(scope, s.Cond)
		if !IsBool(cond) && !IsError(cond) {
			c.sink.TypeError(s.Cond.Pos(), "if condition must be bool, got %s", cond)
		}
		c.checkStmt(scope, s.Then)
		if s.Else != nil {
			c.checkStmt(scope, s.Else)
		}

	case *ast.Switch:
		scrutinee := c.checkExpr(scope, s.Expr)
		c.switchDep++
		for i, label := range s.Cases {
			if _, isNone := label.(*ast.NoneExpr); !isNone {
				lt := c.checkExpr(scope, label)
				if !typesEqual(scrutinee, lt) && !IsError(scrutinee) && !IsError(lt) {
					c.sink.TypeError(label.Pos(), "case label type %s does not match switch type %s", lt, scrutinee)
				}
			} else {
				label.Annotate(Void{})
			}
			c.checkStmt(scope, s.Branches[i])
		}
		c.switchDep--

	case *ast.While:
		c.checkLoopCond(scope, s.Cond)
		c.loopDepth++
		c.checkStmt(scope, s.Body)
		c.loopDepth--

	case *ast.DoWhile:
		c.loopDepth++
		c.checkStmt(scope, s.Body)
		c.loopDepth--
		c.checkLoopCond(scope, s.Cond)

	case *ast.For:
		forScope := newScope(scope)
		c.checkBlockStmts(forScope, []ast.Stmt{s.Init})
		if _, isNone := s.Cond.(*ast.NoneExpr); !isNone {
			c.checkLoopCond(forScope, s.Cond)
		} else {
			s.Cond.Annotate(Void{})
		}
		if _, isNone := s.Post.(*ast.NoneExpr); !isNone {
			c.checkExpr(forScope, s.Post)
		} else {
			s.Post.Annotate(Void{})
		}
		c.loopDepth++
		c.checkStmt(forScope, s.Body)
		c.loopDepth--

	case *ast.Fn:
		c.checkFn(scope, s)

	case *ast.StructDef:
		c.checkStruct(scope, s)

	case *ast.EnumDef:
		items := append([]string(nil), s.Items...)
		scope.define(s.Name, &Enum{ID: c.newID(), Name: s.Name, Items: items}, s.Pos())

	case *ast.ReturnStmt:
		var valType Type = Void{}
		if _, isNone := s.Value.(*ast.NoneExpr); !isNone {
			valType = c.checkExpr(scope, s.Value)
		} else {
			s.Value.Annotate(Void{})
		}
		if len(c.returnType) == 0 {
			c.sink.TypeError(s.Pos(), "return outside function")
			return
		}
		want := c.returnType[len(c.returnType)-1]
		if _, isVoid := want.(Void); isVoid {
			if _, valVoid := valType.(Void); !valVoid && !IsError(valType) {
				c.sink.TypeError(s.Pos(), "function has no return type, cannot return %s", valType)
			}
			return
		}
		if !assignable(want, valType) && !IsError(valType) {
			c.sink.TypeError(s.Pos(), "return type mismatch: expected %s, got %s", want, valType)
		}
	}
}

func (c *Checker) checkJump(s ast.Stmt) {
	switch s.(type) {
	case *ast.BreakStmt:
		if c.loopDepth == 0 && c.switchDep == 0 {
			c.sink.TypeError(s.Pos(), "break outside loop or switch")
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.sink.TypeError(s.Pos(), "continue outside loop")
		}
	}
}

func (c *Checker) checkLoopCond(scope *Scope, cond ast.Expr) {
	t := c.checkExpr(scope, cond)
	if !IsBool(t) && !IsError(t) {
		c.sink.TypeError(cond.Pos(), "loop condition must be bool, got %s", t)
	}
}

func (c *Checker) checkDecl(scope *Scope, d *ast.Decl) {
	valType := c.checkExpr(scope, d.Value)

	resolved := c.resolveSpec(scope, d.Spec)
	var declType Type
	if IsUndefined(resolved) {
		declType = valueOf(valType)
		if item, ok := declType.(EnumItem); ok {
			declType = item.Enum
		}
	} else {
		declType = resolved
		if !assignable(declType, valType) && !IsError(valType) {
			c.sink.TypeError(d.Pos(), "cannot initialize %s with value of type %s", declType, valType)
		}
	}

	declType = withMutability(declType, d.Mutable)
	scope.define(d.Name, declType, d.Pos())
}

func (c *Checker) checkFn(scope *Scope, fn *ast.Fn) {
	fnScope := newScope(scope)
	params := make([]Type, len(fn.Params))
	optional := 0
	for i, p := range fn.Params {
		pt := c.resolveSpec(fnScope, p.Spec)
		if p.HasDefault() {
			defType := c.checkExpr(fnScope, p.Default)
			if IsUndefined(pt) {
				pt = valueOf(defType)
			}
			optional++
		} else if optional > 0 {
			c.sink.TypeError(p.Pos(), "non-optional parameter %q after optional parameter", p.Name)
		}
		pt = withMutability(pt, true)
		params[i] = pt
		fnScope.define(p.Name, pt, p.Pos())
	}

	ret := c.resolveSpec(fnScope, fn.Return)
	if IsUndefined(ret) {
		ret = Void{}
	}

	fnType := Function{Params: params, Optional: optional, Return: ret}
	scope.define(fn.Name, fnType, fn.Pos())

	c.returnType = append(c.returnType, ret)
	c.checkBlockStmts(fnScope, fn.Body.Stmts)
	c.returnType = c.returnType[:len(c.returnType)-1]
}

func (c *Checker) checkStruct(scope *Scope, sd *ast.StructDef) {
	fields := make(map[string]Type, len(sd.Members))
	order := make([]string, len(sd.Members))
	for i, m := range sd.Members {
		ft := c.resolveSpec(scope, m.Spec)
		if m.HasDefault() {
			dt := c.checkExpr(scope, m.Default)
			if IsUndefined(ft) {
				ft = valueOf(dt)
			} else if !assignable(ft, dt) && !IsError(dt) {
				c.sink.TypeError(m.Pos(), "field %q default has type %s, expected %s", m.Name, dt, ft)
			}
		}
		ft = withMutability(ft, true)
		fields[m.Name] = ft
		order[i] = m.Name
	}
	scope.define(sd.Name, &Struct{ID: c.newID(), Name: sd.Name, Fields: fields, Order: order}, sd.Pos())
}

// checkExpr computes e's type, stores it on the node's annotation slot,
// and returns it.
func (c *Checker) checkExpr(scope *Scope, e ast.Expr) Type {
	t := c.computeExpr(scope, e)
	e.Annotate(t)
	return t
}

func (c *Checker) computeExpr(scope *Scope, e ast.Expr) Type {
	switch ex := e.(type) {
	case *ast.ErrorExpr:
		return ErrorType{}

	case *ast.NoneExpr:
		return Void{}

	case *ast.Grouped:
		return c.checkExpr(scope, ex.Inner)

	case *ast.Atomic:
		return c.checkAtomic(scope, ex)

	case *ast.ArrayLit:
		return c.checkArrayLit(scope, ex)

	case *ast.Lambda:
		return c.checkLambda(scope, ex)

	case *ast.Unary:
		return c.checkUnary(scope, ex)

	case *ast.Binary:
		return c.checkBinary(scope, ex)

	case *ast.Ternary:
		return c.checkTernary(scope, ex)

	case *ast.Subscript:
		return c.checkSubscript(scope, ex)

	case *ast.Call:
		return c.checkCall(scope, ex)

	case *ast.Constructor:
		return c.checkConstructor(scope, ex)

	case *ast.Access:
		return c.checkAccess(scope, ex)

	default:
		c.sink.TypeError(e.Pos(), "unsupported expression")
		return ErrorType{}
	}
}

func (c *Checker) checkAtomic(scope *Scope, ex *ast.Atomic) Type {
	switch ex.Token.Kind {
	case token.Int:
		return Int{Kind: I64}
	case token.Char:
		return Int{Kind: U8}
	case token.String:
		return Array{Elem: Int{Kind: U8, Mutable: true}, Mutable: false}
	case token.Ident:
		sym, ok := scope.lookup(ex.Token.Literal)
		if !ok {
			c.sink.TypeError(ex.Pos(), "undefined identifier %q", ex.Token.Literal)
			return ErrorType{}
		}
		if IsUndefined(sym.Type) {
			c.sink.TypeError(ex.Pos(), "identifier %q is undefined", ex.Token.Literal)
			return ErrorType{}
		}
		return asLvalue(sym.Type)
	default:
		c.sink.TypeError(ex.Pos(), "unsupported literal")
		return ErrorType{}
	}
}

func (c *Checker) checkArrayLit(scope *Scope, ex *ast.ArrayLit) Type {
	if len(ex.Elems) == 0 {
		return Array{Elem: Void{}, Mutable: true}
	}
	first := valueOf(c.checkExpr(scope, ex.Elems[0]))
	for _, el := range ex.Elems[1:] {
		t := valueOf(c.checkExpr(scope, el))
		if !typesEqual(first, t) && !IsError(t) {
			c.sink.TypeError(el.Pos(), "array element type %s does not match %s", t, first)
		}
	}
	return Array{Elem: first, Mutable: true}
}

func (c *Checker) checkLambda(scope *Scope, ex *ast.Lambda) Type {
	lamScope := newScope(scope)
	params := make([]Type, len(ex.ParamNames))
	optional := 0
	for i, name := range ex.ParamNames {
		pt := c.resolveSpec(lamScope, ex.ParamTypes[i])
		if ex.ParamDefault[i] != nil {
			dt := c.checkExpr(lamScope, ex.ParamDefault[i])
			if IsUndefined(pt) {
				pt = valueOf(dt)
			}
			optional++
		}
		pt = withMutability(pt, true)
		params[i] = pt
		lamScope.define(name, pt, ex.Pos())
	}
	c.returnType = append(c.returnType, Void{})
	bodyType := valueOf(c.checkExpr(lamScope, ex.Body))
	c.returnType = c.returnType[:len(c.returnType)-1]

	declared := c.resolveSpec(lamScope, ex.Return)
	if IsUndefined(declared) {
		return Function{Params: params, Optional: optional, Return: bodyType}
	}
	if !assignable(declared, bodyType) && !IsError(bodyType) {
		c.sink.TypeError(ex.Body.Pos(), "lambda body has type %s, expected %s", bodyType, declared)
	}
	return Function{Params: params, Optional: optional, Return: declared}
}

func (c *Checker) checkUnary(scope *Scope, ex *ast.Unary) Type {
	operand := c.checkExpr(scope, ex.Operand)

	switch ex.Op {
	case token.Plus, token.Minus, token.Tilde:
		i, ok := IsInt(operand)
		if !ok {
			if !IsError(operand) {
				c.sink.TypeError(ex.Pos(), "operand of unary operator must be an integer, got %s", operand)
			}
			return ErrorType{}
		}
		return Int{Kind: i.Kind}

	case token.Bang:
		if !IsBool(operand) {
			if !IsError(operand) {
				c.sink.TypeError(ex.Pos(), "operand of '!' must be bool, got %s", operand)
			}
			return ErrorType{}
		}
		return Bool{}

	case token.Amp:
		if !isLvalue(operand) {
			c.sink.TypeError(ex.Pos(), "cannot take address of a non-lvalue")
			return ErrorType{}
		}
		return Pointer{Elem: valueOf(operand), Mutable: isMutable(operand)}

	case token.Star:
		p, ok := Underlying(operand).(Pointer)
		if !ok {
			if !IsError(operand) {
				c.sink.TypeError(ex.Pos(), "cannot dereference non-pointer type %s", operand)
			}
			return ErrorType{}
		}
		return withLvalue(p.Elem, true, p.Mutable)

	case token.PlusPlus, token.MinusMinus:
		i, ok := IsInt(operand)
		if !ok {
			if !IsError(operand) {
				c.sink.TypeError(ex.Pos(), "operand of '++'/'--' must be an integer, got %s", operand)
			}
			return ErrorType{}
		}
		if !isLvalue(operand) || !isMutable(operand) {
			c.sink.TypeError(ex.Pos(), "operand of '++'/'--' must be a mutable lvalue")
		}
		return Int{Kind: i.Kind}

	default:
		c.sink.TypeError(ex.Pos(), "unsupported unary operator")
		return ErrorType{}
	}
}

func isAssignOp(op token.Kind) bool {
	switch op {
	case token.Eq, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq,
		token.PercentEq, token.PipeEq, token.AmpEq, token.CaretEq,
		token.LtLtEq, token.GtGtEq:
		return true
	default:
		return false
	}
}

func isArithmeticOp(op token.Kind) bool {
	switch op {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Amp, token.Pipe, token.Caret, token.LtLt, token.GtGt:
		return true
	default:
		return false
	}
}

func isComparisonOp(op token.Kind) bool {
	switch op {
	case token.EqEq, token.Neq, token.Lt, token.Leq, token.Gt, token.Geq:
		return true
	default:
		return false
	}
}

func (c *Checker) checkBinary(scope *Scope, ex *ast.Binary) Type {
	if isAssignOp(ex.Op) {
		left := c.checkExpr(scope, ex.Left)
		right := c.checkExpr(scope, ex.Right)
		if !isLvalue(left) || !isMutable(left) {
			c.sink.TypeError(ex.Pos(), "assignment target must be a mutable lvalue")
			return valueOf(left)
		}
		if ex.Op != token.Eq {
			if _, ok := IsInt(left); !ok {
				c.sink.TypeError(ex.Pos(), "compound assignment target must be an integer, got %s", left)
			}
			if _, ok := IsInt(right); !ok && !IsError(right) {
				c.sink.TypeError(ex.Pos(), "compound assignment operand must be an integer, got %s", right)
			}
		} else if !assignable(left, right) && !IsError(right) {
			c.sink.TypeError(ex.Pos(), "cannot assign %s to %s", right, left)
		}
		return valueOf(left)
	}

	left := c.checkExpr(scope, ex.Left)
	right := c.checkExpr(scope, ex.Right)

	switch {
	case ex.Op == token.AmpAmp || ex.Op == token.PipePipe:
		if !IsBool(left) || !IsBool(right) {
			if !IsError(left) && !IsError(right) {
				c.sink.TypeError(ex.Pos(), "operands of logical operator must be bool")
			}
			return ErrorType{}
		}
		return Bool{}

	case isArithmeticOp(ex.Op):
		li, lok := IsInt(left)
		ri, rok := IsInt(right)
		if !lok || !rok {
			if !IsError(left) && !IsError(right) {
				c.sink.TypeError(ex.Pos(), "operands of arithmetic operator must be integers, got %s and %s", left, right)
			}
			return ErrorType{}
		}
		return Int{Kind: widerKind(li.Kind, ri.Kind)}

	case isComparisonOp(ex.Op):
		if !comparable(left, right) && !IsError(left) && !IsError(right) {
			c.sink.TypeError(ex.Pos(), "cannot compare %s with %s", left, right)
		}
		return Bool{}

	default:
		c.sink.TypeError(ex.Pos(), "unsupported binary operator")
		return ErrorType{}
	}
}

func (c *Checker) checkTernary(scope *Scope, ex *ast.Ternary) Type {
	cond := c.checkExpr(scope, ex.Cond)
	if !IsBool(cond) && !IsError(cond) {
		c.sink.TypeError(ex.Cond.Pos(), "ternary condition must be bool, got %s", cond)
	}
	then := c.checkExpr(scope, ex.Then)
	els := c.checkExpr(scope, ex.Else)
	if !typesEqual(valueOf(then), valueOf(els)) && !IsError(then) && !IsError(els) {
		c.sink.TypeError(ex.Pos(), "ternary arms must have identical types, got %s and %s", then, els)
	}
	return valueOf(then)
}

func (c *Checker) checkSubscript(scope *Scope, ex *ast.Subscript) Type {
	arr := c.checkExpr(scope, ex.Array)
	idx := c.checkExpr(scope, ex.Index)
	if _, ok := IsInt(idx); !ok && !IsError(idx) {
		c.sink.TypeError(ex.Index.Pos(), "array index must be an integer, got %s", idx)
	}
	a, ok := Underlying(arr).(Array)
	if !ok {
		if !IsError(arr) {
			c.sink.TypeError(ex.Pos(), "cannot subscript non-array type %s", arr)
		}
		return ErrorType{}
	}
	return withLvalue(a.Elem, true, a.Mutable)
}

func (c *Checker) checkCall(scope *Scope, ex *ast.Call) Type {
	fnType := c.checkExpr(scope, ex.Fn)
	fn, ok := Underlying(fnType).(Function)
	if !ok {
		if !IsError(fnType) {
			c.sink.TypeError(ex.Pos(), "cannot call non-function type %s", fnType)
		}
		for _, a := range ex.Args {
			c.checkExpr(scope, a)
		}
		return ErrorType{}
	}

	minArgs := len(fn.Params) - fn.Optional
	if len(ex.Args) < minArgs || len(ex.Args) > len(fn.Params) {
		c.sink.TypeError(ex.Pos(), "call expects between %d and %d arguments, got %d", minArgs, len(fn.Params), len(ex.Args))
	}
	for i, arg := range ex.Args {
		at := c.checkExpr(scope, arg)
		if i < len(fn.Params) && !assignable(fn.Params[i], at) && !IsError(at) {
			c.sink.TypeError(arg.Pos(), "argument %d: expected %s, got %s", i+1, fn.Params[i], at)
		}
	}
	return fn.Return
}

func (c *Checker) checkConstructor(scope *Scope, ex *ast.Constructor) Type {
	name, ok := ex.Type.(*ast.Atomic)
	if !ok || name.Token.Kind != token.Ident {
		c.sink.TypeError(ex.Pos(), "expected struct type name before '{'")
		for _, a := range ex.Args {
			c.checkExpr(scope, a)
		}
		return ErrorType{}
	}
	sym, found := scope.lookup(name.Token.Literal)
	if !found || IsUndefined(sym.Type) {
		c.sink.TypeError(ex.Pos(), "undefined type %q", name.Token.Literal)
		for _, a := range ex.Args {
			c.checkExpr(scope, a)
		}
		return ErrorType{}
	}
	st, ok := sym.Type.(*Struct)
	if !ok {
		c.sink.TypeError(ex.Pos(), "%q is not a struct type", name.Token.Literal)
		for _, a := range ex.Args {
			c.checkExpr(scope, a)
		}
		return ErrorType{}
	}
	if len(ex.Args) != len(st.Order) {
		c.sink.TypeError(ex.Pos(), "struct %s expects %d fields, got %d", st.Name, len(st.Order), len(ex.Args))
	}
	for i, arg := range ex.Args {
		at := c.checkExpr(scope, arg)
		if i >= len(st.Order) {
			continue
		}
		want := st.Fields[st.Order[i]]
		if !assignable(want, at) && !IsError(at) {
			c.sink.TypeError(arg.Pos(), "field %q: expected %s, got %s", st.Order[i], want, at)
		}
	}
	return st
}

func (c *Checker) checkAccess(scope *Scope, ex *ast.Access) Type {
	if name, ok := ex.Object.(*ast.Atomic); ok && name.Token.Kind == token.Ident {
		if sym, found := scope.lookup(name.Token.Literal); found {
			if en, ok := sym.Type.(*Enum); ok {
				ex.Object.Annotate(en)
				for _, item := range en.Items {
					if item == ex.Member {
						return EnumItem{Enum: en, Name: ex.Member}
					}
				}
				c.sink.TypeError(ex.Pos(), "enum %s has no item %q", en.Name, ex.Member)
				return ErrorType{}
			}
		}
	}

	obj := c.checkExpr(scope, ex.Object)
	st, ok := Underlying(obj).(*Struct)
	if !ok {
		if !IsError(obj) {
			c.sink.TypeError(ex.Pos(), "cannot access member of non-struct type %s", obj)
		}
		return ErrorType{}
	}
	ft, ok := st.Fields[ex.Member]
	if !ok {
		c.sink.TypeError(ex.Pos(), "struct %s has no field %q", st.Name, ex.Member)
		return ErrorType{}
	}
	return withLvalue(ft, isLvalue(obj), isMutable(ft) && isMutable(obj))
}
