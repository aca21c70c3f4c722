package ast

import (
	"github.com/ashlang/ashc/internal/token"
	"github.com/ashlang/ashc/internal/typespec"
)

// Expr is the tagged union of expression nodes, mirroring the source's
// ExprEnum (ERROR_EXPR, NO_EXPR, GROUPED_EXPR, ATOMIC_EXPR, ARR_EXPR,
// LAMBDA_EXPR, UNOP_EXPR, BINOP_EXPR, TERNOP_EXPR, SUBSRIPT_EXPR,
// CALL_EXPR, CONSTRUCTOR_EXPR, ACCESS_EXPR).
//
// Annotate stores the type checker's result in an untyped slot rather
// than a *sema.Type field, so this package has no dependency on
// internal/sema; sema type-asserts it back after checking.
type Expr interface {
	Node
	exprNode()
	Annotation() any
	Annotate(any)
}

type exprBase struct {
	Position Position
	annot    any
}

func (e *exprBase) Pos() Position     { return e.Position }
func (e *exprBase) Annotation() any   { return e.annot }
func (e *exprBase) Annotate(t any)    { e.annot = t }
func (e *exprBase) exprNode()         {}

// ErrorExpr marks an expression that failed to parse.
type ErrorExpr struct{ exprBase }

// NoneExpr fills an optional expression slot that source left empty (a
// missing for-loop clause, a bare 'return;', a switch 'default' label).
type NoneExpr struct{ exprBase }

// Grouped is a parenthesized expression, '(' Expr ')'.
type Grouped struct {
	exprBase
	Inner Expr
}

// Atomic wraps a single literal or identifier token: an integer, char, or
// string literal, or a variable/function/type name reference.
type Atomic struct {
	exprBase
	Token token.Token
}

// ArrayLit is a bracketed list literal, '[' Expr,* ']'.
type ArrayLit struct {
	exprBase
	Elems []Expr
}

// Lambda is an anonymous function expression, '(' Params ')' '=>' Expr.
// Grounded on parse_lambda.
type Lambda struct {
	exprBase
	ParamNames   []string
	ParamTypes   []typespec.Spec
	ParamDefault []Expr
	Return       typespec.Spec
	Body         Expr
}

// Unary is a prefix or postfix unary operator application: prefix
// +, -, ++, --, ~, !, *, & or postfix ++, --.
type Unary struct {
	exprBase
	Op      token.Kind
	Prefix  bool
	Operand Expr
}

// Binary is an infix binary (or assignment / compound-assignment)
// operator application.
type Binary struct {
	exprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// Ternary is the 'cond ? then : else' conditional expression.
type Ternary struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

// Subscript is 'array[index]'.
type Subscript struct {
	exprBase
	Array Expr
	Index Expr
}

// Call is 'fn(args...)'.
type Call struct {
	exprBase
	Fn   Expr
	Args []Expr
}

// Constructor is 'Type{args...}', structurally identical to Call but
// brace-delimited and naming a struct type instead of a function.
type Constructor struct {
	exprBase
	Type Expr
	Args []Expr
}

// Access is 'object.member'.
type Access struct {
	exprBase
	Object Expr
	Member string
}

// NewErrorExpr, NewNoneExpr, and the rest are thin constructors that set
// the node's position; used by the parser so every call site reads the
// same way regardless of variant.
func NewErrorExpr(pos Position) *ErrorExpr { return &ErrorExpr{exprBase{Position: pos}} }
func NewNoneExpr(pos Position) *NoneExpr   { return &NoneExpr{exprBase{Position: pos}} }

func NewGrouped(pos Position, inner Expr) *Grouped {
	return &Grouped{exprBase{Position: pos}, inner}
}

func NewAtomic(pos Position, tok token.Token) *Atomic {
	return &Atomic{exprBase{Position: pos}, tok}
}

func NewArrayLit(pos Position, elems []Expr) *ArrayLit {
	return &ArrayLit{exprBase{Position: pos}, elems}
}

func NewLambda(pos Position, names []string, types []typespec.Spec, defaults []Expr, ret typespec.Spec, body Expr) *Lambda {
	return &Lambda{exprBase{Position: pos}, names, types, defaults, ret, body}
}

func NewUnary(pos Position, op token.Kind, prefix bool, operand Expr) *Unary {
	return &Unary{exprBase{Position: pos}, op, prefix, operand}
}

func NewBinary(pos Position, op token.Kind, left, right Expr) *Binary {
	return &Binary{exprBase{Position: pos}, op, left, right}
}

func NewTernary(pos Position, cond, then, els Expr) *Ternary {
	return &Ternary{exprBase{Position: pos}, cond, then, els}
}

func NewSubscript(pos Position, arr, idx Expr) *Subscript {
	return &Subscript{exprBase{Position: pos}, arr, idx}
}

func NewCall(pos Position, fn Expr, args []Expr) *Call {
	return &Call{exprBase{Position: pos}, fn, args}
}

func NewConstructor(pos Position, typ Expr, args []Expr) *Constructor {
	return &Constructor{exprBase{Position: pos}, typ, args}
}

func NewAccess(pos Position, obj Expr, member string) *Access {
	return &Access{exprBase{Position: pos}, obj, member}
}

// IsError reports whether n is the ErrorExpr or ErrorStmt sentinel.
func IsError(n Node) bool {
	switch n.(type) {
	case *ErrorExpr, *ErrorStmt:
		return true
	default:
		return false
	}
}
