package ast

import (
	"fmt"
	"strings"

	"github.com/ashlang/ashc/internal/typespec"
)

// PrettyPrint renders a statement tree as an indented dump: one line per
// node, "Kind(extra) at line:col", children indented by 4 spaces under
// their parent — the format internal/golden's fixture tests and the
// 'ashc dump ast' CLI subcommand both rely on.
func PrettyPrint(s Stmt) string {
	var sb strings.Builder
	printStmt(&sb, s, 0)
	return sb.String()
}

// PrettyPrintExpr renders a single expression the same way, for contexts
// (like a switch case label) where the root node is an expression.
func PrettyPrintExpr(e Expr) string {
	var sb strings.Builder
	printExpr(&sb, e, 0)
	return sb.String()
}

func line(sb *strings.Builder, indent int, format string, args ...any) {
	sb.WriteString(strings.Repeat("    ", indent))
	fmt.Fprintf(sb, format, args...)
	sb.WriteString("\n")
}

func printSpec(sb *strings.Builder, s typespec.Spec, indent int) {
	if s == nil {
		return
	}
	switch sp := s.(type) {
	case typespec.Error:
		line(sb, indent, "Spec:Error at %s", sp.Pos())
	case typespec.Inferred:
		line(sb, indent, "Spec:Inferred at %s", sp.Pos())
	case typespec.Atomic:
		line(sb, indent, "Spec:Atomic(%s) at %s", sp.Name, sp.Pos())
	case typespec.Grouped:
		line(sb, indent, "Spec:Grouped at %s", sp.Pos())
		printSpec(sb, sp.Inner, indent+1)
	case typespec.Array:
		line(sb, indent, "Spec:Array(mutable=%v) at %s", sp.Mutable, sp.Pos())
		printSpec(sb, sp.Elem, indent+1)
	case typespec.Pointer:
		line(sb, indent, "Spec:Pointer(mutable=%v) at %s", sp.Mutable, sp.Pos())
		printSpec(sb, sp.Elem, indent+1)
	case typespec.Function:
		line(sb, indent, "Spec:Function(optional=%d) at %s", sp.Optional, sp.Pos())
		for _, p := range sp.Params {
			printSpec(sb, p, indent+1)
		}
		printSpec(sb, sp.Return, indent+1)
	}
}

func printExpr(sb *strings.Builder, e Expr, indent int) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ErrorExpr:
		line(sb, indent, "Expr:Error at %s", ex.Pos())
	case *NoneExpr:
		line(sb, indent, "Expr:None at %s", ex.Pos())
	case *Grouped:
		line(sb, indent, "Expr:Grouped at %s", ex.Pos())
		printExpr(sb, ex.Inner, indent+1)
	case *Atomic:
		line(sb, indent, "Expr:Atomic(%s) at %s", ex.Token.Literal, ex.Pos())
	case *ArrayLit:
		line(sb, indent, "Expr:ArrayLit(%d) at %s", len(ex.Elems), ex.Pos())
		for _, el := range ex.Elems {
			printExpr(sb, el, indent+1)
		}
	case *Lambda:
		line(sb, indent, "Expr:Lambda(%d params) at %s", len(ex.ParamNames), ex.Pos())
		for i, name := range ex.ParamNames {
			line(sb, indent+1, "Param(%s)", name)
			printSpec(sb, ex.ParamTypes[i], indent+2)
			if ex.ParamDefault[i] != nil {
				printExpr(sb, ex.ParamDefault[i], indent+2)
			}
		}
		printSpec(sb, ex.Return, indent+1)
		printExpr(sb, ex.Body, indent+1)
	case *Unary:
		kind := "prefix"
		if !ex.Prefix {
			kind = "postfix"
		}
		line(sb, indent, "Expr:Unary(%s %s) at %s", kind, ex.Op, ex.Pos())
		printExpr(sb, ex.Operand, indent+1)
	case *Binary:
		line(sb, indent, "Expr:Binary(%s) at %s", ex.Op, ex.Pos())
		printExpr(sb, ex.Left, indent+1)
		printExpr(sb, ex.Right, indent+1)
	case *Ternary:
		line(sb, indent, "Expr:Ternary at %s", ex.Pos())
		printExpr(sb, ex.Cond, indent+1)
		printExpr(sb, ex.Then, indent+1)
		printExpr(sb, ex.Else, indent+1)
	case *Subscript:
		line(sb, indent, "Expr:Subscript at %s", ex.Pos())
		printExpr(sb, ex.Array, indent+1)
		printExpr(sb, ex.Index, indent+1)
	case *Call:
		line(sb, indent, "Expr:Call(%d args) at %s", len(ex.Args), ex.Pos())
		printExpr(sb, ex.Fn, indent+1)
		for _, a := range ex.Args {
			printExpr(sb, a, indent+1)
		}
	case *Constructor:
		line(sb, indent, "Expr:Constructor(%d args) at %s", len(ex.Args), ex.Pos())
		printExpr(sb, ex.Type, indent+1)
		for _, a := range ex.Args {
			printExpr(sb, a, indent+1)
		}
	case *Access:
		line(sb, indent, "Expr:Access(.%s) at %s", ex.Member, ex.Pos())
		printExpr(sb, ex.Object, indent+1)
	default:
		line(sb, indent, "Expr:? at %s", e.Pos())
	}
}

func printParams(sb *strings.Builder, params []Param, indent int) {
	for _, p := range params {
		line(sb, indent, "Param(%s) at %s", p.Name, p.Pos())
		printSpec(sb, p.Spec, indent+1)
		if p.Default != nil {
			printExpr(sb, p.Default, indent+1)
		}
	}
}

func printStmt(sb *strings.Builder, s Stmt, indent int) {
	if s == nil {
		return
	}
	switch st := s.(type) {
	case *ErrorStmt:
		line(sb, indent, "Stmt:Error at %s", st.Pos())
	case *Nop:
		line(sb, indent, "Stmt:Nop at %s", st.Pos())
	case *Block:
		line(sb, indent, "Stmt:Block(%d) at %s", len(st.Stmts), st.Pos())
		for _, child := range st.Stmts {
			printStmt(sb, child, indent+1)
		}
	case *ExprStmt:
		line(sb, indent, "Stmt:Expr at %s", st.Pos())
		printExpr(sb, st.Expr, indent+1)
	case *Decl:
		line(sb, indent, "Stmt:Decl(%s mutable=%v) at %s", st.Name, st.Mutable, st.Pos())
		printSpec(sb, st.Spec, indent+1)
		printExpr(sb, st.Value, indent+1)
	case *Typedef:
		line(sb, indent, "Stmt:Typedef(%s) at %s", st.Name, st.Pos())
		printSpec(sb, st.Spec, indent+1)
	case *IfElse:
		line(sb, indent, "Stmt:IfElse at %s", st.Pos())
		printExpr(sb, st.Cond, indent+1)
		printStmt(sb, st.Then, indent+1)
		if st.Else != nil {
			printStmt(sb, st.Else, indent+1)
		}
	case *Switch:
		line(sb, indent, "Stmt:Switch(%d cases, default=%d) at %s", len(st.Cases), st.DefaultIndex, st.Pos())
		printExpr(sb, st.Expr, indent+1)
		for i, c := range st.Cases {
			printExpr(sb, c, indent+1)
			printStmt(sb, st.Branches[i], indent+1)
		}
	case *While:
		line(sb, indent, "Stmt:While at %s", st.Pos())
		printExpr(sb, st.Cond, indent+1)
		printStmt(sb, st.Body, indent+1)
	case *DoWhile:
		line(sb, indent, "Stmt:DoWhile at %s", st.Pos())
		printStmt(sb, st.Body, indent+1)
		printExpr(sb, st.Cond, indent+1)
	case *For:
		line(sb, indent, "Stmt:For at %s", st.Pos())
		printStmt(sb, st.Init, indent+1)
		printExpr(sb, st.Cond, indent+1)
		printExpr(sb, st.Post, indent+1)
		printStmt(sb, st.Body, indent+1)
	case *Fn:
		line(sb, indent, "Stmt:Fn(%s) at %s", st.Name, st.Pos())
		printParams(sb, st.Params, indent+1)
		printSpec(sb, st.Return, indent+1)
		printStmt(sb, st.Body, indent+1)
	case *StructDef:
		line(sb, indent, "Stmt:Struct(%s) at %s", st.Name, st.Pos())
		printParams(sb, st.Members, indent+1)
	case *EnumDef:
		line(sb, indent, "Stmt:Enum(%s) at %s", st.Name, st.Pos())
		for _, item := range st.Items {
			line(sb, indent+1, "Item(%s)", item)
		}
	case *ReturnStmt:
		line(sb, indent, "Stmt:Return at %s", st.Pos())
		printExpr(sb, st.Value, indent+1)
	case *BreakStmt:
		line(sb, indent, "Stmt:Break at %s", st.Pos())
	case *ContinueStmt:
		line(sb, indent, "Stmt:Continue at %s", st.Pos())
	default:
		line(sb, indent, "Stmt:? at %s", s.Pos())
	}
}
