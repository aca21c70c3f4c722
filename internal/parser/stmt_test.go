package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashlang/ashc/internal/ast"
	"github.com/ashlang/ashc/internal/diag"
	"github.com/ashlang/ashc/internal/typespec"
)

func parseProgram(t *testing.T, src string) (*ast.Block, *diag.Sink) {
	t.Helper()
	toks, sink := lexSrc(t, src)
	return ParseProgram(toks, sink), sink
}

func TestParseDeclWithExplicitType(t *testing.T) {
	prog, sink := parseProgram(t, "var x: i32 = 1;")
	require.False(t, sink.Failed())
	require.Len(t, prog.Stmts, 1)
	decl, ok := prog.Stmts[0].(*ast.Decl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	assert.True(t, decl.Mutable)
	atomic, ok := decl.Spec.(typespec.Atomic)
	require.True(t, ok)
	assert.Equal(t, "i32", atomic.Name)
}

func TestParseConstDeclIsImmutable(t *testing.T) {
	prog, sink := parseProgram(t, "const y = 2;")
	require.False(t, sink.Failed())
	decl := prog.Stmts[0].(*ast.Decl)
	assert.False(t, decl.Mutable)
	_, inferred := decl.Spec.(typespec.Inferred)
	assert.True(t, inferred)
}

func TestParseTypedef(t *testing.T) {
	prog, sink := parseProgram(t, "type Id = i64;")
	require.False(t, sink.Failed())
	td := prog.Stmts[0].(*ast.Typedef)
	assert.Equal(t, "Id", td.Name)
}

func TestParseIfElseDanglingAttachesToNearest(t *testing.T) {
	prog, sink := parseProgram(t, "if (a) if (b) x(); else y();")
	require.False(t, sink.Failed())
	outer := prog.Stmts[0].(*ast.IfElse)
	require.Nil(t, outer.Else)
	inner, ok := outer.Then.(*ast.IfElse)
	require.True(t, ok)
	require.NotNil(t, inner.Else)
}

func TestParseSwitchWithDefault(t *testing.T) {
	prog, sink := parseProgram(t, `
		switch (n) {
		case 1: a();
		default: b();
		case 2: c();
		}
	`)
	require.False(t, sink.Failed())
	sw := prog.Stmts[0].(*ast.Switch)
	require.Len(t, sw.Cases, 3)
	assert.Equal(t, 1, sw.DefaultIndex)
}

func TestParseSwitchWithoutDefault(t *testing.T) {
	prog, sink := parseProgram(t, `
		switch (n) {
		case 1: a();
		case 2: b();
		}
	`)
	require.False(t, sink.Failed())
	sw := prog.Stmts[0].(*ast.Switch)
	assert.Equal(t, len(sw.Cases), sw.DefaultIndex)
}

func TestParseSwitchRejectsDuplicateDefault(t *testing.T) {
	_, sink := parseProgram(t, `
		switch (n) {
		default: a();
		default: b();
		}
	`)
	assert.True(t, sink.Failed())
}

func TestParseWhileAndDoWhile(t *testing.T) {
	prog, sink := parseProgram(t, "while (a) b(); do c(); while (d);")
	require.False(t, sink.Failed())
	require.Len(t, prog.Stmts, 2)
	_, whileOK := prog.Stmts[0].(*ast.While)
	assert.True(t, whileOK)
	_, doWhileOK := prog.Stmts[1].(*ast.DoWhile)
	assert.True(t, doWhileOK)
}

func TestParseForWithAllClauses(t *testing.T) {
	prog, sink := parseProgram(t, "for (var i = 0; i < 10; i += 1) x();")
	require.False(t, sink.Failed())
	f := prog.Stmts[0].(*ast.For)
	_, initIsDecl := f.Init.(*ast.Decl)
	assert.True(t, initIsDecl)
	_, condIsBinary := f.Cond.(*ast.Binary)
	assert.True(t, condIsBinary)
}

func TestParseForWithEmptyClauses(t *testing.T) {
	prog, sink := parseProgram(t, "for (;;) x();")
	require.False(t, sink.Failed())
	f := prog.Stmts[0].(*ast.For)
	_, initIsNop := f.Init.(*ast.Nop)
	assert.True(t, initIsNop)
	_, condIsNone := f.Cond.(*ast.NoneExpr)
	assert.True(t, condIsNone)
	_, postIsNone := f.Post.(*ast.NoneExpr)
	assert.True(t, postIsNone)
}

func TestParseForRejectsInvalidInit(t *testing.T) {
	_, sink := parseProgram(t, "for (fn f() {} ;;) x();")
	assert.True(t, sink.Failed())
}

func TestParseFunctionWithParamsAndReturn(t *testing.T) {
	prog, sink := parseProgram(t, "fn add(a: i32, b: i32): i32 { return a + b; }")
	require.False(t, sink.Failed())
	fn := prog.Stmts[0].(*ast.Fn)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	ret, ok := fn.Return.(typespec.Atomic)
	require.True(t, ok)
	assert.Equal(t, "i32", ret.Name)
	require.Len(t, fn.Body.Stmts, 1)
	_, isReturn := fn.Body.Stmts[0].(*ast.ReturnStmt)
	assert.True(t, isReturn)
}

func TestParseFunctionRejectsNonOptionalAfterOptional(t *testing.T) {
	_, sink := parseProgram(t, "fn f(a: i32 = 1, b: i32) { }")
	assert.True(t, sink.Failed())
}

func TestParseStructDef(t *testing.T) {
	prog, sink := parseProgram(t, "struct Point { x: i32, y: i32 }")
	require.False(t, sink.Failed())
	sd := prog.Stmts[0].(*ast.StructDef)
	assert.Equal(t, "Point", sd.Name)
	require.Len(t, sd.Members, 2)
}

func TestParseEnumDef(t *testing.T) {
	prog, sink := parseProgram(t, "enum Color { Red, Green, Blue }")
	require.False(t, sink.Failed())
	ed := prog.Stmts[0].(*ast.EnumDef)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, ed.Items)
}

func TestParseBareReturnHasNoneExprValue(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() { return; }")
	require.False(t, sink.Failed())
	fn := prog.Stmts[0].(*ast.Fn)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	_, isNone := ret.Value.(*ast.NoneExpr)
	assert.True(t, isNone)
}

func TestParseBreakAndContinue(t *testing.T) {
	prog, sink := parseProgram(t, "while (a) { break; continue; }")
	require.False(t, sink.Failed())
	w := prog.Stmts[0].(*ast.While)
	body := w.Body.(*ast.Block)
	_, isBreak := body.Stmts[0].(*ast.BreakStmt)
	assert.True(t, isBreak)
	_, isContinue := body.Stmts[1].(*ast.ContinueStmt)
	assert.True(t, isContinue)
}

func TestParseReservedKeywordRejectedAsStatement(t *testing.T) {
	_, sink := parseProgram(t, "wire x = 1;")
	assert.True(t, sink.Failed())
	require.NotNil(t, sink.First())
	assert.Equal(t, diag.KindSyntax, sink.First().Kind)
}

func TestParseProgramRejectsTrailingGarbage(t *testing.T) {
	_, sink := parseProgram(t, "var x = 1; }")
	assert.True(t, sink.Failed())
}

func TestParseNestedBlockStatement(t *testing.T) {
	prog, sink := parseProgram(t, "{ var x = 1; { var y = 2; } }")
	require.False(t, sink.Failed())
	outer := prog.Stmts[0].(*ast.Block)
	require.Len(t, outer.Stmts, 2)
	_, innerIsBlock := outer.Stmts[1].(*ast.Block)
	assert.True(t, innerIsBlock)
}
