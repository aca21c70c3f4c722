package parser

import (
	"github.com/ashlang/ashc/internal/ast"
	"github.com/ashlang/ashc/internal/diag"
	"github.com/ashlang/ashc/internal/token"
	"github.com/ashlang/ashc/internal/typespec"
)

// isStatementStart reports whether k can begin a statement, grounded on
// common_parser.c's is_statement, falling through to isExprStart for the
// expression-statement case.
func isStatementStart(k token.Kind) bool {
	switch k {
	case token.Semicolon, token.LBrace, token.KwVar, token.KwConst, token.KwType,
		token.KwIf, token.KwSwitch, token.KwWhile, token.KwDo, token.KwFor,
		token.KwFn, token.KwStruct, token.KwEnum,
		token.KwReturn, token.KwBreak, token.KwContinue,
		token.KwWire, token.KwPart, token.KwPrimitive:
		return true
	default:
		return isExprStart(k)
	}
}

func unexpectedStmt(sink *diag.Sink, tok token.Token) *ast.ErrorStmt {
	sink.SyntaxError(tok.Pos(), "unexpected token %s", tok.Kind)
	return ast.NewErrorStmt(tok.Pos())
}

func expectStmt(s token.Stream, sink *diag.Sink, kind token.Kind) (token.Token, bool) {
	tok := s.Peek()
	if tok.Kind != kind {
		unexpectedStmt(sink, tok)
		return tok, false
	}
	return s.Next(), true
}

// ParseBlock parses '{' Stmt* '}'. Grounded on parse_block.
func ParseBlock(s token.Stream, sink *diag.Sink) *ast.Block {
	open, ok := expectStmt(s, sink, token.LBrace)
	if !ok {
		return ast.NewBlock(open.Pos(), nil)
	}
	var stmts []ast.Stmt
	for isStatementStart(s.Peek().Kind) {
		st := ParseStmt(s, sink)
		stmts = append(stmts, st)
		if ast.IsError(st) || sink.Failed() {
			break
		}
	}
	if _, ok := expectStmt(s, sink, token.RBrace); !ok {
		return ast.NewBlock(open.Pos(), stmts)
	}
	return ast.NewBlock(open.Pos(), stmts)
}

// ParseStmt dispatches on the next token to the right statement parser.
// Grounded on parse_stmt's central switch.
func ParseStmt(s token.Stream, sink *diag.Sink) ast.Stmt {
	tok := s.Peek()

	switch tok.Kind {
	case token.Semicolon:
		s.Next()
		return ast.NewNop(tok.Pos())

	case token.LBrace:
		return ParseBlock(s, sink)

	case token.KwVar:
		return parseDecl(s, sink, true)
	case token.KwConst:
		return parseDecl(s, sink, false)
	case token.KwType:
		return parseTypedef(s, sink)
	case token.KwIf:
		return parseIfElse(s, sink)
	case token.KwSwitch:
		return parseSwitch(s, sink)
	case token.KwWhile:
		return parseWhile(s, sink)
	case token.KwDo:
		return parseDoWhile(s, sink)
	case token.KwFor:
		return parseFor(s, sink)
	case token.KwFn:
		return parseFn(s, sink)
	case token.KwStruct:
		return parseStruct(s, sink)
	case token.KwEnum:
		return parseEnum(s, sink)

	case token.KwReturn:
		s.Next()
		var val ast.Expr = ast.NewNoneExpr(tok.Pos())
		if s.Peek().Kind != token.Semicolon {
			val = ParseExpr(s, sink, MaxPrecedence)
			if ast.IsError(val) {
				return ast.NewErrorStmt(tok.Pos())
			}
		}
		if _, ok := expectStmt(s, sink, token.Semicolon); !ok {
			return ast.NewErrorStmt(tok.Pos())
		}
		return ast.NewReturnStmt(tok.Pos(), val)

	case token.KwBreak:
		s.Next()
		if _, ok := expectStmt(s, sink, token.Semicolon); !ok {
			return ast.NewErrorStmt(tok.Pos())
		}
		return ast.NewBreakStmt(tok.Pos())

	case token.KwContinue:
		s.Next()
		if _, ok := expectStmt(s, sink, token.Semicolon); !ok {
			return ast.NewErrorStmt(tok.Pos())
		}
		return ast.NewContinueStmt(tok.Pos())

	case token.KwWire, token.KwPart, token.KwPrimitive:
		sink.SyntaxError(tok.Pos(), "%s is a reserved keyword", tok.Kind)
		s.Next()
		return ast.NewErrorStmt(tok.Pos())

	default:
		if !isExprStart(tok.Kind) {
			return unexpectedStmt(sink, tok)
		}
		expr := ParseExpr(s, sink, MaxPrecedence)
		if ast.IsError(expr) {
			return ast.NewErrorStmt(tok.Pos())
		}
		if _, ok := expectStmt(s, sink, token.Semicolon); !ok {
			return ast.NewErrorStmt(tok.Pos())
		}
		return ast.NewExprStmt(tok.Pos(), expr)
	}
}

// parseDecl parses 'var'/'const' NAME [: Spec] = Expr ';'. Grounded on
// parse_decl(it, mut).
func parseDecl(s token.Stream, sink *diag.Sink, mutable bool) ast.Stmt {
	kw := s.Next()
	name, ok := expectStmt(s, sink, token.Ident)
	if !ok {
		return ast.NewErrorStmt(kw.Pos())
	}

	spec := typespec.Spec(typespec.Inferred{})
	if s.Peek().Kind == token.Colon {
		s.Next()
		spec = typespec.Parse(s, sink)
		if typespec.IsError(spec) {
			return ast.NewErrorStmt(kw.Pos())
		}
	}

	if _, ok := expectStmt(s, sink, token.Eq); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	val := ParseExpr(s, sink, MaxPrecedence)
	if ast.IsError(val) {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.Semicolon); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	return ast.NewDecl(kw.Pos(), name.Literal, mutable, spec, val)
}

// parseTypedef parses 'type' NAME = Spec ';'.
func parseTypedef(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	name, ok := expectStmt(s, sink, token.Ident)
	if !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.Eq); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	spec := typespec.Parse(s, sink)
	if typespec.IsError(spec) {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.Semicolon); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	return ast.NewTypedef(kw.Pos(), name.Literal, spec)
}

// parseIfElse parses 'if' '(' Expr ')' Stmt ['else' Stmt]. Dangling else
// attaches to the nearest unmatched if via plain recursive descent: the
// 'else' branch is parsed by calling ParseStmt again, so a chained
// 'else if' falls naturally out of recursion. Grounded on parse_ifelse.
func parseIfElse(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	if _, ok := expectStmt(s, sink, token.LParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	cond := ParseExpr(s, sink, MaxPrecedence)
	if ast.IsError(cond) {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.RParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	onTrue := ParseStmt(s, sink)
	if ast.IsError(onTrue) {
		return ast.NewErrorStmt(kw.Pos())
	}
	var onFalse ast.Stmt
	if s.Peek().Kind == token.KwElse {
		s.Next()
		onFalse = ParseStmt(s, sink)
		if ast.IsError(onFalse) {
			return ast.NewErrorStmt(kw.Pos())
		}
	}
	return ast.NewIfElse(kw.Pos(), cond, onTrue, onFalse)
}

// parseSwitch parses 'switch' '(' Expr ')' '{' ('case' Expr | 'default')
// ':' Stmt* ... '}'. At most one 'default' label is allowed; DefaultIndex
// stays at len(cases) (out of bounds) if none was seen, mirroring the
// source's default_index bookkeeping in parse_switch.
func parseSwitch(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	if _, ok := expectStmt(s, sink, token.LParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	expr := ParseExpr(s, sink, MaxPrecedence)
	if ast.IsError(expr) {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.RParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.LBrace); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}

	var cases []ast.Expr
	var branches []ast.Stmt
	defaultIndex := -1

labels:
	for {
		tok := s.Peek()
		switch tok.Kind {
		case token.KwCase:
			s.Next()
			label := ParseExpr(s, sink, MaxPrecedence)
			if ast.IsError(label) {
				return ast.NewErrorStmt(kw.Pos())
			}
			if _, ok := expectStmt(s, sink, token.Colon); !ok {
				return ast.NewErrorStmt(kw.Pos())
			}
			body := parseCaseBody(s, sink)
			cases = append(cases, label)
			branches = append(branches, body)

		case token.KwDefault:
			if defaultIndex != -1 {
				sink.SyntaxError(tok.Pos(), "multiple default labels in one switch")
				return ast.NewErrorStmt(kw.Pos())
			}
			s.Next()
			if _, ok := expectStmt(s, sink, token.Colon); !ok {
				return ast.NewErrorStmt(kw.Pos())
			}
			defaultIndex = len(cases)
			body := parseCaseBody(s, sink)
			cases = append(cases, ast.NewNoneExpr(tok.Pos()))
			branches = append(branches, body)

		default:
			break labels
		}
	}

	if _, ok := expectStmt(s, sink, token.RBrace); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if defaultIndex == -1 {
		defaultIndex = len(cases)
	}
	return ast.NewSwitch(kw.Pos(), expr, cases, branches, defaultIndex)
}

// parseCaseBody parses the statement sequence following a case/default
// label, up to (but not consuming) the next label or the closing brace.
func parseCaseBody(s token.Stream, sink *diag.Sink) ast.Stmt {
	pos := s.Peek().Pos()
	var stmts []ast.Stmt
	for {
		k := s.Peek().Kind
		if k == token.KwCase || k == token.KwDefault || k == token.RBrace {
			break
		}
		if !isStatementStart(k) {
			break
		}
		st := ParseStmt(s, sink)
		stmts = append(stmts, st)
		if ast.IsError(st) || sink.Failed() {
			break
		}
	}
	return ast.NewBlock(pos, stmts)
}

// parseWhile parses 'while' '(' Expr ')' Stmt.
func parseWhile(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	if _, ok := expectStmt(s, sink, token.LParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	cond := ParseExpr(s, sink, MaxPrecedence)
	if ast.IsError(cond) {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.RParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	body := ParseStmt(s, sink)
	if ast.IsError(body) {
		return ast.NewErrorStmt(kw.Pos())
	}
	return ast.NewWhile(kw.Pos(), cond, body)
}

// parseDoWhile parses 'do' Stmt 'while' '(' Expr ')' ';'.
func parseDoWhile(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	body := ParseStmt(s, sink)
	if ast.IsError(body) {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.KwWhile); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.LParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	cond := ParseExpr(s, sink, MaxPrecedence)
	if ast.IsError(cond) {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.RParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.Semicolon); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	return ast.NewDoWhile(kw.Pos(), cond, body)
}

// parseFor parses 'for' '(' Init ';' Cond ';' Post ')' Stmt. Init is
// restricted to Nop, Decl, or ExprStmt — anything else is a syntax
// error, grounded on parse_for's type-switch over the parsed init
// statement. Empty ';;' clauses are allowed: an absent Cond/Post becomes
// a NoneExpr sentinel.
func parseFor(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	if _, ok := expectStmt(s, sink, token.LParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}

	init := ParseStmt(s, sink)
	if ast.IsError(init) {
		return ast.NewErrorStmt(kw.Pos())
	}
	switch init.(type) {
	case *ast.Nop, *ast.Decl, *ast.ExprStmt:
	default:
		sink.SyntaxError(init.Pos(), "invalid for-loop initializer")
		return ast.NewErrorStmt(kw.Pos())
	}

	var cond ast.Expr = ast.NewNoneExpr(s.Peek().Pos())
	if s.Peek().Kind != token.Semicolon {
		cond = ParseExpr(s, sink, MaxPrecedence)
		if ast.IsError(cond) {
			return ast.NewErrorStmt(kw.Pos())
		}
	}
	if _, ok := expectStmt(s, sink, token.Semicolon); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}

	var post ast.Expr = ast.NewNoneExpr(s.Peek().Pos())
	if s.Peek().Kind != token.RParen {
		post = ParseExpr(s, sink, MaxPrecedence)
		if ast.IsError(post) {
			return ast.NewErrorStmt(kw.Pos())
		}
	}
	if _, ok := expectStmt(s, sink, token.RParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}

	body := ParseStmt(s, sink)
	if ast.IsError(body) {
		return ast.NewErrorStmt(kw.Pos())
	}
	return ast.NewFor(kw.Pos(), init, cond, post, body)
}

// parseFn parses 'fn' NAME '(' Params ')' [: Spec] Block. Grounded on
// parse_function, reusing parseParams for the parameter list.
func parseFn(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	name, ok := expectStmt(s, sink, token.Ident)
	if !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.LParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	names, specs, defaults, ok := parseParams(s, sink)
	if !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.RParen); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}

	ret := typespec.Spec(typespec.Inferred{})
	if s.Peek().Kind == token.Colon {
		s.Next()
		ret = typespec.Parse(s, sink)
		if typespec.IsError(ret) {
			return ast.NewErrorStmt(kw.Pos())
		}
	}

	body := ParseBlock(s, sink)
	params := paramsFrom(names, specs, defaults)
	return ast.NewFn(kw.Pos(), name.Literal, params, ret, body)
}

// parseStruct parses 'struct' NAME '{' Params '}'. Grounded on
// parse_struct, reusing parseParams for member declarations.
func parseStruct(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	name, ok := expectStmt(s, sink, token.Ident)
	if !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.LBrace); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	names, specs, defaults, ok := parseParams(s, sink)
	if !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.RBrace); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	return ast.NewStructDef(kw.Pos(), name.Literal, paramsFrom(names, specs, defaults))
}

// parseEnum parses 'enum' NAME '{' NAME,* '}'.
func parseEnum(s token.Stream, sink *diag.Sink) ast.Stmt {
	kw := s.Next()
	name, ok := expectStmt(s, sink, token.Ident)
	if !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	if _, ok := expectStmt(s, sink, token.LBrace); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	var items []string
	if s.Peek().Kind != token.RBrace {
		for {
			item, ok := expectStmt(s, sink, token.Ident)
			if !ok {
				return ast.NewErrorStmt(kw.Pos())
			}
			items = append(items, item.Literal)
			if s.Peek().Kind == token.Comma {
				s.Next()
				continue
			}
			break
		}
	}
	if _, ok := expectStmt(s, sink, token.RBrace); !ok {
		return ast.NewErrorStmt(kw.Pos())
	}
	return ast.NewEnumDef(kw.Pos(), name.Literal, items)
}

func paramsFrom(names []string, specs []typespec.Spec, defaults []ast.Expr) []ast.Param {
	params := make([]ast.Param, len(names))
	for i, name := range names {
		params[i] = ast.Param{Name: name, Spec: specs[i], Default: defaults[i]}
	}
	return params
}
