// Package parser implements the expression and statement grammar on top
// of internal/typespec's type specifier grammar. Grounded on
// parser_expr.c and parser_stmt.c.
package parser

import (
	"github.com/ashlang/ashc/internal/ast"
	"github.com/ashlang/ashc/internal/diag"
	"github.com/ashlang/ashc/internal/token"
	"github.com/ashlang/ashc/internal/typespec"
)

// MaxPrecedence is the loosest-binding expression level: assignment and
// compound assignment. Level 0 is not a real operator level — it's the
// unary/primary term itself. Matches parser_common.h's MAX_PRECEDENCE.
const MaxPrecedence = 12

// precedence maps every binary/assignment operator token to its
// precedence level, grounded on operator_precedence in parser_expr.c.
var precedence = map[token.Kind]int{
	token.Eq: 12, token.PlusEq: 12, token.MinusEq: 12, token.StarEq: 12,
	token.SlashEq: 12, token.PercentEq: 12, token.PipeEq: 12, token.AmpEq: 12,
	token.CaretEq: 12, token.LtLtEq: 12, token.GtGtEq: 12,

	token.PipePipe: 10,
	token.AmpAmp:   9,
	token.EqEq:     8, token.Neq: 8,
	token.Lt: 7, token.Leq: 7, token.Gt: 7, token.Geq: 7,
	token.Pipe:  6,
	token.Caret: 5,
	token.Amp:   4,
	token.LtLt:  3, token.GtGt: 3,
	token.Plus: 2, token.Minus: 2,
	token.Star: 1, token.Slash: 1, token.Percent: 1,
}

// rightToLeft reports whether a precedence level associates right to
// left: only the ternary (11) and assignment (12) levels do.
func rightToLeft(prec int) bool {
	return prec == 11 || prec == 12
}

func unexpected(sink *diag.Sink, tok token.Token) *ast.ErrorExpr {
	sink.SyntaxError(tok.Pos(), "unexpected token %s", tok.Kind)
	return ast.NewErrorExpr(tok.Pos())
}

func expect(s token.Stream, sink *diag.Sink, kind token.Kind) (token.Token, bool) {
	tok := s.Peek()
	if tok.Kind != kind {
		unexpected(sink, tok)
		return tok, false
	}
	return s.Next(), true
}

// isExprStart reports whether tok can begin an expression, grounded on
// common_parser.c's is_expr.
func isExprStart(k token.Kind) bool {
	switch k {
	case token.Int, token.Char, token.String, token.Ident,
		token.Plus, token.PlusPlus, token.Minus, token.MinusMinus,
		token.Tilde, token.Bang, token.Star, token.Amp,
		token.LBracket, token.LParen:
		return true
	default:
		return false
	}
}

// ParseExpr parses an expression at the given precedence level (pass
// MaxPrecedence for a full top-level expression), implementing the exact
// precedence-climbing algorithm of parser_expr.c's parse_expr.
func ParseExpr(s token.Stream, sink *diag.Sink, prec int) ast.Expr {
	if prec == 0 {
		return parseTerm(s, sink)
	}

	rtl := rightToLeft(prec)
	lhs := ParseExpr(s, sink, prec-1)
	if ast.IsError(lhs) {
		return lhs
	}

	for {
		tok := s.Peek()

		if prec == 11 && tok.Kind == token.Question {
			s.Next()
			mid := ParseExpr(s, sink, MaxPrecedence)
			if ast.IsError(mid) {
				return mid
			}
			if _, ok := expect(s, sink, token.Colon); !ok {
				return ast.NewErrorExpr(lhs.Pos())
			}
			rhsPrec := prec - 1
			if rtl {
				rhsPrec = prec
			}
			rhs := ParseExpr(s, sink, rhsPrec)
			if ast.IsError(rhs) {
				return rhs
			}
			lhs = ast.NewTernary(lhs.Pos(), lhs, mid, rhs)
			if rtl {
				return lhs
			}
			continue
		}

		opPrec, ok := precedence[tok.Kind]
		if !ok || opPrec > prec || opPrec != prec {
			break
		}
		s.Next()

		rhsPrec := prec - 1
		if rtl {
			rhsPrec = prec
		}
		rhs := ParseExpr(s, sink, rhsPrec)
		if ast.IsError(rhs) {
			return rhs
		}
		lhs = ast.NewBinary(lhs.Pos(), tok.Kind, lhs, rhs)
		if rtl {
			return lhs
		}
	}

	return lhs
}

// lambdaWithReturnSpecAhead reports whether the '(' at the cursor opens
// '(' Params ')' ':' Spec '=>', a lambda IsLambdaAhead misses because ':'
// follows the ')'. It parses ahead silently and restores the cursor.
func lambdaWithReturnSpecAhead(s token.Stream, sink *diag.Sink) bool {
	mark := s.Mark()
	defer s.Reset(mark)
	defer sink.Suppress()()
	s.Next()
	if _, _, _, ok := parseParams(s, sink); !ok || s.Next().Kind != token.RParen || s.Next().Kind != token.Colon {
		return false
	}
	return !typespec.IsError(typespec.Parse(s, sink)) && s.Peek().Kind == token.DArrow
}

func parsePrefixOp(k token.Kind) (token.Kind, bool) {
	switch k {
	case token.Plus, token.PlusPlus, token.Minus, token.MinusMinus,
		token.Tilde, token.Bang, token.Star, token.Amp:
		return k, true
	default:
		return k, false
	}
}

// parseTerm parses an atomic term, a prefixed unary expression, an array
// literal, or a parenthesized group/lambda, then applies any postfix
// operators. Grounded on parse_term.
func parseTerm(s token.Stream, sink *diag.Sink) ast.Expr {
	tok := s.Peek()

	switch tok.Kind {
	case token.Int, token.Char, token.String, token.Ident:
		s.Next()
		return parsePostfix(s, sink, ast.NewAtomic(tok.Pos(), tok))

	case token.LBracket:
		return parseArrayLit(s, sink)

	case token.LParen:
		var expr ast.Expr
		if typespec.IsLambdaAhead(s) || lambdaWithReturnSpecAhead(s, sink) {
			expr = parseLambda(s, sink)
		} else {
			expr = parseGroup(s, sink)
		}
		if ast.IsError(expr) {
			return expr
		}
		return parsePostfix(s, sink, expr)

	default:
		if _, ok := parsePrefixOp(tok.Kind); ok {
			s.Next()
			operand := parseTerm(s, sink)
			if ast.IsError(operand) {
				return operand
			}
			return ast.NewUnary(tok.Pos(), tok.Kind, true, operand)
		}
		return unexpected(sink, tok)
	}
}

// parsePostfix applies zero or more postfix operators to term: ++, --,
// '[' index ']', '(' args ')', '{' args '}', '.' member.
func parsePostfix(s token.Stream, sink *diag.Sink, term ast.Expr) ast.Expr {
	for {
		tok := s.Peek()
		switch tok.Kind {
		case token.PlusPlus, token.MinusMinus:
			s.Next()
			term = ast.NewUnary(term.Pos(), tok.Kind, false, term)

		case token.LBracket:
			s.Next()
			idx := ParseExpr(s, sink, MaxPrecedence)
			if ast.IsError(idx) {
				return idx
			}
			if _, ok := expect(s, sink, token.RBracket); !ok {
				return ast.NewErrorExpr(term.Pos())
			}
			term = ast.NewSubscript(term.Pos(), term, idx)

		case token.LParen:
			args, ok := parseArgs(s, sink, token.LParen, token.RParen)
			if !ok {
				return ast.NewErrorExpr(term.Pos())
			}
			term = ast.NewCall(term.Pos(), term, args)

		case token.LBrace:
			args, ok := parseArgs(s, sink, token.LBrace, token.RBrace)
			if !ok {
				return ast.NewErrorExpr(term.Pos())
			}
			term = ast.NewConstructor(term.Pos(), term, args)

		case token.Dot:
			s.Next()
			name, ok := expect(s, sink, token.Ident)
			if !ok {
				return ast.NewErrorExpr(term.Pos())
			}
			term = ast.NewAccess(term.Pos(), term, name.Literal)

		default:
			return term
		}
	}
}

// parseArgs parses a comma-separated expression list delimited by open
// and close, used identically for call arguments and constructor
// arguments (the source's parse_args/CALL_EXPR/CONSTRUCTOR_EXPR share
// this shape, differing only in delimiter).
func parseArgs(s token.Stream, sink *diag.Sink, open, close token.Kind) ([]ast.Expr, bool) {
	if _, ok := expect(s, sink, open); !ok {
		return nil, false
	}
	var args []ast.Expr
	if s.Peek().Kind != close {
		for {
			arg := ParseExpr(s, sink, MaxPrecedence)
			if ast.IsError(arg) {
				return nil, false
			}
			args = append(args, arg)
			if s.Peek().Kind == token.Comma {
				s.Next()
				continue
			}
			break
		}
	}
	if _, ok := expect(s, sink, close); !ok {
		return nil, false
	}
	return args, true
}

// parseArrayLit parses '[' Expr,* ']'.
func parseArrayLit(s token.Stream, sink *diag.Sink) ast.Expr {
	open, ok := expect(s, sink, token.LBracket)
	if !ok {
		return ast.NewErrorExpr(open.Pos())
	}
	var elems []ast.Expr
	if s.Peek().Kind != token.RBracket {
		for {
			elem := ParseExpr(s, sink, MaxPrecedence)
			if ast.IsError(elem) {
				return elem
			}
			elems = append(elems, elem)
			if s.Peek().Kind == token.Comma {
				s.Next()
				continue
			}
			break
		}
	}
	if _, ok := expect(s, sink, token.RBracket); !ok {
		return ast.NewErrorExpr(open.Pos())
	}
	return ast.NewArrayLit(open.Pos(), elems)
}

func parseGroup(s token.Stream, sink *diag.Sink) ast.Expr {
	open, ok := expect(s, sink, token.LParen)
	if !ok {
		return ast.NewErrorExpr(open.Pos())
	}
	inner := ParseExpr(s, sink, MaxPrecedence)
	if ast.IsError(inner) {
		return inner
	}
	if _, ok := expect(s, sink, token.RParen); !ok {
		return ast.NewErrorExpr(open.Pos())
	}
	return ast.NewGrouped(open.Pos(), inner)
}

func parseLambda(s token.Stream, sink *diag.Sink) ast.Expr {
	open, ok := expect(s, sink, token.LParen)
	if !ok {
		return ast.NewErrorExpr(open.Pos())
	}
	names, specs, defaults, ok := parseParams(s, sink)
	if !ok {
		return ast.NewErrorExpr(open.Pos())
	}
	if _, ok := expect(s, sink, token.RParen); !ok {
		return ast.NewErrorExpr(open.Pos())
	}
	ret := typespec.Spec(typespec.Inferred{})
	if s.Peek().Kind == token.Colon {
		s.Next()
		ret = typespec.Parse(s, sink)
		if typespec.IsError(ret) {
			return ast.NewErrorExpr(open.Pos())
		}
	}
	if _, ok := expect(s, sink, token.DArrow); !ok {
		return ast.NewErrorExpr(open.Pos())
	}
	body := ParseExpr(s, sink, MaxPrecedence)
	if ast.IsError(body) {
		return body
	}
	return ast.NewLambda(open.Pos(), names, specs, defaults, ret, body)
}

// parseParams parses a comma-separated "name [: Spec] [= Default]" list,
// shared by lambda parameters, function parameters, and struct members.
// Once a default value has been seen, every subsequent parameter must
// also supply one, matching parse_params's optional-parameter check.
func parseParams(s token.Stream, sink *diag.Sink) ([]string, []typespec.Spec, []ast.Expr, bool) {
	var names []string
	var specs []typespec.Spec
	var defaults []ast.Expr
	sawDefault := false

	if s.Peek().Kind == token.RParen || s.Peek().Kind == token.RBrace {
		return names, specs, defaults, true
	}

	for {
		name, ok := expect(s, sink, token.Ident)
		if !ok {
			return nil, nil, nil, false
		}

		spec := typespec.Spec(typespec.Inferred{})
		if s.Peek().Kind == token.Colon {
			s.Next()
			spec = typespec.Parse(s, sink)
			if typespec.IsError(spec) {
				return nil, nil, nil, false
			}
		}

		var def ast.Expr
		if s.Peek().Kind == token.Eq {
			s.Next()
			def = ParseExpr(s, sink, MaxPrecedence)
			if ast.IsError(def) {
				return nil, nil, nil, false
			}
			sawDefault = true
		} else if sawDefault {
			sink.SyntaxError(name.Pos(), "non-optional parameter after optional parameter")
			return nil, nil, nil, false
		}

		names = append(names, name.Literal)
		specs = append(specs, spec)
		defaults = append(defaults, def)

		if s.Peek().Kind == token.Comma {
			s.Next()
			continue
		}
		break
	}
	return names, specs, defaults, true
}
