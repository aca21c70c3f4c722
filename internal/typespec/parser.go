package typespec

import (
	"github.com/ashlang/ashc/internal/diag"
	"github.com/ashlang/ashc/internal/token"
)

// IsLambdaAhead performs the balanced-paren lookahead shared by the type
// specifier and expression grammars: starting at a '(' it walks forward
// tracking nesting depth until the matching ')', then reports whether the
// token immediately after it is '=>'. Grounded on common_parser.c's
// is_lambda.
func IsLambdaAhead(s token.Stream) bool {
	level := 0
	i := 0
	for {
		tok := s.PeekAt(i)
		if tok.Kind == token.EOF {
			return false
		}
		if tok.Kind == token.LParen {
			level++
		} else if tok.Kind == token.RParen {
			level--
			if level == 0 {
				break
			}
		}
		i++
	}
	return s.PeekAt(i+1).Kind == token.DArrow
}

func unexpected(sink *diag.Sink, tok token.Token) Spec {
	sink.SyntaxError(tok.Pos(), "unexpected token %s", tok.Kind)
	return Error{base{tok.Pos()}}
}

func expect(s token.Stream, sink *diag.Sink, kind token.Kind) (token.Token, bool) {
	tok := s.Peek()
	if tok.Kind != kind {
		unexpected(sink, tok)
		return tok, false
	}
	return s.Next(), true
}

// Parse parses a single type specifier from s, reporting errors to sink.
func Parse(s token.Stream, sink *diag.Sink) Spec {
	tok := s.Peek()
	switch {
	case token.AtomicTypeKeywords[tok.Kind] || tok.Kind == token.Ident:
		s.Next()
		atom := Atomic{base{tok.Pos()}, tok.Literal}
		return parseMods(s, sink, atom)

	case tok.Kind == token.LParen:
		var spec Spec
		if IsLambdaAhead(s) {
			spec = parseFunction(s, sink)
		} else {
			spec = parseGroup(s, sink)
		}
		if IsError(spec) {
			return spec
		}
		return parseMods(s, sink, spec)

	default:
		return unexpected(sink, tok)
	}
}

func parseGroup(s token.Stream, sink *diag.Sink) Spec {
	open, ok := expect(s, sink, token.LParen)
	if !ok {
		return Error{base{open.Pos()}}
	}
	inner := Parse(s, sink)
	if IsError(inner) {
		return inner
	}
	if _, ok := expect(s, sink, token.RParen); !ok {
		return Error{base{open.Pos()}}
	}
	return Grouped{base{open.Pos()}, inner}
}

func parseFunction(s token.Stream, sink *diag.Sink) Spec {
	open, ok := expect(s, sink, token.LParen)
	if !ok {
		return Error{base{open.Pos()}}
	}

	var params []Spec
	optional := 0
	if s.Peek().Kind != token.RParen {
		for {
			p := Parse(s, sink)
			if IsError(p) {
				return p
			}
			params = append(params, p)

			if s.Peek().Kind == token.Question {
				s.Next()
				optional++
			} else if optional > 0 {
				sink.SyntaxError(open.Pos(), "non-optional parameter after optional parameter")
				return Error{base{open.Pos()}}
			}

			if s.Peek().Kind == token.Comma {
				s.Next()
				continue
			}
			break
		}
	}
	if _, ok := expect(s, sink, token.RParen); !ok {
		return Error{base{open.Pos()}}
	}
	if _, ok := expect(s, sink, token.DArrow); !ok {
		return Error{base{open.Pos()}}
	}
	ret := Parse(s, sink)
	if IsError(ret) {
		return ret
	}
	return Function{base{open.Pos()}, params, optional, ret}
}

// parseMods consumes zero or more trailing '[]'/'*' modifiers, each
// optionally preceded by 'const'. Bare modifiers default to mutable;
// 'const' flips the mutability of that modifier level only, matching
// handle_type_spec_mod / parse_type_spec_mod.
func parseMods(s token.Stream, sink *diag.Sink, base_ Spec) Spec {
	for {
		mutable := true
		tok := s.Peek()
		if tok.Kind == token.KwConst {
			s.Next()
			mutable = false
			tok = s.Peek()
			switch tok.Kind {
			case token.LBracket, token.Star:
			default:
				return unexpected(sink, tok)
			}
		} else if tok.Kind != token.LBracket && tok.Kind != token.Star {
			return base_
		}

		modPos := tok.Pos()
		switch tok.Kind {
		case token.LBracket:
			s.Next()
			if _, ok := expect(s, sink, token.RBracket); !ok {
				return Error{base{modPos}}
			}
			base_ = Array{base{base_.Pos()}, base_, mutable}
		case token.Star:
			s.Next()
			base_ = Pointer{base{base_.Pos()}, base_, mutable}
		}
	}
}
