package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashlang/ashc/internal/token"
)

func TestKindStringKnownKind(t *testing.T) {
	assert.Equal(t, "'+'", token.Plus.String())
	assert.Equal(t, "identifier", token.Ident.String())
	assert.Equal(t, "'fn'", token.KwFn.String())
}

func TestKindStringUnknownKindFallsBackToNumericForm(t *testing.T) {
	assert.Equal(t, "kind(9999)", token.Kind(9999).String())
}

func TestPositionString(t *testing.T) {
	pos := token.Position{Line: 5, Col: 10}
	assert.Equal(t, "5:10", pos.String())
}

func TestTokenPos(t *testing.T) {
	tok := token.Token{Kind: token.Ident, Literal: "x", Line: 3, Col: 7}
	assert.Equal(t, token.Position{Line: 3, Col: 7}, tok.Pos())
}

func TestTokenIntValue(t *testing.T) {
	tok := token.Token{Kind: token.Int, Payload: uint64(42)}
	assert.Equal(t, uint64(42), tok.IntValue())
}

func TestTokenCharValue(t *testing.T) {
	tok := token.Token{Kind: token.Char, Payload: byte('a')}
	assert.Equal(t, byte('a'), tok.CharValue())
}

func TestTokenStringValue(t *testing.T) {
	tok := token.Token{Kind: token.String, Payload: []byte("hi")}
	assert.Equal(t, []byte("hi"), tok.StringValue())
}

func TestAtomicTypeKeywordsCoversEveryIntegerWidth(t *testing.T) {
	for _, k := range []token.Kind{
		token.KwI8, token.KwI16, token.KwI32, token.KwI64,
		token.KwU8, token.KwU16, token.KwU32, token.KwU64,
		token.KwVoid, token.KwBool,
	} {
		assert.True(t, token.AtomicTypeKeywords[k])
	}
	assert.False(t, token.AtomicTypeKeywords[token.KwFn])
}

func TestReservedKeywordsAreNotAtomicTypes(t *testing.T) {
	for _, k := range []token.Kind{token.KwWire, token.KwPart, token.KwPrimitive} {
		assert.True(t, token.ReservedKeywords[k])
		assert.False(t, token.AtomicTypeKeywords[k])
	}
}

func TestDumpTokensRendersOneLinePerToken(t *testing.T) {
	toks := []token.Token{
		{Kind: token.KwVar, Literal: "var", Line: 1, Col: 1},
		{Kind: token.Ident, Literal: "x", Line: 1, Col: 5},
		{Kind: token.Eq, Literal: "=", Line: 1, Col: 7},
		{Kind: token.Int, Literal: "1", Line: 1, Col: 9, Payload: uint64(1)},
		{Kind: token.Semicolon, Literal: ";", Line: 1, Col: 10},
		{Kind: token.EOF, Line: 1, Col: 11},
	}
	out := token.DumpTokens(toks)
	assert.Contains(t, out, "'var'(var) at 1:1")
	assert.Contains(t, out, "identifier(x) at 1:5")
	assert.Contains(t, out, "'='(=) at 1:7")
	assert.Contains(t, out, "integer literal(1) at 1:9")
	assert.Contains(t, out, "end of file() at 1:11")
}

func TestDumpTokensQuotesStringAndCharLiterals(t *testing.T) {
	toks := []token.Token{
		{Kind: token.String, Literal: `"hi"`, Line: 1, Col: 1, Payload: []byte("hi")},
		{Kind: token.Char, Literal: "'a'", Line: 1, Col: 6, Payload: byte('a')},
	}
	out := token.DumpTokens(toks)
	assert.Contains(t, out, `string literal("hi") at 1:1`)
	assert.Contains(t, out, `character literal('a') at 1:6`)
}
