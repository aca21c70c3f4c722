// Package token defines the lexical tokens produced by internal/lexer and
// consumed by internal/typespec, internal/parser, and internal/sema.
package token

import "fmt"

// Kind enumerates every token the lexer can produce. The ordering follows
// the source's TokenEnum: literals and identifiers, grouping punctuation,
// operators from highest to lowest arity, compound-assignment forms,
// structural punctuation, then keywords.
type Kind int

const (
	Illegal Kind = iota
	EOF

	Int
	Char
	String
	Ident

	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace

	Plus
	PlusPlus
	Minus
	MinusMinus
	Star
	Slash
	Percent

	Pipe
	PipePipe
	Amp
	AmpAmp
	Caret
	Tilde
	Bang
	Question

	Eq
	EqEq
	Neq
	Lt
	LtLt
	Leq
	Gt
	GtGt
	Geq

	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	PipeEq
	AmpEq
	CaretEq
	LtLtEq
	GtGtEq

	Arrow
	DArrow

	Dot
	Comma
	Colon
	DColon
	Semicolon

	// keywords
	KwVar
	KwConst
	KwFn
	KwWire
	KwPart
	KwPrimitive
	KwStruct
	KwEnum
	KwIf
	KwElse
	KwSwitch
	KwCase
	KwDefault
	KwWhile
	KwDo
	KwFor
	KwReturn
	KwBreak
	KwContinue

	// atomic type keywords
	KwVoid
	KwBool
	KwI8
	KwI16
	KwI32
	KwI64
	KwU8
	KwU16
	KwU32
	KwU64
	KwType
)

var names = map[Kind]string{
	Illegal: "illegal", EOF: "end of file",
	Int: "integer literal", Char: "character literal", String: "string literal", Ident: "identifier",
	LParen: "'('", RParen: "')'", LBracket: "'['", RBracket: "']'", LBrace: "'{'", RBrace: "'}'",
	Plus: "'+'", PlusPlus: "'++'", Minus: "'-'", MinusMinus: "'--'", Star: "'*'", Slash: "'/'", Percent: "'%'",
	Pipe: "'|'", PipePipe: "'||'", Amp: "'&'", AmpAmp: "'&&'", Caret: "'^'", Tilde: "'~'", Bang: "'!'", Question: "'?'",
	Eq: "'='", EqEq: "'=='", Neq: "'!='", Lt: "'<'", LtLt: "'<<'", Leq: "'<='", Gt: "'>'", GtGt: "'>>'", Geq: "'>='",
	PlusEq: "'+='", MinusEq: "'-='", StarEq: "'*='", SlashEq: "'/='", PercentEq: "'%='",
	PipeEq: "'|='", AmpEq: "'&='", CaretEq: "'^='", LtLtEq: "'<<='", GtGtEq: "'>>='",
	Arrow: "'->'", DArrow: "'=>'",
	Dot: "'.'", Comma: "','", Colon: "':'", DColon: "'::'", Semicolon: "';'",
	KwVar: "'var'", KwConst: "'const'", KwFn: "'fn'", KwWire: "'wire'", KwPart: "'part'", KwPrimitive: "'primitive'",
	KwStruct: "'struct'", KwEnum: "'enum'",
	KwIf: "'if'", KwElse: "'else'", KwSwitch: "'switch'", KwCase: "'case'", KwDefault: "'default'",
	KwWhile: "'while'", KwDo: "'do'", KwFor: "'for'",
	KwReturn: "'return'", KwBreak: "'break'", KwContinue: "'continue'",
	KwVoid: "'void'", KwBool: "'bool'",
	KwI8: "'i8'", KwI16: "'i16'", KwI32: "'i32'", KwI64: "'i64'",
	KwU8: "'u8'", KwU16: "'u16'", KwU32: "'u32'", KwU64: "'u64'",
	KwType: "'type'",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// AtomicTypeKeywords is the set of Kinds that may start an atomic type
// specifier per the void/bool/i8..u64 grammar (identifiers are also
// atomic type specifiers, handled separately in internal/typespec).
var AtomicTypeKeywords = map[Kind]bool{
	KwVoid: true, KwBool: true,
	KwI8: true, KwI16: true, KwI32: true, KwI64: true,
	KwU8: true, KwU16: true, KwU32: true, KwU64: true,
}

// ReservedKeywords are accepted by the lexer but rejected by the statement
// parser: they are reserved for future declaration forms, not ordinary
// identifiers.
var ReservedKeywords = map[Kind]bool{
	KwWire: true, KwPart: true, KwPrimitive: true,
}

// Position is a 1-based line/column location in the source file.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single lexeme: its kind, position, the literal text as it
// appeared in source, and a kind-specific payload.
//
//   - Int:    payload is uint64, the parsed (and possibly wrapped) value.
//   - Char:   payload is byte, the literal's single byte value.
//   - String: payload is []byte, the unescaped byte sequence.
//   - Ident:  payload is string, the interned identifier text (same as
//     Literal, but interned to share backing storage across occurrences).
//
// Go's garbage collector owns token lifetime; there is no Release/free
// step corresponding to the source's explicit token ownership rules.
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Col     int
	Payload any
}

// Pos returns the token's position.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Col: t.Col}
}

// IntValue returns the token's integer payload. Panics if Kind != Int.
func (t Token) IntValue() uint64 {
	return t.Payload.(uint64)
}

// CharValue returns the token's character payload. Panics if Kind != Char.
func (t Token) CharValue() byte {
	return t.Payload.(byte)
}

// StringValue returns the token's string payload. Panics if Kind != String.
func (t Token) StringValue() []byte {
	return t.Payload.([]byte)
}
