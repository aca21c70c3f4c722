// Package lexer scans byte-oriented source into a token stream.
package lexer

import "github.com/ashlang/ashc/internal/token"

// keywords maps reserved words to their token kind. Checked only after an
// identifier has been fully scanned by maximal munch, so "iffy" lexes as
// one identifier, never as "if" followed by "fy".
var keywords = map[string]token.Kind{
	"var": token.KwVar, "const": token.KwConst, "fn": token.KwFn,
	"wire": token.KwWire, "part": token.KwPart, "primitive": token.KwPrimitive,
	"struct": token.KwStruct, "enum": token.KwEnum,
	"if": token.KwIf, "else": token.KwElse,
	"switch": token.KwSwitch, "case": token.KwCase, "default": token.KwDefault,
	"while": token.KwWhile, "do": token.KwDo, "for": token.KwFor,
	"return": token.KwReturn, "break": token.KwBreak, "continue": token.KwContinue,
	"void": token.KwVoid, "bool": token.KwBool,
	"i8": token.KwI8, "i16": token.KwI16, "i32": token.KwI32, "i64": token.KwI64,
	"u8": token.KwU8, "u16": token.KwU16, "u32": token.KwU32, "u64": token.KwU64,
	"type": token.KwType,
}

// punctSingle holds single-byte punctuation that never extends into a
// longer lexeme, so it needs no lookahead.
var punctSingle = map[byte]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'[': token.LBracket, ']': token.RBracket,
	'{': token.LBrace, '}': token.RBrace,
	',': token.Comma, '?': token.Question, '~': token.Tilde,
}

// operatorTable holds every multi-byte operator/punctuation lexeme, tried
// longest-prefix-first so maximal munch picks "<<=" over "<<" over "<".
var operatorTable = []struct {
	text string
	kind token.Kind
}{
	{"<<=", token.LtLtEq}, {">>=", token.GtGtEq},
	{"++", token.PlusPlus}, {"--", token.MinusMinus},
	{"==", token.EqEq}, {"!=", token.Neq},
	{"<=", token.Leq}, {">=", token.Geq},
	{"<<", token.LtLt}, {">>", token.GtGt},
	{"&&", token.AmpAmp}, {"||", token.PipePipe},
	{"+=", token.PlusEq}, {"-=", token.MinusEq},
	{"*=", token.StarEq}, {"/=", token.SlashEq}, {"%=", token.PercentEq},
	{"|=", token.PipeEq}, {"&=", token.AmpEq}, {"^=", token.CaretEq},
	{"->", token.Arrow}, {"=>", token.DArrow},
	{"::", token.DColon},
	{"+", token.Plus}, {"-", token.Minus}, {"*", token.Star}, {"/", token.Slash}, {"%", token.Percent},
	{"|", token.Pipe}, {"&", token.Amp}, {"^", token.Caret}, {"!", token.Bang},
	{"=", token.Eq}, {"<", token.Lt}, {">", token.Gt},
	{".", token.Dot}, {":", token.Colon}, {";", token.Semicolon},
}
