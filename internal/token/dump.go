package token

import (
	"fmt"
	"strings"
)

// DumpTokens renders a token slice one per line as "Kind(literal) at
// line:col", the same "one node per line, kind and position" convention
// internal/ast.PrettyPrint uses for statements and expressions — the
// format the 'ashc dump tokens' CLI subcommand prints.
func DumpTokens(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		fmt.Fprintf(&sb, "%s(%s) at %s\n", t.Kind, literalFor(t), t.Pos())
	}
	return sb.String()
}

// literalFor renders a token's literal text, quoting it for the kinds
// whose literal can otherwise be ambiguous in a dump (empty, or containing
// whitespace/newlines).
func literalFor(t Token) string {
	switch t.Kind {
	case EOF:
		return ""
	case String:
		return fmt.Sprintf("%q", t.StringValue())
	case Char:
		return fmt.Sprintf("%q", t.CharValue())
	default:
		return t.Literal
	}
}
