package parser

import (
	"github.com/ashlang/ashc/internal/ast"
	"github.com/ashlang/ashc/internal/diag"
	"github.com/ashlang/ashc/internal/token"
)

// ParseProgram parses a complete token stream as an implicit top-level
// block: a sequence of statements with no enclosing braces, followed by
// end of file. Grounded on common_parser.c's parse(), which wraps the
// whole file the same way.
func ParseProgram(toks []token.Token, sink *diag.Sink) *ast.Block {
	s := token.NewStream(toks)
	pos := s.Pos()

	var stmts []ast.Stmt
	for isStatementStart(s.Peek().Kind) {
		st := ParseStmt(s, sink)
		stmts = append(stmts, st)
		if ast.IsError(st) || sink.Failed() {
			break
		}
	}

	if !sink.Failed() && s.Peek().Kind != token.EOF {
		unexpectedStmt(sink, s.Peek())
	}

	return ast.NewBlock(pos, stmts)
}
