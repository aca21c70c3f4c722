package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ashlang/ashc/internal/ast"
	"github.com/ashlang/ashc/internal/diag"
	"github.com/ashlang/ashc/internal/lexer"
	"github.com/ashlang/ashc/internal/parser"
	"github.com/ashlang/ashc/internal/sema"
	"github.com/ashlang/ashc/internal/source"
	"github.com/ashlang/ashc/internal/token"
)

// readAndLex loads path and scans it, tracing each stage under --verbose.
// A read failure is reported through the sink as a Read diagnostic rather
// than returned as a Go error, so every call site handles failures the
// same way regardless of which stage produced them.
func readAndLex(path string, sink *diag.Sink) []token.Token {
	logrus.Debugf("reading %s", path)
	b, err := source.ReadFile(path)
	if err != nil {
		sink.ReadError("%v", err)
		return nil
	}
	logrus.Debugf("read %d bytes", len(b))

	logrus.Debug("lexing")
	toks := lexer.New(b, tabWidth, sink).Lex()
	logrus.Debugf("lexed %d tokens", len(toks))
	return toks
}

// parseProgram parses an already-lexed token stream, tracing node counts.
func parseProgram(toks []token.Token, sink *diag.Sink) *ast.Block {
	logrus.Debug("parsing")
	prog := parser.ParseProgram(toks, sink)
	if prog != nil {
		logrus.Debugf("parsed %d top-level statements", len(prog.Stmts))
	}
	return prog
}

// runCheck runs the full lex/parse/check pipeline against path and prints
// the first diagnostic, if any, to stderr via the sink. It reports
// whether the program is free of diagnostics.
func runCheck(path string) (bool, error) {
	sink := diag.New(path, os.Stderr)
	toks := readAndLex(path, sink)
	if sink.Failed() {
		return false, nil
	}

	prog := parseProgram(toks, sink)
	if sink.Failed() {
		return false, nil
	}

	logrus.Debug("type-checking")
	sema.NewChecker(sink).Check(prog)
	if sink.Failed() {
		return false, nil
	}

	fmt.Fprintln(os.Stdout, "ok")
	return true, nil
}
