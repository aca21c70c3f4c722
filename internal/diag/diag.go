// Package diag collects the diagnostic sink threaded through the lexer,
// parser, and type checker. Rather than each stage keeping its own error
// slice, every stage reports through the same *Sink so the first
// diagnostic can halt the whole pipeline.
package diag

import (
	"fmt"
	"os"

	"github.com/ashlang/ashc/internal/token"
)

// Kind identifies which pipeline stage raised a diagnostic.
type Kind int

const (
	KindLex Kind = iota
	KindSyntax
	KindType
	KindRead
	KindAlloc
)

func (k Kind) label() string {
	switch k {
	case KindLex:
		return "lex error"
	case KindSyntax:
		return "syntax error"
	case KindType:
		return "type error"
	case KindRead:
		return "error"
	case KindAlloc:
		return "error"
	default:
		return "error"
	}
}

// Diagnostic is a single reported failure.
type Diagnostic struct {
	Kind Kind
	Pos  token.Position
	Msg  string
}

func (d Diagnostic) String() string {
	if d.Kind == KindRead || d.Kind == KindAlloc {
		return fmt.Sprintf("%s: %s", d.Kind.label(), d.Msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", d.Pos.Line, d.Pos.Col, d.Kind.label(), d.Msg)
}

// Sink is the single collaborator object every stage reports diagnostics
// through: one threaded object instead of per-package error slices or
// global mutable state.
type Sink struct {
	filename  string
	out       *os.File
	suppress  int
	indicator bool
	first     *Diagnostic
}

// New creates a sink that prefixes printed diagnostics with filename.
func New(filename string, out *os.File) *Sink {
	return &Sink{filename: filename, out: out}
}

// Suppress increments the suppression depth and returns a closure that
// restores it, so call sites read as defer sink.Suppress()().
func (s *Sink) Suppress() func() {
	s.suppress++
	return func() { s.suppress-- }
}

// Suppressed reports whether diagnostics are currently silenced.
func (s *Sink) Suppressed() bool {
	return s.suppress > 0
}

// Failed reports whether any non-suppressed diagnostic has been recorded.
func (s *Sink) Failed() bool {
	return s.indicator
}

// First returns the first recorded diagnostic, or nil if none occurred.
func (s *Sink) First() *Diagnostic {
	return s.first
}

func (s *Sink) report(d Diagnostic) {
	if s.suppress > 0 {
		return
	}
	s.indicator = true
	if s.first == nil {
		first := d
		s.first = &first
	}
	if s.out != nil {
		fmt.Fprintf(s.out, "%s:%s\n", s.filename, d.String())
	}
}

// LexError reports a lexical error at pos. Lex errors never participate
// in suppression — unlike syntax errors, which the parser swallows while
// speculating, a lex error happens once up front before any speculative
// parse has begun, so it always prints.
func (s *Sink) LexError(pos token.Position, format string, args ...any) {
	old := s.suppress
	s.suppress = 0
	s.report(Diagnostic{Kind: KindLex, Pos: pos, Msg: fmt.Sprintf(format, args...)})
	s.suppress = old
}

// SyntaxError reports a parse error at pos.
func (s *Sink) SyntaxError(pos token.Position, format string, args ...any) {
	s.report(Diagnostic{Kind: KindSyntax, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// TypeError reports a semantic/type error at pos.
func (s *Sink) TypeError(pos token.Position, format string, args ...any) {
	s.report(Diagnostic{Kind: KindType, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// ReadError reports a file I/O failure. Never suppressed, matching the
// source's fread_error/malloc_error, which print unconditionally.
func (s *Sink) ReadError(format string, args ...any) {
	old := s.suppress
	s.suppress = 0
	s.report(Diagnostic{Kind: KindRead, Msg: fmt.Sprintf(format, args...)})
	s.suppress = old
}

// AllocError reports a resource-exhaustion failure. Go never surfaces
// allocation failure as a recoverable error (make/append panic on OOM
// instead of returning one), so front-end code never calls this in normal
// operation; it exists for parity with the sink's full operation set and
// for tests that exercise the always-reported guarantee.
func (s *Sink) AllocError() {
	old := s.suppress
	s.suppress = 0
	s.report(Diagnostic{Kind: KindAlloc, Msg: "memory allocation failed"})
	s.suppress = old
}
