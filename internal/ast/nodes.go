// Package ast defines the abstract syntax tree produced by internal/parser
// and annotated in place by internal/sema.
package ast

import "github.com/ashlang/ashc/internal/token"

// Position is a re-export of token.Position for callers that only need
// AST-level position info without importing internal/token directly.
type Position = token.Position

// Node is the base interface implemented by every AST node: type
// specifiers, expressions, and statements alike.
type Node interface {
	Pos() Position
}
