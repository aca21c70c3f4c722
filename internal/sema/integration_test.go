package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashlang/ashc/internal/ast"
)

// These exercise the full lexer -> parser -> checker pipeline on complete
// small programs, rather than isolated constructs.

func TestPipelineAcceptsAStructAndEnumProgram(t *testing.T) {
	_, sink := checkSrc(t, `
		enum Shape { Circle, Square }

		struct Figure {
			kind: Shape,
			size: i32
		}

		fn area(f: Figure): i32 {
			return f.kind == Shape.Circle ? f.size * f.size : f.size * f.size;
		}

		fn main(): i32 {
			var f = Figure{Shape.Circle, 4};
			return area(f);
		}
	`)
	assert.False(t, sink.Failed())
}

func TestPipelineRejectsUseBeforeDeclarationAcrossStatements(t *testing.T) {
	_, sink := checkSrc(t, `
		fn main(): i32 {
			var total = count * 2;
			var count = 5;
			return total;
		}
	`)
	assert.True(t, sink.Failed())
}

func TestPipelineChecksNestedLoopsAndSwitch(t *testing.T) {
	_, sink := checkSrc(t, `
		fn classify(n: i32): i32 {
			var result = 0;
			for (var i = 0; i < n; i++) {
				switch (i % 3) {
				case 0:
					result = result + 1;
					break;
				case 1:
					continue;
				default:
					result = result - 1;
				}
			}
			return result;
		}
	`)
	assert.False(t, sink.Failed())
}

func TestPipelineStopsAtFirstErrorAndDoesNotCascade(t *testing.T) {
	prog, sink := checkSrc(t, `
		var a = undefinedName;
		var b: i32 = true;
	`)
	require.True(t, sink.Failed())
	// the second declaration should never have been visited: first-error-halt.
	second := prog.Stmts[1].(*ast.Decl)
	assert.Nil(t, second.Value.Annotation())
}
