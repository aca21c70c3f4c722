package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashlang/ashc/internal/ast"
	"github.com/ashlang/ashc/internal/diag"
	"github.com/ashlang/ashc/internal/token"
)

// newDumpCmd builds 'ashc dump {tokens|ast} <file>', the inspection
// subcommand that prints the same dumps internal/golden's fixture tests
// compare: each stage's intermediate form in the one-node-per-line format
// internal/token.DumpTokens and internal/ast.PrettyPrint produce. Unlike
// 'check', a dump runs only as far as the stage asked for — 'dump
// tokens' never parses, 'dump ast' never type-checks — since the point
// is inspecting that stage in isolation, not the full pipeline result.
func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump {tokens|ast} <file>",
		Short: "dump an intermediate pipeline stage for inspection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, path := args[0], args[1]
			switch stage {
			case "tokens":
				return dumpTokens(path)
			case "ast":
				return dumpAST(path)
			default:
				return fmt.Errorf("unknown dump stage %q, want 'tokens' or 'ast'", stage)
			}
		},
	}
	return cmd
}

func dumpTokens(path string) error {
	sink := diag.New(path, os.Stderr)
	toks := readAndLex(path, sink)
	if sink.Failed() {
		os.Exit(1)
	}
	fmt.Print(token.DumpTokens(toks))
	return nil
}

func dumpAST(path string) error {
	sink := diag.New(path, os.Stderr)
	toks := readAndLex(path, sink)
	if sink.Failed() {
		os.Exit(1)
	}
	prog := parseProgram(toks, sink)
	if sink.Failed() {
		os.Exit(1)
	}
	fmt.Print(ast.PrettyPrint(prog))
	return nil
}
