package main

import (
	"os"

	"github.com/spf13/cobra"
)

// newCheckCmd builds 'ashc check <file>', identical to the root
// command's default action. It exists as an explicit subcommand so a
// script can write 'ashc check foo.ash' rather than relying on the
// bare-root shorthand, the same way 'ashc dump ...' is explicit.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "lex, parse, and type-check a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := runCheck(args[0])
			if err != nil {
				return err
			}
			if !ok {
				cmd.SilenceErrors = true
				os.Exit(1)
			}
			return nil
		},
	}
}
