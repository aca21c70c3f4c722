package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

var (
	tabWidth int
	verbose  bool
)

// newRootCmd builds the command tree. With no subcommand the root itself
// behaves as 'ashc check <file>' — lex, parse, type-check, report — since
// that is the one thing every invocation of the driver ultimately needs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ashc <file>",
		Short:         "ash language front end: lex, parse, and type-check a source file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging()
		},
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

	root.PersistentFlags().IntVar(&tabWidth, "tabwidth", 8, "columns per tab stop")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace pipeline stages on stderr")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newDumpCmd())

	return root
}

// configureLogging wires logrus the way golox's CLI does: a single-line
// easy-formatter, level gated by --verbose, writing to stderr so it never
// mixes with the diagnostic/dump output on stdout.
func configureLogging() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "15:04:05.000",
		LogFormat:       "[%lvl%] %time% %msg%\n",
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}
