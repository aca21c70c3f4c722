// Command ashc is the front-end driver for the ash language: it lexes,
// parses, and type-checks a source file and reports the result, or dumps
// an intermediate pipeline stage for inspection.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
