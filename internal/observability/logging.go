// Package observability configures process-wide logging.
package observability

import (
	"os"

	logger "github.com/sirupsen/logrus"
)

// Init configures logrus for CLI use: human-readable output on stderr,
// warnings only by default so generated messages stay clean on stdout.
// Verbose mode raises the level to trace.
func Init(verbose bool) {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logger.TextFormatter{
		DisableTimestamp: true,
	})

	if verbose {
		logger.SetLevel(logger.TraceLevel)
	} else {
		logger.SetLevel(logger.WarnLevel)
	}
}
