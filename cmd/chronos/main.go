// Package main is the chronos command line tool. It computes result
// bundles and weton calendars without running the HTTP server.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/chronos-api/internal/logger"
)

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Diagnostics go to logw; results go to
// the command's output stream.
func newRootCmd(logw io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "chronos",
		Short:         "Temporal-symbolic calculations for a birth moment",
		Long:          "Chronos derives planetary positions, the Javanese weton, the Chinese shio and birth numerology for a date and time.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics on stderr")

	newLogger := func() *slog.Logger {
		level := "warn"
		if verbose {
			level = "debug"
		}
		return logger.New(logw, level, "text")
	}

	root.AddCommand(newComputeCmd(newLogger))
	root.AddCommand(newWetonCmd())
	return root
}
