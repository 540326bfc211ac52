// Command fcurve samples, plots and inspects animation curves from the
// command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/fcurve"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "fcurve",
		Short: "Evaluate animation curves",
		Long: `fcurve builds a curve from keys given on the command line and
samples it, plots it, or evaluates driver expressions.

Example:
  fcurve sample --key 0:0 --key 10:5 --key 20:0 --step 2
  fcurve plot --key 0:0 --key 10:5 --cycles -o curve.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				fcurve.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
					&slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log evaluation diagnostics to stderr")

	root.AddCommand(newSampleCmd(), newPlotCmd(), newExprCmd())
	return root
}
