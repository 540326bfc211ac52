package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/gogpu/fcurve"
)

func newSampleCmd() *cobra.Command {
	var (
		cf         curveFlags
		start, end float64
		step       float64
		bake       bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print curve values at regular times",
		Long: `Prints one "time<TAB>value" line per step between --start and --end.
Without a range the keyed range of the curve is used.

With --bake the curve is first converted to one sample per whole frame,
and the samples are printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.build()
			if err != nil {
				return err
			}

			from, to, ok := fcurve.KeyedRange(c)
			if cmd.Flags().Changed("start") {
				from = start
			}
			if cmd.Flags().Changed("end") {
				to = end
			}
			if !ok && !(cmd.Flags().Changed("start") && cmd.Flags().Changed("end")) {
				return errors.New("curve has no keys; set --start and --end")
			}

			out := cmd.OutOrStdout()
			if bake {
				fcurve.BakeSamples(c, int(math.Floor(from)), int(math.Ceil(to)))
				for _, s := range c.Samples() {
					fmt.Fprintf(out, "%g\t%g\n", s.Time, s.Value)
				}
				return nil
			}

			if step <= 0 {
				return fmt.Errorf("step must be positive, got %g", step)
			}
			ev := fcurve.NewEvaluator()
			n := int(math.Floor((to-from)/step + 1e-9))
			for i := 0; i <= n; i++ {
				t := from + float64(i)*step
				fmt.Fprintf(out, "%g\t%g\n", t, ev.Evaluate(c, t))
			}
			return nil
		},
	}

	cf.register(cmd)
	fl := cmd.Flags()
	fl.Float64Var(&start, "start", 0, "first sample time")
	fl.Float64Var(&end, "end", 0, "last sample time")
	fl.Float64Var(&step, "step", 1, "time between samples")
	fl.BoolVar(&bake, "bake", false, "bake whole frames to samples and print them")
	return cmd
}
