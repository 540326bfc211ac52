package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/fcurve"
	"github.com/gogpu/fcurve/plot"
)

func newPlotCmd() *cobra.Command {
	var (
		cf            curveFlags
		output        string
		width, height int
		handles       bool
		label         string
		from, to      float64
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a curve to a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.build()
			if err != nil {
				return err
			}

			opts := []plot.Option{
				plot.WithSize(width, height),
				plot.WithHandles(handles),
				plot.WithLabel(label),
			}
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				start, end, _ := fcurve.KeyedRange(c)
				if cmd.Flags().Changed("from") {
					start = from
				}
				if cmd.Flags().Changed("to") {
					end = to
				}
				opts = append(opts, plot.WithTimeRange(start, end))
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := plot.WritePNG(f, c, opts...); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", output, width, height)
			return nil
		},
	}

	cf.register(cmd)
	fl := cmd.Flags()
	fl.StringVarP(&output, "output", "o", "curve.png", "output file")
	fl.IntVar(&width, "width", 640, "image width")
	fl.IntVar(&height, "height", 320, "image height")
	fl.BoolVar(&handles, "handles", false, "draw Bezier handles")
	fl.StringVar(&label, "label", "", "text drawn in the corner")
	fl.Float64Var(&from, "from", 0, "first plotted time")
	fl.Float64Var(&to, "to", 0, "last plotted time")
	return cmd
}
