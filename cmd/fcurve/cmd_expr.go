package main

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/gogpu/fcurve/expr"
)

func newExprCmd() *cobra.Command {
	var vars map[string]string

	cmd := &cobra.Command{
		Use:   "expr EXPRESSION",
		Short: "Evaluate a driver expression",
		Long: `Evaluates a driver expression with variables bound from --var.

Example:
  fcurve expr "sin(angle) * scale" --var angle=1.57 --var scale=2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound := make(map[string]float64, len(vars))
			for name, s := range vars {
				v, err := cast.ToFloat64E(s)
				if err != nil {
					return fmt.Errorf("variable %s: %w", name, err)
				}
				bound[name] = v
			}

			v, err := expr.New().EvaluateExpression(args[0], bound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", v)
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&vars, "var", nil, "variable as name=value (repeatable)")
	return cmd
}
