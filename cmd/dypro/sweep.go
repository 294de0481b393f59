// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/dypro/internal/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		flags     scenarioFlags
		samplings string
		parallel  int
	)
	cmd := &cobra.Command{
		Use:   "sweep -f hydro.yaml --samplings 400,200:100",
		Short: "Solve a hydro scenario once per sampling period",
		Long: `Sweep re-solves a hydro, hydro-stochastic or joint scenario for every
sampling in --samplings. An entry "p" samples states and decisions with
period p; "s:d" sets them apart. Up to --parallel solves run at once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := flags.load(cmd)
			if err != nil {
				return err
			}
			list, err := scenario.ParseSamplings(samplings)
			if err != nil {
				return err
			}
			results, err := scenario.Sweep(cmd.Context(), sc, list, parallel, a.options()...)
			if err != nil {
				return err
			}
			for _, r := range results {
				a.log.Info("sampling solved",
					zap.Stringer("sampling", r.Sampling),
					zap.Float64("cost", r.Report.Cost),
					zap.Duration("elapsed", r.Report.Elapsed),
				)
			}
			if flags.output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), results)
			}

			return writeSweep(cmd.OutOrStdout(), results)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&samplings, "samplings", "", "comma separated periods, p or state:decision")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "scenarios solved at once")
	_ = cmd.MarkFlagRequired("samplings")

	return cmd
}

func writeSweep(w io.Writer, results []scenario.SweepResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SAMPLING\tCOST\tFEASIBLE\tFINAL STATE\tELAPSED")
	for _, r := range results {
		final := "-"
		if n := len(r.Report.States); n > 0 {
			final = r.Report.States[n-1]
		}
		fmt.Fprintf(tw, "%s\t%.6f\t%t\t%s\t%s\n", r.Sampling, r.Report.Cost, r.Report.Feasible, final, r.Report.Elapsed)
	}

	return tw.Flush()
}
