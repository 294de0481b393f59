// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/dypro/internal/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// scenarioFlags are the file and overrides shared by run and sweep.
type scenarioFlags struct {
	file     string
	workers  int
	infinity float64
	output   string
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "scenario file (YAML)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "goroutines per stage, overrides the file")
	cmd.Flags().Float64Var(&f.infinity, "infinity", 0, "infeasibility sentinel, overrides the file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "output format: text or yaml")
	_ = cmd.MarkFlagRequired("file")
}

// load reads the scenario and applies the flags the user set.
func (f *scenarioFlags) load(cmd *cobra.Command) (*scenario.Scenario, error) {
	if f.output != "text" && f.output != "yaml" {
		return nil, fmt.Errorf("unknown output format %q", f.output)
	}
	sc, err := scenario.Load(f.file)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("workers") {
		sc.Workers = f.workers
	}
	if cmd.Flags().Changed("infinity") {
		sc.Infinity = f.infinity
	}

	return sc, sc.Validate()
}

func newRunCmd(a *app) *cobra.Command {
	var flags scenarioFlags
	cmd := &cobra.Command{
		Use:   "run -f scenario.yaml",
		Short: "Solve one scenario and print its optimal path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := flags.load(cmd)
			if err != nil {
				return err
			}
			rep, err := scenario.Run(cmd.Context(), sc, a.options()...)
			if err != nil {
				return err
			}
			a.log.Info("scenario solved",
				zap.String("name", rep.Name),
				zap.String("kind", string(rep.Kind)),
				zap.Float64("cost", rep.Cost),
				zap.Duration("elapsed", rep.Elapsed),
			)
			if flags.output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), rep)
			}

			return writeReport(cmd.OutOrStdout(), rep)
		},
	}
	flags.register(cmd)

	return cmd
}

func writeReport(w io.Writer, rep *scenario.Report) error {
	title := string(rep.Kind)
	if rep.Name != "" {
		title = rep.Name + " (" + title + ")"
	}
	_, err := fmt.Fprintf(w,
		"scenario:  %s\ncost:      %.6f\nfeasible:  %t\nstates:    %s\ndecisions: %s\nelapsed:   %s\n",
		title, rep.Cost, rep.Feasible,
		strings.Join(rep.States, " "), strings.Join(rep.Decisions, " "),
		rep.Elapsed,
	)

	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
