package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablewash/tablewash/pkg/batch"
	"github.com/tablewash/tablewash/pkg/pipeline"
)

func newBatchCommand(a *app) *cobra.Command {
	var (
		workers      int
		instructions string
		restricted   bool
		jsonOut      bool
	)

	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Clean every CSV file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := filepath.Glob(filepath.Join(args[0], "*.csv"))
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", args[0], err)
			}
			var inputs []string
			for _, p := range paths {
				if strings.HasSuffix(p, ".cleaned.csv") {
					continue
				}
				inputs = append(inputs, p)
			}
			sort.Strings(inputs)
			if len(inputs) == 0 {
				return fmt.Errorf("no CSV files found in %s", args[0])
			}

			if workers == 0 {
				workers = a.cfg.Workers
			}
			runner, err := batch.NewRunner(a.pipeline, pipeline.Options{
				Instructions: instructions,
				Restricted:   restricted,
			}, workers, a.logger)
			if err != nil {
				return err
			}

			summary := runner.Run(cmd.Context(), inputs)
			if err := renderSummary(cmd.OutOrStdout(), summary, jsonOut); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", summary.Failed, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = config value or number of CPUs)")
	cmd.Flags().StringVar(&instructions, "instructions", "", "free-form cleaning instruction applied to every file")
	cmd.Flags().BoolVar(&restricted, "restricted", false, "deterministic cleaning only, skip LLM stages")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the summary as JSON")
	return cmd
}
