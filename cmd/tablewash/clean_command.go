package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablewash/tablewash/pkg/batch"
	"github.com/tablewash/tablewash/pkg/csvio"
	"github.com/tablewash/tablewash/pkg/pipeline"
)

func newCleanCommand(a *app) *cobra.Command {
	var (
		output       string
		reportPath   string
		instructions string
		restricted   bool
		jsonOut      bool
	)

	cmd := &cobra.Command{
		Use:   "clean INPUT.csv",
		Short: "Clean a single CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", input, err)
			}
			table, err := csvio.Read(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", input, err)
			}

			report, err := a.pipeline.Clean(cmd.Context(), table, pipeline.Options{
				Instructions: instructions,
				Restricted:   restricted,
			})
			if err != nil {
				return err
			}

			if output == "" {
				output = batch.CleanedPath(input)
			}
			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := csvio.Write(out, table); err != nil {
				out.Close()
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			out.Close()

			if reportPath != "" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
				if err := os.WriteFile(reportPath, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			}

			return renderReport(cmd.OutOrStdout(), report, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "cleaned CSV path (default INPUT.cleaned.csv)")
	cmd.Flags().StringVar(&reportPath, "report", "", "write the cleaning report as JSON to this path")
	cmd.Flags().StringVar(&instructions, "instructions", "", "free-form cleaning instruction")
	cmd.Flags().BoolVar(&restricted, "restricted", false, "deterministic cleaning only, skip LLM stages")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")
	return cmd
}
