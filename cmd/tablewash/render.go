package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/tablewash/tablewash/pkg/batch"
	"github.com/tablewash/tablewash/pkg/model"
)

// renderReport prints a cleaning report. On a terminal it renders a
// summary table; piped output and --json get the raw JSON report.
func renderReport(w io.Writer, report *model.CleaningReport, forceJSON bool) error {
	if forceJSON || !stdoutIsTerminal() {
		return writeJSON(w, report)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Rows", fmt.Sprintf("%d -> %d (%d removed)", report.OriginalRows, report.FinalRows, report.RowsRemoved)},
		{"Columns", fmt.Sprintf("%d -> %d", report.OriginalColumns, report.FinalColumns)},
		{"Quality score", fmt.Sprintf("%.1f -> %.1f", report.QualityBefore, report.QualityAfter)},
	})
	if report.LLMError != "" {
		t.AppendRow(table.Row{"LLM error", report.LLMError})
	}
	t.Render()

	if len(report.IssuesFound) > 0 {
		fmt.Fprintln(w, "\nIssues found:")
		for _, issue := range report.IssuesFound {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	}

	fmt.Fprintln(w, "\nOperations:")
	for _, op := range report.OperationsPerformed {
		fmt.Fprintf(w, "  - %s\n", op)
	}

	if len(report.ColumnAnalysis) > 0 {
		fmt.Fprintln(w, "\nColumn analysis:")
		ct := table.NewWriter()
		ct.SetOutputMirror(w)
		ct.SetStyle(table.StyleLight)
		ct.AppendHeader(table.Row{"Column", "Type"})
		for name, label := range report.ColumnAnalysis {
			ct.AppendRow(table.Row{name, string(label)})
		}
		ct.SortBy([]table.SortBy{{Name: "Column", Mode: table.Asc}})
		ct.Render()
	}
	return nil
}

// renderSummary prints a batch summary.
func renderSummary(w io.Writer, summary *batch.Summary, forceJSON bool) error {
	if forceJSON || !stdoutIsTerminal() {
		return writeJSON(w, summaryJSON(summary))
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Status", "Rows removed", "Score", "Duration"})
	for _, result := range summary.Results {
		row := table.Row{result.Path, "ok", "", "", result.Duration.Round(summaryDurationUnit)}
		if result.Err != nil {
			row[1] = "failed: " + result.Err.Error()
		} else {
			row[2] = strconv.Itoa(result.Report.RowsRemoved)
			row[3] = fmt.Sprintf("%.1f -> %.1f", result.Report.QualityBefore, result.Report.QualityAfter)
		}
		t.AppendRow(row)
	}
	t.SortBy([]table.SortBy{{Name: "File", Mode: table.Asc}})
	t.Render()

	fmt.Fprintf(w, "\n%d cleaned, %d failed, %d rows removed in %s\n",
		summary.Succeeded, summary.Failed, summary.RowsRemoved,
		summary.Duration().Round(summaryDurationUnit))
	return nil
}

const summaryDurationUnit = time.Millisecond

// summaryJSON flattens a Summary for machine consumption.
func summaryJSON(summary *batch.Summary) any {
	type fileResult struct {
		Path     string                `json:"path"`
		Output   string                `json:"output,omitempty"`
		Error    string                `json:"error,omitempty"`
		Report   *model.CleaningReport `json:"report,omitempty"`
		Duration string                `json:"duration"`
	}
	out := struct {
		Succeeded   int          `json:"succeeded"`
		Failed      int          `json:"failed"`
		RowsRemoved int          `json:"rows_removed"`
		Duration    string       `json:"duration"`
		Files       []fileResult `json:"files"`
	}{
		Succeeded:   summary.Succeeded,
		Failed:      summary.Failed,
		RowsRemoved: summary.RowsRemoved,
		Duration:    summary.Duration().String(),
	}
	for _, r := range summary.Results {
		fr := fileResult{Path: r.Path, Output: r.OutputPath, Duration: r.Duration.String()}
		if r.Err != nil {
			fr.Error = r.Err.Error()
		} else {
			fr.Report = r.Report
		}
		out.Files = append(out.Files, fr)
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
