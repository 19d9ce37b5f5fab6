// pkg/quality/issues.go
package quality

import (
	"fmt"

	"github.com/tablewash/tablewash/pkg/model"
)

const (
	issueSampleSize     = 10
	numericAsTextRatio  = 0.7
	missingReportCutoff = 50.0
)

// DetectIssues scans a table for common data-quality problems and
// returns human-readable diagnostics. The checks are independent and
// advisory only; nothing here mutates the table or alters the pipeline.
func DetectIssues(t *model.Table) []string {
	issues := []string{}
	if t == nil || t.Cols() == 0 {
		return issues
	}

	if n := emptyRowCount(t); n > 0 {
		issues = append(issues, fmt.Sprintf("%d completely empty rows found", n))
	}

	if n := duplicateRowCount(t); n > 0 {
		issues = append(issues, fmt.Sprintf("%d duplicate rows found", n))
	}

	if t.Rows() > 0 {
		for _, col := range t.Columns() {
			pct := float64(col.MissingCount()) / float64(t.Rows()) * 100
			if pct > missingReportCutoff {
				issues = append(issues, fmt.Sprintf("Column '%s' has %.1f%% missing values", col.Name, pct))
			}
		}
	}

	for _, col := range t.Columns() {
		if looksNumericButText(col) {
			issues = append(issues, fmt.Sprintf("Column '%s' contains numeric data but is stored as text", col.Name))
		}
	}

	return issues
}

func emptyRowCount(t *model.Table) int {
	n := 0
	for i := 0; i < t.Rows(); i++ {
		if t.RowIsEmpty(i) {
			n++
		}
	}
	return n
}

// looksNumericButText samples the first 10 non-missing values of a text
// column and reports whether at least 70% of them parse as numeric.
func looksNumericButText(col *model.Column) bool {
	if !col.IsText() {
		return false
	}
	sample := col.NonMissing(issueSampleSize)
	if len(sample) == 0 {
		return false
	}
	numeric := 0
	for _, cell := range sample {
		if _, ok := model.ParseNumber(cell.String()); ok {
			numeric++
		}
	}
	return float64(numeric) >= float64(len(sample))*numericAsTextRatio
}
