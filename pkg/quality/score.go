// pkg/quality/score.go
package quality

import (
	"math"

	"github.com/tablewash/tablewash/pkg/model"
)

// Factor weights for the composite quality score.
const (
	completenessWeight = 0.4
	uniquenessWeight   = 0.3
	consistencyWeight  = 0.2
	validityWeight     = 0.1
)

const (
	consistencySampleSize = 20
	numericPenaltyRatio   = 0.8
	maxReasonableLength   = 1000
)

// Score computes the composite 0-100 quality score for a table. It is
// a pure function: deterministic for a given table, no mutation. An
// empty table (zero rows) scores 0.
func Score(t *model.Table) float64 {
	if t == nil || t.Rows() == 0 || t.Cols() == 0 {
		return 0
	}

	score := completeness(t)*completenessWeight +
		uniqueness(t)*uniquenessWeight +
		consistency(t)*consistencyWeight +
		validity(t)*validityWeight

	final := math.Round(score*100*10) / 10
	return math.Max(0, math.Min(100, final))
}

// completeness is the fraction of cells that hold a value.
func completeness(t *model.Table) float64 {
	total := t.Rows() * t.Cols()
	missing := 0
	for _, col := range t.Columns() {
		missing += col.MissingCount()
	}
	return clamp01(float64(total-missing) / float64(total))
}

// uniqueness is 1 minus the fraction of rows that duplicate an earlier
// row's full value tuple.
func uniqueness(t *model.Table) float64 {
	rows := t.Rows()
	if rows == 0 {
		return 1
	}
	return clamp01(1 - float64(duplicateRowCount(t))/float64(rows))
}

// consistency averages a per-column score: text columns where at least
// 80% of a 20-value sample parses as numeric are penalized at 0.5 for
// holding mis-typed numeric data; every other column scores 1.0.
func consistency(t *model.Table) float64 {
	sum := 0.0
	for _, col := range t.Columns() {
		sum += columnConsistency(col)
	}
	return clamp01(sum / float64(t.Cols()))
}

func columnConsistency(col *model.Column) float64 {
	if !col.IsText() {
		return 1.0
	}
	sample := col.NonMissing(consistencySampleSize)
	if len(sample) == 0 {
		return 1.0
	}
	numeric := 0
	for _, cell := range sample {
		if _, ok := model.ParseNumber(cell.String()); ok {
			numeric++
		}
	}
	if float64(numeric) >= float64(len(sample))*numericPenaltyRatio {
		return 0.5
	}
	return 1.0
}

// validity averages a per-column score: text columns whose longest
// string cast reaches 1000 characters score 0.5, suggesting corrupted
// or mis-delimited data; everything else scores 1.0.
func validity(t *model.Table) float64 {
	sum := 0.0
	for _, col := range t.Columns() {
		sum += columnValidity(col)
	}
	return clamp01(sum / float64(t.Cols()))
}

func columnValidity(col *model.Column) float64 {
	if !col.IsText() {
		return 1.0
	}
	maxLen := 0
	for _, cell := range col.Cells {
		if n := len(cell.String()); n > maxLen {
			maxLen = n
		}
	}
	if maxLen >= maxReasonableLength {
		return 0.5
	}
	return 1.0
}

func duplicateRowCount(t *model.Table) int {
	seen := make(map[string]bool, t.Rows())
	dups := 0
	for i := 0; i < t.Rows(); i++ {
		key := t.RowKey(i)
		if seen[key] {
			dups++
		}
		seen[key] = true
	}
	return dups
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
