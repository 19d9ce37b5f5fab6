// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"

	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/model"
)

// Ratio of non-missing values that must convert for a text column to be
// replaced with a numeric column.
const numericCoercionRatio = 0.7

// Cleaner applies the deterministic cleaning rules. All operations
// mutate the table in place and return what they changed so the caller
// can record it.
type Cleaner struct {
	logger *zap.Logger
}

// New creates a Cleaner.
func New(logger *zap.Logger) (*Cleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Cleaner{logger: logger}, nil
}

// DropEmptyRows removes rows where every cell is missing. Returns the
// number of rows removed.
func (c *Cleaner) DropEmptyRows(t *model.Table) int {
	rows := t.Rows()
	if rows == 0 {
		return 0
	}
	keep := make([]bool, rows)
	for i := 0; i < rows; i++ {
		keep[i] = !t.RowIsEmpty(i)
	}
	removed := t.FilterRows(keep)
	if removed > 0 {
		c.logger.Info("Removed empty rows", zap.Int("count", removed))
	}
	return removed
}

// DropDuplicateRows removes exact-duplicate rows, keeping the first
// occurrence. Returns the number of rows removed.
func (c *Cleaner) DropDuplicateRows(t *model.Table) int {
	removed := t.DedupRows()
	if removed > 0 {
		c.logger.Info("Removed duplicate rows", zap.Int("count", removed))
	}
	return removed
}

// CoerceNumericColumns converts text columns that are numeric in
// disguise: when at least 70% of a column's non-missing values parse as
// numbers, the column is replaced with numeric cells and the values
// that did not convert become missing. Returns the converted column
// names in table order.
func (c *Cleaner) CoerceNumericColumns(t *model.Table) []string {
	var converted []string
	for _, col := range t.Columns() {
		if !col.IsText() {
			continue
		}
		nonMissing := 0
		numeric := 0
		for _, cell := range col.Cells {
			if cell.IsMissing() {
				continue
			}
			nonMissing++
			if _, ok := model.ParseNumber(cell.String()); ok {
				numeric++
			}
		}
		if nonMissing == 0 {
			continue
		}
		if float64(numeric) < float64(nonMissing)*numericCoercionRatio {
			continue
		}

		cells := make([]model.Cell, len(col.Cells))
		for i, cell := range col.Cells {
			if cell.IsMissing() {
				cells[i] = model.Missing()
				continue
			}
			if f, ok := model.ParseNumber(cell.String()); ok {
				cells[i] = model.Number(f)
			} else {
				cells[i] = model.Missing()
			}
		}
		col.Cells = cells
		converted = append(converted, col.Name)
		c.logger.Debug("Coerced column to numeric",
			zap.String("column", col.Name),
			zap.Int("values", nonMissing),
			zap.Int("converted", numeric))
	}
	return converted
}
