// pkg/cleaner/column.go
package cleaner

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/model"
)

// columnCleaner rewrites a column's cells in place.
type columnCleaner struct {
	apply       func(col *model.Column)
	description string // format with one %s verb for the column name
}

// Static dispatch from classification label to cleaner. Labels outside
// this map (text, name, address, url) are no-ops.
var columnCleaners = map[model.ColumnLabel]columnCleaner{
	model.LabelEmail:    {apply: cleanEmails, description: "Cleaned emails in '%s'"},
	model.LabelPhone:    {apply: cleanPhones, description: "Standardized phones in '%s'"},
	model.LabelDate:     {apply: cleanDates, description: "Standardized dates in '%s'"},
	model.LabelCurrency: {apply: cleanCurrency, description: "Cleaned currency in '%s'"},
}

// CleanColumn applies the cleaner registered for label to the named
// column. It returns the operation description and whether anything was
// applied; unknown labels and missing columns are no-ops.
func (c *Cleaner) CleanColumn(t *model.Table, name string, label model.ColumnLabel) (string, bool) {
	cleanerFn, ok := columnCleaners[label]
	if !ok {
		return "", false
	}
	col := t.Column(name)
	if col == nil {
		return "", false
	}
	cleanerFn.apply(col)
	c.logger.Debug("Applied column cleaner",
		zap.String("column", name),
		zap.String("label", string(label)))
	return fmt.Sprintf(cleanerFn.description, name), true
}

// cleanEmails lowercases and trims surrounding whitespace.
func cleanEmails(col *model.Column) {
	for i, cell := range col.Cells {
		if cell.Kind() != model.KindText {
			continue
		}
		col.Cells[i] = model.Text(strings.ToLower(strings.TrimSpace(cell.TextValue())))
	}
}

// cleanPhones strips non-digit characters and formats ten-digit numbers
// as (DDD) DDD-DDDD. Other digit counts keep the stripped digit string;
// missing values pass through unchanged.
func cleanPhones(col *model.Column) {
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		digits := stripNonDigits(cell.String())
		if len(digits) == 10 {
			col.Cells[i] = model.Text(fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]))
		} else {
			col.Cells[i] = model.Text(digits)
		}
	}
}

// cleanDates parses values into temporal cells. Values that do not
// parse become missing rather than failing the run.
func cleanDates(col *model.Column) {
	for i, cell := range col.Cells {
		if cell.IsMissing() || cell.Kind() == model.KindTime {
			continue
		}
		if ts, ok := model.ParseTime(cell.String()); ok {
			col.Cells[i] = model.Timestamp(ts)
		} else {
			col.Cells[i] = model.Missing()
		}
	}
}

// currencySymbols are stripped before parsing a currency value.
var currencySymbols = []string{"$", ",", "€", "£", "¥"}

// cleanCurrency strips currency symbols and parses the remainder as a
// decimal number. On parse failure the original value stays unchanged.
func cleanCurrency(col *model.Column) {
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		stripped := cell.String()
		for _, sym := range currencySymbols {
			stripped = strings.ReplaceAll(stripped, sym, "")
		}
		if f, ok := model.ParseNumber(stripped); ok {
			col.Cells[i] = model.Number(f)
		}
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
