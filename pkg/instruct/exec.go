// pkg/instruct/exec.go
package instruct

import (
	"regexp"
	"strings"

	"github.com/tablewash/tablewash/pkg/model"
)

// execute runs one validated step against the table in place.
func execute(t *model.Table, step Step) {
	switch step.Op {
	case opDropDuplicates:
		t.DedupRows()
	case opFilterRows:
		filterRows(t, step)
	case opReplaceRegex:
		replaceRegex(t, step)
	case opCoerce:
		coerce(t, step)
	}
}

// filterRows keeps the rows whose cell in the target column satisfies
// the comparison. Rows with a missing cell in that column are kept: the
// engine errs toward under-mutation when the predicate cannot be
// evaluated.
func filterRows(t *model.Table, step Step) {
	col := t.Column(step.Column)
	keep := make([]bool, t.Rows())
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			keep[i] = true
			continue
		}
		keep[i] = compare(cell, step.Cmp, step.Value)
	}
	t.FilterRows(keep)
}

// compare evaluates cell <cmp> operand. When both sides parse as
// numbers the comparison is numeric, otherwise lexicographic.
func compare(cell model.Cell, cmp, operand string) bool {
	if cmp == "contains" {
		return strings.Contains(cell.String(), operand)
	}

	cellNum, cellOK := cellNumber(cell)
	operandNum, operandOK := model.ParseNumber(operand)
	if cellOK && operandOK {
		return compareNumbers(cellNum, cmp, operandNum)
	}
	return compareStrings(cell.String(), cmp, operand)
}

func cellNumber(cell model.Cell) (float64, bool) {
	if f, ok := cell.NumberValue(); ok {
		return f, true
	}
	return model.ParseNumber(cell.String())
}

func compareNumbers(a float64, cmp string, b float64) bool {
	switch cmp {
	case "eq":
		return a == b
	case "ne":
		return a != b
	case "lt":
		return a < b
	case "le":
		return a <= b
	case "gt":
		return a > b
	case "ge":
		return a >= b
	}
	return false
}

func compareStrings(a, cmp, b string) bool {
	switch cmp {
	case "eq":
		return a == b
	case "ne":
		return a != b
	case "lt":
		return a < b
	case "le":
		return a <= b
	case "gt":
		return a > b
	case "ge":
		return a >= b
	}
	return false
}

// replaceRegex rewrites text cells of the target column. The pattern
// was compiled during validation, so Compile cannot fail here.
func replaceRegex(t *model.Table, step Step) {
	re := regexp.MustCompile(step.Pattern)
	col := t.Column(step.Column)
	for i, cell := range col.Cells {
		if cell.Kind() != model.KindText {
			continue
		}
		col.Cells[i] = model.Text(re.ReplaceAllString(cell.TextValue(), step.Replacement))
	}
}

// coerce retypes a column. Values that do not convert become missing
// for numeric and date targets; text coercion always succeeds via the
// canonical string cast.
func coerce(t *model.Table, step Step) {
	col := t.Column(step.Column)
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		switch step.Type {
		case "numeric":
			if f, ok := model.ParseNumber(cell.String()); ok {
				col.Cells[i] = model.Number(f)
			} else {
				col.Cells[i] = model.Missing()
			}
		case "date":
			if ts, ok := model.ParseTime(cell.String()); ok {
				col.Cells[i] = model.Timestamp(ts)
			} else {
				col.Cells[i] = model.Missing()
			}
		case "text":
			col.Cells[i] = model.Text(cell.String())
		}
	}
}
