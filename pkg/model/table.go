// pkg/model/table.go
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CellKind identifies the type of value a cell holds.
type CellKind int

const (
	KindMissing CellKind = iota
	KindText
	KindNumber
	KindTime
)

// String returns a short name for the kind, used in logs and diagnostics.
func (k CellKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Cell is a single tabular value. A missing cell is distinct from an
// empty string: Missing().IsMissing() is true, Text("").IsMissing() is false.
type Cell struct {
	kind CellKind
	text string
	num  float64
	ts   time.Time
}

// Missing returns a cell explicitly marked absent.
func Missing() Cell {
	return Cell{kind: KindMissing}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

// Timestamp returns a temporal cell.
func Timestamp(t time.Time) Cell {
	return Cell{kind: KindTime, ts: t}
}

// Kind returns the cell's kind.
func (c Cell) Kind() CellKind {
	return c.kind
}

// IsMissing reports whether the cell is the explicit missing marker.
func (c Cell) IsMissing() bool {
	return c.kind == KindMissing
}

// TextValue returns the text payload. Only meaningful for KindText cells.
func (c Cell) TextValue() string {
	return c.text
}

// NumberValue returns the numeric payload and whether the cell is numeric.
func (c Cell) NumberValue() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// TimeValue returns the temporal payload and whether the cell is temporal.
func (c Cell) TimeValue() (time.Time, bool) {
	return c.ts, c.kind == KindTime
}

// String returns the canonical string cast of the cell. Missing cells
// cast to the empty string; callers that need to distinguish missing
// from empty text must check IsMissing first.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindTime:
		if c.ts.Hour() == 0 && c.ts.Minute() == 0 && c.ts.Second() == 0 {
			return c.ts.Format("2006-01-02")
		}
		return c.ts.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// key returns a representation that keeps missing distinct from empty
// text when building row identity tuples.
func (c Cell) key() string {
	if c.kind == KindMissing {
		return "\x00"
	}
	return fmt.Sprintf("%d\x1f%s", c.kind, c.String())
}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// NewColumn creates a column of text cells from string values.
func NewColumn(name string, values ...string) *Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return &Column{Name: name, Cells: cells}
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	return len(c.Cells)
}

// Kind returns the kind of the first non-missing cell, or KindText for
// a column with no values. Columns are homogeneous after coercion, so
// this is the declared kind of the column.
func (c *Column) Kind() CellKind {
	for _, cell := range c.Cells {
		if !cell.IsMissing() {
			return cell.Kind()
		}
	}
	return KindText
}

// IsText reports whether the column's declared kind is text.
func (c *Column) IsText() bool {
	return c.Kind() == KindText
}

// NonMissing returns the column's non-missing cells in row order,
// capped at limit (0 = no cap).
func (c *Column) NonMissing(limit int) []Cell {
	out := make([]Cell, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			continue
		}
		out = append(out, cell)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			n++
		}
	}
	return n
}

// Table is an ordered sequence of named columns of equal length.
type Table struct {
	columns []*Column
	index   map[string]int
}

// NewTable creates a table from columns, validating that all columns
// share the same length and that names are unique.
func NewTable(columns ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, col := range columns {
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddColumn appends a column, enforcing the table invariants.
func (t *Table) AddColumn(col *Column) error {
	if col == nil {
		return errors.New("column cannot be nil")
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if col.Name == "" {
		return errors.New("column name cannot be empty")
	}
	if _, dup := t.index[col.Name]; dup {
		return fmt.Errorf("duplicate column name %q", col.Name)
	}
	if len(t.columns) > 0 && col.Len() != t.Rows() {
		return fmt.Errorf("column %q has %d rows, table has %d", col.Name, col.Len(), t.Rows())
	}
	t.index[col.Name] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// Rows returns the row count.
func (t *Table) Rows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// Cols returns the column count.
func (t *Table) Cols() int {
	return len(t.columns)
}

// Columns returns the columns in declaration order. Callers must not
// add or remove cells; use table-level operations for that.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Column returns the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.columns[i]
}

// ReplaceColumn swaps the cells of the named column. The replacement
// must preserve the row count.
func (t *Table) ReplaceColumn(name string, cells []Cell) error {
	col := t.Column(name)
	if col == nil {
		return fmt.Errorf("no column named %q", name)
	}
	if len(cells) != t.Rows() {
		return fmt.Errorf("replacement for %q has %d rows, table has %d", name, len(cells), t.Rows())
	}
	col.Cells = cells
	return nil
}

// Cell returns the cell at (row, col index).
func (t *Table) Cell(row, col int) Cell {
	return t.columns[col].Cells[row]
}

// RowIsEmpty reports whether every cell in the row is missing.
func (t *Table) RowIsEmpty(row int) bool {
	for _, col := range t.columns {
		if !col.Cells[row].IsMissing() {
			return false
		}
	}
	return len(t.columns) > 0
}

// RowKey returns an identity string for the row's full value tuple.
// Two rows with equal keys are exact duplicates. Missing cells hash
// differently from empty text cells.
func (t *Table) RowKey(row int) string {
	var b strings.Builder
	for _, col := range t.columns {
		b.WriteString(col.Cells[row].key())
		b.WriteByte('\x1e')
	}
	return b.String()
}

// FilterRows keeps only the rows where keep[i] is true, mutating the
// table in place. Returns the number of rows removed.
func (t *Table) FilterRows(keep []bool) int {
	if len(keep) != t.Rows() {
		return 0
	}
	removed := 0
	for _, col := range t.columns {
		kept := col.Cells[:0]
		for i, cell := range col.Cells {
			if keep[i] {
				kept = append(kept, cell)
			}
		}
		col.Cells = kept
	}
	if len(t.columns) > 0 {
		removed = len(keep) - t.columns[0].Len()
	}
	return removed
}

// DedupRows removes exact-duplicate rows, keeping the first occurrence.
// Returns the number of rows removed.
func (t *Table) DedupRows() int {
	rows := t.Rows()
	if rows == 0 {
		return 0
	}
	seen := make(map[string]bool, rows)
	keep := make([]bool, rows)
	for i := 0; i < rows; i++ {
		key := t.RowKey(i)
		if !seen[key] {
			seen[key] = true
			keep[i] = true
		}
	}
	return t.FilterRows(keep)
}
