package cleaner

import (
	"testing"

	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/model"
)

func newTestCleaner(t *testing.T) *Cleaner {
	t.Helper()
	c, err := New(zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func mustTable(t *testing.T, columns ...*model.Column) *model.Table {
	t.Helper()
	table, err := model.NewTable(columns...)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestNewRequiresLogger(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestDropEmptyRows(t *testing.T) {
	table := mustTable(t,
		&model.Column{Name: "a", Cells: []model.Cell{
			model.Text("x"), model.Missing(), model.Text("y"),
		}},
		&model.Column{Name: "b", Cells: []model.Cell{
			model.Missing(), model.Missing(), model.Text("z"),
		}},
	)

	c := newTestCleaner(t)
	if removed := c.DropEmptyRows(table); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if table.Rows() != 2 {
		t.Fatalf("rows = %d, want 2", table.Rows())
	}
	// Row with one value and one missing cell must survive.
	if got := table.Column("a").Cells[0].String(); got != "x" {
		t.Fatalf("first row = %q, want x", got)
	}
}

func TestDropEmptyRowsTreatsEmptyStringAsValue(t *testing.T) {
	table := mustTable(t, &model.Column{Name: "a", Cells: []model.Cell{model.Text("")}})
	c := newTestCleaner(t)
	if removed := c.DropEmptyRows(table); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
}

func TestDropDuplicateRows(t *testing.T) {
	table := mustTable(t,
		model.NewColumn("name", "alice", "alice", "bob"),
		model.NewColumn("city", "rome", "rome", "oslo"),
	)

	c := newTestCleaner(t)
	if removed := c.DropDuplicateRows(table); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if table.Rows() != 2 {
		t.Fatalf("rows = %d, want 2", table.Rows())
	}

	// Already deduplicated, so a second pass is a no-op.
	if removed := c.DropDuplicateRows(table); removed != 0 {
		t.Fatalf("second pass removed = %d, want 0", removed)
	}
}

func TestCoerceNumericColumns(t *testing.T) {
	table := mustTable(t,
		model.NewColumn("amount", "10", "20.5", "30", "N/A"),
		model.NewColumn("note", "ten", "twenty", "thirty", "forty"),
	)

	c := newTestCleaner(t)
	converted := c.CoerceNumericColumns(table)
	if len(converted) != 1 || converted[0] != "amount" {
		t.Fatalf("converted = %v, want [amount]", converted)
	}

	amount := table.Column("amount")
	if amount.Cells[0].Kind() != model.KindNumber {
		t.Fatalf("cell kind = %v, want number", amount.Cells[0].Kind())
	}
	if f, ok := amount.Cells[1].NumberValue(); !ok || f != 20.5 {
		t.Fatalf("value = %v, %v, want 20.5", f, ok)
	}
	if !amount.Cells[3].IsMissing() {
		t.Fatal("unparseable value should become missing")
	}
	if table.Column("note").Cells[0].Kind() != model.KindText {
		t.Fatal("non-numeric column must stay text")
	}

	// Already numeric, so a second pass converts nothing.
	if converted := c.CoerceNumericColumns(table); len(converted) != 0 {
		t.Fatalf("second pass converted %v, want none", converted)
	}
}

func TestCoerceNumericColumnsBelowThreshold(t *testing.T) {
	// 2 of 4 values numeric is under the 70% cutoff.
	table := mustTable(t, model.NewColumn("mixed", "1", "2", "a", "b"))
	c := newTestCleaner(t)
	if converted := c.CoerceNumericColumns(table); len(converted) != 0 {
		t.Fatalf("converted = %v, want none", converted)
	}
	if table.Column("mixed").Cells[0].Kind() != model.KindText {
		t.Fatal("column below threshold must not change")
	}
}

func TestCoerceNumericColumnsSkipsAllMissing(t *testing.T) {
	table := mustTable(t, &model.Column{Name: "v", Cells: []model.Cell{
		model.Missing(), model.Missing(),
	}})
	c := newTestCleaner(t)
	if converted := c.CoerceNumericColumns(table); len(converted) != 0 {
		t.Fatalf("converted = %v, want none", converted)
	}
}
