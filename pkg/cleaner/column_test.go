package cleaner

import (
	"testing"

	"github.com/tablewash/tablewash/pkg/model"
)

func TestCleanColumnEmail(t *testing.T) {
	table := mustTable(t, model.NewColumn("contact", "  Alice@Example.COM ", "bob@test.org"))
	c := newTestCleaner(t)

	desc, applied := c.CleanColumn(table, "contact", model.LabelEmail)
	if !applied {
		t.Fatal("expected email cleaner to apply")
	}
	if desc != "Cleaned emails in 'contact'" {
		t.Fatalf("description = %q", desc)
	}
	if got := table.Column("contact").Cells[0].String(); got != "alice@example.com" {
		t.Fatalf("cell = %q, want alice@example.com", got)
	}
}

func TestCleanColumnPhone(t *testing.T) {
	table := mustTable(t, &model.Column{Name: "phone", Cells: []model.Cell{
		model.Text("555-123-4567"),
		model.Text("(555) 987 6543"),
		model.Text("12345"),
		model.Missing(),
	}})
	c := newTestCleaner(t)

	if _, applied := c.CleanColumn(table, "phone", model.LabelPhone); !applied {
		t.Fatal("expected phone cleaner to apply")
	}
	col := table.Column("phone")
	if got := col.Cells[0].String(); got != "(555) 123-4567" {
		t.Fatalf("cell = %q, want (555) 123-4567", got)
	}
	if got := col.Cells[1].String(); got != "(555) 987-6543" {
		t.Fatalf("cell = %q, want (555) 987-6543", got)
	}
	// Not ten digits: keep the stripped digit string.
	if got := col.Cells[2].String(); got != "12345" {
		t.Fatalf("cell = %q, want 12345", got)
	}
	if !col.Cells[3].IsMissing() {
		t.Fatal("missing phone must stay missing")
	}
}

func TestCleanColumnDate(t *testing.T) {
	table := mustTable(t, model.NewColumn("when", "01/15/2024", "2024-02-01", "not a date"))
	c := newTestCleaner(t)

	if _, applied := c.CleanColumn(table, "when", model.LabelDate); !applied {
		t.Fatal("expected date cleaner to apply")
	}
	col := table.Column("when")
	if got := col.Cells[0].String(); got != "2024-01-15" {
		t.Fatalf("cell = %q, want 2024-01-15", got)
	}
	if col.Cells[1].Kind() != model.KindTime {
		t.Fatal("ISO date should parse to a temporal cell")
	}
	if !col.Cells[2].IsMissing() {
		t.Fatal("unparseable date should become missing")
	}
}

func TestCleanColumnCurrency(t *testing.T) {
	table := mustTable(t, model.NewColumn("price", "$1,234.50", "€99", "N/A"))
	c := newTestCleaner(t)

	if _, applied := c.CleanColumn(table, "price", model.LabelCurrency); !applied {
		t.Fatal("expected currency cleaner to apply")
	}
	col := table.Column("price")
	if f, ok := col.Cells[0].NumberValue(); !ok || f != 1234.5 {
		t.Fatalf("cell = %v, %v, want 1234.5", f, ok)
	}
	if f, ok := col.Cells[1].NumberValue(); !ok || f != 99 {
		t.Fatalf("cell = %v, %v, want 99", f, ok)
	}
	// Unparseable currency keeps its original value.
	if got := col.Cells[2].String(); got != "N/A" {
		t.Fatalf("cell = %q, want N/A", got)
	}
}

func TestCleanColumnNoOpLabels(t *testing.T) {
	table := mustTable(t, model.NewColumn("name", "Alice"))
	c := newTestCleaner(t)

	for _, label := range []model.ColumnLabel{model.LabelText, model.LabelName, model.LabelAddress, model.LabelURL} {
		if desc, applied := c.CleanColumn(table, "name", label); applied || desc != "" {
			t.Fatalf("label %q: applied = %v, desc = %q, want no-op", label, applied, desc)
		}
	}
	if got := table.Column("name").Cells[0].String(); got != "Alice" {
		t.Fatalf("cell = %q, table must not change", got)
	}
}

func TestCleanColumnUnknownColumn(t *testing.T) {
	table := mustTable(t, model.NewColumn("name", "Alice"))
	c := newTestCleaner(t)
	if _, applied := c.CleanColumn(table, "missing_col", model.LabelEmail); applied {
		t.Fatal("unknown column must be a no-op")
	}
}
