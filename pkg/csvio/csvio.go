// pkg/csvio/csvio.go
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tablewash/tablewash/pkg/model"
)

// Read parses CSV input into a Table. The first record is the header;
// duplicate header names are suffixed to keep column names unique.
// Empty fields become missing cells, everything else starts as text.
func Read(r io.Reader) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("input has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) == 0 {
		return nil, errors.New("input has no columns")
	}

	names := uniqueNames(header)
	columns := make([][]model.Cell, len(names))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		for i := range names {
			var cell model.Cell
			if i >= len(record) || strings.TrimSpace(record[i]) == "" {
				cell = model.Missing()
			} else {
				cell = model.Text(record[i])
			}
			columns[i] = append(columns[i], cell)
		}
	}

	table := &model.Table{}
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0])
	}
	for i, name := range names {
		cells := columns[i]
		if cells == nil {
			cells = make([]model.Cell, rows)
			for j := range cells {
				cells[j] = model.Missing()
			}
		}
		if err := table.AddColumn(&model.Column{Name: name, Cells: cells}); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Write emits the table as CSV: header row followed by the canonical
// string cast of every cell. Missing cells write as empty fields.
func Write(w io.Writer, t *model.Table) error {
	if t == nil {
		return errors.New("table cannot be nil")
	}
	writer := csv.NewWriter(w)

	header := make([]string, t.Cols())
	for i, col := range t.Columns() {
		header[i] = col.Name
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, t.Cols())
	for row := 0; row < t.Rows(); row++ {
		for i := 0; i < t.Cols(); i++ {
			record[i] = t.Cell(row, i).String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// uniqueNames trims header names and disambiguates duplicates by
// appending a numeric suffix, so table invariants hold for any input.
func uniqueNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		base := name
		for n := 2; seen[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}
