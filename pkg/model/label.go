// pkg/model/label.go
package model

import "strings"

// ColumnLabel is a semantic column type assigned by classification.
// The set is closed; anything outside it normalizes to LabelText.
type ColumnLabel string

const (
	LabelEmail    ColumnLabel = "email"
	LabelPhone    ColumnLabel = "phone"
	LabelDate     ColumnLabel = "date"
	LabelName     ColumnLabel = "name"
	LabelAddress  ColumnLabel = "address"
	LabelCurrency ColumnLabel = "currency"
	LabelURL      ColumnLabel = "url"
	LabelText     ColumnLabel = "text"
)

var knownLabels = map[ColumnLabel]bool{
	LabelEmail:    true,
	LabelPhone:    true,
	LabelDate:     true,
	LabelName:     true,
	LabelAddress:  true,
	LabelCurrency: true,
	LabelURL:      true,
	LabelText:     true,
}

// ParseColumnLabel normalizes a raw label string. Unknown or malformed
// input maps to LabelText rather than failing.
func ParseColumnLabel(s string) ColumnLabel {
	label := ColumnLabel(strings.ToLower(strings.TrimSpace(s)))
	if knownLabels[label] {
		return label
	}
	return LabelText
}
