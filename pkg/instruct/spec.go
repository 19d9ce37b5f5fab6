// pkg/instruct/spec.go
package instruct

import (
	"fmt"
	"regexp"

	"github.com/tablewash/tablewash/pkg/model"
)

// Step is one transformation from the closed operation set. The
// completion service produces these as JSON; nothing outside this set
// ever executes.
type Step struct {
	Op          string `json:"op"`                    // filter_rows | replace_regex | drop_duplicates | coerce
	Column      string `json:"column,omitempty"`      // target column for filter_rows, replace_regex, coerce
	Cmp         string `json:"cmp,omitempty"`         // filter_rows: eq, ne, lt, le, gt, ge, contains
	Value       string `json:"value,omitempty"`       // filter_rows comparison operand
	Pattern     string `json:"pattern,omitempty"`     // replace_regex: RE2 pattern
	Replacement string `json:"replacement,omitempty"` // replace_regex: replacement text
	Type        string `json:"type,omitempty"`        // coerce: numeric, date, text
}

const (
	opFilterRows     = "filter_rows"
	opReplaceRegex   = "replace_regex"
	opDropDuplicates = "drop_duplicates"
	opCoerce         = "coerce"
)

var validCmps = map[string]bool{
	"eq": true, "ne": true, "lt": true, "le": true, "gt": true, "ge": true, "contains": true,
}

var validCoerceTypes = map[string]bool{
	"numeric": true, "date": true, "text": true,
}

// validate checks a step against the table before anything runs. A spec
// with any invalid step is rejected whole; partial application would
// leave the table in a state the instruction never described.
func (s Step) validate(t *model.Table) error {
	switch s.Op {
	case opDropDuplicates:
		return nil
	case opFilterRows:
		if t.Column(s.Column) == nil {
			return fmt.Errorf("filter_rows references unknown column %q", s.Column)
		}
		if !validCmps[s.Cmp] {
			return fmt.Errorf("filter_rows has unknown comparison %q", s.Cmp)
		}
		return nil
	case opReplaceRegex:
		if t.Column(s.Column) == nil {
			return fmt.Errorf("replace_regex references unknown column %q", s.Column)
		}
		if _, err := regexp.Compile(s.Pattern); err != nil {
			return fmt.Errorf("replace_regex pattern invalid: %w", err)
		}
		return nil
	case opCoerce:
		if t.Column(s.Column) == nil {
			return fmt.Errorf("coerce references unknown column %q", s.Column)
		}
		if !validCoerceTypes[s.Type] {
			return fmt.Errorf("coerce has unknown type %q", s.Type)
		}
		return nil
	default:
		return fmt.Errorf("unknown operation %q", s.Op)
	}
}
