// pkg/instruct/prompt.go
package instruct

import (
	"fmt"
	"strings"

	"github.com/tablewash/tablewash/pkg/model"
)

// buildPrompt constrains the completion service to the closed operation
// set. The service sees the table's shape and column names, never its
// cell values.
func buildPrompt(t *model.Table, instruction string) string {
	names := make([]string, t.Cols())
	for i, col := range t.Columns() {
		names[i] = col.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You translate data-cleaning instructions into JSON transform steps.\n\n")
	fmt.Fprintf(&b, "Table: %d rows, columns: [%s]\n", t.Rows(), strings.Join(names, ", "))
	fmt.Fprintf(&b, "User wants: %q\n\n", instruction)
	b.WriteString(`Respond with ONLY a JSON array of steps. Allowed steps:
  {"op":"filter_rows","column":NAME,"cmp":"eq|ne|lt|le|gt|ge|contains","value":STRING}  (keeps matching rows)
  {"op":"replace_regex","column":NAME,"pattern":RE2,"replacement":STRING}
  {"op":"drop_duplicates"}
  {"op":"coerce","column":NAME,"type":"numeric|date|text"}

Examples:
"remove duplicates" -> [{"op":"drop_duplicates"}]
"remove rows where age > 100" -> [{"op":"filter_rows","column":"age","cmp":"le","value":"100"}]
"strip dashes from phone" -> [{"op":"replace_regex","column":"phone","pattern":"-","replacement":""}]
"standardize dates" -> [{"op":"coerce","column":"date","type":"date"}]

No explanations, no code, JSON array only:`)
	return b.String()
}
