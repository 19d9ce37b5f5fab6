// pkg/model/report.go
package model

// CleaningReport accumulates everything one pipeline run did to a table.
// It is built incrementally during the run and must be treated as
// read-only once the pipeline returns it.
type CleaningReport struct {
	RunID               string                 `json:"run_id"`
	OriginalRows        int                    `json:"original_rows"`
	OriginalColumns     int                    `json:"original_columns"`
	OperationsPerformed []string               `json:"operations_performed"`
	QualityBefore       float64                `json:"data_quality_score_before"`
	IssuesFound         []string               `json:"issues_found"`
	ColumnAnalysis      map[string]ColumnLabel `json:"column_analysis,omitempty"`
	LLMError            string                 `json:"llm_error,omitempty"`
	FinalRows           int                    `json:"final_rows"`
	FinalColumns        int                    `json:"final_columns"`
	QualityAfter        float64                `json:"data_quality_score_after"`
	RowsRemoved         int                    `json:"rows_removed"`
}

// AddOperation appends a human-readable operation description in
// execution order.
func (r *CleaningReport) AddOperation(description string) {
	r.OperationsPerformed = append(r.OperationsPerformed, description)
}
