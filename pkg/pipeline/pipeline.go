// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/classify"
	"github.com/tablewash/tablewash/pkg/cleaner"
	"github.com/tablewash/tablewash/pkg/instruct"
	"github.com/tablewash/tablewash/pkg/model"
	"github.com/tablewash/tablewash/pkg/quality"
)

// Options configure one cleaning run.
type Options struct {
	// Instructions is an optional free-form cleaning instruction.
	Instructions string
	// Restricted disables classification and instruction
	// interpretation; only the deterministic stages run.
	Restricted bool
}

// Pipeline sequences the cleaning stages over one table. Collaborators
// are passed in at construction; the classifier and interpreter may be
// nil, which disables their stages the same way restricted mode does.
type Pipeline struct {
	cleaner     *cleaner.Cleaner
	classifier  *classify.Classifier
	interpreter *instruct.Interpreter
	logger      *zap.Logger
}

// New creates a Pipeline. classifier and interpreter are optional.
func New(
	c *cleaner.Cleaner,
	classifier *classify.Classifier,
	interpreter *instruct.Interpreter,
	logger *zap.Logger,
) (*Pipeline, error) {
	if c == nil {
		return nil, errors.New("cleaner cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Pipeline{
		cleaner:     c,
		classifier:  classifier,
		interpreter: interpreter,
		logger:      logger,
	}, nil
}

// Clean runs the full pipeline over the table, mutating it in place,
// and returns the report. Only input errors are fatal; classification
// and instruction failures are absorbed into the report's llm_error
// field so the deterministic cleaning work is never discarded.
func (p *Pipeline) Clean(ctx context.Context, t *model.Table, opts Options) (*model.CleaningReport, error) {
	if t == nil {
		return nil, errors.New("table cannot be nil")
	}
	if t.Cols() == 0 {
		return nil, errors.New("table has no columns")
	}

	report := &model.CleaningReport{
		RunID:           uuid.New().String(),
		OriginalRows:    t.Rows(),
		OriginalColumns: t.Cols(),
		QualityBefore:   quality.Score(t),
		IssuesFound:     quality.DetectIssues(t),
	}

	p.logger.Info("Starting cleaning run",
		zap.String("runID", report.RunID),
		zap.Int("rows", report.OriginalRows),
		zap.Int("columns", report.OriginalColumns),
		zap.Bool("restricted", opts.Restricted))

	p.basicCleaning(t, report)

	if !opts.Restricted {
		p.enhance(ctx, t, opts, report)
	}

	report.FinalRows = t.Rows()
	report.FinalColumns = t.Cols()
	report.QualityAfter = quality.Score(t)
	report.RowsRemoved = report.OriginalRows - report.FinalRows

	p.logger.Info("Cleaning run complete",
		zap.String("runID", report.RunID),
		zap.Int("rowsRemoved", report.RowsRemoved),
		zap.Float64("scoreBefore", report.QualityBefore),
		zap.Float64("scoreAfter", report.QualityAfter))

	return report, nil
}

// basicCleaning applies the always-on deterministic stages in their
// fixed order.
func (p *Pipeline) basicCleaning(t *model.Table, report *model.CleaningReport) {
	p.cleaner.DropEmptyRows(t)
	report.AddOperation("Removed empty rows")

	p.cleaner.DropDuplicateRows(t)
	report.AddOperation("Removed duplicates")

	p.cleaner.CoerceNumericColumns(t)
	report.AddOperation("Basic type conversion")
}

// enhance runs the optional LLM-backed stages. Failures land in the
// report, never in the return path.
func (p *Pipeline) enhance(ctx context.Context, t *model.Table, opts Options, report *model.CleaningReport) {
	if p.classifier != nil {
		labels, err := p.classifier.Classify(ctx, t)
		if err != nil {
			report.LLMError = err.Error()
		}
		if len(labels) > 0 {
			report.ColumnAnalysis = labels
			p.typeClean(t, labels, report)
		}
	}

	if opts.Instructions == "" || p.interpreter == nil {
		return
	}
	applied, err := p.interpreter.Apply(ctx, t, opts.Instructions)
	if err != nil {
		report.LLMError = err.Error()
		return
	}
	if applied {
		report.AddOperation(fmt.Sprintf("Applied custom instructions: %s", opts.Instructions))
	}
}

// typeClean dispatches per-column cleaners by classification label, in
// table column order for deterministic reports.
func (p *Pipeline) typeClean(t *model.Table, labels map[string]model.ColumnLabel, report *model.CleaningReport) {
	ordered := make([]string, 0, len(labels))
	for _, col := range t.Columns() {
		if _, ok := labels[col.Name]; ok {
			ordered = append(ordered, col.Name)
		}
	}

	for _, name := range ordered {
		if desc, applied := p.cleaner.CleanColumn(t, name, labels[name]); applied {
			report.AddOperation(desc)
		}
	}
}
