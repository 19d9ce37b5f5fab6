// pkg/classify/classifier.go
package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/llm"
	"github.com/tablewash/tablewash/pkg/model"
)

// Number of example values sent per column.
const sampleSize = 3

// Classifier assigns a semantic label to each text column by showing an
// external completion service a few sample values. It is a best-effort
// heuristic: any uncertainty degrades to LabelText, never to a failure.
type Classifier struct {
	client llm.Client
	logger *zap.Logger
}

// New creates a Classifier.
func New(client llm.Client, logger *zap.Logger) (*Classifier, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Classifier{client: client, logger: logger}, nil
}

// Classify labels every text column that has at least one non-missing
// value. Columns the service cannot label resolve to LabelText. The
// returned map is always usable; the error, when non-nil, is the first
// service failure encountered and is informational for the report.
func (c *Classifier) Classify(ctx context.Context, t *model.Table) (map[string]model.ColumnLabel, error) {
	labels := make(map[string]model.ColumnLabel)
	var firstErr error

	for _, col := range t.Columns() {
		if !col.IsText() {
			continue
		}
		sample := col.NonMissing(sampleSize)
		if len(sample) == 0 {
			continue
		}

		completion, err := c.client.Complete(ctx, buildPrompt(col.Name, sample))
		if err != nil {
			c.logger.Warn("Column classification failed, defaulting to text",
				zap.String("column", col.Name),
				zap.Error(err))
			labels[col.Name] = model.LabelText
			if firstErr == nil {
				firstErr = fmt.Errorf("classification of column %q failed: %w", col.Name, err)
			}
			continue
		}

		label := model.ParseColumnLabel(llm.StripCodeFence(completion))
		labels[col.Name] = label
		c.logger.Debug("Classified column",
			zap.String("column", col.Name),
			zap.String("label", string(label)))
	}

	return labels, firstErr
}

// buildPrompt asks for exactly one word from the closed label set.
func buildPrompt(column string, sample []model.Cell) string {
	values := make([]string, len(sample))
	for i, cell := range sample {
		values[i] = fmt.Sprintf("%q", cell.String())
	}
	return fmt.Sprintf(
		"Column '%s' has values: [%s]. What type? Answer ONE word: email, phone, date, name, address, currency, url, or text",
		column, strings.Join(values, ", "))
}
