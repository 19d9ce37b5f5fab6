// pkg/instruct/interpreter.go
package instruct

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/llm"
	"github.com/tablewash/tablewash/pkg/model"
)

// ErrUnsafeCompletion is returned when the completion trips the token
// deny list. The table is left untouched.
var ErrUnsafeCompletion = errors.New("completion rejected by safety filter")

// denyTokens is a substring filter over the raw completion. It is
// defense in depth on top of the constrained operation set, not a
// sandbox: the real safety boundary is that only Step operations are
// ever executed.
var denyTokens = []string{
	"import", "exec", "eval", "open(", "os.", "subprocess", "__", "syscall",
}

// Interpreter turns a free-form instruction into a constrained
// transformation and applies it. The instruction is untrusted input and
// the completion doubly so; every failure mode degrades to "table
// unchanged, no crash".
type Interpreter struct {
	client llm.Client
	logger *zap.Logger
}

// New creates an Interpreter.
func New(client llm.Client, logger *zap.Logger) (*Interpreter, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Interpreter{client: client, logger: logger}, nil
}

// Apply translates the instruction into transform steps and executes
// them against the table in place. It returns whether the table was
// transformed; a non-nil error means the enhancement failed and the
// table is unmodified.
func (i *Interpreter) Apply(ctx context.Context, t *model.Table, instruction string) (bool, error) {
	if strings.TrimSpace(instruction) == "" {
		return false, nil
	}

	completion, err := i.client.Complete(ctx, buildPrompt(t, instruction))
	if err != nil {
		return false, fmt.Errorf("instruction translation failed: %w", err)
	}

	if token := findDeniedToken(completion); token != "" {
		i.logger.Warn("Rejected instruction completion",
			zap.String("token", token))
		return false, ErrUnsafeCompletion
	}

	steps, err := parseSteps(completion)
	if err != nil {
		return false, err
	}
	for _, step := range steps {
		if err := step.validate(t); err != nil {
			return false, fmt.Errorf("invalid transform: %w", err)
		}
	}

	for _, step := range steps {
		execute(t, step)
	}

	i.logger.Info("Applied instruction transforms",
		zap.Int("steps", len(steps)),
		zap.String("instruction", truncate(instruction, 120)))
	return len(steps) > 0, nil
}

// findDeniedToken returns the first deny-list token present in the
// completion, or "".
func findDeniedToken(completion string) string {
	lowered := strings.ToLower(completion)
	for _, token := range denyTokens {
		if strings.Contains(lowered, token) {
			return token
		}
	}
	return ""
}

// parseSteps decodes the completion into transform steps, tolerating
// code fences and surrounding prose.
func parseSteps(completion string) ([]Step, error) {
	cleaned := llm.StripCodeFence(completion)
	if !strings.HasPrefix(strings.TrimSpace(cleaned), "[") {
		cleaned = llm.ExtractJSONArray(cleaned)
	}

	var steps []Step
	if err := json.Unmarshal([]byte(cleaned), &steps); err != nil {
		return nil, fmt.Errorf("failed to parse transform steps: %w", err)
	}
	if len(steps) == 0 {
		return nil, errors.New("completion contained no transform steps")
	}
	return steps, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
