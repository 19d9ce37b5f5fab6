package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/cleaner"
	"github.com/tablewash/tablewash/pkg/pipeline"
)

func newTestRunner(t *testing.T, workers int) *Runner {
	t.Helper()
	logger := zap.NewNop()
	c, err := cleaner.New(logger)
	if err != nil {
		t.Fatalf("cleaner.New: %v", err)
	}
	p, err := pipeline.New(c, nil, nil, logger)
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	r, err := NewRunner(p, pipeline.Options{}, workers, logger)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCleansEveryFile(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.csv", "name\nalice\nalice\nbob\n"),
		writeFile(t, dir, "b.csv", "name\ncarol\n"),
		writeFile(t, dir, "c.csv", "name\ndan\ndan\ndan\n"),
	}

	r := newTestRunner(t, 2)
	summary := r.Run(context.Background(), paths)

	if len(summary.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(summary.Results))
	}
	if summary.Succeeded != 3 || summary.Failed != 0 {
		t.Fatalf("succeeded = %d failed = %d, want 3 and 0", summary.Succeeded, summary.Failed)
	}
	// a.csv drops one duplicate, c.csv drops two.
	if summary.RowsRemoved != 3 {
		t.Fatalf("rows removed = %d, want 3", summary.RowsRemoved)
	}

	for _, path := range paths {
		out := CleanedPath(path)
		if _, err := os.Stat(out); err != nil {
			t.Errorf("missing output %s: %v", out, err)
		}
	}

	data, err := os.ReadFile(CleanedPath(paths[0]))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "name\nalice\nbob\n" {
		t.Fatalf("cleaned output = %q", string(data))
	}
}

func TestRunCountsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", "name\nalice\n")
	bad := filepath.Join(dir, "does-not-exist.csv")

	r := newTestRunner(t, 1)
	summary := r.Run(context.Background(), []string{good, bad})

	if summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("succeeded = %d failed = %d, want 1 and 1", summary.Succeeded, summary.Failed)
	}
	for _, result := range summary.Results {
		if result.Path == bad && result.Success() {
			t.Fatal("missing input must produce a failed result")
		}
	}
}

func TestRunEmptyInput(t *testing.T) {
	r := newTestRunner(t, 4)
	summary := r.Run(context.Background(), nil)
	if len(summary.Results) != 0 || summary.Succeeded != 0 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want empty", summary)
	}
}

func TestRunCancelledContext(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.csv", "b.csv", "c.csv", "d.csv"} {
		paths = append(paths, writeFile(t, dir, name, "name\nalice\n"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t, 2)
	summary := r.Run(ctx, paths)
	// Workers stop between jobs; whatever did not run is simply absent.
	if len(summary.Results) > len(paths) {
		t.Fatalf("results = %d, more than jobs submitted", len(summary.Results))
	}
}

func TestNewRunnerValidation(t *testing.T) {
	logger := zap.NewNop()
	if _, err := NewRunner(nil, pipeline.Options{}, 1, logger); err == nil {
		t.Fatal("expected error for nil pipeline")
	}
	c, err := cleaner.New(logger)
	if err != nil {
		t.Fatalf("cleaner.New: %v", err)
	}
	p, err := pipeline.New(c, nil, nil, logger)
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	if _, err := NewRunner(p, pipeline.Options{}, 1, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestCleanedPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"data/orders.csv", "data/orders.cleaned.csv"},
		{"plain", "plain.cleaned.csv"},
	}
	for _, tt := range tests {
		if got := CleanedPath(tt.in); got != tt.want {
			t.Errorf("CleanedPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
