// pkg/batch/job.go
package batch

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tablewash/tablewash/pkg/model"
)

// Job is one file to clean.
type Job struct {
	ID        string    // Unique job identifier
	Path      string    // Input CSV path
	CreatedAt time.Time // Job creation timestamp
}

// NewJob creates a job for the given input file.
func NewJob(path string) Job {
	return Job{
		ID:        uuid.New().String(),
		Path:      path,
		CreatedAt: time.Now(),
	}
}

// Result is the outcome of one cleaning job.
type Result struct {
	JobID      string
	Path       string
	OutputPath string
	Report     *model.CleaningReport
	Err        error
	Duration   time.Duration
	WorkerID   int
}

// Success reports whether the job completed without error.
func (r Result) Success() bool {
	return r.Err == nil
}

// CleanedPath derives the output path for an input file:
// data/orders.csv -> data/orders.cleaned.csv.
func CleanedPath(path string) string {
	if strings.HasSuffix(path, ".csv") {
		return strings.TrimSuffix(path, ".csv") + ".cleaned.csv"
	}
	return path + ".cleaned.csv"
}
