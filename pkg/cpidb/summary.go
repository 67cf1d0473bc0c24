package cpidb

import (
	"time"

	"github.com/google/uuid"
)

// StepResult records the outcome of one pipeline step: loading one
// source file, or rebuilding the view.
type StepResult struct {
	// Name identifies the step, usually the source file name.
	Name string
	// Rows is the number of rows the step inserted or produced.
	Rows int64
	// Duration is how long the step took.
	Duration time.Duration
	// Err is nil when the step succeeded.
	Err error
}

// RunSummary aggregates the step outcomes of one update run.
type RunSummary struct {
	// RunID tags the run in logs so parallel or repeated runs can be
	// told apart.
	RunID   uuid.UUID
	Started time.Time
	Steps   []StepResult
}

// NewRunSummary starts a summary for a new run.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		RunID:   uuid.New(),
		Started: time.Now(),
	}
}

// Add appends one step outcome.
func (s *RunSummary) Add(step StepResult) {
	s.Steps = append(s.Steps, step)
}

// Succeeded returns the number of steps that completed.
func (s *RunSummary) Succeeded() int {
	var n int
	for _, st := range s.Steps {
		if st.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of steps that ended with an error.
func (s *RunSummary) Failed() int {
	return len(s.Steps) - s.Succeeded()
}

// Duration is the elapsed time since the run started.
func (s *RunSummary) Duration() time.Duration {
	return time.Since(s.Started)
}
