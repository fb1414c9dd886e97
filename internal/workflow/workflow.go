package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Query is a raw natural-language geospatial request. Immutable once created.
type Query struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewQuery(text string) Query {
	return Query{
		ID:          uuid.NewString(),
		Text:        text,
		SubmittedAt: time.Now().UTC(),
	}
}

// Step is one atomic GIS operation with bound parameters.
// Inputs reference either named datasets ("hospitals") or the output of an
// earlier step ("step_1").
type Step struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	Inputs    []string       `json:"inputs"`
	Params    map[string]any `json:"params,omitempty"`
}

// StepRef returns the reference name for the output of the n-th step (1-based).
func StepRef(n int) string {
	return fmt.Sprintf("step_%d", n)
}

// IsStepRef reports whether ref names a step output rather than a dataset.
func IsStepRef(ref string) bool {
	return strings.HasPrefix(ref, "step_")
}

// Workflow is the ordered sequence of steps generated for one query.
// Immutable after generation; steps are emitted in dependency order, so a
// step only ever references datasets or outputs of earlier steps.
type Workflow struct {
	QueryID   string    `json:"query_id"`
	Steps     []Step    `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
}

func New(queryID string) *Workflow {
	return &Workflow{
		QueryID:   queryID,
		CreatedAt: time.Now().UTC(),
	}
}

// Append adds a step with the next sequential ID and returns its reference.
func (w *Workflow) Append(operation string, inputs []string, params map[string]any) string {
	id := StepRef(len(w.Steps) + 1)
	w.Steps = append(w.Steps, Step{
		ID:        id,
		Operation: operation,
		Inputs:    inputs,
		Params:    params,
	})
	return id
}

// ExecutionStatus tracks the lifecycle of a workflow run or a single step.
type ExecutionStatus string

const (
	StatusPending   ExecutionStatus = "pending"
	StatusRunning   ExecutionStatus = "running"
	StatusSucceeded ExecutionStatus = "succeeded"
	StatusFailed    ExecutionStatus = "failed"
	StatusSkipped   ExecutionStatus = "skipped"
)

// StepResult is the per-step output of an execution: a dataset reference for
// the produced data, optional summary statistics, or an error marker.
type StepResult struct {
	StepID    string             `json:"step_id"`
	Operation string             `json:"operation"`
	Status    ExecutionStatus    `json:"status"`
	Output    string             `json:"output,omitempty"`
	Stats     map[string]float64 `json:"stats,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// ExecutionResult is the outcome of running a workflow against real data.
type ExecutionResult struct {
	ExecutionID string          `json:"execution_id"`
	QueryID     string          `json:"query_id"`
	Status      ExecutionStatus `json:"status"`
	Steps       []StepResult    `json:"steps"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}
