package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/rahul/geoflow/internal/governance"
	"github.com/rahul/geoflow/internal/observability"
	"github.com/rahul/geoflow/internal/workflow"
)

// StepOutput is what a runner produced for one step: a reference to the
// output dataset plus optional summary statistics.
type StepOutput struct {
	Handle Handle
	Stats  map[string]float64
}

// Runner executes one workflow step against resolved inputs. The actual GIS
// engines (PostGIS, QGIS, GDAL bindings, ...) live behind this interface;
// this package never computes geometry itself.
type Runner interface {
	Run(ctx context.Context, step workflow.Step, inputs []Handle) (StepOutput, error)
}

// DryRunner validates and threads the workflow without touching data. Used
// for workflow review before a real engine run.
type DryRunner struct{}

func (DryRunner) Run(ctx context.Context, step workflow.Step, inputs []Handle) (StepOutput, error) {
	return StepOutput{
		Handle: Handle{Ref: step.ID, URI: "dry://" + step.Operation},
	}, nil
}

// Executor runs one workflow sequentially: steps were emitted in dependency
// order, so each step only needs the outputs of earlier ones.
type Executor struct {
	Resolver Resolver
	Runner   Runner
	Policy   governance.PolicyEngine // optional
	Logger   *observability.Logger   // optional
	Progress func(stepsDone int)     // optional
}

// Run executes wf and always returns a result; per-step failures are
// recorded in it rather than returned. The first failed step marks the rest
// skipped and the overall status failed.
func (e *Executor) Run(ctx context.Context, executionID string, wf *workflow.Workflow) *workflow.ExecutionResult {
	res := &workflow.ExecutionResult{
		ExecutionID: executionID,
		QueryID:     wf.QueryID,
		Status:      workflow.StatusRunning,
		StartedAt:   time.Now().UTC(),
	}

	outputs := make(map[string]Handle, len(wf.Steps))
	failed := false

	for i, step := range wf.Steps {
		sr := workflow.StepResult{
			StepID:    step.ID,
			Operation: step.Operation,
		}

		if failed || ctx.Err() != nil {
			sr.Status = workflow.StatusSkipped
			res.Steps = append(res.Steps, sr)
			continue
		}

		out, err := e.runStep(ctx, wf.QueryID, step, outputs)
		if err != nil {
			sr.Status = workflow.StatusFailed
			sr.Error = err.Error()
			failed = true
		} else {
			sr.Status = workflow.StatusSucceeded
			sr.Output = out.Handle.URI
			sr.Stats = out.Stats
			outputs[step.ID] = out.Handle
		}

		if e.Logger != nil {
			e.Logger.LogStep(executionID, step.ID, step.Operation, string(sr.Status))
		}
		if e.Progress != nil {
			e.Progress(i + 1)
		}
		res.Steps = append(res.Steps, sr)
	}

	res.FinishedAt = time.Now().UTC()
	if failed || ctx.Err() != nil {
		res.Status = workflow.StatusFailed
	} else {
		res.Status = workflow.StatusSucceeded
	}
	return res
}

func (e *Executor) runStep(ctx context.Context, queryID string, step workflow.Step, outputs map[string]Handle) (StepOutput, error) {
	if e.Policy != nil {
		verdict, err := e.Policy.Evaluate(ctx, governance.Request{
			Operation: step.Operation,
			Inputs:    step.Inputs,
			QueryID:   queryID,
		})
		if err != nil {
			return StepOutput{}, fmt.Errorf("policy evaluation failed: %w", err)
		}
		if verdict.Effect == governance.EffectDeny {
			return StepOutput{}, fmt.Errorf("denied by policy: %s", verdict.Reason)
		}
	}

	inputs := make([]Handle, 0, len(step.Inputs))
	for _, ref := range step.Inputs {
		if workflow.IsStepRef(ref) {
			h, ok := outputs[ref]
			if !ok {
				return StepOutput{}, fmt.Errorf("step output %s not available", ref)
			}
			inputs = append(inputs, h)
			continue
		}
		h, err := e.Resolver.Resolve(ctx, ref)
		if err != nil {
			return StepOutput{}, err
		}
		inputs = append(inputs, h)
	}

	return e.Runner.Run(ctx, step, inputs)
}
