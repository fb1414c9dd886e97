package executor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rahul/geoflow/internal/governance"
	"github.com/rahul/geoflow/internal/workflow"
)

// recordingRunner remembers every step it ran and can fail on demand.
type recordingRunner struct {
	ran    []string
	failOn string
}

func (r *recordingRunner) Run(ctx context.Context, step workflow.Step, inputs []Handle) (StepOutput, error) {
	r.ran = append(r.ran, step.ID)
	if step.Operation == r.failOn {
		return StepOutput{}, fmt.Errorf("engine rejected %s", step.Operation)
	}
	return StepOutput{
		Handle: Handle{Ref: step.ID, URI: "mem://" + step.ID},
		Stats:  map[string]float64{"features": float64(len(inputs))},
	}, nil
}

func proximityWorkflow() *workflow.Workflow {
	wf := workflow.New("q1")
	filtered := wf.Append("spatial_filter", []string{"hospitals"}, map[string]any{"input": "hospitals", "region": "Mumbai"})
	buffered := wf.Append("buffer", []string{filtered}, map[string]any{"input": filtered, "distance_m": 1000.0})
	wf.Append("spatial_join", []string{"schools", buffered}, map[string]any{"left": "schools", "right": buffered})
	return wf
}

func TestExecutor_Run(t *testing.T) {
	runner := &recordingRunner{}
	exec := &Executor{
		Resolver: NewStaticResolver(DefaultCatalog()),
		Runner:   runner,
	}

	res := exec.Run(context.Background(), "exec1", proximityWorkflow())

	if res.Status != workflow.StatusSucceeded {
		t.Fatalf("status = %s, want succeeded", res.Status)
	}
	if len(res.Steps) != 3 {
		t.Fatalf("got %d step results, want 3", len(res.Steps))
	}
	if strings.Join(runner.ran, ",") != "step_1,step_2,step_3" {
		t.Errorf("ran order = %v", runner.ran)
	}
	// step_2 consumed step_1's output
	if res.Steps[1].Output != "mem://step_2" {
		t.Errorf("step 2 output = %s", res.Steps[1].Output)
	}
}

func TestExecutor_MissingDataset(t *testing.T) {
	wf := workflow.New("q2")
	wf.Append("spatial_filter", []string{"submarines"}, map[string]any{"input": "submarines", "region": "Mumbai"})
	wf.Append("count", []string{"step_1"}, map[string]any{"input": "step_1"})

	runner := &recordingRunner{}
	exec := &Executor{
		Resolver: NewStaticResolver(DefaultCatalog()),
		Runner:   runner,
	}

	res := exec.Run(context.Background(), "exec2", wf)

	if res.Status != workflow.StatusFailed {
		t.Fatalf("status = %s, want failed", res.Status)
	}
	if res.Steps[0].Status != workflow.StatusFailed {
		t.Errorf("step 1 status = %s, want failed", res.Steps[0].Status)
	}
	if !strings.Contains(res.Steps[0].Error, "submarines") {
		t.Errorf("step 1 error = %q, want dataset name included", res.Steps[0].Error)
	}
	if res.Steps[1].Status != workflow.StatusSkipped {
		t.Errorf("step 2 status = %s, want skipped", res.Steps[1].Status)
	}
	if len(runner.ran) != 0 {
		t.Errorf("runner executed %v despite resolution failure", runner.ran)
	}
}

func TestExecutor_StepFailureSkipsRest(t *testing.T) {
	runner := &recordingRunner{failOn: "buffer"}
	exec := &Executor{
		Resolver: NewStaticResolver(DefaultCatalog()),
		Runner:   runner,
	}

	res := exec.Run(context.Background(), "exec3", proximityWorkflow())

	if res.Status != workflow.StatusFailed {
		t.Fatalf("status = %s, want failed", res.Status)
	}
	if res.Steps[1].Status != workflow.StatusFailed {
		t.Errorf("buffer status = %s, want failed", res.Steps[1].Status)
	}
	if res.Steps[2].Status != workflow.StatusSkipped {
		t.Errorf("join status = %s, want skipped", res.Steps[2].Status)
	}
}

func TestExecutor_PolicyDeny(t *testing.T) {
	gov := governance.NewDefaultPolicyEngine()
	gov.DenyOperation("buffer")

	runner := &recordingRunner{}
	exec := &Executor{
		Resolver: NewStaticResolver(DefaultCatalog()),
		Runner:   runner,
		Policy:   gov,
	}

	res := exec.Run(context.Background(), "exec4", proximityWorkflow())

	if res.Status != workflow.StatusFailed {
		t.Fatalf("status = %s, want failed", res.Status)
	}
	if !strings.Contains(res.Steps[1].Error, "denied by policy") {
		t.Errorf("buffer error = %q, want policy denial", res.Steps[1].Error)
	}
	// Only the first step should have reached the runner.
	if strings.Join(runner.ran, ",") != "step_1" {
		t.Errorf("ran = %v, want only step_1", runner.ran)
	}
}

func TestExecutor_Progress(t *testing.T) {
	var progress []int
	exec := &Executor{
		Resolver: NewStaticResolver(DefaultCatalog()),
		Runner:   &recordingRunner{},
		Progress: func(done int) { progress = append(progress, done) },
	}

	exec.Run(context.Background(), "exec5", proximityWorkflow())

	if len(progress) != 3 || progress[2] != 3 {
		t.Errorf("progress = %v, want [1 2 3]", progress)
	}
}
