package executor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rahul/geoflow/internal/store"
	"github.com/rahul/geoflow/internal/workflow"
)

func TestManager_SubmitAndStatus(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "geoflow.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	runner := &recordingRunner{}
	exec := &Executor{
		Resolver: NewStaticResolver(DefaultCatalog()),
		Runner:   runner,
	}
	manager := NewManager(exec, st)

	wf := proximityWorkflow()
	id, err := manager.Submit(context.Background(), wf)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if id == "" {
		t.Fatal("Submit returned an empty execution ID")
	}

	manager.Wait()

	rec, err := manager.Status(id)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if rec.QueryID != wf.QueryID {
		t.Errorf("query_id = %s, want %s", rec.QueryID, wf.QueryID)
	}
	if rec.Status != workflow.StatusSucceeded {
		t.Errorf("status = %s, want succeeded", rec.Status)
	}
	if rec.StepsDone != rec.StepsTotal || rec.StepsTotal != len(wf.Steps) {
		t.Errorf("progress = %d/%d, want %d/%d", rec.StepsDone, rec.StepsTotal, len(wf.Steps), len(wf.Steps))
	}
	if rec.Result == nil {
		t.Fatal("result not persisted")
	}
	if len(rec.Result.Steps) != len(wf.Steps) {
		t.Errorf("result has %d steps, want %d", len(rec.Result.Steps), len(wf.Steps))
	}
	if len(runner.ran) != len(wf.Steps) {
		t.Errorf("runner executed %d steps, want %d", len(runner.ran), len(wf.Steps))
	}
}

func TestManager_FailedExecutionPersisted(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "geoflow.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	exec := &Executor{
		Resolver: NewStaticResolver(DefaultCatalog()),
		Runner:   &recordingRunner{failOn: "buffer"},
	}
	manager := NewManager(exec, st)

	id, err := manager.Submit(context.Background(), proximityWorkflow())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	manager.Wait()

	rec, err := manager.Status(id)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if rec.Status != workflow.StatusFailed {
		t.Errorf("status = %s, want failed", rec.Status)
	}
	if rec.Result == nil || rec.Result.Steps[2].Status != workflow.StatusSkipped {
		t.Errorf("result = %+v, want step 3 skipped", rec.Result)
	}
}
