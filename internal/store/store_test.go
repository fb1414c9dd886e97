package store

import (
	"path/filepath"
	"testing"

	"github.com/rahul/geoflow/internal/workflow"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "geoflow.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_WorkflowRoundTrip(t *testing.T) {
	st := newTestStore(t)

	q := workflow.NewQuery("Find all schools within 1km of hospitals in Mumbai")
	if err := st.SaveQuery(q); err != nil {
		t.Fatal(err)
	}

	wf := workflow.New(q.ID)
	filtered := wf.Append("spatial_filter", []string{"hospitals"}, map[string]any{"input": "hospitals", "region": "Mumbai"})
	wf.Append("buffer", []string{filtered}, map[string]any{"input": filtered, "distance_m": 1000.0})

	if err := st.SaveWorkflow(wf); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetWorkflow(q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.QueryID != q.ID {
		t.Errorf("query_id = %s, want %s", got.QueryID, q.ID)
	}
	if len(got.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(got.Steps))
	}
	if got.Steps[0].Operation != "spatial_filter" || got.Steps[1].Operation != "buffer" {
		t.Errorf("operations = %s, %s", got.Steps[0].Operation, got.Steps[1].Operation)
	}
	if got.Steps[1].Params["input"] != "step_1" {
		t.Errorf("step 2 input = %v, want step_1", got.Steps[1].Params["input"])
	}

	recent, err := st.RecentQueries(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Text != q.Text {
		t.Errorf("recent queries = %+v", recent)
	}
}

func TestStore_ExecutionLifecycle(t *testing.T) {
	st := newTestStore(t)

	if err := st.CreateExecution("e1", "q1", 3); err != nil {
		t.Fatal(err)
	}

	rec, err := st.GetExecution("e1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != workflow.StatusPending {
		t.Errorf("status = %s, want pending", rec.Status)
	}
	if rec.StepsTotal != 3 || rec.StepsDone != 0 {
		t.Errorf("progress = %d/%d, want 0/3", rec.StepsDone, rec.StepsTotal)
	}

	if err := st.MarkExecutionRunning("e1"); err != nil {
		t.Fatal(err)
	}
	rec, err = st.GetExecution("e1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != workflow.StatusRunning {
		t.Errorf("status = %s, want running", rec.Status)
	}

	if err := st.UpdateExecutionProgress("e1", 2); err != nil {
		t.Fatal(err)
	}
	rec, err = st.GetExecution("e1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.StepsDone != 2 {
		t.Errorf("steps_done = %d, want 2", rec.StepsDone)
	}

	res := &workflow.ExecutionResult{
		ExecutionID: "e1",
		QueryID:     "q1",
		Status:      workflow.StatusSucceeded,
		Steps: []workflow.StepResult{
			{StepID: "step_1", Operation: "spatial_filter", Status: workflow.StatusSucceeded, Output: "mem://step_1"},
		},
	}
	if err := st.FinishExecution("e1", res); err != nil {
		t.Fatal(err)
	}

	rec, err = st.GetExecution("e1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != workflow.StatusSucceeded {
		t.Errorf("status = %s, want succeeded", rec.Status)
	}
	if rec.Result == nil {
		t.Fatal("result not persisted")
	}
	if len(rec.Result.Steps) != 1 || rec.Result.Steps[0].Output != "mem://step_1" {
		t.Errorf("result steps = %+v", rec.Result.Steps)
	}
}
