package executor

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/rahul/geoflow/internal/store"
	"github.com/rahul/geoflow/internal/workflow"
)

// Manager runs workflows asynchronously and tracks their state in the store,
// so callers can submit a workflow, keep the execution ID and poll status
// later.
type Manager struct {
	Store *store.Store
	Exec  *Executor

	wg sync.WaitGroup
}

func NewManager(exec *Executor, st *store.Store) *Manager {
	return &Manager{Exec: exec, Store: st}
}

// Submit registers a new execution and starts it in the background.
func (m *Manager) Submit(ctx context.Context, wf *workflow.Workflow) (string, error) {
	id := uuid.NewString()
	if err := m.Store.CreateExecution(id, wf.QueryID, len(wf.Steps)); err != nil {
		return "", err
	}

	m.wg.Add(1)
	go m.run(ctx, id, wf)
	return id, nil
}

func (m *Manager) run(ctx context.Context, id string, wf *workflow.Workflow) {
	defer m.wg.Done()

	if err := m.Store.MarkExecutionRunning(id); err != nil {
		log.Printf("Error marking execution %s running: %v", id, err)
	}

	// Each run gets its own executor so the progress callback can close
	// over this execution's ID without racing concurrent submissions.
	exec := &Executor{
		Resolver: m.Exec.Resolver,
		Runner:   m.Exec.Runner,
		Policy:   m.Exec.Policy,
		Logger:   m.Exec.Logger,
		Progress: func(done int) {
			if err := m.Store.UpdateExecutionProgress(id, done); err != nil {
				log.Printf("Error updating progress for execution %s: %v", id, err)
			}
		},
	}

	res := exec.Run(ctx, id, wf)

	if err := m.Store.FinishExecution(id, res); err != nil {
		log.Printf("Error finishing execution %s: %v", id, err)
	}
	if exec.Logger != nil {
		exec.Logger.LogExecution(id, wf.QueryID, string(res.Status))
	}
}

// Status reads the persisted state of an execution.
func (m *Manager) Status(id string) (*store.ExecutionRecord, error) {
	return m.Store.GetExecution(id)
}

// Wait blocks until all submitted executions have finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}
