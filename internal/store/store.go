package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/rahul/geoflow/internal/workflow"
)

// Store persists queries, generated workflows and execution state in an
// embedded sqlite database.
type Store struct {
	DB *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if not exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS queries (
			id TEXT PRIMARY KEY,
			text TEXT,
			submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS workflows (
			query_id TEXT PRIMARY KEY,
			body TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS executions (
			id TEXT PRIMARY KEY,
			query_id TEXT,
			status TEXT DEFAULT 'pending',
			steps_done INTEGER DEFAULT 0,
			steps_total INTEGER DEFAULT 0,
			result TEXT,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);`,
	}
	for _, q := range queries {
		_, err = db.Exec(q)
		if err != nil {
			return nil, err
		}
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) SaveQuery(q workflow.Query) error {
	query := `INSERT OR REPLACE INTO queries (id, text, submitted_at) VALUES (?, ?, ?)`
	_, err := s.DB.Exec(query, q.ID, q.Text, q.SubmittedAt)
	return err
}

func (s *Store) SaveWorkflow(wf *workflow.Workflow) error {
	body, err := json.Marshal(wf)
	if err != nil {
		return fmt.Errorf("failed to encode workflow: %w", err)
	}
	query := `INSERT OR REPLACE INTO workflows (query_id, body, created_at) VALUES (?, ?, ?)`
	_, err = s.DB.Exec(query, wf.QueryID, string(body), wf.CreatedAt)
	return err
}

func (s *Store) GetWorkflow(queryID string) (*workflow.Workflow, error) {
	var body string
	row := s.DB.QueryRow(`SELECT body FROM workflows WHERE query_id = ?`, queryID)
	if err := row.Scan(&body); err != nil {
		return nil, err
	}
	var wf workflow.Workflow
	if err := json.Unmarshal([]byte(body), &wf); err != nil {
		return nil, fmt.Errorf("failed to decode workflow: %w", err)
	}
	return &wf, nil
}

// RecentQueries lists the latest queries, newest first.
func (s *Store) RecentQueries(limit int) ([]workflow.Query, error) {
	rows, err := s.DB.Query(`SELECT id, text, submitted_at FROM queries ORDER BY submitted_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []workflow.Query
	for rows.Next() {
		var q workflow.Query
		if err := rows.Scan(&q.ID, &q.Text, &q.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// ExecutionRecord is the persisted view of one workflow run.
type ExecutionRecord struct {
	ID         string
	QueryID    string
	Status     workflow.ExecutionStatus
	StepsDone  int
	StepsTotal int
	Result     *workflow.ExecutionResult
	StartedAt  time.Time
}

func (s *Store) CreateExecution(id, queryID string, stepsTotal int) error {
	query := `INSERT INTO executions (id, query_id, status, steps_total) VALUES (?, ?, ?, ?)`
	_, err := s.DB.Exec(query, id, queryID, string(workflow.StatusPending), stepsTotal)
	return err
}

func (s *Store) MarkExecutionRunning(id string) error {
	_, err := s.DB.Exec(`UPDATE executions SET status = ? WHERE id = ?`, string(workflow.StatusRunning), id)
	return err
}

func (s *Store) UpdateExecutionProgress(id string, stepsDone int) error {
	_, err := s.DB.Exec(`UPDATE executions SET steps_done = ? WHERE id = ?`, stepsDone, id)
	return err
}

func (s *Store) FinishExecution(id string, res *workflow.ExecutionResult) error {
	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode execution result: %w", err)
	}
	query := `UPDATE executions SET status = ?, result = ?, finished_at = datetime('now') WHERE id = ?`
	_, err = s.DB.Exec(query, string(res.Status), string(body), id)
	return err
}

func (s *Store) GetExecution(id string) (*ExecutionRecord, error) {
	row := s.DB.QueryRow(
		`SELECT id, query_id, status, steps_done, steps_total, COALESCE(result, ''), started_at FROM executions WHERE id = ?`, id)

	var rec ExecutionRecord
	var status, result string
	if err := row.Scan(&rec.ID, &rec.QueryID, &status, &rec.StepsDone, &rec.StepsTotal, &result, &rec.StartedAt); err != nil {
		return nil, err
	}
	rec.Status = workflow.ExecutionStatus(status)

	if result != "" {
		var res workflow.ExecutionResult
		if err := json.Unmarshal([]byte(result), &res); err != nil {
			return nil, fmt.Errorf("failed to decode execution result: %w", err)
		}
		rec.Result = &res
	}
	return &rec, nil
}
