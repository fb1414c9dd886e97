package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypeTranslate  EventType = "translate"
	EventTypeExtraction EventType = "extraction"
	EventTypeBackend    EventType = "backend"
	EventTypeWorkflow   EventType = "workflow"
	EventTypeStep       EventType = "step"
	EventTypeExecution  EventType = "execution"
	EventTypeHeartbeat  EventType = "heartbeat"
)

// Event represents a structured log entry.
type Event struct {
	Type        EventType `json:"type"`
	QueryID     string    `json:"query_id,omitempty"`
	ExecutionID string    `json:"execution_id,omitempty"`
	Data        any       `json:"data"`
	Timestamp   time.Time `json:"timestamp"`
}

// Logger handles structured logging.
type Logger struct {
	out            io.Writer
	backendLogPath string
	maxSize        int64
}

func NewLogger() *Logger {
	return &Logger{
		// Events go to stderr so piping the CLI's stdout yields only the
		// workflow/result JSON.
		out:            os.Stderr,
		backendLogPath: filepath.Join("logs", "llm.jsonl"),
		maxSize:        10 * 1024 * 1024, // 10MB
	}
}

// Log emits a structured JSON event to stderr.
func (l *Logger) Log(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		fmt.Fprintf(l.out, "{\"error\": \"failed to marshal event: %v\"}\n", err)
		return
	}
	fmt.Fprintln(l.out, string(data))

	if evt.Type == EventTypeBackend {
		l.writeToFile(data)
	}
}

func (l *Logger) writeToFile(data []byte) {
	if err := os.MkdirAll(filepath.Dir(l.backendLogPath), 0755); err != nil {
		log.Printf("failed to create log directory: %v", err)
		return
	}

	// Check size before writing
	info, err := os.Stat(l.backendLogPath)
	if err == nil && info.Size() > l.maxSize {
		l.rotateLogs()
	}

	f, err := os.OpenFile(l.backendLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("failed to write to log file: %v", err)
	}
}

func (l *Logger) rotateLogs() {
	// Simple rotation: keep one .old file
	oldPath := l.backendLogPath + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(l.backendLogPath, oldPath)
}

// Helper methods for common events

func (l *Logger) LogTranslate(queryID, text string) {
	l.Log(Event{
		Type:    EventTypeTranslate,
		QueryID: queryID,
		Data:    map[string]string{"query": text},
	})
}

func (l *Logger) LogExtraction(queryID string, extraction any) {
	l.Log(Event{
		Type:    EventTypeExtraction,
		QueryID: queryID,
		Data:    extraction,
	})
}

func (l *Logger) LogBackend(queryID, model, prompt, response string) {
	l.Log(Event{
		Type:    EventTypeBackend,
		QueryID: queryID,
		Data: map[string]string{
			"model":    model,
			"prompt":   prompt,
			"response": response,
		},
	})
}

func (l *Logger) LogWorkflow(queryID string, steps int, operations []string) {
	l.Log(Event{
		Type:    EventTypeWorkflow,
		QueryID: queryID,
		Data: map[string]any{
			"steps":      steps,
			"operations": operations,
		},
	})
}

func (l *Logger) LogStep(executionID, stepID, operation, status string) {
	l.Log(Event{
		Type:        EventTypeStep,
		ExecutionID: executionID,
		Data: map[string]string{
			"step":      stepID,
			"operation": operation,
			"status":    status,
		},
	})
}

func (l *Logger) LogExecution(executionID, queryID, status string) {
	l.Log(Event{
		Type:        EventTypeExecution,
		QueryID:     queryID,
		ExecutionID: executionID,
		Data:        map[string]string{"status": status},
	})
}
