package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestLogger_EventsGoToStderr(t *testing.T) {
	l := NewLogger()
	if l.out != os.Stderr {
		t.Error("events must default to stderr, not stdout")
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger()
	l.out = &buf

	l.LogTranslate("q1", "Find all schools in Mumbai")
	l.LogWorkflow("q1", 1, []string{"spatial_filter"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d event lines, want 2", len(lines))
	}

	var evt Event
	if err := json.Unmarshal([]byte(lines[0]), &evt); err != nil {
		t.Fatalf("event is not valid JSON: %v", err)
	}
	if evt.Type != EventTypeTranslate {
		t.Errorf("type = %s, want %s", evt.Type, EventTypeTranslate)
	}
	if evt.QueryID != "q1" {
		t.Errorf("query_id = %s, want q1", evt.QueryID)
	}
	if evt.Timestamp.IsZero() {
		t.Error("timestamp not filled in")
	}
}
