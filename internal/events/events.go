// Package events provides the append-only activity log of a workspace.
//
// Events are written to <root>/.events.jsonl, one JSON object per line.
// Logging is best-effort: commands record what they did, but a failed write
// never fails the command.
package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is one line of the activity log.
type Event struct {
	Timestamp string                 `json:"ts"`
	Source    string                 `json:"source"`
	Type      string                 `json:"type"`
	Actor     string                 `json:"actor"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Event types emitted by dga commands.
const (
	TypeInit           = "init"
	TypeRunStarted     = "run_started"
	TypeRunSaved       = "run_saved"
	TypeReduceComplete = "reduce_complete"
	TypeSolutionApply  = "solution_applied"
	TypeVerify         = "verify"
	TypeStatusChange   = "status_change"
)

// EventsFile is the name of the log, relative to the workspace root.
const EventsFile = ".events.jsonl"

// mutex protects concurrent appends from one process.
var mutex sync.Mutex

// Log appends an event to the workspace log. A missing or empty root is
// silently ignored.
func Log(root, eventType, actor string, payload map[string]interface{}) error {
	if root == "" {
		return nil
	}
	event := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    "dga",
		Type:      eventType,
		Actor:     actor,
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	data = append(data, '\n')

	mutex.Lock()
	defer mutex.Unlock()

	f, err := os.OpenFile(filepath.Join(root, EventsFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening events file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Tail returns the last n events, oldest first. A missing log yields no
// events and no error.
func Tail(root string, n int) ([]Event, error) {
	f, err := os.Open(filepath.Join(root, EventsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			// Skip lines mangled by a crashed writer.
			continue
		}
		out = append(out, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

// RunPayload describes a persisted equation-system run.
func RunPayload(id, kind string, vertices, equations int) map[string]interface{} {
	return map[string]interface{}{
		"run":       id,
		"kind":      kind,
		"vertices":  vertices,
		"equations": equations,
	}
}

// ReducePayload describes a completed reduction.
func ReducePayload(id string, rank int, contradiction bool) map[string]interface{} {
	return map[string]interface{}{
		"run":           id,
		"rank":          rank,
		"contradiction": contradiction,
	}
}

// VerifyPayload describes a verification sweep.
func VerifyPayload(scope string, ok bool) map[string]interface{} {
	return map[string]interface{}{
		"scope": scope,
		"ok":    ok,
	}
}

// InitPayload describes workspace creation.
func InitPayload(vertices int) map[string]interface{} {
	return map[string]interface{}{
		"vertices": vertices,
	}
}

// StatusPayload describes a run status transition.
func StatusPayload(id, status string) map[string]interface{} {
	return map[string]interface{}{
		"run":    id,
		"status": status,
	}
}
