package events

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLogAndTail(t *testing.T) {
	root := t.TempDir()

	if err := Log(root, TypeRunStarted, "system build", RunPayload("0a1b2c3d", "leibniz", 4, 0)); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := Log(root, TypeReduceComplete, "system reduce", ReducePayload("0a1b2c3d", 12, false)); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := Tail(root, 0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Tail returned %d events, want 2", len(got))
	}
	if got[0].Type != TypeRunStarted || got[1].Type != TypeReduceComplete {
		t.Errorf("event types = %q, %q", got[0].Type, got[1].Type)
	}
	if got[0].Source != "dga" || got[0].Timestamp == "" {
		t.Errorf("event header = %+v", got[0])
	}
	if got[1].Payload["rank"] != float64(12) {
		t.Errorf("rank payload = %v", got[1].Payload["rank"])
	}
}

func TestTailLimit(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		if err := Log(root, TypeVerify, "verify", VerifyPayload("d(d(x))", true)); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
	got, err := Tail(root, 2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Tail(2) returned %d events", len(got))
	}
}

func TestTailMissingLog(t *testing.T) {
	got, err := Tail(t.TempDir(), 10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if got != nil {
		t.Errorf("Tail = %v, want nil for a missing log", got)
	}
}

func TestTailSkipsMangledLines(t *testing.T) {
	root := t.TempDir()
	if err := Log(root, TypeInit, "init", InitPayload(4)); err != nil {
		t.Fatalf("Log: %v", err)
	}
	f, err := os.OpenFile(filepath.Join(root, EventsFile), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("{truncated\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()
	if err := Log(root, TypeStatusChange, "runs", StatusPayload("0a1b2c3d", "reduced")); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := Tail(root, 0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Tail returned %d events, want 2 valid ones", len(got))
	}
}

func TestLogNoRoot(t *testing.T) {
	if err := Log("", TypeInit, "init", nil); err != nil {
		t.Errorf("Log with empty root = %v, want nil", err)
	}
}
