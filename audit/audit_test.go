package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func TestAppendFillsIDAndTime(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	sink.Append(Event{Action: ActionLogin, Actor: "a@x", Origin: "1.2.3.4"})

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.ID == "" {
		t.Error("Append() did not assign an event ID")
	}
	if e.Time.IsZero() {
		t.Error("Append() did not assign a timestamp")
	}
	if e.Action != ActionLogin || e.Actor != "a@x" || e.Origin != "1.2.3.4" {
		t.Errorf("Append() mangled fields: %+v", e)
	}
}

func TestAppendKeepsExplicitIDAndTime(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	sink.Append(Event{ID: "fixed", Time: at, Action: ActionVote})

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.ID != "fixed" {
		t.Errorf("ID = %q, want fixed", e.ID)
	}
	if !e.Time.Equal(at) {
		t.Errorf("Time = %v, want %v", e.Time, at)
	}
}

func TestConcurrentAppendsDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	var wg sync.WaitGroup
	n := 50
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Append(Event{Action: ActionVote, Actor: "a@x"})
		}()
	}
	wg.Wait()

	lines := 0
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Errorf("line %d is not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != n {
		t.Errorf("got %d lines, want %d", lines, n)
	}
}
