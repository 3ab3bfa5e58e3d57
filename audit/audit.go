// Package audit records who did what, when, from where. The log is
// append-only and best-effort: a failed append is logged and swallowed, it
// never fails the operation being audited.
package audit

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action kinds.
const (
	ActionRegister    = "register"
	ActionLogin       = "login"
	ActionLogout      = "logout"
	ActionVote        = "vote"
	ActionTallyRepair = "tally_repair"
	ActionContact     = "contact"
)

// Event is one audit record.
type Event struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Action string    `json:"action"`
	Actor  string    `json:"actor,omitempty"`
	Origin string    `json:"origin,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// Sink accepts audit events.
type Sink interface {
	Append(Event)
}

// FileSink writes events as JSON lines, one event per line, guarded by a
// mutex so concurrent requests don't interleave output.
type FileSink struct {
	mu  sync.Mutex
	w   io.Writer
	c   io.Closer
	enc *json.Encoder
}

// NewFileSink opens (or creates) path for appending.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	s := NewWriterSink(f)
	s.c = f
	return s, nil
}

// NewWriterSink wraps an arbitrary writer, mainly for tests.
func NewWriterSink(w io.Writer) *FileSink {
	return &FileSink{w: w, enc: json.NewEncoder(w)}
}

func (s *FileSink) Append(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(e); err != nil {
		slog.Error("audit append failed", "action", e.Action, "error", err)
	}
}

func (s *FileSink) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

// Discard drops every event. Stands in where auditing is not configured.
type Discard struct{}

func (Discard) Append(Event) {}
