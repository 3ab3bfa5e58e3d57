// Package timegate answers whether voting is currently permitted. The gate
// is a pure function of wall-clock time against a configured [open, close)
// window in a fixed timezone; it has no error conditions and no side
// effects.
package timegate

import (
	"fmt"
	"time"
)

// Window statuses as shown to voters.
const (
	StatusNotYetOpen = "not yet open"
	StatusOpen       = "open"
	StatusClosed     = "closed"
)

// Gate holds the configured voting window.
type Gate struct {
	open  time.Time
	close time.Time
}

// New builds a gate from RFC 3339 timestamps. The close instant itself is
// outside the window.
func New(openStr, closeStr string) (*Gate, error) {
	open, err := time.Parse(time.RFC3339, openStr)
	if err != nil {
		return nil, fmt.Errorf("bad window open time %q: %w", openStr, err)
	}
	close, err := time.Parse(time.RFC3339, closeStr)
	if err != nil {
		return nil, fmt.Errorf("bad window close time %q: %w", closeStr, err)
	}
	if !open.Before(close) {
		return nil, fmt.Errorf("window open %s is not before close %s", openStr, closeStr)
	}
	return &Gate{open: open, close: close}, nil
}

// NewWindow builds a gate from explicit instants, mainly for tests.
func NewWindow(open, close time.Time) *Gate {
	return &Gate{open: open, close: close}
}

// IsOpen reports whether now falls inside [open, close).
func (g *Gate) IsOpen(now time.Time) bool {
	return !now.Before(g.open) && now.Before(g.close)
}

// Status returns the deterministic "not yet/open/closed" answer for now.
func (g *Gate) Status(now time.Time) string {
	switch {
	case now.Before(g.open):
		return StatusNotYetOpen
	case now.Before(g.close):
		return StatusOpen
	default:
		return StatusClosed
	}
}
