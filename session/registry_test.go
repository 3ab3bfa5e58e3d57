package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"ballotgate/auth"
	"ballotgate/store"
)

const testSalt = "registry-test-salt"

func testRoster(identities ...string) *store.Roster {
	r := &store.Roster{}
	for _, id := range identities {
		r.Records = append(r.Records, store.Credential{
			Identity: id,
			Secret:   auth.DeriveSecret(id, testSalt),
		})
	}
	return r
}

func TestAuthenticate(t *testing.T) {
	roster := testRoster("a@x")
	good := auth.DeriveSecret("a@x", testSalt)

	tests := []struct {
		name     string
		identity string
		secret   string
		wantErr  error
	}{
		{"valid credential", "a@x", good, nil},
		{"wrong secret", "a@x", "nope", ErrInvalidCredential},
		{"unknown identity", "ghost@x", good, ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(15 * time.Minute)
			s, err := r.Authenticate(tt.identity, tt.secret, "1.2.3.4", roster)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if s.ID == "" {
					t.Error("Authenticate() returned session with empty ID")
				}
				if s.Origin != "1.2.3.4" {
					t.Errorf("Authenticate() origin = %q, want 1.2.3.4", s.Origin)
				}
			}
		})
	}
}

func TestAuthenticateAlreadyVoted(t *testing.T) {
	roster := testRoster("a@x")
	roster.Records[0].HasVoted = true

	r := NewRegistry(15 * time.Minute)
	_, err := r.Authenticate("a@x", auth.DeriveSecret("a@x", testSalt), "1.2.3.4", roster)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Authenticate() error = %v, want ErrAlreadyVoted", err)
	}
}

func TestSessionExclusivity(t *testing.T) {
	roster := testRoster("a@x")
	secret := auth.DeriveSecret("a@x", testSalt)
	r := NewRegistry(15 * time.Minute)

	if _, err := r.Authenticate("a@x", secret, "originA", roster); err != nil {
		t.Fatalf("first Authenticate() error = %v", err)
	}

	// Same identity from another origin while A is live.
	_, err := r.Authenticate("a@x", secret, "originB", roster)
	if !errors.Is(err, ErrActiveElsewhere) {
		t.Errorf("second Authenticate() error = %v, want ErrActiveElsewhere", err)
	}

	// Same origin refreshes instead of failing.
	s, err := r.Authenticate("a@x", secret, "originA", roster)
	if err != nil {
		t.Errorf("re-auth from same origin error = %v", err)
	}
	if s.Identity != "a@x" {
		t.Errorf("re-auth identity = %q", s.Identity)
	}
}

func TestTouch(t *testing.T) {
	roster := testRoster("a@x")
	secret := auth.DeriveSecret("a@x", testSalt)
	r := NewRegistry(15 * time.Minute)

	if err := r.Touch("a@x", "originA"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Touch() before auth error = %v, want ErrNoSession", err)
	}

	if _, err := r.Authenticate("a@x", secret, "originA", roster); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if err := r.Touch("a@x", "originA"); err != nil {
		t.Errorf("Touch() error = %v", err)
	}
	if err := r.Touch("a@x", "originB"); !errors.Is(err, ErrOriginMismatch) {
		t.Errorf("Touch() wrong origin error = %v, want ErrOriginMismatch", err)
	}
}

func TestLazyExpiry(t *testing.T) {
	roster := testRoster("a@x")
	secret := auth.DeriveSecret("a@x", testSalt)

	r := NewRegistry(15 * time.Minute)
	current := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	if _, err := r.Authenticate("a@x", secret, "originA", roster); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	// Just inside the TTL.
	current = current.Add(14 * time.Minute)
	if err := r.Touch("a@x", "originA"); err != nil {
		t.Errorf("Touch() inside TTL error = %v", err)
	}

	// Touch refreshed LastSeen, so another 14 minutes is still live.
	current = current.Add(14 * time.Minute)
	if err := r.Touch("a@x", "originA"); err != nil {
		t.Errorf("Touch() after refresh error = %v", err)
	}

	// Idle past the TTL: the session is treated as absent.
	current = current.Add(16 * time.Minute)
	if err := r.Touch("a@x", "originA"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Touch() after expiry error = %v, want ErrNoSession", err)
	}

	// And a new origin can now authenticate.
	if _, err := r.Authenticate("a@x", secret, "originB", roster); err != nil {
		t.Errorf("Authenticate() after expiry error = %v", err)
	}
}

func TestRelease(t *testing.T) {
	roster := testRoster("a@x")
	secret := auth.DeriveSecret("a@x", testSalt)
	r := NewRegistry(15 * time.Minute)

	if _, err := r.Authenticate("a@x", secret, "originA", roster); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	r.Release("a@x")

	if err := r.Touch("a@x", "originA"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Touch() after Release error = %v, want ErrNoSession", err)
	}

	// Releasing an absent identity is a no-op.
	r.Release("ghost@x")
}

func TestSweep(t *testing.T) {
	roster := testRoster("a@x", "b@x")
	r := NewRegistry(15 * time.Minute)
	current := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	for _, id := range []string{"a@x", "b@x"} {
		if _, err := r.Authenticate(id, auth.DeriveSecret(id, testSalt), "o", roster); err != nil {
			t.Fatalf("Authenticate(%s) error = %v", id, err)
		}
	}

	current = current.Add(16 * time.Minute)
	if removed := r.Sweep(); removed != 2 {
		t.Errorf("Sweep() = %d, want 2", removed)
	}
	if removed := r.Sweep(); removed != 0 {
		t.Errorf("second Sweep() = %d, want 0", removed)
	}
}

// TestConcurrentAuthenticateSingleWinner races many origins for one
// credential; exactly one may hold the session.
func TestConcurrentAuthenticateSingleWinner(t *testing.T) {
	roster := testRoster("a@x")
	secret := auth.DeriveSecret("a@x", testSalt)
	r := NewRegistry(15 * time.Minute)

	attempts := 16
	results := make([]error, attempts)
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			origin := "origin-" + string(rune('a'+n))
			_, results[n] = r.Authenticate("a@x", secret, origin, roster)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrActiveElsewhere):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("concurrent authenticate winners = %d, want exactly 1", wins)
	}
}
