package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"ballotgate/auth"
	"ballotgate/store"
)

var (
	// ErrInvalidCredential covers both unknown identities and wrong
	// secrets; callers must not distinguish the two.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrAlreadyVoted means the roster records this credential as used.
	ErrAlreadyVoted = errors.New("credential has already voted")
	// ErrActiveElsewhere means a live session for this identity is bound
	// to a different origin.
	ErrActiveElsewhere = errors.New("session active from another origin")
	// ErrNoSession means no live session exists (never created, released,
	// or idle past the TTL).
	ErrNoSession = errors.New("no live session")
	// ErrOriginMismatch means the caller's origin does not match the one
	// the session was bound to.
	ErrOriginMismatch = errors.New("session origin mismatch")
)

// Session binds an authenticated identity to one request origin.
type Session struct {
	ID       string
	Identity string
	Origin   string
	LastSeen time.Time
}

// Registry is the process-local session table: at most one live session per
// identity at any instant. It is the sole arbiter of "is this the same
// client that authenticated". Entries are never persisted.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session

	// now is swappable for tests.
	now func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Authenticate validates a credential against the given roster snapshot and
// binds a session to origin. Re-authenticating from the same origin
// refreshes the existing session instead of failing.
func (r *Registry) Authenticate(identity, secret, origin string, roster *store.Roster) (Session, error) {
	i := roster.Find(identity)
	if i < 0 || !auth.VerifySecret(secret, roster.Records[i].Secret) {
		return Session{}, ErrInvalidCredential
	}
	if roster.Records[i].HasVoted {
		return Session{}, ErrAlreadyVoted
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if existing, ok := r.sessions[identity]; ok && r.live(existing, now) {
		if existing.Origin != origin {
			return Session{}, ErrActiveElsewhere
		}
		existing.LastSeen = now
		r.sessions[identity] = existing
		return existing, nil
	}

	s := Session{
		ID:       uuid.NewString(),
		Identity: identity,
		Origin:   origin,
		LastSeen: now,
	}
	r.sessions[identity] = s
	return s, nil
}

// Touch validates the caller's origin against the bound session and
// refreshes its timestamp. Expiry is lazy: an entry idle past the TTL is
// treated as absent, no background sweep needed for correctness.
func (r *Registry) Touch(identity, origin string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s, ok := r.sessions[identity]
	if !ok || !r.live(s, now) {
		delete(r.sessions, identity)
		return ErrNoSession
	}
	if s.Origin != origin {
		return ErrOriginMismatch
	}

	s.LastSeen = now
	r.sessions[identity] = s
	return nil
}

// Release removes the binding unconditionally. Used on vote completion and
// logout.
func (r *Registry) Release(identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, identity)
}

// Sweep drops expired entries and returns how many were removed. Purely
// memory hygiene; correctness never depends on it running.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for identity, s := range r.sessions {
		if !r.live(s, now) {
			delete(r.sessions, identity)
			removed++
		}
	}
	return removed
}

func (r *Registry) live(s Session, now time.Time) bool {
	return now.Sub(s.LastSeen) < r.ttl
}
