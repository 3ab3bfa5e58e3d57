package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ballotgate/blobstore"
)

// ErrCorruptData means a blob could not be parsed. The load fails and
// nothing is written back; an operator has to inspect the stored blob.
var ErrCorruptData = errors.New("corrupt blob data")

// Credential is one registered voter: the email-shaped identity, the
// derived secret, and whether the vote has been cast. HasVoted flips
// false to true exactly once and never reverts.
type Credential struct {
	Identity string
	Secret   string
	HasVoted bool
}

// Roster is the ordered collection of credentials. Identity is unique
// across the collection; records are only ever appended or flag-flipped.
type Roster struct {
	Records []Credential
}

// Find returns the index of the record for identity, or -1.
func (r *Roster) Find(identity string) int {
	for i := range r.Records {
		if r.Records[i].Identity == identity {
			return i
		}
	}
	return -1
}

// VotedCount returns how many records have cast their vote.
func (r *Roster) VotedCount() int {
	n := 0
	for i := range r.Records {
		if r.Records[i].HasVoted {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, so a caller can mutate a working copy without
// touching the one it loaded.
func (r *Roster) Clone() *Roster {
	out := &Roster{Records: make([]Credential, len(r.Records))}
	copy(out.Records, r.Records)
	return out
}

// ParseRoster reads identity,secret,flag lines. Identities are constrained
// to contain no commas, so no escaping is needed.
func ParseRoster(data []byte) (*Roster, error) {
	roster := &Roster{}
	seen := make(map[string]bool)

	for lineNo, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: roster line %d has %d fields, want 3", ErrCorruptData, lineNo+1, len(fields))
		}
		identity, secret, flag := fields[0], fields[1], fields[2]
		if identity == "" {
			return nil, fmt.Errorf("%w: roster line %d has empty identity", ErrCorruptData, lineNo+1)
		}
		if seen[identity] {
			return nil, fmt.Errorf("%w: duplicate roster identity %s", ErrCorruptData, identity)
		}
		seen[identity] = true

		var hasVoted bool
		switch flag {
		case "0":
			hasVoted = false
		case "1":
			hasVoted = true
		default:
			return nil, fmt.Errorf("%w: roster line %d has bad voted flag %q", ErrCorruptData, lineNo+1, flag)
		}

		roster.Records = append(roster.Records, Credential{
			Identity: identity,
			Secret:   secret,
			HasVoted: hasVoted,
		})
	}
	return roster, nil
}

// Marshal writes the roster back out as newline-terminated CSV lines.
func (r *Roster) Marshal() []byte {
	var buf bytes.Buffer
	for i := range r.Records {
		flag := "0"
		if r.Records[i].HasVoted {
			flag = "1"
		}
		buf.WriteString(r.Records[i].Identity)
		buf.WriteByte(',')
		buf.WriteString(r.Records[i].Secret)
		buf.WriteByte(',')
		buf.WriteString(flag)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// RosterStore persists the roster as one versioned blob. No lock is held
// across the round trip; writers use CompareAndSwap and retry on conflict.
type RosterStore struct {
	blobs   blobstore.Client
	key     string
	timeout time.Duration
}

func NewRosterStore(blobs blobstore.Client, key string, timeout time.Duration) *RosterStore {
	return &RosterStore{blobs: blobs, key: key, timeout: timeout}
}

// Load fetches and parses the current roster. A missing blob is an empty
// roster at generation 0, which the first CompareAndSwap will create.
func (s *RosterStore) Load(ctx context.Context) (*Roster, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, gen, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, blobstore.ErrNotFound) {
		return &Roster{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	roster, err := ParseRoster(data)
	if err != nil {
		return nil, 0, err
	}
	return roster, gen, nil
}

// CompareAndSwap writes roster only if the stored blob is still at gen.
// Returns the new generation, or blobstore.ErrConflict if another writer
// got there first (reload and retry).
func (s *RosterStore) CompareAndSwap(ctx context.Context, gen int64, roster *Roster) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.blobs.PutIfGeneration(ctx, s.key, gen, roster.Marshal())
}
