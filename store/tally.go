package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ballotgate/blobstore"
)

// Tally maps choice labels to non-negative vote counts. Labels preserves
// the order lines were read in (unknown labels included) followed by any
// configured labels that were absent from storage, so a rewrite never drops
// or reorders what was already there.
type Tally struct {
	Labels []string
	Counts map[string]int
}

func NewTally(labels []string) *Tally {
	t := &Tally{Counts: make(map[string]int, len(labels))}
	for _, label := range labels {
		t.Labels = append(t.Labels, label)
		t.Counts[label] = 0
	}
	return t
}

// Increment adds one vote for label. The label must already be present.
func (t *Tally) Increment(label string) error {
	if _, ok := t.Counts[label]; !ok {
		return fmt.Errorf("unknown tally label %q", label)
	}
	t.Counts[label]++
	return nil
}

// Total returns the sum of all counts, unknown labels included.
func (t *Tally) Total() int {
	sum := 0
	for _, n := range t.Counts {
		sum += n
	}
	return sum
}

// Clone returns a deep copy.
func (t *Tally) Clone() *Tally {
	out := &Tally{
		Labels: make([]string, len(t.Labels)),
		Counts: make(map[string]int, len(t.Counts)),
	}
	copy(out.Labels, t.Labels)
	for k, v := range t.Counts {
		out.Counts[k] = v
	}
	return out
}

// ParseTally reads label,count lines. Labels found in storage but not in
// configured are preserved; configured labels missing from storage default
// to zero.
func ParseTally(data []byte, configured []string) (*Tally, error) {
	t := &Tally{Counts: make(map[string]int)}

	for lineNo, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		i := strings.LastIndex(line, ",")
		if i < 0 {
			return nil, fmt.Errorf("%w: tally line %d has no count", ErrCorruptData, lineNo+1)
		}
		label, countStr := line[:i], line[i+1:]
		if label == "" {
			return nil, fmt.Errorf("%w: tally line %d has empty label", ErrCorruptData, lineNo+1)
		}
		if _, ok := t.Counts[label]; ok {
			return nil, fmt.Errorf("%w: duplicate tally label %s", ErrCorruptData, label)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: tally line %d has bad count %q", ErrCorruptData, lineNo+1, countStr)
		}
		t.Labels = append(t.Labels, label)
		t.Counts[label] = count
	}

	for _, label := range configured {
		if _, ok := t.Counts[label]; !ok {
			t.Labels = append(t.Labels, label)
			t.Counts[label] = 0
		}
	}
	return t, nil
}

// Marshal writes label,count lines in Labels order.
func (t *Tally) Marshal() []byte {
	var buf bytes.Buffer
	for _, label := range t.Labels {
		buf.WriteString(label)
		buf.WriteByte(',')
		buf.WriteString(strconv.Itoa(t.Counts[label]))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// TallyStore persists the tally as one versioned blob with the same CAS
// contract as the roster.
type TallyStore struct {
	blobs      blobstore.Client
	key        string
	configured []string
	timeout    time.Duration
}

func NewTallyStore(blobs blobstore.Client, key string, configured []string, timeout time.Duration) *TallyStore {
	return &TallyStore{blobs: blobs, key: key, configured: configured, timeout: timeout}
}

// Load fetches and parses the current tally. A missing blob yields all
// configured labels at zero, generation 0.
func (s *TallyStore) Load(ctx context.Context) (*Tally, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, gen, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, blobstore.ErrNotFound) {
		return NewTally(s.configured), 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	tally, err := ParseTally(data, s.configured)
	if err != nil {
		return nil, 0, err
	}
	return tally, gen, nil
}

// CompareAndSwap writes tally only if the stored blob is still at gen.
func (s *TallyStore) CompareAndSwap(ctx context.Context, gen int64, tally *Tally) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.blobs.PutIfGeneration(ctx, s.key, gen, tally.Marshal())
}
