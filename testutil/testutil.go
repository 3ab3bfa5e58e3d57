package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ballotgate/audit"
	"ballotgate/auth"
	"ballotgate/blobstore"
	"ballotgate/cliparse"
	"ballotgate/coordinator"
	"ballotgate/eligibility"
	"ballotgate/session"
	"ballotgate/store"
	"ballotgate/timegate"
)

// TestSalt derives voter secrets in tests; SeedVoter and login fixtures
// must agree on it.
const TestSalt = "test-secret-salt"

// TestAdminKey guards the admin endpoints in tests.
const TestAdminKey = "test-admin-key"

// TestDomain is the institutional domain for derived identities in tests.
const TestDomain = "campus.edu"

// TestChoices is the standard two-label ballot used across tests.
var TestChoices = []string{"Red", "Blue"}

// MailRecorder is a notify.Sender that captures messages in memory.
type MailRecorder struct {
	mu   sync.Mutex
	Sent []RecordedMail
}

type RecordedMail struct {
	Subject   string
	Recipient string
	Body      string
}

func (m *MailRecorder) Send(subject, recipient, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, RecordedMail{subject, recipient, body})
	return nil
}

// Messages returns a snapshot of everything sent so far.
func (m *MailRecorder) Messages() []RecordedMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedMail(nil), m.Sent...)
}

// Backend bundles the in-memory collaborators behind a test coordinator
// so tests can seed and inspect state directly.
type Backend struct {
	Blobs  *blobstore.Memory
	Roster *store.RosterStore
	Tally  *store.TallyStore
	Mail   *MailRecorder
}

// NewTestCoordinator wires a coordinator over in-memory storage with the
// voting window open around time.Now.
func NewTestCoordinator(t *testing.T) (*coordinator.Coordinator, *Backend) {
	t.Helper()

	blobs := blobstore.NewMemory()
	roster := store.NewRosterStore(blobs, ".credentials.txt", time.Second)
	tally := store.NewTallyStore(blobs, ".results.txt", TestChoices, time.Second)
	registry := session.NewRegistry(15 * time.Minute)
	gate := timegate.NewWindow(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	mail := &MailRecorder{}

	coord := coordinator.New(roster, tally, registry, gate, eligibility.All{}, mail, audit.Discard{},
		coordinator.Config{
			Choices:      TestChoices,
			SecretSalt:   TestSalt,
			EmailDomain:  TestDomain,
			AdminEmail:   "admin@" + TestDomain,
			MaxAttempts:  25,
			RetryBackoff: time.Millisecond,
		})

	return coord, &Backend{Blobs: blobs, Roster: roster, Tally: tally, Mail: mail}
}

// SeedVoter inserts an unvoted credential straight into the roster blob
// and returns the matching secret.
func (b *Backend) SeedVoter(t *testing.T, identity string) string {
	t.Helper()

	ctx := context.Background()
	roster, gen, err := b.Roster.Load(ctx)
	if err != nil {
		t.Fatalf("seed: roster load failed: %v", err)
	}
	secret := auth.DeriveSecret(identity, TestSalt)
	roster.Records = append(roster.Records, store.Credential{Identity: identity, Secret: secret})
	if _, err := b.Roster.CompareAndSwap(ctx, gen, roster); err != nil {
		t.Fatalf("seed: roster write failed: %v", err)
	}
	return secret
}

// SeedSecret re-derives the secret that registration mailed for identity.
func (b *Backend) SeedSecret(identity string) string {
	return auth.DeriveSecret(identity, TestSalt)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3640,
		DatabaseURL:  "file:test.db",
		DatabaseType: "sqlite",
		RosterKey:    ".credentials.txt",
		TallyKey:     ".results.txt",
		Choices:      TestChoices,
		SecretSalt:   TestSalt,
		AdminKey:     TestAdminKey,
		EmailDomain:  TestDomain,
		SessionTTL:   15 * time.Minute,
		StoreTimeout: time.Second,
		MaxAttempts:  25,
		RetryBackoff: time.Millisecond,
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
