package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ballotgate/audit"
	"ballotgate/auth"
	"ballotgate/blobstore"
	"ballotgate/eligibility"
	"ballotgate/notify"
	"ballotgate/session"
	"ballotgate/store"
	"ballotgate/timegate"
)

var (
	// ErrNotEligible means the external eligibility check rejected the name.
	ErrNotEligible = errors.New("not eligible to register")
	// ErrDuplicateRegistration means the derived identity already has a
	// roster record.
	ErrDuplicateRegistration = errors.New("identity already registered")
	// ErrVotingClosed means the request arrived outside the voting window.
	ErrVotingClosed = errors.New("voting window is not open")
	// ErrInvalidChoice means the choice is not one of the configured labels.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrPartialCommit means the roster flip is durable but the tally
	// update is still pending after the retry budget. The vote is cast;
	// only the derived count needs operator attention.
	ErrPartialCommit = errors.New("vote recorded, tally update pending")
)

// Config carries the election parameters.
type Config struct {
	Choices      []string
	SecretSalt   string
	EmailDomain  string
	AdminEmail   string
	MaxAttempts  int
	RetryBackoff time.Duration
}

// Coordinator orchestrates the whole vote: eligibility, identity
// derivation, session binding, and the CAS-guarded two-document
// transaction across roster and tally. One instance is shared by all
// request workers; it holds no per-request state of its own.
type Coordinator struct {
	roster   *store.RosterStore
	tally    *store.TallyStore
	sessions *session.Registry
	gate     *timegate.Gate
	eligible eligibility.Checker
	mail     notify.Sender
	log      audit.Sink
	cfg      Config

	choices map[string]bool
	now     func() time.Time
}

func New(
	roster *store.RosterStore,
	tally *store.TallyStore,
	sessions *session.Registry,
	gate *timegate.Gate,
	eligible eligibility.Checker,
	mail notify.Sender,
	sink audit.Sink,
	cfg Config,
) *Coordinator {
	choices := make(map[string]bool, len(cfg.Choices))
	for _, c := range cfg.Choices {
		choices[c] = true
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &Coordinator{
		roster:   roster,
		tally:    tally,
		sessions: sessions,
		gate:     gate,
		eligible: eligible,
		mail:     mail,
		log:      sink,
		cfg:      cfg,
		choices:  choices,
		now:      time.Now,
	}
}

// WindowStatus reports the gate's answer for the current instant.
func (c *Coordinator) WindowStatus() string {
	return c.gate.Status(c.now())
}

// Register checks eligibility, derives the identity and secret, and appends
// the credential to the roster under CAS. The derived secret is mailed to
// the institutional address; the mail is best-effort and does not undo the
// registration.
func (c *Coordinator) Register(ctx context.Context, first, last string, altCohort bool) (string, error) {
	if !c.gate.IsOpen(c.now()) {
		return "", ErrVotingClosed
	}
	if !c.eligible.IsEligible(first, last) {
		return "", ErrNotEligible
	}

	// A name the derivation rejects must never reach the roster: the line
	// format depends on identities being free of commas and line breaks.
	identity, err := auth.DeriveIdentity(first, last, altCohort, c.cfg.EmailDomain)
	if err != nil {
		return "", err
	}
	secret := auth.DeriveSecret(identity, c.cfg.SecretSalt)

	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		roster, gen, err := c.roster.Load(ctx)
		if err != nil {
			return "", err
		}
		if roster.Find(identity) >= 0 {
			return "", ErrDuplicateRegistration
		}

		next := roster.Clone()
		next.Records = append(next.Records, store.Credential{
			Identity: identity,
			Secret:   secret,
		})

		_, err = c.roster.CompareAndSwap(ctx, gen, next)
		if errors.Is(err, blobstore.ErrConflict) {
			// Another registration landed first; reload, which also
			// re-runs the duplicate check against the fresh roster.
			c.backoff(ctx, attempt)
			continue
		}
		if err != nil {
			return "", err
		}

		c.log.Append(audit.Event{Action: audit.ActionRegister, Actor: identity})
		c.send("Your voting credentials", identity, fmt.Sprintf(
			"Hello, your registration was accepted.\n\nEmail: %s\nPassword: %s\n\nKeep this message until you have voted.",
			identity, secret))
		return identity, nil
	}
	return "", fmt.Errorf("%w: registration retry budget exhausted", blobstore.ErrUnavailable)
}

// Authenticate validates a credential against a freshly loaded roster and
// binds a session to origin. No storage is mutated.
func (c *Coordinator) Authenticate(ctx context.Context, identity, secret, origin string) (session.Session, error) {
	roster, _, err := c.roster.Load(ctx)
	if err != nil {
		return session.Session{}, err
	}

	s, err := c.sessions.Authenticate(identity, secret, origin, roster)
	if err != nil {
		return session.Session{}, err
	}

	c.log.Append(audit.Event{Action: audit.ActionLogin, Actor: identity, Origin: origin})
	return s, nil
}

// CastVote applies one vote as a logical transaction across the roster and
// the tally. The roster flip is the source of truth: once its CAS lands,
// the vote is durable and no later failure is surfaced to the voter as a
// failure. The tally is a derived projection, retried independently and
// repairable offline.
func (c *Coordinator) CastVote(ctx context.Context, identity, choice, origin string) error {
	if !c.gate.IsOpen(c.now()) {
		return ErrVotingClosed
	}
	if err := c.sessions.Touch(identity, origin); err != nil {
		// A voter whose vote already completed has no session anymore;
		// answer AlreadyVoted rather than NoSession so repeat submissions
		// stay idempotent.
		if errors.Is(err, session.ErrNoSession) {
			if roster, _, lerr := c.roster.Load(ctx); lerr == nil {
				if i := roster.Find(identity); i >= 0 && roster.Records[i].HasVoted {
					return session.ErrAlreadyVoted
				}
			}
		}
		return err
	}
	if !c.choices[choice] {
		return ErrInvalidChoice
	}

	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		roster, rosterGen, err := c.roster.Load(ctx)
		if err != nil {
			return err
		}
		tally, tallyGen, err := c.tally.Load(ctx)
		if err != nil {
			return err
		}

		i := roster.Find(identity)
		if i < 0 {
			// Session exists but the record is gone: corrupt state, treat
			// the credential as unknown.
			return session.ErrInvalidCredential
		}
		if roster.Records[i].HasVoted {
			// Idempotent rejection; another request already recorded this
			// vote. No mutation, and the session is useless now.
			c.sessions.Release(identity)
			return session.ErrAlreadyVoted
		}

		nextRoster := roster.Clone()
		nextRoster.Records[i].HasVoted = true
		nextTally := tally.Clone()
		if err := nextTally.Increment(choice); err != nil {
			return ErrInvalidChoice
		}

		_, err = c.roster.CompareAndSwap(ctx, rosterGen, nextRoster)
		if errors.Is(err, blobstore.ErrConflict) {
			// Someone else moved the roster; restart from a fresh load,
			// which also re-runs the AlreadyVoted check.
			c.backoff(ctx, attempt)
			continue
		}
		if err != nil {
			// Nothing has been committed yet, safe to surface as
			// retryable.
			return err
		}

		// The vote is durable from here on.
		if err := c.settleTally(ctx, tallyGen, nextTally, choice); err != nil {
			slog.Error("tally update pending after durable vote",
				"identity", identity, "choice", choice, "error", err)
			c.log.Append(audit.Event{
				Action: audit.ActionVote, Actor: identity, Origin: origin,
				Detail: "partial commit: tally pending for " + choice,
			})
			c.sessions.Release(identity)
			return ErrPartialCommit
		}

		c.sessions.Release(identity)
		c.log.Append(audit.Event{
			Action: audit.ActionVote, Actor: identity, Origin: origin, Detail: choice,
		})
		c.send("Vote Confirmation", identity, fmt.Sprintf(
			"Hello, we received your vote. You voted for %s. Thank you very much!", choice))
		c.send(fmt.Sprintf("New Vote from %s", identity), c.cfg.AdminEmail, fmt.Sprintf(
			"The email %s voted for choice %s.", identity, choice))
		return nil
	}
	return fmt.Errorf("%w: vote retry budget exhausted", blobstore.ErrUnavailable)
}

// settleTally retries the tally CAS alone after the roster flip landed,
// reloading and reapplying the increment on every miss.
func (c *Coordinator) settleTally(ctx context.Context, gen int64, tally *store.Tally, choice string) error {
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		_, err := c.tally.CompareAndSwap(ctx, gen, tally)
		if err == nil {
			return nil
		}
		lastErr = err
		c.backoff(ctx, attempt)

		fresh, freshGen, lerr := c.tally.Load(ctx)
		if lerr != nil {
			// Keep the stale copy and try again; the next CAS will
			// conflict if the blob moved meanwhile.
			continue
		}
		if err := fresh.Increment(choice); err != nil {
			return err
		}
		tally, gen = fresh, freshGen
	}
	return lastErr
}

// Logout releases the caller's session. The origin must match the bound
// one; logging out an absent session is a no-op.
func (c *Coordinator) Logout(identity, origin string) error {
	err := c.sessions.Touch(identity, origin)
	if errors.Is(err, session.ErrOriginMismatch) {
		return err
	}
	c.sessions.Release(identity)
	c.log.Append(audit.Event{Action: audit.ActionLogout, Actor: identity, Origin: origin})
	return nil
}

// Results returns the current tally.
func (c *Coordinator) Results(ctx context.Context) (*store.Tally, error) {
	tally, _, err := c.tally.Load(ctx)
	return tally, err
}

// ReconcileTally compares the number of voted roster records against the
// tally total. The roster is authoritative; a shortfall means pending
// partial commits. Per-label attribution is not recoverable from the
// roster, so remediation of a mismatch is an operator decision.
func (c *Coordinator) ReconcileTally(ctx context.Context) (voted, counted int, err error) {
	roster, _, err := c.roster.Load(ctx)
	if err != nil {
		return 0, 0, err
	}
	tally, _, err := c.tally.Load(ctx)
	if err != nil {
		return 0, 0, err
	}

	voted = roster.VotedCount()
	counted = tally.Total()
	if voted != counted {
		c.log.Append(audit.Event{
			Action: audit.ActionTallyRepair,
			Detail: fmt.Sprintf("roster voted=%d tally total=%d", voted, counted),
		})
	}
	return voted, counted, nil
}

// Contact relays a message from a visitor to the admin.
func (c *Coordinator) Contact(email, message string) error {
	c.log.Append(audit.Event{Action: audit.ActionContact, Actor: email})
	return c.mail.Send("Contact Form Submission", c.cfg.AdminEmail,
		fmt.Sprintf("Email: %s\nMessage: %s", email, message))
}

// send delivers best-effort mail; failures are logged, never propagated.
func (c *Coordinator) send(subject, recipient, body string) {
	if err := c.mail.Send(subject, recipient, body); err != nil {
		slog.Error("notification failed", "subject", subject, "recipient", recipient, "error", err)
	}
}

// backoff sleeps between retry attempts, doubling up to a cap so a long
// budget can't turn into multi-second stalls.
func (c *Coordinator) backoff(ctx context.Context, attempt int) {
	if c.cfg.RetryBackoff <= 0 {
		return
	}
	if attempt > 4 {
		attempt = 4
	}
	select {
	case <-time.After(c.cfg.RetryBackoff << attempt):
	case <-ctx.Done():
	}
}
