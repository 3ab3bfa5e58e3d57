/*
Package coordinator is the vote-integrity core: it admits eligible voters
exactly once, records a single choice per voter, and keeps the aggregate
tally consistent, all over a blob store with no read-modify-write atomicity.

# State machine

Per credential: Unregistered -> Registered -> Authenticated -> Voted
(terminal). Register appends the credential, Authenticate binds one live
session, CastVote flips the has-voted flag and increments the tally, then
releases the session.

# The two-document problem

Roster and tally live in separate blobs and cannot move atomically without
a real transaction coordinator. The design instead makes the roster flip
the single source of truth and the tally a repairable projection:

 1. Load roster and tally with their generations.
 2. Reject AlreadyVoted before mutating anything.
 3. Flip the flag and bump the count on in-memory copies.
 4. CAS the roster first. A conflict restarts the loop from a fresh load;
    a success makes the vote durable.
 5. CAS the tally. After the roster landed, tally failures are retried
    alone; exhausting that budget surfaces ErrPartialCommit, which is an
    operator condition, not a voter-visible failure.

This bounds the blast radius of partial failure to "undercounted tally,
repairable" rather than "lost or duplicated vote". ReconcileTally detects
the undercount by comparing voted-flag totals against the tally sum.

# Retry policy

Conflicts are retried with exponential backoff up to a bounded budget and
then reclassified as blobstore.ErrUnavailable, which is safe to show the
voter as "try again": before the first successful roster CAS nothing has
been committed.
*/
package coordinator
