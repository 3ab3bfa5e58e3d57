/*
Package session binds each authenticated credential to exactly one live
origin.

The registry is an in-memory table guarded by a single mutex; every
operation is O(1) and holds the lock only for the table access, never
across I/O. One entry per identity at most: a second browser (different
origin) cannot authenticate while the first session is live, which is what
prevents a credential from being driven from two places at once.

Sessions expire lazily after an idle TTL. A stale session only blocks
re-authentication until it ages out; it can never cause an incorrect tally,
so no background sweeper is required (Sweep exists for memory hygiene
only).
*/
package session
