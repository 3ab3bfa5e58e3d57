/*
Package store owns the two shared documents of the election: the credential
roster and the aggregate tally. Each is persisted as a single line-oriented
blob behind the versioned blobstore client.

# Formats

Roster, one record per line:

	jane.doe@campus.edu,4f1a9c22be03dd51,0

Tally, one label per line:

	Red,12
	Blue,9

No schema version header; format changes require migrating the whole blob.

# Concurrency

Neither store holds a lock across the network round trip. Callers do
load-modify-CompareAndSwap; a CompareAndSwap against a stale generation
returns blobstore.ErrConflict with no side effects and the caller reloads
and retries. Both Load and CompareAndSwap run under a bounded per-operation
timeout so a slow backend fails with blobstore.ErrUnavailable instead of
hanging a request worker.
*/
package store
