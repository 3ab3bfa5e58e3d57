/*
Package blobstore provides a versioned blob client over an object store
that has no locking of its own.

# Generations

Every blob carries an out-of-band generation number. Reads return it, and
writes must present the generation they read:

	data, gen, err := blobs.Get(ctx, ".results.txt")
	// ... modify data ...
	newGen, err := blobs.PutIfGeneration(ctx, ".results.txt", gen, data)

A write against a stale generation returns ErrConflict with no side effects,
so a caller reloads and retries. Generation 0 means the blob does not exist;
a put with expected 0 creates it.

# Backends

Two backends ship here:

  - Memory: in-process map, for tests and development
  - SQL: one row per key in a blob table, works with sqlite and postgres

Both enforce the identical conditional-write contract, so higher layers are
backend-agnostic.
*/
package blobstore
