package blobstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no blob exists under the requested key.
	ErrNotFound = errors.New("blob not found")
	// ErrConflict means the expected generation no longer matches the stored one.
	ErrConflict = errors.New("blob generation conflict")
	// ErrUnavailable means the backend could not be reached or timed out.
	ErrUnavailable = errors.New("blob store unavailable")
)

// Client is a versioned blob store. Every blob carries a generation number
// that increments on each successful write; generation 0 means the blob does
// not exist yet. Writes are conditional on the generation the caller last
// read, which gives optimistic concurrency without any locking in the
// backend itself.
type Client interface {
	// Get returns the blob contents and its current generation.
	// Returns ErrNotFound if no blob exists under key.
	Get(ctx context.Context, key string) (data []byte, generation int64, err error)

	// PutIfGeneration writes data only if the stored generation still equals
	// expected. Passing expected == 0 creates the blob. Returns the new
	// generation on success and ErrConflict (with no side effects) if the
	// stored generation has moved.
	PutIfGeneration(ctx context.Context, key string, expected int64, data []byte) (int64, error)
}
