package blobstore

import (
	"context"
	"sync"
)

type memBlob struct {
	data       []byte
	generation int64
}

// Memory is an in-process Client used for tests and single-node development.
// It honors the same generation contract as the SQL backends.
type Memory struct {
	mu    sync.Mutex
	blobs map[string]memBlob
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string]memBlob)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.blobs[key]
	if !ok {
		return nil, 0, ErrNotFound
	}
	// Copy so callers can't mutate the stored blob.
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, b.generation, nil
}

func (m *Memory) PutIfGeneration(ctx context.Context, key string, expected int64, data []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.blobs[key]
	current := int64(0)
	if ok {
		current = b.generation
	}
	if current != expected {
		return 0, ErrConflict
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[key] = memBlob{data: stored, generation: current + 1}
	return current + 1, nil
}
