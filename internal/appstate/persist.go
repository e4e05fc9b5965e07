package appstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"blastsms/internal/clients/redis"
)

// ErrNoSnapshot is returned by a Persister that has nothing stored yet.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// Persister loads and saves the state blob.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

// BlobStore is the key-value surface RedisPersister needs.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
}

// RedisPersister keeps the blob under a single Redis key.
type RedisPersister struct {
	store BlobStore
	key   string
}

func NewRedisPersister(store BlobStore, key string) *RedisPersister {
	return &RedisPersister{store: store, key: key}
}

func (p *RedisPersister) Load(ctx context.Context) ([]byte, error) {
	blob, err := p.store.Get(ctx, p.key)
	if errors.Is(err, redis.ErrKeyNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state %s: %w", p.key, err)
	}
	return blob, nil
}

func (p *RedisPersister) Save(ctx context.Context, blob []byte) error {
	if err := p.store.Set(ctx, p.key, blob, 0); err != nil {
		return fmt.Errorf("failed to save state %s: %w", p.key, err)
	}
	return nil
}

// MemoryPersister keeps the blob in process, used when Redis is disabled.
type MemoryPersister struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load(_ context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.blob == nil {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), p.blob...), nil
}

func (p *MemoryPersister) Save(_ context.Context, blob []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blob = append([]byte(nil), blob...)
	return nil
}
