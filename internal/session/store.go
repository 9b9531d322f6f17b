package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Store persists server-side session data by identifier.
type Store interface {
	// Load returns nil data and no error when the session does not exist.
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return nil, nil
	}
	d := e.data.clone()
	return &d, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, data Data, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{data: data.clone(), expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// KeyValue is the byte store RedisStore writes through; *cache.Client implements it.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const redisKeyPrefix = "session:"

// RedisStore keeps sessions as JSON documents in Redis.
type RedisStore struct {
	kv KeyValue
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on top of kv.
func NewRedisStore(kv KeyValue) *RedisStore {
	return &RedisStore{kv: kv}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Data, error) {
	payload, err := r.kv.Get(ctx, redisKeyPrefix+id)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	var d Data
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("unmarshal session data: %w", err)
	}
	return &d, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, data Data, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}
	return r.kv.Set(ctx, redisKeyPrefix+id, payload, ttl)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.kv.Delete(ctx, redisKeyPrefix+id)
}
