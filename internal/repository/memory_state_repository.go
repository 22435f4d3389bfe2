package repository

import (
	"context"
	"skillpath_backend/internal/util"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt *time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return e.expiresAt != nil && !now.Before(*e.expiresAt)
}

// MemoryStateRepository 进程内存实现，单实例部署和测试使用
type MemoryStateRepository struct {
	mu      sync.RWMutex
	entries map[string]map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{
		entries: make(map[string]map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *MemoryStateRepository) Get(ctx context.Context, owner, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[owner][key]
	if !ok || entry.expired(r.now()) {
		return nil, util.ErrStateNotFound
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (r *MemoryStateRepository) Set(ctx context.Context, owner, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	r.mu.Lock()
	defer r.mu.Unlock()

	keys, ok := r.entries[owner]
	if !ok {
		keys = make(map[string]memoryEntry)
		r.entries[owner] = keys
	}
	keys[key] = memoryEntry{value: stored, expiresAt: expiresAt(r.now(), ttl)}
	return nil
}

func (r *MemoryStateRepository) SetNX(ctx context.Context, owner, key string, value []byte, ttl time.Duration) (bool, error) {
	stored := make([]byte, len(value))
	copy(stored, value)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	keys, ok := r.entries[owner]
	if !ok {
		keys = make(map[string]memoryEntry)
		r.entries[owner] = keys
	}
	if entry, exists := keys[key]; exists && !entry.expired(now) {
		return false, nil
	}
	keys[key] = memoryEntry{value: stored, expiresAt: expiresAt(now, ttl)}
	return true, nil
}

func (r *MemoryStateRepository) Delete(ctx context.Context, owner, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if keys, ok := r.entries[owner]; ok {
		delete(keys, key)
		if len(keys) == 0 {
			delete(r.entries, owner)
		}
	}
	return nil
}

func (r *MemoryStateRepository) Clear(ctx context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, owner)
	return nil
}

func (r *MemoryStateRepository) PurgeExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var purged int64
	for owner, keys := range r.entries {
		for key, entry := range keys {
			if entry.expired(now) {
				delete(keys, key)
				purged++
			}
		}
		if len(keys) == 0 {
			delete(r.entries, owner)
		}
	}
	return purged, nil
}
