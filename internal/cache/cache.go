// Package cache stores serialized calculation responses keyed by a hash of
// the request, in process memory or in redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Backend names accepted in the server configuration.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Cache stores immutable response bodies. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Key derives a cache key from the calculation kind and the canonical JSON
// encoding of its input. Struct inputs encode their fields in declaration
// order, so equal inputs always produce equal keys.
func Key(kind string, input interface{}) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key for %s: %w", kind, err)
	}
	sum := sha256.Sum256(payload)
	return kind + ":" + hex.EncodeToString(sum[:]), nil
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process cache with per-entry expiry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a memory cache. A non-positive ttl keeps entries
// until the process exits.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), entry.value...), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

func (c *MemoryCache) Close() error { return nil }

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, []byte) error { return nil }

func (Noop) Ping(context.Context) error { return nil }

func (Noop) Close() error { return nil }

// Config selects and tunes the response cache backend.
type Config struct {
	Backend    string `yaml:"backend"`
	Address    string `yaml:"address"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttlSeconds"`
	KeyPrefix  string `yaml:"keyPrefix"`
}

// TTL returns the configured entry lifetime.
func (c Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// New builds the backend named by cfg.Backend. An empty backend means memory.
func New(cfg Config) (Cache, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendMemory:
		return NewMemoryCache(cfg.TTL()), nil
	case BackendRedis:
		if cfg.Address == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedisCache(RedisOptions{
			Address:   cfg.Address,
			Password:  cfg.Password,
			DB:        cfg.DB,
			TTL:       cfg.TTL(),
			KeyPrefix: cfg.KeyPrefix,
		}), nil
	case BackendNone:
		return Noop{}, nil
	}
	return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
}
